package assessment

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	types "github.com/yungbote/strengthscope-backend/internal/domain"
	errs "github.com/yungbote/strengthscope-backend/internal/pkg/errors"
)

// Weights of the confidence blend: score magnitude, competitive margin over
// the first excluded candidate, and self-reported certainty.
const (
	confidenceScoreWeight  = 0.5
	confidenceMarginWeight = 0.3
	confidenceSelfWeight   = 0.2

	// Midpoint default when a strength has no self-reported confidence.
	defaultSelfConfidence = 3.0
)

// CompileInput is everything the compiler needs; the caller gathers phase-2
// and phase-3 questions and answers so this stays pure.
type CompileInput struct {
	Shortlist   []uuid.UUID
	Questions   []*types.Question
	Answers     []*types.Answer
	Strengths   []*types.Strength
	CompletedAt time.Time
}

// Compile produces the final ranked top strengths. Phase-3 ranking answers
// refine the phase-2 signal by contributing into the same weighted aggregate
// rather than replacing it. Fails with errs.ErrInvalidState when fewer scored
// candidates exist than the ranked list needs.
func Compile(in CompileInput, cfg Config) (types.CompiledResults, error) {
	shortSet := make(map[uuid.UUID]bool, len(in.Shortlist))
	for _, id := range in.Shortlist {
		shortSet[id] = true
	}

	var questions []*types.Question
	for _, q := range in.Questions {
		if q.StrengthID == nil || !shortSet[*q.StrengthID] {
			continue
		}
		if q.Phase == 2 || q.Phase == 3 {
			questions = append(questions, q)
		}
	}

	scores, err := ScoreByTarget(questions, in.Answers, TargetStrength)
	if err != nil {
		return types.CompiledResults{}, err
	}
	if len(scores) < cfg.Ranked {
		return types.CompiledResults{}, fmt.Errorf("only %d scored strengths, need %d: %w", len(scores), cfg.Ranked, errs.ErrInvalidState)
	}

	names := make(map[uuid.UUID]string, len(in.Strengths))
	for _, s := range in.Strengths {
		names[s.ID] = s.Name
	}

	ordered := make([]uuid.UUID, 0, len(scores))
	for id := range scores {
		ordered = append(ordered, id)
	}
	sort.Slice(ordered, func(i, j int) bool {
		a, b := scores[ordered[i]], scores[ordered[j]]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return names[ordered[i]] < names[ordered[j]]
	})

	// Margin baseline: the first excluded candidate. With nothing excluded the
	// margin is measured against zero.
	excludedScore := 0
	if len(ordered) > cfg.Ranked {
		excludedScore = scores[ordered[cfg.Ranked]].Score
	}

	selfConfidence := avgSelfConfidence(questions, in.Answers)

	ranked := make([]types.RankedStrength, 0, cfg.Ranked)
	confidenceTotal := 0
	for i := 0; i < cfg.Ranked; i++ {
		id := ordered[i]
		score := scores[id].Score

		margin := float64(score-excludedScore) / 100
		if margin < 0 {
			margin = 0
		}
		if margin > 1 {
			margin = 1
		}

		self, ok := selfConfidence[id]
		if !ok {
			self = defaultSelfConfidence
		}

		confidence := confidenceScoreWeight*float64(score) +
			confidenceMarginWeight*100*margin +
			confidenceSelfWeight*100*self/5
		confidenceScore := clampScore(int(math.Round(confidence)))
		confidenceTotal += confidenceScore

		ranked = append(ranked, types.RankedStrength{
			Rank:            i + 1,
			StrengthID:      id,
			Score:           score,
			ConfidenceScore: confidenceScore,
		})
	}

	return types.CompiledResults{
		V:                 types.CompiledResultsSchemaVersion,
		RankedStrengths:   ranked,
		OverallConfidence: int(math.Round(float64(confidenceTotal) / float64(len(ranked)))),
		CompletedAt:       in.CompletedAt.UTC(),
	}, nil
}

// avgSelfConfidence averages the self-reported confidence of answered
// questions per target strength, skipping answers that report none.
func avgSelfConfidence(questions []*types.Question, answers []*types.Answer) map[uuid.UUID]float64 {
	byQuestion := make(map[uuid.UUID]*types.Answer, len(answers))
	for _, a := range answers {
		byQuestion[a.QuestionID] = a
	}

	totals := make(map[uuid.UUID]float64)
	counts := make(map[uuid.UUID]int)
	for _, q := range questions {
		if q.StrengthID == nil {
			continue
		}
		a, ok := byQuestion[q.ID]
		if !ok || a.Confidence == nil {
			continue
		}
		totals[*q.StrengthID] += float64(*a.Confidence)
		counts[*q.StrengthID]++
	}

	out := make(map[uuid.UUID]float64, len(totals))
	for id, total := range totals {
		out[id] = total / float64(counts[id])
	}
	return out
}
