package assessment

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	types "github.com/yungbote/strengthscope-backend/internal/domain"
	errs "github.com/yungbote/strengthscope-backend/internal/pkg/errors"
)

type TargetKind string

const (
	TargetDomain   TargetKind = "domain"
	TargetStrength TargetKind = "strength"
)

// TargetScore is one aggregated 0-100 score plus how many answered questions
// produced it.
type TargetScore struct {
	Score         int
	QuestionCount int
}

// ScoreByTarget aggregates normalized answers into 0-100 scores per target
// entity. Only answered questions contribute; a target with no answered
// questions is omitted rather than scored 0, so a skipped question is never
// conflated with a neutral one. A pure function of the final answer set:
// submission order cannot change the result.
func ScoreByTarget(questions []*types.Question, answers []*types.Answer, kind TargetKind) (map[uuid.UUID]TargetScore, error) {
	byQuestion := make(map[uuid.UUID]*types.Answer, len(answers))
	for _, a := range answers {
		byQuestion[a.QuestionID] = a
	}

	type acc struct {
		weighted    float64
		totalWeight float64
		count       int
	}
	sums := make(map[uuid.UUID]*acc)

	for _, q := range questions {
		target, ok := targetOf(q, kind)
		if !ok {
			continue
		}
		a, answered := byQuestion[q.ID]
		if !answered {
			continue
		}
		value, err := a.DecodeValue()
		if err != nil {
			return nil, fmt.Errorf("answer %s: %v: %w", a.ID, err, errs.ErrInvalidArgument)
		}
		affinity, err := Normalize(q, value)
		if err != nil {
			return nil, fmt.Errorf("question %s: %w", q.ID, err)
		}
		weight := q.Weight
		if weight <= 0 {
			return nil, fmt.Errorf("question %s has non-positive weight %v: %w", q.ID, weight, errs.ErrInvalidArgument)
		}
		s, ok := sums[target]
		if !ok {
			s = &acc{}
			sums[target] = s
		}
		s.weighted += affinity * weight
		s.totalWeight += weight
		s.count++
	}

	out := make(map[uuid.UUID]TargetScore, len(sums))
	for target, s := range sums {
		raw := s.weighted / s.totalWeight
		out[target] = TargetScore{
			Score:         clampScore(int(math.Round(raw * 100))),
			QuestionCount: s.count,
		}
	}
	return out, nil
}

func targetOf(q *types.Question, kind TargetKind) (uuid.UUID, bool) {
	switch kind {
	case TargetStrength:
		if q.StrengthID == nil || *q.StrengthID == uuid.Nil {
			return uuid.Nil, false
		}
		return *q.StrengthID, true
	default:
		if q.DomainID == uuid.Nil {
			return uuid.Nil, false
		}
		return q.DomainID, true
	}
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// ToScoreMap converts engine output into the schema-versioned blob persisted
// on the session.
func ToScoreMap(scores map[uuid.UUID]TargetScore) types.ScoreMap {
	m := types.ScoreMap{
		V:      types.ScoreMapSchemaVersion,
		Scores: make(map[string]int, len(scores)),
		Counts: make(map[string]int, len(scores)),
	}
	for id, ts := range scores {
		m.Scores[id.String()] = ts.Score
		m.Counts[id.String()] = ts.QuestionCount
	}
	return m
}

// FromScoreMap is the inverse of ToScoreMap.
func FromScoreMap(m types.ScoreMap) (map[uuid.UUID]TargetScore, error) {
	out := make(map[uuid.UUID]TargetScore, len(m.Scores))
	for key, score := range m.Scores {
		id, err := uuid.Parse(key)
		if err != nil {
			return nil, fmt.Errorf("score map key %q: %w", key, errs.ErrInvalidArgument)
		}
		out[id] = TargetScore{Score: score, QuestionCount: m.Counts[key]}
	}
	return out, nil
}
