package assessment

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	types "github.com/yungbote/strengthscope-backend/internal/domain"
	errs "github.com/yungbote/strengthscope-backend/internal/pkg/errors"
)

// compileFixture builds 7 shortlisted strengths with phase-2 scale answers
// producing distinct descending scores.
func compileFixture(t *testing.T) (CompileInput, []*types.Strength) {
	t.Helper()
	domainID := uuid.New()
	names := []string{"Analysis", "Belief", "Candor", "Drive", "Empathy", "Focus", "Grit"}
	scaleValues := []float64{5, 5, 4, 4, 3, 2, 1}

	var strengths []*types.Strength
	var shortlist []uuid.UUID
	var questions []*types.Question
	var answers []*types.Answer
	for i, name := range names {
		s := &types.Strength{ID: uuid.New(), Key: name, Name: name, DomainID: domainID}
		strengths = append(strengths, s)
		shortlist = append(shortlist, s.ID)

		q := scaleQuestion(t, 2, domainID, ptrUUID(s.ID), i, 1)
		questions = append(questions, q)
		a := answerFor(t, q, types.NumberValue(scaleValues[i]))
		a.Confidence = ptrInt(4)
		answers = append(answers, a)
	}

	return CompileInput{
		Shortlist:   shortlist,
		Questions:   questions,
		Answers:     answers,
		Strengths:   strengths,
		CompletedAt: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
	}, strengths
}

func TestCompile_RanksTopFiveWithExactRankPermutation(t *testing.T) {
	in, _ := compileFixture(t)

	results, err := Compile(in, DefaultConfig())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(results.RankedStrengths) != 5 {
		t.Fatalf("ranked length = %d, want 5", len(results.RankedStrengths))
	}
	for i, rs := range results.RankedStrengths {
		if rs.Rank != i+1 {
			t.Fatalf("rank[%d] = %d, want %d", i, rs.Rank, i+1)
		}
	}
	for i := 1; i < len(results.RankedStrengths); i++ {
		if results.RankedStrengths[i].Score > results.RankedStrengths[i-1].Score {
			t.Fatalf("scores not descending at %d: %v", i, results.RankedStrengths)
		}
	}
}

func TestCompile_TieBreaksByNameAscending(t *testing.T) {
	in, strengths := compileFixture(t)
	// Analysis and Belief both answered 5: Analysis must win on name.
	results, err := Compile(in, DefaultConfig())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if results.RankedStrengths[0].StrengthID != strengths[0].ID {
		t.Fatalf("rank 1 = %v, want Analysis", results.RankedStrengths[0].StrengthID)
	}
	if results.RankedStrengths[1].StrengthID != strengths[1].ID {
		t.Fatalf("rank 2 = %v, want Belief", results.RankedStrengths[1].StrengthID)
	}
}

func TestCompile_Deterministic(t *testing.T) {
	in, _ := compileFixture(t)
	cfg := DefaultConfig()

	first, err := Compile(in, cfg)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Compile(in, cfg)
		if err != nil {
			t.Fatalf("Compile(repeat %d): %v", i, err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("Compile not deterministic:\n%+v\n%+v", first, again)
		}
	}
}

func TestCompile_Phase3RefinesSameAggregate(t *testing.T) {
	in, strengths := compileFixture(t)
	cfg := DefaultConfig()

	base, err := Compile(in, cfg)
	if err != nil {
		t.Fatalf("Compile(base): %v", err)
	}

	// A phase-3 ranking that puts Grit (previously last) on top should lift
	// its blended score rather than replacing phase-2 signal outright.
	grit := strengths[6]
	opts := []string{"grit wins", "second", "third"}
	targets := map[string]string{
		"grit wins": grit.ID.String(),
		"second":    uuid.New().String(),
		"third":     uuid.New().String(),
	}
	q3 := rankingQuestion(t, grit.DomainID, grit.ID, 100, opts, targets)
	q3.Weight = 3
	in.Questions = append(in.Questions, q3)
	in.Answers = append(in.Answers, answerFor(t, q3, types.RankingValue([]string{"grit wins", "second", "third"})))

	refined, err := Compile(in, cfg)
	if err != nil {
		t.Fatalf("Compile(refined): %v", err)
	}

	if findRankedScore(base, grit.ID) != -1 {
		t.Fatalf("fixture drift: grit unexpectedly ranked before phase 3")
	}
	refinedGrit := findRankedScore(refined, grit.ID)
	// Phase-2 answered 1 on a 1-5 scale (affinity 0, weight 1), phase-3 ranked
	// first (affinity 1, weight 3): blended = 75, not 100.
	if refinedGrit != 75 {
		t.Fatalf("refined grit score = %d, want 75 (blend of phases)", refinedGrit)
	}
}

func TestCompile_FailsWithTooFewCandidates(t *testing.T) {
	domainID := uuid.New()
	var shortlist []uuid.UUID
	var questions []*types.Question
	var answers []*types.Answer
	var strengths []*types.Strength
	for i := 0; i < 4; i++ {
		s := &types.Strength{ID: uuid.New(), Name: "S", DomainID: domainID}
		strengths = append(strengths, s)
		shortlist = append(shortlist, s.ID)
		q := scaleQuestion(t, 2, domainID, ptrUUID(s.ID), i, 1)
		questions = append(questions, q)
		answers = append(answers, answerFor(t, q, types.NumberValue(3)))
	}

	_, err := Compile(CompileInput{
		Shortlist:   shortlist,
		Questions:   questions,
		Answers:     answers,
		Strengths:   strengths,
		CompletedAt: time.Now(),
	}, DefaultConfig())
	if !errors.Is(err, errs.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState with 4 candidates, got %v", err)
	}
}

func TestCompile_ConfidencePenalizesNarrowMargin(t *testing.T) {
	in, _ := compileFixture(t)
	cfg := DefaultConfig()

	results, err := Compile(in, cfg)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	// Fifth place (score 50) barely beat the excluded sixth (score 25);
	// first place (score 100) has a wide margin. Confidence must reflect it.
	first := results.RankedStrengths[0].ConfidenceScore
	fifth := results.RankedStrengths[4].ConfidenceScore
	if first <= fifth {
		t.Fatalf("confidence ignores margin: first=%d fifth=%d", first, fifth)
	}
	if results.OverallConfidence <= 0 || results.OverallConfidence > 100 {
		t.Fatalf("overall confidence out of range: %d", results.OverallConfidence)
	}
}

func findRankedScore(r types.CompiledResults, id uuid.UUID) int {
	for _, rs := range r.RankedStrengths {
		if rs.StrengthID == id {
			return rs.Score
		}
	}
	return -1
}
