package assessment

import (
	"testing"

	"github.com/google/uuid"

	types "github.com/yungbote/strengthscope-backend/internal/domain"
)

func TestTopDomains_OrdersByScoreThenCountThenID(t *testing.T) {
	a, b, c, d := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	scores := map[uuid.UUID]TargetScore{
		a: {Score: 70, QuestionCount: 5},
		b: {Score: 90, QuestionCount: 5},
		c: {Score: 70, QuestionCount: 8},
		d: {Score: 20, QuestionCount: 5},
	}

	top := TopDomains(scores, 4)
	if top[0] != b {
		t.Fatalf("top[0] = %v, want highest score", top[0])
	}
	// Equal scores: higher question count wins.
	if top[1] != c || top[2] != a {
		t.Fatalf("tie-break by count failed: %v", top)
	}
	if top[3] != d {
		t.Fatalf("top[3] = %v, want lowest score", top[3])
	}
}

func TestTopDomains_StableAcrossRepeatedCalls(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}
	scores := map[uuid.UUID]TargetScore{}
	for _, id := range ids {
		scores[id] = TargetScore{Score: 50, QuestionCount: 5}
	}

	first := TopDomains(scores, 4)
	for i := 0; i < 20; i++ {
		again := TopDomains(scores, 4)
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("call %d: order changed at %d: %v vs %v", i, j, first, again)
			}
		}
	}
}

func TestTopDomains_TruncatesToK(t *testing.T) {
	scores := map[uuid.UUID]TargetScore{
		uuid.New(): {Score: 10},
		uuid.New(): {Score: 20},
		uuid.New(): {Score: 30},
	}
	if got := TopDomains(scores, 2); len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
}

func TestSelectPhase2Questions_FiltersToTopDomainStrengths(t *testing.T) {
	domainA, domainB, domainC := uuid.New(), uuid.New(), uuid.New()
	strengthA := &types.Strength{ID: uuid.New(), Name: "Builder", DomainID: domainA}
	strengthB := &types.Strength{ID: uuid.New(), Name: "Planner", DomainID: domainB}
	strengthC := &types.Strength{ID: uuid.New(), Name: "Host", DomainID: domainC}
	strengths := []*types.Strength{strengthA, strengthB, strengthC}

	qa := scaleQuestion(t, 2, domainA, ptrUUID(strengthA.ID), 2, 1)
	qb := scaleQuestion(t, 2, domainB, ptrUUID(strengthB.ID), 1, 1)
	qc := scaleQuestion(t, 2, domainC, ptrUUID(strengthC.ID), 3, 1)
	phase1 := scaleQuestion(t, 1, domainA, nil, 0, 1)
	bank := []*types.Question{qa, qb, qc, phase1}

	domainScores := map[uuid.UUID]TargetScore{
		domainA: {Score: 90, QuestionCount: 5},
		domainB: {Score: 80, QuestionCount: 5},
		domainC: {Score: 10, QuestionCount: 5},
	}

	selected := SelectPhase2Questions(domainScores, bank, strengths, 2)
	if len(selected) != 2 {
		t.Fatalf("selected %d questions, want 2", len(selected))
	}
	// Ordered by authored order, not by domain rank.
	if selected[0].ID != qb.ID || selected[1].ID != qa.ID {
		t.Fatalf("unexpected selection order: %v", []uuid.UUID{selected[0].ID, selected[1].ID})
	}
}

func TestSelectPhase3Candidates_ShortlistsWithNameTieBreak(t *testing.T) {
	domainID := uuid.New()
	var strengths []*types.Strength
	scores := map[uuid.UUID]TargetScore{}
	names := []string{"Zeal", "Analysis", "Belief", "Candor", "Drive", "Empathy", "Focus", "Grit"}
	for i, name := range names {
		s := &types.Strength{ID: uuid.New(), Name: name, DomainID: domainID}
		strengths = append(strengths, s)
		score := 90 - i*10
		if name == "Zeal" || name == "Analysis" {
			score = 90 // tie between first two
		}
		scores[s.ID] = TargetScore{Score: score, QuestionCount: 3}
	}

	got := SelectPhase3Candidates(scores, strengths, 7)
	if len(got) != 7 {
		t.Fatalf("shortlist length = %d, want 7", len(got))
	}
	// "Analysis" beats "Zeal" on the name tie-break.
	if got[0] != strengths[1].ID || got[1] != strengths[0].ID {
		t.Fatalf("tie-break by name failed: %v", got[:2])
	}
}

func TestSelectPhase3Questions_FiltersToShortlist(t *testing.T) {
	domainID := uuid.New()
	in, out := uuid.New(), uuid.New()
	opts := []string{"x", "y"}
	targetsIn := map[string]string{"x": in.String(), "y": uuid.New().String()}
	targetsOut := map[string]string{"x": out.String(), "y": uuid.New().String()}

	qIn := rankingQuestion(t, domainID, in, 1, opts, targetsIn)
	qOut := rankingQuestion(t, domainID, out, 2, opts, targetsOut)

	selected := SelectPhase3Questions([]uuid.UUID{in}, []*types.Question{qIn, qOut})
	if len(selected) != 1 || selected[0].ID != qIn.ID {
		t.Fatalf("unexpected phase-3 selection: %v", selected)
	}
}
