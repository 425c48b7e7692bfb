package assessment

import (
	"testing"

	"github.com/google/uuid"

	types "github.com/yungbote/strengthscope-backend/internal/domain"
)

func TestScoreByTarget_MaxAndMinScaleAnswers(t *testing.T) {
	doing := uuid.New()
	others := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	var questions []*types.Question
	var answers []*types.Answer
	for i := 0; i < 5; i++ {
		q := scaleQuestion(t, 1, doing, nil, i, 1)
		questions = append(questions, q)
		answers = append(answers, answerFor(t, q, types.NumberValue(5)))
	}
	for _, d := range others {
		for i := 0; i < 5; i++ {
			q := scaleQuestion(t, 1, d, nil, i, 1)
			questions = append(questions, q)
			answers = append(answers, answerFor(t, q, types.NumberValue(1)))
		}
	}

	scores, err := ScoreByTarget(questions, answers, TargetDomain)
	if err != nil {
		t.Fatalf("ScoreByTarget: %v", err)
	}
	if got := scores[doing].Score; got != 100 {
		t.Fatalf("doing score = %d, want 100", got)
	}
	for _, d := range others {
		if got := scores[d].Score; got != 0 {
			t.Fatalf("other domain score = %d, want 0", got)
		}
	}

	top := TopDomains(scores, 2)
	if len(top) != 2 || top[0] != doing {
		t.Fatalf("TopDomains = %v, want doing first", top)
	}
}

func TestScoreByTarget_SkipsUnansweredQuestions(t *testing.T) {
	domainID := uuid.New()
	answered := scaleQuestion(t, 1, domainID, nil, 1, 1)
	unanswered := scaleQuestion(t, 1, domainID, nil, 2, 1)

	scores, err := ScoreByTarget(
		[]*types.Question{answered, unanswered},
		[]*types.Answer{answerFor(t, answered, types.NumberValue(5))},
		TargetDomain,
	)
	if err != nil {
		t.Fatalf("ScoreByTarget: %v", err)
	}
	// The skipped question must not drag the average toward zero.
	if got := scores[domainID].Score; got != 100 {
		t.Fatalf("score = %d, want 100 (unanswered question zero-filled?)", got)
	}
	if got := scores[domainID].QuestionCount; got != 1 {
		t.Fatalf("question count = %d, want 1", got)
	}
}

func TestScoreByTarget_OmitsTargetsWithNoAnswers(t *testing.T) {
	answeredDomain := uuid.New()
	silentDomain := uuid.New()
	q1 := scaleQuestion(t, 1, answeredDomain, nil, 1, 1)
	q2 := scaleQuestion(t, 1, silentDomain, nil, 2, 1)

	scores, err := ScoreByTarget(
		[]*types.Question{q1, q2},
		[]*types.Answer{answerFor(t, q1, types.NumberValue(3))},
		TargetDomain,
	)
	if err != nil {
		t.Fatalf("ScoreByTarget: %v", err)
	}
	if _, ok := scores[silentDomain]; ok {
		t.Fatalf("domain with no answers should be omitted, got %v", scores[silentDomain])
	}
}

func TestScoreByTarget_RespectsWeights(t *testing.T) {
	domainID := uuid.New()
	heavy := scaleQuestion(t, 1, domainID, nil, 1, 3)
	light := scaleQuestion(t, 1, domainID, nil, 2, 1)

	scores, err := ScoreByTarget(
		[]*types.Question{heavy, light},
		[]*types.Answer{
			answerFor(t, heavy, types.NumberValue(5)), // affinity 1.0, weight 3
			answerFor(t, light, types.NumberValue(1)), // affinity 0.0, weight 1
		},
		TargetDomain,
	)
	if err != nil {
		t.Fatalf("ScoreByTarget: %v", err)
	}
	// (1.0*3 + 0.0*1) / 4 = 0.75
	if got := scores[domainID].Score; got != 75 {
		t.Fatalf("weighted score = %d, want 75", got)
	}
}

func TestScoreByTarget_InvariantToSubmissionOrder(t *testing.T) {
	domainID := uuid.New()
	var questions []*types.Question
	var answers []*types.Answer
	for i := 0; i < 6; i++ {
		q := scaleQuestion(t, 1, domainID, nil, i, float64(i%3)+1)
		questions = append(questions, q)
		answers = append(answers, answerFor(t, q, types.NumberValue(float64(i%5)+1)))
	}

	forward, err := ScoreByTarget(questions, answers, TargetDomain)
	if err != nil {
		t.Fatalf("ScoreByTarget(forward): %v", err)
	}

	reversed := make([]*types.Answer, len(answers))
	for i, a := range answers {
		reversed[len(answers)-1-i] = a
	}
	backward, err := ScoreByTarget(questions, reversed, TargetDomain)
	if err != nil {
		t.Fatalf("ScoreByTarget(backward): %v", err)
	}

	if forward[domainID] != backward[domainID] {
		t.Fatalf("order-dependent scores: %v vs %v", forward[domainID], backward[domainID])
	}
}

func TestScoreByTarget_GroupsByStrengthForLaterPhases(t *testing.T) {
	domainID := uuid.New()
	s1, s2 := uuid.New(), uuid.New()
	q1 := scaleQuestion(t, 2, domainID, ptrUUID(s1), 1, 1)
	q2 := scaleQuestion(t, 2, domainID, ptrUUID(s2), 2, 1)

	scores, err := ScoreByTarget(
		[]*types.Question{q1, q2},
		[]*types.Answer{
			answerFor(t, q1, types.NumberValue(5)),
			answerFor(t, q2, types.NumberValue(1)),
		},
		TargetStrength,
	)
	if err != nil {
		t.Fatalf("ScoreByTarget: %v", err)
	}
	if scores[s1].Score != 100 || scores[s2].Score != 0 {
		t.Fatalf("strength scores = %v, want s1=100 s2=0", scores)
	}
}

func TestScoreMapRoundTrip(t *testing.T) {
	id := uuid.New()
	in := map[uuid.UUID]TargetScore{id: {Score: 87, QuestionCount: 4}}

	m := ToScoreMap(in)
	if m.V != types.ScoreMapSchemaVersion {
		t.Fatalf("schema version = %d", m.V)
	}
	out, err := FromScoreMap(m)
	if err != nil {
		t.Fatalf("FromScoreMap: %v", err)
	}
	if out[id] != in[id] {
		t.Fatalf("round trip mismatch: %v vs %v", out[id], in[id])
	}
}
