package content

import (
	"testing"

	types "github.com/yungbote/strengthscope-backend/internal/domain"
)

const bundlePath = "../../content/assessment.yaml"

func TestLoadBundle(t *testing.T) {
	b, err := Load(bundlePath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if b.Version != 1 {
		t.Errorf("version = %d, want 1", b.Version)
	}
	cfg := b.EngineCfg()
	if cfg.TopDomains != 2 || cfg.Shortlist != 7 || cfg.Ranked != 5 {
		t.Errorf("engine config = %+v", cfg)
	}
	if len(b.Domains) != 4 {
		t.Errorf("domains = %d, want 4", len(b.Domains))
	}
	if len(b.Strengths) != 20 {
		t.Errorf("strengths = %d, want 20", len(b.Strengths))
	}

	byPhase := map[int]int{}
	for _, q := range b.Questions {
		byPhase[q.Phase]++
	}
	if byPhase[1] != 20 {
		t.Errorf("phase 1 questions = %d, want 20", byPhase[1])
	}
	if byPhase[2] != 40 {
		t.Errorf("phase 2 questions = %d, want 40", byPhase[2])
	}
	if byPhase[3] != 20 {
		t.Errorf("phase 3 questions = %d, want 20", byPhase[3])
	}
}

func TestBundleValidates(t *testing.T) {
	b, err := Load(bundlePath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := b.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRejectsUnknownDomain(t *testing.T) {
	b, err := Load(bundlePath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	b.Strengths[0].Domain = "nonexistent"
	if err := b.Validate(); err == nil {
		t.Fatal("expected error for strength pointing at unknown domain")
	}
}

func TestMaterializeDeterministic(t *testing.T) {
	b, err := Load(bundlePath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	first, err := b.Materialize()
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	second, err := b.Materialize()
	if err != nil {
		t.Fatalf("Materialize again: %v", err)
	}

	for i := range first.Domains {
		if first.Domains[i].ID != second.Domains[i].ID {
			t.Errorf("domain %q ID changed between materializations", first.Domains[i].Key)
		}
	}
	for i := range first.Strengths {
		if first.Strengths[i].ID != second.Strengths[i].ID {
			t.Errorf("strength %q ID changed between materializations", first.Strengths[i].Key)
		}
	}
	for i := range first.Questions {
		if first.Questions[i].ID != second.Questions[i].ID {
			t.Errorf("question %d/%d ID changed between materializations",
				first.Questions[i].Phase, first.Questions[i].Order)
		}
	}
}

func TestMaterializeResolvesTargets(t *testing.T) {
	b, err := Load(bundlePath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	ref, err := b.Materialize()
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}

	strengthByID := map[string]bool{}
	for _, s := range ref.Strengths {
		strengthByID[s.ID.String()] = true
	}

	for _, q := range ref.Questions {
		switch q.Phase {
		case 1:
			if q.StrengthID != nil {
				t.Errorf("phase 1 question %d carries a strength", q.Order)
			}
		case 2:
			if q.StrengthID == nil {
				t.Errorf("phase 2 question %d missing strength", q.Order)
			}
		case 3:
			if q.Type != types.QuestionRanking {
				t.Errorf("phase 3 question %d type = %s", q.Order, q.Type)
			}
			if len(q.OptionTargets) == 0 {
				t.Errorf("phase 3 question %d missing option targets", q.Order)
			}
		}
	}
}
