package content

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/strengthscope-backend/internal/assessment"
	types "github.com/yungbote/strengthscope-backend/internal/domain"
)

// Bundle is the authored content configuration: the taxonomy, the question
// bank, the engine narrowing counts, and the reward tables. Everything the
// engine treats as data lives here, not in code.
type Bundle struct {
	Version int          `yaml:"version"`
	Engine  EngineConfig `yaml:"engine"`

	XP     XPTable     `yaml:"xp"`
	Levels []LevelRule `yaml:"levels"`
	Badges []BadgeRule `yaml:"badges"`

	Domains   []DomainDef   `yaml:"domains"`
	Strengths []StrengthDef `yaml:"strengths"`
	Questions []QuestionDef `yaml:"questions"`
}

type EngineConfig struct {
	TopDomains int `yaml:"top_domains"`
	Shortlist  int `yaml:"shortlist"`
	Ranked     int `yaml:"ranked"`
}

type XPTable struct {
	Phase1      int `yaml:"phase1"`
	Phase2      int `yaml:"phase2"`
	Completion  int `yaml:"completion"`
	RetakeBonus int `yaml:"retake_bonus"`
}

type LevelRule struct {
	Level int `yaml:"level"`
	MinXP int `yaml:"min_xp"`
}

type BadgeRule struct {
	Key       string `yaml:"key"`
	Name      string `yaml:"name"`
	Milestone string `yaml:"milestone"`
}

type DomainDef struct {
	Key  string `yaml:"key"`
	Name string `yaml:"name"`
}

type StrengthDef struct {
	Key    string `yaml:"key"`
	Name   string `yaml:"name"`
	Domain string `yaml:"domain"`
}

type ScaleRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

type QuestionDef struct {
	Phase    int     `yaml:"phase"`
	Order    int     `yaml:"order"`
	Type     string  `yaml:"type"`
	Text     string  `yaml:"text"`
	Domain   string  `yaml:"domain,omitempty"`
	Strength string  `yaml:"strength,omitempty"`
	Weight   float64 `yaml:"weight"`

	Scale         *ScaleRange       `yaml:"scale,omitempty"`
	Options       []string          `yaml:"options,omitempty"`
	OptionTargets map[string]string `yaml:"option_targets,omitempty"`
}

// Load reads and validates a content bundle from disk.
func Load(path string) (*Bundle, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content bundle: %w", err)
	}
	var b Bundle
	if err := yaml.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("parse content bundle: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("validate content bundle: %w", err)
	}
	return &b, nil
}

func (b *Bundle) EngineCfg() assessment.Config {
	return assessment.Config{
		TopDomains: b.Engine.TopDomains,
		Shortlist:  b.Engine.Shortlist,
		Ranked:     b.Engine.Ranked,
	}
}

func (b *Bundle) Validate() error {
	if b.Version != 1 {
		return fmt.Errorf("unsupported bundle version %d", b.Version)
	}
	if b.Engine.TopDomains <= 0 || b.Engine.Shortlist <= 0 || b.Engine.Ranked <= 0 {
		return fmt.Errorf("engine counts must be positive: %+v", b.Engine)
	}
	if b.Engine.Ranked > b.Engine.Shortlist {
		return fmt.Errorf("ranked (%d) cannot exceed shortlist (%d)", b.Engine.Ranked, b.Engine.Shortlist)
	}

	domains := map[string]bool{}
	for _, d := range b.Domains {
		if d.Key == "" || d.Name == "" {
			return fmt.Errorf("domain with empty key or name")
		}
		if domains[d.Key] {
			return fmt.Errorf("duplicate domain key %q", d.Key)
		}
		domains[d.Key] = true
	}
	if len(domains) == 0 {
		return fmt.Errorf("bundle has no domains")
	}

	strengths := map[string]string{}
	for _, s := range b.Strengths {
		if s.Key == "" || s.Name == "" {
			return fmt.Errorf("strength with empty key or name")
		}
		if _, dup := strengths[s.Key]; dup {
			return fmt.Errorf("duplicate strength key %q", s.Key)
		}
		if !domains[s.Domain] {
			return fmt.Errorf("strength %q references unknown domain %q", s.Key, s.Domain)
		}
		strengths[s.Key] = s.Domain
	}
	if len(strengths) < b.Engine.Shortlist {
		return fmt.Errorf("only %d strengths, shortlist needs %d", len(strengths), b.Engine.Shortlist)
	}

	for i, q := range b.Questions {
		if err := validateQuestion(i, q, domains, strengths); err != nil {
			return err
		}
	}
	return nil
}

func validateQuestion(i int, q QuestionDef, domains map[string]bool, strengths map[string]string) error {
	if q.Text == "" {
		return fmt.Errorf("question %d has no text", i)
	}
	if q.Weight <= 0 {
		return fmt.Errorf("question %d has non-positive weight %v", i, q.Weight)
	}
	switch q.Phase {
	case 1:
		if !domains[q.Domain] {
			return fmt.Errorf("question %d references unknown domain %q", i, q.Domain)
		}
	case 2, 3:
		if _, ok := strengths[q.Strength]; !ok {
			return fmt.Errorf("question %d references unknown strength %q", i, q.Strength)
		}
	default:
		return fmt.Errorf("question %d has invalid phase %d", i, q.Phase)
	}

	switch types.QuestionType(q.Type) {
	case types.QuestionScale:
		if q.Scale == nil || q.Scale.Max <= q.Scale.Min {
			return fmt.Errorf("question %d has invalid scale range", i)
		}
	case types.QuestionChoice:
		if err := validateOptions(i, q.Options); err != nil {
			return err
		}
	case types.QuestionRanking:
		if err := validateOptions(i, q.Options); err != nil {
			return err
		}
		covered := false
		for opt, target := range q.OptionTargets {
			if !containsOption(q.Options, opt) {
				return fmt.Errorf("question %d targets unknown option %q", i, opt)
			}
			if _, ok := strengths[target]; !ok {
				return fmt.Errorf("question %d option %q targets unknown strength %q", i, opt, target)
			}
			if target == q.Strength {
				covered = true
			}
		}
		if !covered {
			return fmt.Errorf("question %d option targets do not cover its own strength %q", i, q.Strength)
		}
	default:
		return fmt.Errorf("question %d has invalid type %q", i, q.Type)
	}
	return nil
}

func validateOptions(i int, opts []string) error {
	if len(opts) < 2 || len(opts) > 10 {
		return fmt.Errorf("question %d has %d options, want 2-10", i, len(opts))
	}
	seen := map[string]bool{}
	for _, opt := range opts {
		if opt == "" {
			return fmt.Errorf("question %d has an empty option", i)
		}
		if seen[opt] {
			return fmt.Errorf("question %d repeats option %q", i, opt)
		}
		seen[opt] = true
	}
	return nil
}

func containsOption(opts []string, want string) bool {
	for _, opt := range opts {
		if opt == want {
			return true
		}
	}
	return false
}
