package assessment

import (
	"fmt"

	types "github.com/yungbote/strengthscope-backend/internal/domain"
	errs "github.com/yungbote/strengthscope-backend/internal/pkg/errors"
)

// Normalize converts one answered question into a unit affinity in [0,1].
// Pure and total for valid inputs; any type mismatch or out-of-range value
// wraps errs.ErrInvalidArgument.
func Normalize(q *types.Question, v types.AnswerValue) (float64, error) {
	if q == nil {
		return 0, fmt.Errorf("nil question: %w", errs.ErrInvalidArgument)
	}
	if err := v.Validate(); err != nil {
		return 0, fmt.Errorf("%v: %w", err, errs.ErrInvalidArgument)
	}

	switch q.Type {
	case types.QuestionScale:
		return normalizeScale(q, v)
	case types.QuestionChoice:
		return normalizeChoice(q, v)
	case types.QuestionRanking:
		return normalizeRanking(q, v)
	default:
		return 0, fmt.Errorf("unknown question type %q: %w", q.Type, errs.ErrInvalidArgument)
	}
}

func normalizeScale(q *types.Question, v types.AnswerValue) (float64, error) {
	if v.Kind != types.AnswerNumber {
		return 0, fmt.Errorf("scale question expects a number, got %q: %w", v.Kind, errs.ErrInvalidArgument)
	}
	min, max := float64(q.ScaleMin), float64(q.ScaleMax)
	if max <= min {
		return 0, fmt.Errorf("question %s has degenerate scale range [%v,%v]: %w", q.ID, min, max, errs.ErrInvalidArgument)
	}
	n := *v.Number
	if n < min || n > max {
		return 0, fmt.Errorf("value %v outside scale range [%v,%v]: %w", n, min, max, errs.ErrInvalidArgument)
	}
	return (n - min) / (max - min), nil
}

// normalizeChoice maps the selected option's authored position onto [1,0]:
// first option = 1.0, last = 0.0. The ordering is a content-authoring
// contract, not inferred from option text.
func normalizeChoice(q *types.Question, v types.AnswerValue) (float64, error) {
	if v.Kind != types.AnswerText {
		return 0, fmt.Errorf("choice question expects text, got %q: %w", v.Kind, errs.ErrInvalidArgument)
	}
	opts := q.OptionList()
	if len(opts) < 2 {
		return 0, fmt.Errorf("question %s has fewer than 2 options: %w", q.ID, errs.ErrInvalidArgument)
	}
	sel := *v.Text
	for i, opt := range opts {
		if opt == sel {
			return 1 - float64(i)/float64(len(opts)-1), nil
		}
	}
	return 0, fmt.Errorf("selected option %q not in question options: %w", sel, errs.ErrInvalidArgument)
}

// normalizeRanking scores the question's own tagged target by where its
// authored matching option landed in the submitted order: rank 1 of N yields
// 1.0, rank N yields 0.0. The submitted order must be a set-equal permutation
// of the authored options.
func normalizeRanking(q *types.Question, v types.AnswerValue) (float64, error) {
	if v.Kind != types.AnswerRanking {
		return 0, fmt.Errorf("ranking question expects a list, got %q: %w", v.Kind, errs.ErrInvalidArgument)
	}
	opts := q.OptionList()
	if len(opts) < 2 || len(opts) > 10 {
		return 0, fmt.Errorf("question %s has %d options, want 2-10: %w", q.ID, len(opts), errs.ErrInvalidArgument)
	}
	if err := checkPermutation(opts, v.List); err != nil {
		return 0, err
	}
	if q.StrengthID == nil {
		return 0, fmt.Errorf("ranking question %s has no target strength: %w", q.ID, errs.ErrInvalidArgument)
	}

	targets := q.OptionTargetMap()
	matching := ""
	for opt, target := range targets {
		if target == q.StrengthID.String() {
			matching = opt
			break
		}
	}
	if matching == "" {
		return 0, fmt.Errorf("question %s option targets do not cover its own strength: %w", q.ID, errs.ErrInvalidArgument)
	}

	for i, item := range v.List {
		if item == matching {
			return 1 - float64(i)/float64(len(opts)-1), nil
		}
	}
	// Unreachable once checkPermutation has passed.
	return 0, fmt.Errorf("matching option %q not present in ranking: %w", matching, errs.ErrInvalidArgument)
}

func checkPermutation(opts, submitted []string) error {
	if len(submitted) != len(opts) {
		return fmt.Errorf("ranking has %d items, want %d: %w", len(submitted), len(opts), errs.ErrInvalidArgument)
	}
	seen := make(map[string]bool, len(opts))
	for _, opt := range opts {
		seen[opt] = false
	}
	for _, item := range submitted {
		used, ok := seen[item]
		if !ok {
			return fmt.Errorf("ranking item %q not in question options: %w", item, errs.ErrInvalidArgument)
		}
		if used {
			return fmt.Errorf("ranking item %q repeated: %w", item, errs.ErrInvalidArgument)
		}
		seen[item] = true
	}
	return nil
}
