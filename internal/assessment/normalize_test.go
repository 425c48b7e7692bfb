package assessment

import (
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"

	types "github.com/yungbote/strengthscope-backend/internal/domain"
	errs "github.com/yungbote/strengthscope-backend/internal/pkg/errors"
)

func TestNormalizeScale_MapsRangeOntoUnitInterval(t *testing.T) {
	q := scaleQuestion(t, 1, uuid.New(), nil, 1, 1)

	cases := []struct {
		value float64
		want  float64
	}{
		{1, 0},
		{2, 0.25},
		{3, 0.5},
		{4, 0.75},
		{5, 1},
	}
	for _, tc := range cases {
		got, err := Normalize(q, types.NumberValue(tc.value))
		if err != nil {
			t.Fatalf("Normalize(%v): %v", tc.value, err)
		}
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("Normalize(%v) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestNormalizeScale_IsMonotonic(t *testing.T) {
	q := scaleQuestion(t, 1, uuid.New(), nil, 1, 1)
	prev := -1.0
	for v := 1.0; v <= 5.0; v += 0.5 {
		got, err := Normalize(q, types.NumberValue(v))
		if err != nil {
			t.Fatalf("Normalize(%v): %v", v, err)
		}
		if got <= prev {
			t.Fatalf("Normalize not strictly increasing at %v: %v <= %v", v, got, prev)
		}
		prev = got
	}
}

func TestNormalizeScale_RejectsOutOfRange(t *testing.T) {
	q := scaleQuestion(t, 1, uuid.New(), nil, 1, 1)
	for _, v := range []float64{0, 6, -1, 100} {
		if _, err := Normalize(q, types.NumberValue(v)); !errors.Is(err, errs.ErrInvalidArgument) {
			t.Fatalf("Normalize(%v): expected ErrInvalidArgument, got %v", v, err)
		}
	}
}

func TestNormalizeScale_RejectsTypeMismatch(t *testing.T) {
	q := scaleQuestion(t, 1, uuid.New(), nil, 1, 1)
	if _, err := Normalize(q, types.TextValue("3")); !errors.Is(err, errs.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for text on scale, got %v", err)
	}
}

func TestNormalizeChoice_FirstOptionStrongest(t *testing.T) {
	opts := []string{"alpha", "beta", "gamma", "delta", "epsilon"}
	q := choiceQuestion(t, 1, uuid.New(), nil, 1, opts)

	first, err := Normalize(q, types.TextValue("alpha"))
	if err != nil {
		t.Fatalf("Normalize(first): %v", err)
	}
	if first != 1.0 {
		t.Fatalf("first option affinity = %v, want 1", first)
	}
	last, err := Normalize(q, types.TextValue("epsilon"))
	if err != nil {
		t.Fatalf("Normalize(last): %v", err)
	}
	if last != 0.0 {
		t.Fatalf("last option affinity = %v, want 0", last)
	}
	mid, err := Normalize(q, types.TextValue("gamma"))
	if err != nil {
		t.Fatalf("Normalize(mid): %v", err)
	}
	if math.Abs(mid-0.5) > 1e-9 {
		t.Fatalf("middle option affinity = %v, want 0.5", mid)
	}
}

func TestNormalizeChoice_RejectsUnknownOption(t *testing.T) {
	q := choiceQuestion(t, 1, uuid.New(), nil, 1, []string{"a", "b"})
	if _, err := Normalize(q, types.TextValue("c")); !errors.Is(err, errs.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for unknown option, got %v", err)
	}
}

func TestNormalizeRanking_ScoresTargetByPosition(t *testing.T) {
	domainID := uuid.New()
	target := uuid.New()
	other := uuid.New()
	opts := []string{"builds things", "plans ahead", "connects people"}
	targets := map[string]string{
		"builds things":   target.String(),
		"plans ahead":     other.String(),
		"connects people": uuid.New().String(),
	}
	q := rankingQuestion(t, domainID, target, 1, opts, targets)

	top, err := Normalize(q, types.RankingValue([]string{"builds things", "plans ahead", "connects people"}))
	if err != nil {
		t.Fatalf("Normalize(top): %v", err)
	}
	if top != 1.0 {
		t.Fatalf("target ranked first: affinity = %v, want 1", top)
	}

	bottom, err := Normalize(q, types.RankingValue([]string{"plans ahead", "connects people", "builds things"}))
	if err != nil {
		t.Fatalf("Normalize(bottom): %v", err)
	}
	if bottom != 0.0 {
		t.Fatalf("target ranked last: affinity = %v, want 0", bottom)
	}
}

func TestNormalizeRanking_RequiresPermutation(t *testing.T) {
	domainID := uuid.New()
	target := uuid.New()
	opts := []string{"a", "b", "c"}
	targets := map[string]string{"a": target.String(), "b": uuid.New().String(), "c": uuid.New().String()}
	q := rankingQuestion(t, domainID, target, 1, opts, targets)

	bad := [][]string{
		{"a", "b"},                // short
		{"a", "b", "c", "c"},      // long
		{"a", "a", "b"},           // repeated
		{"a", "b", "d"},           // foreign item
	}
	for _, ranking := range bad {
		if _, err := Normalize(q, types.RankingValue(ranking)); !errors.Is(err, errs.ErrInvalidArgument) {
			t.Fatalf("ranking %v: expected ErrInvalidArgument, got %v", ranking, err)
		}
	}
}
