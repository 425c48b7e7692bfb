package services

import (
	"testing"

	"github.com/yungbote/strengthscope-backend/internal/content"
)

func TestLevelFor(t *testing.T) {
	ps := &progressionService{levels: []content.LevelRule{
		{Level: 1, MinXP: 0},
		{Level: 2, MinXP: 100},
		{Level: 3, MinXP: 300},
		{Level: 4, MinXP: 700},
		{Level: 5, MinXP: 1200},
		{Level: 6, MinXP: 2000},
	}}

	cases := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{299, 2},
		{300, 3},
		{1999, 5},
		{2000, 6},
		{50000, 6},
	}
	for _, tc := range cases {
		if got := ps.levelFor(tc.xp); got != tc.want {
			t.Errorf("levelFor(%d) = %d, want %d", tc.xp, got, tc.want)
		}
	}
}

func TestLevelForNoRules(t *testing.T) {
	ps := &progressionService{}
	if got := ps.levelFor(500); got != 1 {
		t.Errorf("levelFor without rules = %d, want 1", got)
	}
}
