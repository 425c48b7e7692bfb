package assessment

import (
	"sort"

	"github.com/google/uuid"

	types "github.com/yungbote/strengthscope-backend/internal/domain"
)

// TopDomains orders domains by score descending, breaking ties by answered
// question count descending and then domain id ascending, so the order is
// total and stable across calls. Returns at most k ids.
func TopDomains(domainScores map[uuid.UUID]TargetScore, k int) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(domainScores))
	for id := range domainScores {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := domainScores[ids[i]], domainScores[ids[j]]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.QuestionCount != b.QuestionCount {
			return a.QuestionCount > b.QuestionCount
		}
		return ids[i].String() < ids[j].String()
	})
	if k < len(ids) {
		ids = ids[:k]
	}
	return ids
}

// SelectPhase2Questions narrows the phase-2 bank to questions whose strength
// belongs to one of the user's top domains, ordered by authored order. This is
// the adaptive branch: different users see different phase-2 sets.
func SelectPhase2Questions(domainScores map[uuid.UUID]TargetScore, allQuestions []*types.Question, strengths []*types.Strength, topK int) []*types.Question {
	top := TopDomains(domainScores, topK)
	topSet := make(map[uuid.UUID]bool, len(top))
	for _, id := range top {
		topSet[id] = true
	}

	strengthDomain := make(map[uuid.UUID]uuid.UUID, len(strengths))
	for _, s := range strengths {
		strengthDomain[s.ID] = s.DomainID
	}

	var selected []*types.Question
	for _, q := range allQuestions {
		if q.Phase != 2 || q.StrengthID == nil {
			continue
		}
		if topSet[strengthDomain[*q.StrengthID]] {
			selected = append(selected, q)
		}
	}
	sort.Slice(selected, func(i, j int) bool { return selected[i].Order < selected[j].Order })
	return selected
}

// SelectPhase3Candidates shortlists the strongest strengths for the final
// ranking phase. Ties break by strength name ascending.
func SelectPhase3Candidates(strengthScores map[uuid.UUID]TargetScore, strengths []*types.Strength, shortlist int) []uuid.UUID {
	names := make(map[uuid.UUID]string, len(strengths))
	for _, s := range strengths {
		names[s.ID] = s.Name
	}

	ids := make([]uuid.UUID, 0, len(strengthScores))
	for id := range strengthScores {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := strengthScores[ids[i]], strengthScores[ids[j]]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return names[ids[i]] < names[ids[j]]
	})
	if shortlist < len(ids) {
		ids = ids[:shortlist]
	}
	return ids
}

// SelectPhase3Questions filters the phase-3 bank to the shortlisted strengths,
// ordered by authored order.
func SelectPhase3Questions(candidates []uuid.UUID, allQuestions []*types.Question) []*types.Question {
	set := make(map[uuid.UUID]bool, len(candidates))
	for _, id := range candidates {
		set[id] = true
	}
	var selected []*types.Question
	for _, q := range allQuestions {
		if q.Phase != 3 || q.StrengthID == nil {
			continue
		}
		if set[*q.StrengthID] {
			selected = append(selected, q)
		}
	}
	sort.Slice(selected, func(i, j int) bool { return selected[i].Order < selected[j].Order })
	return selected
}
