package content

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	types "github.com/yungbote/strengthscope-backend/internal/domain"
)

// Reference rows materialized from a bundle. IDs are derived from the authored
// keys so reseeding is idempotent across restarts and environments.
type Reference struct {
	Domains   []*types.StrengthDomain
	Strengths []*types.Strength
	Questions []*types.Question
}

var contentNamespace = uuid.MustParse("8f1f2a0e-5a95-4f7b-a6c6-4f0e2f6f9b21")

func DomainID(key string) uuid.UUID {
	return uuid.NewSHA1(contentNamespace, []byte("domain:"+key))
}

func StrengthID(key string) uuid.UUID {
	return uuid.NewSHA1(contentNamespace, []byte("strength:"+key))
}

func QuestionID(phase, order int, text string) uuid.UUID {
	return uuid.NewSHA1(contentNamespace, []byte(fmt.Sprintf("question:%d:%d:%s", phase, order, text)))
}

// Materialize resolves the authored keys into persistable reference rows.
func (b *Bundle) Materialize() (*Reference, error) {
	ref := &Reference{}

	domainIDs := make(map[string]uuid.UUID, len(b.Domains))
	for _, d := range b.Domains {
		id := DomainID(d.Key)
		domainIDs[d.Key] = id
		ref.Domains = append(ref.Domains, &types.StrengthDomain{ID: id, Key: d.Key, Name: d.Name})
	}

	strengthIDs := make(map[string]uuid.UUID, len(b.Strengths))
	strengthDomain := make(map[string]uuid.UUID, len(b.Strengths))
	for _, s := range b.Strengths {
		id := StrengthID(s.Key)
		strengthIDs[s.Key] = id
		strengthDomain[s.Key] = domainIDs[s.Domain]
		ref.Strengths = append(ref.Strengths, &types.Strength{
			ID:       id,
			Key:      s.Key,
			Name:     s.Name,
			DomainID: domainIDs[s.Domain],
		})
	}

	for i, q := range b.Questions {
		row := &types.Question{
			ID:     QuestionID(q.Phase, q.Order, q.Text),
			Phase:  q.Phase,
			Order:  q.Order,
			Text:   q.Text,
			Type:   types.QuestionType(q.Type),
			Weight: q.Weight,
		}
		switch q.Phase {
		case 1:
			row.DomainID = domainIDs[q.Domain]
		default:
			sid := strengthIDs[q.Strength]
			row.StrengthID = &sid
			row.DomainID = strengthDomain[q.Strength]
		}
		if q.Scale != nil {
			row.ScaleMin = q.Scale.Min
			row.ScaleMax = q.Scale.Max
		}
		if len(q.Options) > 0 {
			raw, err := json.Marshal(q.Options)
			if err != nil {
				return nil, fmt.Errorf("question %d options: %w", i, err)
			}
			row.Options = datatypes.JSON(raw)
		}
		if len(q.OptionTargets) > 0 {
			resolved := make(map[string]string, len(q.OptionTargets))
			for opt, target := range q.OptionTargets {
				resolved[opt] = strengthIDs[target].String()
			}
			raw, err := json.Marshal(resolved)
			if err != nil {
				return nil, fmt.Errorf("question %d option targets: %w", i, err)
			}
			row.OptionTargets = datatypes.JSON(raw)
		}
		ref.Questions = append(ref.Questions, row)
	}
	return ref, nil
}
