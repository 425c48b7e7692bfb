package assessment

import (
	"time"

	"github.com/google/uuid"
)

// StrengthDomain is one of the four top-level behavioral categories.
// Reference data, seeded from the content bundle and never mutated at runtime.
type StrengthDomain struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Key  string    `gorm:"uniqueIndex;not null;column:key" json:"key"`
	Name string    `gorm:"not null;column:name" json:"name"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (StrengthDomain) TableName() string { return "strength_domain" }

// Strength is one of the ~20 specific traits; each belongs to exactly one domain.
type Strength struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Key      string    `gorm:"uniqueIndex;not null;column:key" json:"key"`
	Name     string    `gorm:"not null;column:name" json:"name"`
	DomainID uuid.UUID `gorm:"type:uuid;not null;index;column:domain_id" json:"domain_id"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Strength) TableName() string { return "strength" }
