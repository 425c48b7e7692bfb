package content

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/strengthscope-backend/internal/pkg/logger"
)

// Seed upserts the materialized reference rows. Safe to run at every boot;
// re-authored text or weights overwrite in place because ids are key-derived.
func Seed(ctx context.Context, db *gorm.DB, log *logger.Logger, ref *Reference) error {
	seedLog := log.With("component", "ContentSeeder")

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(ref.Domains) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				UpdateAll: true,
			}).Create(&ref.Domains).Error; err != nil {
				return fmt.Errorf("seed domains: %w", err)
			}
		}
		if len(ref.Strengths) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				UpdateAll: true,
			}).Create(&ref.Strengths).Error; err != nil {
				return fmt.Errorf("seed strengths: %w", err)
			}
		}
		if len(ref.Questions) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				UpdateAll: true,
			}).Create(&ref.Questions).Error; err != nil {
				return fmt.Errorf("seed questions: %w", err)
			}
		}
		seedLog.Info("Seeded content bundle",
			"domains", len(ref.Domains),
			"strengths", len(ref.Strengths),
			"questions", len(ref.Questions),
		)
		return nil
	})
}
