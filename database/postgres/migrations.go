package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
)

var migrations = []string{
	// Every scored body analysis, manual or from a photo
	`CREATE TABLE IF NOT EXISTS body_analyses (
		id VARCHAR(26) PRIMARY KEY,
		source VARCHAR(16) NOT NULL CHECK (source IN ('manual', 'photo')),
		weight_kg DOUBLE PRECISION NOT NULL,
		height_cm DOUBLE PRECISION NOT NULL,
		age INTEGER,
		gender VARCHAR(16),
		shoulder_width_cm DOUBLE PRECISION NOT NULL,
		hip_width_cm DOUBLE PRECISION NOT NULL,
		torso_length_cm DOUBLE PRECISION NOT NULL,
		scale_cm_per_px DOUBLE PRECISION,
		meso_scale DOUBLE PRECISION NOT NULL,
		endomorphy DOUBLE PRECISION NOT NULL,
		mesomorphy DOUBLE PRECISION NOT NULL,
		ectomorphy DOUBLE PRECISION NOT NULL,
		dominant VARCHAR(32) NOT NULL,
		bmr INTEGER,
		photo_url TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	// Generated diet plans, linked to the analysis they were built from
	`CREATE TABLE IF NOT EXISTS diet_plans (
		id VARCHAR(26) PRIMARY KEY,
		analysis_id VARCHAR(26) NOT NULL REFERENCES body_analyses(id) ON DELETE CASCADE,
		provider VARCHAR(64) NOT NULL,
		goal TEXT NOT NULL,
		activity_level VARCHAR(16) NOT NULL,
		country VARCHAR(64) NOT NULL,
		bmr INTEGER NOT NULL,
		target_calories INTEGER NOT NULL,
		predicted_change_kg DOUBLE PRECISION NOT NULL,
		plan JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_body_analyses_created_at ON body_analyses(created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_diet_plans_analysis_id ON diet_plans(analysis_id)`,
}

// Migrate applies the schema. Statements are idempotent.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, migration := range migrations {
		if _, err := db.ExecContext(ctx, migration); err != nil {
			return err
		}
	}
	return nil
}
