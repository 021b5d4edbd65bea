package db

import "database/sql"

// MigrateUp creates the schema. Statements are idempotent so the
// migration can run on every startup.
func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS summaries (
    id            SERIAL PRIMARY KEY,
    tier          VARCHAR(10) NOT NULL,
    input_chars   INTEGER NOT NULL,
    summary_chars INTEGER NOT NULL,
    text          TEXT NOT NULL,
    elapsed_ms    BIGINT NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	indexes := []string{
		// ORDER BY created_at DESC drives the list endpoint
		`CREATE INDEX IF NOT EXISTS idx_summaries_created_at ON summaries(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_summaries_tier ON summaries(tier)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	// Tier values are a closed set; reject anything else at the schema
	// level. Errors are ignored when the constraint already exists.
	_, _ = db.Exec(`
DO $$
BEGIN
    IF NOT EXISTS (
        SELECT 1 FROM pg_constraint
        WHERE conname = 'chk_summary_tier'
    ) THEN
        ALTER TABLE summaries ADD CONSTRAINT chk_summary_tier
        CHECK (tier IN ('short', 'medium', 'long'));
    END IF;
END $$;
`)

	return nil
}

// MigrateDown removes the schema. This deletes all stored summaries.
func MigrateDown(db *sql.DB) error {
	dropStatements := []string{
		`DROP INDEX IF EXISTS idx_summaries_tier`,
		`DROP INDEX IF EXISTS idx_summaries_created_at`,
		`DROP TABLE IF EXISTS summaries`,
	}

	for _, stmt := range dropStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
