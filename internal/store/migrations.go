package store

import (
	"fmt"
)

type migration struct {
	Version     int
	Description string
	SQL         string
}

var migrations = []migration{
	{
		Version:     1,
		Description: "profile: singleton pet state",
		SQL: `
CREATE TABLE profile (
    id             INTEGER PRIMARY KEY CHECK (id = 1),
    name           TEXT NOT NULL,
    coins          INTEGER NOT NULL CHECK (coins >= 0),
    level          INTEGER NOT NULL CHECK (level >= 1),
    xp             INTEGER NOT NULL CHECK (xp >= 0),

    -- Stats, all in [0, 100]
    hunger         REAL NOT NULL CHECK (hunger BETWEEN 0 AND 100),
    energy         REAL NOT NULL CHECK (energy BETWEEN 0 AND 100),
    hygiene        REAL NOT NULL CHECK (hygiene BETWEEN 0 AND 100),
    fun            REAL NOT NULL CHECK (fun BETWEEN 0 AND 100),
    mood           REAL NOT NULL CHECK (mood BETWEEN 0 AND 100),

    -- RFC3339 with nanoseconds, UTC
    last_updated   TEXT NOT NULL,

    -- Inventory blobs
    owned_items    TEXT NOT NULL DEFAULT '[]',
    equipped_items TEXT NOT NULL DEFAULT '{}'
);
`,
	},
}

func (db *DB) migrate() error {
	// Create schema_versions table if it doesn't exist
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_versions (
			version     INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at  INTEGER NOT NULL DEFAULT (strftime('%s', 'now') * 1000)
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema_versions: %w", err)
	}

	for _, m := range migrations {
		var count int
		if err := db.Get(&count, "SELECT COUNT(*) FROM schema_versions WHERE version = ?", m.Version); err != nil {
			return fmt.Errorf("check migration %d: %w", m.Version, err)
		}
		if count > 0 {
			continue
		}

		tx, err := db.Beginx()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_versions (version, description) VALUES (?, ?)",
			m.Version, m.Description,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}

// SchemaVersion returns the current schema version.
func (db *DB) SchemaVersion() (int, error) {
	var version int
	err := db.Get(&version, "SELECT COALESCE(MAX(version), 0) FROM schema_versions")
	return version, err
}
