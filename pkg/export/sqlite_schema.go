package export

import (
	"database/sql"
	"fmt"
)

// Schema version for tracking migrations
const SchemaVersion = 1

// CreateSchema creates all tables and indexes in the database.
func CreateSchema(db *sql.DB) error {
	if err := createCoreTables(db); err != nil {
		return fmt.Errorf("create core tables: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("create indexes: %w", err)
	}

	if err := createMetaTable(db); err != nil {
		return fmt.Errorf("create meta table: %w", err)
	}

	return nil
}

// createCoreTables creates the entries, entry_tags and code_blocks tables.
func createCoreTables(db *sql.DB) error {
	// body holds the JSON block tree so a card can be rebuilt from one row.
	entriesSQL := `
		CREATE TABLE IF NOT EXISTS entries (
			id TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			category TEXT,
			content TEXT,
			body TEXT NOT NULL
		)
	`
	if _, err := db.Exec(entriesSQL); err != nil {
		return fmt.Errorf("create entries table: %w", err)
	}

	// Tags keep their declared order; duplicates are allowed.
	tagsSQL := `
		CREATE TABLE IF NOT EXISTS entry_tags (
			entry_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			tag TEXT NOT NULL,
			PRIMARY KEY (entry_id, position),
			FOREIGN KEY (entry_id) REFERENCES entries(id)
		)
	`
	if _, err := db.Exec(tagsSQL); err != nil {
		return fmt.Errorf("create entry_tags table: %w", err)
	}

	codeSQL := `
		CREATE TABLE IF NOT EXISTS code_blocks (
			entry_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			language TEXT,
			title TEXT,
			source TEXT NOT NULL,
			line_count INTEGER NOT NULL,
			max_height INTEGER NOT NULL DEFAULT 0,
			overflows INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (entry_id, position),
			FOREIGN KEY (entry_id) REFERENCES entries(id)
		)
	`
	if _, err := db.Exec(codeSQL); err != nil {
		return fmt.Errorf("create code_blocks table: %w", err)
	}

	return nil
}

// createIndexes creates indexes for common queries.
func createIndexes(db *sql.DB) error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_entries_category ON entries(category)`,
		`CREATE INDEX IF NOT EXISTS idx_tags_tag ON entry_tags(tag)`,
		`CREATE INDEX IF NOT EXISTS idx_code_language ON code_blocks(language)`,
	}

	for _, sql := range indexes {
		if _, err := db.Exec(sql); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	return nil
}

// createMetaTable creates the export metadata table.
func createMetaTable(db *sql.DB) error {
	metaSQL := `
		CREATE TABLE IF NOT EXISTS export_meta (
			key TEXT PRIMARY KEY,
			value TEXT
		)
	`
	if _, err := db.Exec(metaSQL); err != nil {
		return fmt.Errorf("create export_meta table: %w", err)
	}

	return nil
}
