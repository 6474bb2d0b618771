package export

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/kcards/pkg/model"
	"github.com/vanderheijden86/kcards/pkg/version"

	_ "modernc.org/sqlite"
)

// ExportSQLite writes cards to a fresh SQLite database at dbPath. An existing
// file is replaced.
func ExportSQLite(dbPath string, cards []*model.QuestionCard) error {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove existing database: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := CreateSchema(db); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if err := insertCards(db, cards); err != nil {
		return fmt.Errorf("insert entries: %w", err)
	}
	if err := writeMeta(db, len(cards)); err != nil {
		return fmt.Errorf("write meta: %w", err)
	}
	return db.Close()
}

func insertCards(db *sql.DB, cards []*model.QuestionCard) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	entryStmt, err := tx.Prepare(`
		INSERT INTO entries (id, position, title, category, content, body)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer entryStmt.Close()

	tagStmt, err := tx.Prepare(`INSERT INTO entry_tags (entry_id, position, tag) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer tagStmt.Close()

	codeStmt, err := tx.Prepare(`
		INSERT INTO code_blocks (entry_id, position, language, title, source, line_count, max_height, overflows)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer codeStmt.Close()

	for i, c := range cards {
		q := c.Question()
		body, err := json.Marshal(model.CardDocOf(c).Body)
		if err != nil {
			return fmt.Errorf("encode %s: %w", q.ID, err)
		}
		if _, err := entryStmt.Exec(q.ID, i, q.Title, q.Category, q.Content, string(body)); err != nil {
			return fmt.Errorf("insert entry %s: %w", q.ID, err)
		}
		for j, tag := range q.Tags {
			if _, err := tagStmt.Exec(q.ID, j, tag); err != nil {
				return fmt.Errorf("insert tag %s/%d: %w", q.ID, j, err)
			}
		}
		for j, code := range c.CodeBlocks() {
			overflows := 0
			if code.Overflows() {
				overflows = 1
			}
			if _, err := codeStmt.Exec(q.ID, j, code.Language, code.Title, code.Source, code.Height(), code.MaxHeight, overflows); err != nil {
				return fmt.Errorf("insert code block %s/%d: %w", q.ID, j, err)
			}
		}
	}

	return tx.Commit()
}

func writeMeta(db *sql.DB, count int) error {
	meta := map[string]string{
		"schema_version": strconv.Itoa(SchemaVersion),
		"exported_at":    time.Now().UTC().Format(time.RFC3339),
		"entry_count":    strconv.Itoa(count),
		"kc_version":     version.Version,
	}
	for k, v := range meta {
		if _, err := db.Exec(`INSERT OR REPLACE INTO export_meta (key, value) VALUES (?, ?)`, k, v); err != nil {
			return err
		}
	}
	return nil
}

// LoadSQLite reads cards back from a database written by ExportSQLite, in
// export order.
func LoadSQLite(dbPath string) ([]*model.QuestionCard, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT id, title, category, content, body FROM entries ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []model.CardDoc
	for rows.Next() {
		var doc model.CardDoc
		var body string
		var category, content sql.NullString
		if err := rows.Scan(&doc.Question.ID, &doc.Question.Title, &category, &content, &body); err != nil {
			return nil, err
		}
		doc.Question.Category = category.String
		doc.Question.Content = content.String
		if err := json.Unmarshal([]byte(body), &doc.Body); err != nil {
			return nil, fmt.Errorf("decode %s: %w", doc.Question.ID, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]*model.QuestionCard, 0, len(docs))
	for _, doc := range docs {
		tags, err := loadTags(db, doc.Question.ID)
		if err != nil {
			return nil, err
		}
		doc.Question.Tags = tags
		card, err := doc.Card()
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", doc.Question.ID, err)
		}
		out = append(out, card)
	}
	return out, nil
}

func loadTags(db *sql.DB, id string) ([]string, error) {
	rows, err := db.Query(`SELECT tag FROM entry_tags WHERE entry_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}
