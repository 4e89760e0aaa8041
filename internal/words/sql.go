// internal/words/sql.go
//
// SQLite-backed vocabulary storage.
//
// The words table (see internal/storage/migrations/001_words.sql) keeps the
// vocabulary with an explicit position column so load order, and therefore
// suggestion tie-break order, survives the round trip.

package words

import (
	"context"
	"database/sql"
	"fmt"
)

type sqlSource struct{ db *sql.DB }

// SQL reads the vocabulary from the words table.
func SQL(db *sql.DB) Source { return sqlSource{db: db} }

func (sqlSource) Name() string { return "sqlite" }

func (s sqlSource) Words(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT word FROM words ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("query words: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// Replace swaps the contents of the words table for list, in one transaction.
// It returns the number of rows written.
func Replace(ctx context.Context, db *sql.DB, list []string) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM words`); err != nil {
		return 0, fmt.Errorf("clear words: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO words (position, word) VALUES (?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	n := 0
	for i, w := range list {
		res, err := stmt.ExecContext(ctx, i, w)
		if err != nil {
			return 0, fmt.Errorf("insert %q: %w", w, err)
		}
		if c, _ := res.RowsAffected(); c > 0 {
			n++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit words: %w", err)
	}
	return n, nil
}
