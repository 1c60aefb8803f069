// Package search keeps an in-memory SQLite FTS5 index over blog posts.
package search

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	_ "modernc.org/sqlite"

	"github.com/uditisharmaaa/portfolio/internal/content"
)

// Index is safe for concurrent use. All access goes through one connection,
// which is also what keeps the in-memory database alive.
type Index struct {
	db *sql.DB
}

func Open() (*Index, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening index db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	_, err = db.Exec(`
		CREATE VIRTUAL TABLE posts USING fts5(
			id UNINDEXED,
			title,
			description,
			body
		)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating fts table: %w", err)
	}
	return &Index{db: db}, nil
}

func (i *Index) Close() error { return i.db.Close() }

// Rebuild replaces the indexed posts in a single transaction.
func (i *Index) Rebuild(ctx context.Context, posts []content.BlogPost) error {
	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM posts`); err != nil {
		return fmt.Errorf("clearing index: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO posts (id, title, description, body) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range posts {
		body, err := plainText(string(p.Content))
		if err != nil {
			return fmt.Errorf("extracting text of %q: %w", p.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, p.ID, p.Title, p.ShortDescription, body); err != nil {
			return fmt.Errorf("indexing %q: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

// Search returns matching post ids ordered by relevance. ok is false when
// the query has no usable terms, meaning no constraint applies.
func (i *Index) Search(ctx context.Context, query string) (ids []string, ok bool, err error) {
	match := matchExpr(query)
	if match == "" {
		return nil, false, nil
	}
	rows, err := i.db.QueryContext(ctx, `SELECT id FROM posts WHERE posts MATCH ? ORDER BY rank`, match)
	if err != nil {
		return nil, true, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, true, fmt.Errorf("scanning result: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, true, rows.Err()
}

// matchExpr turns free text into an FTS5 expression of quoted prefix terms,
// so user input can never produce FTS syntax.
func matchExpr(query string) string {
	terms := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for n, t := range terms {
		terms[n] = `"` + t + `"*`
	}
	return strings.Join(terms, " ")
}

func plainText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	return strings.Join(strings.Fields(doc.Text()), " "), nil
}
