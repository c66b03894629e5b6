package archive

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mmukex/techpulse/internal/scorer"
)

// DB is the article history store. It remembers every article that made
// it into a report, so later runs can skip already-seen links and the
// history command can list past results.
type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create archive directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize archive schema: %w", err)
	}

	return db, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS articles (
		id INTEGER PRIMARY KEY,
		link TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		feed_name TEXT,
		category TEXT,
		interest TEXT,
		score REAL,
		published DATETIME,
		first_seen DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_articles_first_seen ON articles(first_seen);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Entry is one archived article.
type Entry struct {
	ID        int64
	Link      string
	Title     string
	FeedName  string
	Category  string
	Interest  string
	Score     float64
	Published *time.Time
	FirstSeen time.Time
}

// Record stores a run's scored articles. Links seen in an earlier run keep
// their first_seen timestamp but pick up the latest score and interest.
// It returns how many articles were new.
func (db *DB) Record(scored []scorer.ScoredArticle) (int, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO articles (link, title, feed_name, category, interest, score, published)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(link) DO UPDATE SET
			score = excluded.score,
			interest = excluded.interest
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	newCount := 0
	for _, s := range scored {
		seen, err := db.seenTx(tx, s.Article.Link)
		if err != nil {
			return newCount, err
		}

		var published any
		if s.Article.Published != nil {
			published = *s.Article.Published
		}

		if _, err := stmt.Exec(
			s.Article.Link,
			s.Article.Title,
			s.Article.FeedName,
			s.Article.Category,
			s.Interest,
			s.Score,
			published,
		); err != nil {
			return newCount, fmt.Errorf("failed to archive %q: %w", s.Article.Title, err)
		}

		if !seen {
			newCount++
		}
	}

	return newCount, tx.Commit()
}

// Seen reports whether a link was archived by an earlier run.
func (db *DB) Seen(link string) (bool, error) {
	var count int
	err := db.conn.QueryRow(`SELECT COUNT(*) FROM articles WHERE link = ?`, link).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (db *DB) seenTx(tx *sql.Tx, link string) (bool, error) {
	var count int
	err := tx.QueryRow(`SELECT COUNT(*) FROM articles WHERE link = ?`, link).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Recent returns the most recently archived articles, newest first.
func (db *DB) Recent(limit int) ([]Entry, error) {
	rows, err := db.conn.Query(`
		SELECT id, link, title, feed_name, category, interest, score, published, first_seen
		FROM articles
		ORDER BY first_seen DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var published sql.NullTime
		if err := rows.Scan(&e.ID, &e.Link, &e.Title, &e.FeedName, &e.Category, &e.Interest, &e.Score, &published, &e.FirstSeen); err != nil {
			return nil, err
		}
		if published.Valid {
			t := published.Time
			e.Published = &t
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
