package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	_ "github.com/tursodatabase/libsql-client-go/libsql" // Turso driver
	_ "modernc.org/sqlite"                               // Local SQLite driver

	"tinylink/internal/core/domain"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(dbURL string) (*Repository, error) {
	driverName := "sqlite"
	if strings.Contains(dbURL, "libsql://") || strings.Contains(dbURL, "wss://") {
		driverName = "libsql"
	}

	db, err := sql.Open(driverName, dbURL)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	return &Repository{db: db}, nil
}

func migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS links (
		code TEXT PRIMARY KEY,
		target_url TEXT NOT NULL,
		clicks INTEGER NOT NULL DEFAULT 0,
		last_clicked DATETIME,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_links_created_at ON links(created_at);
	`
	_, err := db.Exec(query)
	return err
}

func (r *Repository) Create(ctx context.Context, link *domain.Link) error {
	query := `INSERT INTO links (code, target_url, clicks, created_at)
			  VALUES (?, ?, 0, ?)`

	_, err := r.db.ExecContext(ctx, query, link.Code, link.TargetURL, link.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return err
	}
	return nil
}

func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Link, error) {
	query := `SELECT code, target_url, clicks, last_clicked, created_at
			  FROM links WHERE code = ?`

	link, err := scanLink(r.db.QueryRowContext(ctx, query, code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return link, nil
}

// IncrementClicks relies on a single UPDATE statement for atomicity; SQLite
// serializes writers, so concurrent redirects each add exactly one click.
func (r *Repository) IncrementClicks(ctx context.Context, code string, now time.Time) (*domain.Link, error) {
	query := `UPDATE links SET clicks = clicks + 1, last_clicked = ? WHERE code = ?`

	res, err := r.db.ExecContext(ctx, query, now, code)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, nil
	}
	return r.GetByCode(ctx, code)
}

func (r *Repository) Delete(ctx context.Context, code string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM links WHERE code = ?`, code)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *Repository) List(ctx context.Context) ([]domain.Link, error) {
	query := `SELECT code, target_url, clicks, last_clicked, created_at
			  FROM links ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := []domain.Link{}
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		links = append(links, *link)
	}
	return links, rows.Err()
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLink(row rowScanner) (*domain.Link, error) {
	var link domain.Link
	var lastClicked sql.NullTime

	err := row.Scan(&link.Code, &link.TargetURL, &link.Clicks, &lastClicked, &link.CreatedAt)
	if err != nil {
		return nil, err
	}
	if lastClicked.Valid {
		link.LastClicked = &lastClicked.Time
	}
	return &link, nil
}

func isUniqueViolation(err error) bool {
	// modernc and libsql report constraint failures as text only.
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "SQLITE_CONSTRAINT")
}
