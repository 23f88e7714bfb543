package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"tinylink/internal/core/domain"
)

const (
	maxOpenConnections = 10
	maxIdleConnections = 5
	connMaxLifetime    = 30 * time.Minute
	pingTimeout        = 5 * time.Second
)

const pgErrUniqueViolation = "23505"

type Repository struct {
	db *sql.DB
}

func NewRepository(ctx context.Context, dsn string) (*Repository, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConnections)
	db.SetMaxIdleConns(maxIdleConnections)
	db.SetConnMaxLifetime(connMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &Repository{db: db}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS links (
			code VARCHAR(8) PRIMARY KEY,
			target_url TEXT NOT NULL,
			clicks BIGINT NOT NULL DEFAULT 0,
			last_clicked TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL
		)`)
	return err
}

func (r *Repository) Create(ctx context.Context, link *domain.Link) error {
	query := `INSERT INTO links (code, target_url, clicks, created_at)
			  VALUES ($1, $2, 0, $3)`

	_, err := r.db.ExecContext(ctx, query, link.Code, link.TargetURL, link.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			return domain.ErrDuplicateCode
		}
		return err
	}
	return nil
}

func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Link, error) {
	query := `SELECT code, target_url, clicks, last_clicked, created_at
			  FROM links WHERE code = $1`

	link, err := scanLink(r.db.QueryRowContext(ctx, query, code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return link, nil
}

// IncrementClicks is a single UPDATE so N concurrent redirects against one
// code always add exactly N clicks; lastClicked is last-writer-wins.
func (r *Repository) IncrementClicks(ctx context.Context, code string, now time.Time) (*domain.Link, error) {
	query := `UPDATE links SET clicks = clicks + 1, last_clicked = $1
			  WHERE code = $2
			  RETURNING code, target_url, clicks, last_clicked, created_at`

	link, err := scanLink(r.db.QueryRowContext(ctx, query, now, code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return link, nil
}

func (r *Repository) Delete(ctx context.Context, code string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM links WHERE code = $1`, code)
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
