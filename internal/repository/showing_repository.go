package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cinehub/ticket-booking/internal/model"
)

// ErrShowingNotFound is returned when a showing lookup yields no rows.
var ErrShowingNotFound = errors.New("showing not found")

// ShowingRepo provides read access to immutable showing records plus
// the single create used when a showing is scheduled.
type ShowingRepo struct {
	db *sql.DB
}

// NewShowingRepo constructs a ShowingRepo with the given DB handle.
func NewShowingRepo(db *sql.DB) *ShowingRepo { return &ShowingRepo{db: db} }

// DB exposes the underlying handle so callers can open transactions
// spanning multiple repositories.
func (r *ShowingRepo) DB() *sql.DB { return r.db }

// Create inserts a showing row.
func (r *ShowingRepo) Create(ctx context.Context, s *model.Showing) error {
	const q = `INSERT INTO showings (id, movie_title, theater, version, start_time) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, s.ID, s.MovieTitle, s.Theater, s.Version, s.StartTime)
	return err
}

// GetByID retrieves a showing by its id.
func (r *ShowingRepo) GetByID(ctx context.Context, id string) (*model.Showing, error) {
	const q = `SELECT id, movie_title, theater, version, start_time, created_at FROM showings WHERE id = ?`
	var s model.Showing
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&s.ID, &s.MovieTitle, &s.Theater, &s.Version, &s.StartTime, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowingNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListUpcoming returns showings that have not started yet, soonest first.
func (r *ShowingRepo) ListUpcoming(ctx context.Context) ([]model.Showing, error) {
	const q = `SELECT id, movie_title, theater, version, start_time, created_at
	           FROM showings
	           WHERE start_time > UTC_TIMESTAMP()
	           ORDER BY start_time`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Showing
	for rows.Next() {
		var s model.Showing
		if err := rows.Scan(&s.ID, &s.MovieTitle, &s.Theater, &s.Version, &s.StartTime, &s.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
