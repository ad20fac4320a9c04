package repository // repository defines data access for the seat ledger

import (
	"context"
	"database/sql"
	"strings"

	"github.com/cinehub/ticket-booking/internal/model"
)

// SeatRepo is the showing seat ledger: one row per (showing, seat),
// tracking FREE/RESERVED state.  Availability reads that precede a
// reservation must go through GetForUpdateTx so the rows stay locked
// until the surrounding transaction commits or rolls back; plain reads
// use ListByShowing and have no side effects.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

// placeholders returns "?,?,...,?" with n markers.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(",?", n)[1:]
}

// CreateBulk inserts ledger rows for a showing in a single statement.
// All rows start FREE.  Used when a showing is scheduled and its seat
// grid is seeded.
func (r *SeatRepo) CreateBulk(ctx context.Context, seats []model.ShowingSeat) error {
	if len(seats) == 0 {
		return nil
	}
	query := `INSERT INTO showing_seats (showing_id, seat_number, status) VALUES `
	args := make([]interface{}, 0, len(seats)*3)
	for i, s := range seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?)"
		args = append(args, s.ShowingID, s.SeatNumber, model.SeatFree)
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// ListByShowing retrieves the full seat map of a showing ordered by
// seat number.  Repeated calls between transactions return stable
// state; the read takes no locks.
func (r *SeatRepo) ListByShowing(ctx context.Context, showingID string) ([]model.ShowingSeat, error) {
	const q = `SELECT showing_id, seat_number, status, created_at, updated_at
	           FROM showing_seats
	           WHERE showing_id = ?
	           ORDER BY seat_number`
	rows, err := r.db.QueryContext(ctx, q, showingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.ShowingSeat
	for rows.Next() {
		var s model.ShowingSeat
		if err := rows.Scan(&s.ShowingID, &s.SeatNumber, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetForUpdateTx reads the requested seat rows with row-level locks
// (SELECT ... FOR UPDATE) inside the provided transaction.  Once this
// returns, no concurrent transaction can observe or change the same
// rows until the caller commits or rolls back.  Rows are returned in
// seat-number order; callers detect unknown seat numbers by comparing
// the result length to the request length.
func (r *SeatRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, showingID string, seatNumbers []string) ([]model.ShowingSeat, error) {
	if len(seatNumbers) == 0 {
		return []model.ShowingSeat{}, nil
	}
	query := `SELECT seat_number, status FROM showing_seats WHERE showing_id = ? AND seat_number IN (` +
		placeholders(len(seatNumbers)) + `) ORDER BY seat_number FOR UPDATE`
	args := make([]interface{}, 0, len(seatNumbers)+1)
	args = append(args, showingID)
	for _, sn := range seatNumbers {
		args = append(args, sn)
	}
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.ShowingSeat
	for rows.Next() {
		s := model.ShowingSeat{ShowingID: showingID}
		if err := rows.Scan(&s.SeatNumber, &s.Status); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ReserveTx transitions the given seats FREE -> RESERVED in one batch
// and returns the number of rows changed.  The status guard in the
// WHERE clause means a row that was not FREE at update time is simply
// not counted; callers must treat a count mismatch as a conflict and
// roll back.  Must be called only after GetForUpdateTx in the same
// transaction.
func (r *SeatRepo) ReserveTx(ctx context.Context, tx *sql.Tx, showingID string, seatNumbers []string) (int64, error) {
	if len(seatNumbers) == 0 {
		return 0, nil
	}
	query := `UPDATE showing_seats SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE showing_id = ? AND seat_number IN (` +
		placeholders(len(seatNumbers)) + `) AND status = ?`
	args := make([]interface{}, 0, len(seatNumbers)+3)
	args = append(args, model.SeatReserved, showingID)
	for _, sn := range seatNumbers {
		args = append(args, sn)
	}
	args = append(args, model.SeatFree)
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ReleaseTx transitions the given seats back to FREE inside the
// provided transaction.  Used by the cancellation path.
func (r *SeatRepo) ReleaseTx(ctx context.Context, tx *sql.Tx, showingID string, seatNumbers []string) error {
	if len(seatNumbers) == 0 {
		return nil
	}
	query := `UPDATE showing_seats SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE showing_id = ? AND seat_number IN (` +
		placeholders(len(seatNumbers)) + `)`
	args := make([]interface{}, 0, len(seatNumbers)+2)
	args = append(args, model.SeatFree, showingID)
	for _, sn := range seatNumbers {
		args = append(args, sn)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}
