package repository

import (
	"context"
	"database/sql"

	"github.com/cinehub/ticket-booking/internal/model"
)

// BookingRepo is the durable booking record store: one row per ticket,
// grouped by order ID.  Writes and deletes happen only inside the
// coordinator's or the cancellation path's transaction; the plain List
// methods serve read endpoints.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = `order_id, ticket_id, member_id, showing_id, order_state_id, meals_id, ticket_type_id, booking_time, seat_number, payment_method`

// CreateBulkTx inserts all records of one order in a single statement
// within the provided transaction.  The caller must commit or roll
// back.  Passing an empty slice has no effect and returns nil.
func (r *BookingRepo) CreateBulkTx(ctx context.Context, tx *sql.Tx, recs []model.BookingRecord) error {
	if len(recs) == 0 {
		return nil
	}
	query := `INSERT INTO booking_records (` + bookingColumns + `) VALUES `
	args := make([]interface{}, 0, len(recs)*10)
	for i, rec := range recs {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
		args = append(args,
			rec.OrderID, rec.TicketID, rec.MemberID, rec.ShowingID, rec.OrderStateID,
			rec.MealsID, rec.TicketTypeID, rec.BookingTime, rec.SeatNumber, rec.PaymentMethod)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

func scanBookingRows(rows *sql.Rows) ([]model.BookingRecord, error) {
	var recs []model.BookingRecord
	for rows.Next() {
		var rec model.BookingRecord
		var meals sql.NullString
		if err := rows.Scan(
			&rec.OrderID, &rec.TicketID, &rec.MemberID, &rec.ShowingID, &rec.OrderStateID,
			&meals, &rec.TicketTypeID, &rec.BookingTime, &rec.SeatNumber, &rec.PaymentMethod,
		); err != nil {
			return nil, err
		}
		if meals.Valid {
			v := meals.String
			rec.MealsID = &v
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}

// GetTicketForUpdateTx reads a single ticket row of an order with a
// row lock, for the single-ticket cancellation path.  Returns
// sql.ErrNoRows when the (order, ticket) pair does not exist.
func (r *BookingRepo) GetTicketForUpdateTx(ctx context.Context, tx *sql.Tx, orderID, ticketID string) (model.BookingRecord, error) {
	const q = `SELECT ` + bookingColumns + ` FROM booking_records WHERE order_id = ? AND ticket_id = ? FOR UPDATE`
	var rec model.BookingRecord
	var meals sql.NullString
	err := tx.QueryRowContext(ctx, q, orderID, ticketID).Scan(
		&rec.OrderID, &rec.TicketID, &rec.MemberID, &rec.ShowingID, &rec.OrderStateID,
		&meals, &rec.TicketTypeID, &rec.BookingTime, &rec.SeatNumber, &rec.PaymentMethod,
	)
	if err != nil {
		return rec, err
	}
	if meals.Valid {
		v := meals.String
		rec.MealsID = &v
	}
	return rec, nil
}

// ListByOrderForUpdateTx reads all ticket rows of an order with row
// locks, for the whole-order cancellation path.
func (r *BookingRepo) ListByOrderForUpdateTx(ctx context.Context, tx *sql.Tx, orderID string) ([]model.BookingRecord, error) {
	const q = `SELECT ` + bookingColumns + ` FROM booking_records WHERE order_id = ? ORDER BY seat_number FOR UPDATE`
	rows, err := tx.QueryContext(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookingRows(rows)
}

// DeleteTicketTx removes one ticket row within the transaction.
func (r *BookingRepo) DeleteTicketTx(ctx context.Context, tx *sql.Tx, orderID, ticketID string) error {
	_, err := tx.ExecContext(ctx,
		`DELETE FROM booking_records WHERE order_id = ? AND ticket_id = ?`, orderID, ticketID)
	return err
}

// DeleteOrderTx removes every ticket row of an order within the transaction.
func (r *BookingRepo) DeleteOrderTx(ctx context.Context, tx *sql.Tx, orderID string) error {
	_, err := tx.ExecContext(ctx,
		`DELETE FROM booking_records WHERE order_id = ?`, orderID)
	return err
}

// ListByMember returns all booking records of a member, newest order
// first then by seat number.
func (r *BookingRepo) ListByMember(ctx context.Context, memberID string) ([]model.BookingRecord, error) {
	const q = `SELECT ` + bookingColumns + ` FROM booking_records WHERE member_id = ? ORDER BY booking_time DESC, order_id, seat_number`
	rows, err := r.db.QueryContext(ctx, q, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookingRows(rows)
}

// ListByOrder returns all booking records sharing an order ID.
func (r *BookingRepo) ListByOrder(ctx context.Context, orderID string) ([]model.BookingRecord, error) {
	const q = `SELECT ` + bookingColumns + ` FROM booking_records WHERE order_id = ? ORDER BY seat_number`
	rows, err := r.db.QueryContext(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookingRows(rows)
}

// ListByShowing returns all booking records for a showing.
func (r *BookingRepo) ListByShowing(ctx context.Context, showingID string) ([]model.BookingRecord, error) {
	const q = `SELECT ` + bookingColumns + ` FROM booking_records WHERE showing_id = ? ORDER BY booking_time, seat_number`
	rows, err := r.db.QueryContext(ctx, q, showingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookingRows(rows)
}
