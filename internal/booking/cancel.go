package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cinehub/ticket-booking/internal/model"
)

// CancelResult describes what a cancellation released, for the caller's
// response and the booking.cancelled event.
type CancelResult struct {
	OrderID       string
	ShowingID     string
	ReleasedSeats []string
	TicketIDs     []string
}

// CancelTicket cancels one ticket of an order: the record is removed
// and its seat returns to FREE.  Only the member who owns the booking
// may cancel it.  No balance is refunded.
func (c *Coordinator) CancelTicket(ctx context.Context, orderID, ticketID, memberID string) (*CancelResult, error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	rec, err := c.records.GetTicketForUpdateTx(ctx, tx, orderID, ticketID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: order %s ticket %s", ErrBookingNotFound, orderID, ticketID)
		}
		return nil, err
	}
	if rec.MemberID != memberID {
		return nil, fmt.Errorf("%w: booking belongs to another member", ErrForbidden)
	}

	if err := c.records.DeleteTicketTx(ctx, tx, orderID, ticketID); err != nil {
		return nil, err
	}
	if err := c.seats.ReleaseTx(ctx, tx, rec.ShowingID, []string{rec.SeatNumber}); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	return &CancelResult{
		OrderID:       orderID,
		ShowingID:     rec.ShowingID,
		ReleasedSeats: []string{rec.SeatNumber},
		TicketIDs:     []string{ticketID},
	}, nil
}

// CancelOrder cancels every ticket of an order in one transaction.
// All records of the order are removed and all of its seats return to
// FREE, or none do.  No balance is refunded.
func (c *Coordinator) CancelOrder(ctx context.Context, orderID, memberID string) (*CancelResult, error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	recs, err := c.records.ListByOrderForUpdateTx(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("%w: order %s", ErrBookingNotFound, orderID)
	}
	for _, rec := range recs {
		if rec.MemberID != memberID {
			return nil, fmt.Errorf("%w: booking belongs to another member", ErrForbidden)
		}
	}

	seats := seatNumbersOf(recs)
	if err := c.records.DeleteOrderTx(ctx, tx, orderID); err != nil {
		return nil, err
	}
	if err := c.seats.ReleaseTx(ctx, tx, recs[0].ShowingID, seats); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	tickets := make([]string, 0, len(recs))
	for _, rec := range recs {
		tickets = append(tickets, rec.TicketID)
	}
	return &CancelResult{
		OrderID:       orderID,
		ShowingID:     recs[0].ShowingID,
		ReleasedSeats: seats,
		TicketIDs:     tickets,
	}, nil
}

func seatNumbersOf(recs []model.BookingRecord) []string {
	seats := make([]string, 0, len(recs))
	for _, rec := range recs {
		seats = append(seats, rec.SeatNumber)
	}
	return seats
}
