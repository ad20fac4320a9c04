package booking

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var bookingCols = []string{
	"order_id", "ticket_id", "member_id", "showing_id", "order_state_id",
	"meals_id", "ticket_type_id", "booking_time", "seat_number", "payment_method",
}

func bookingRow(rows *sqlmock.Rows, orderID, ticketID, memberID, seat string) *sqlmock.Rows {
	return rows.AddRow(orderID, ticketID, memberID, "S00001", "ESTABLISHED",
		nil, "T00001", time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC), seat, "balance")
}

func TestCancelTicket(t *testing.T) {
	c, mock, db := newTestCoordinator(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM booking_records WHERE order_id").
		WillReturnRows(bookingRow(sqlmock.NewRows(bookingCols), "O1", "TK1", "A123456789", "A01"))
	mock.ExpectExec("DELETE FROM booking_records").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE showing_seats SET status").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := c.CancelTicket(context.Background(), "O1", "TK1", "A123456789")
	if err != nil {
		t.Fatalf("cancel error: %v", err)
	}
	if len(res.ReleasedSeats) != 1 || res.ReleasedSeats[0] != "A01" {
		t.Fatalf("released = %v, want [A01]", res.ReleasedSeats)
	}
	if res.ShowingID != "S00001" {
		t.Fatalf("showing = %q", res.ShowingID)
	}
	// no member statement expected: cancellation never credits balance
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelTicketNotFound(t *testing.T) {
	c, mock, db := newTestCoordinator(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM booking_records WHERE order_id").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := c.CancelTicket(context.Background(), "O1", "TK9", "A123456789")
	if !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("err = %v, want ErrBookingNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelTicketForbidden(t *testing.T) {
	c, mock, db := newTestCoordinator(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM booking_records WHERE order_id").
		WillReturnRows(bookingRow(sqlmock.NewRows(bookingCols), "O1", "TK1", "someone-else", "A01"))
	mock.ExpectRollback()

	_, err := c.CancelTicket(context.Background(), "O1", "TK1", "A123456789")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelOrder(t *testing.T) {
	c, mock, db := newTestCoordinator(t)
	defer db.Close()

	rows := sqlmock.NewRows(bookingCols)
	bookingRow(rows, "O1", "TK1", "A123456789", "A01")
	bookingRow(rows, "O1", "TK2", "A123456789", "A02")

	mock.ExpectBegin()
	mock.ExpectQuery("FROM booking_records WHERE order_id").
		WillReturnRows(rows)
	mock.ExpectExec("DELETE FROM booking_records").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("UPDATE showing_seats SET status").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	res, err := c.CancelOrder(context.Background(), "O1", "A123456789")
	if err != nil {
		t.Fatalf("cancel error: %v", err)
	}
	if len(res.ReleasedSeats) != 2 || len(res.TicketIDs) != 2 {
		t.Fatalf("released = %v tickets = %v", res.ReleasedSeats, res.TicketIDs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelOrderNotFound(t *testing.T) {
	c, mock, db := newTestCoordinator(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM booking_records WHERE order_id").
		WillReturnRows(sqlmock.NewRows(bookingCols))
	mock.ExpectRollback()

	_, err := c.CancelOrder(context.Background(), "O404", "A123456789")
	if !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("err = %v, want ErrBookingNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelOrderForbidden(t *testing.T) {
	c, mock, db := newTestCoordinator(t)
	defer db.Close()

	rows := sqlmock.NewRows(bookingCols)
	bookingRow(rows, "O1", "TK1", "A123456789", "A01")
	bookingRow(rows, "O1", "TK2", "someone-else", "A02")

	mock.ExpectBegin()
	mock.ExpectQuery("FROM booking_records WHERE order_id").
		WillReturnRows(rows)
	mock.ExpectRollback()

	_, err := c.CancelOrder(context.Background(), "O1", "A123456789")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
