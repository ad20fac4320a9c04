package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/cinehub/ticket-booking/internal/repository"
)

func newTestCoordinator(t *testing.T) (*Coordinator, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	c := NewCoordinator(db,
		repository.NewSeatRepo(db),
		repository.NewMemberRepo(db),
		repository.NewBookingRepo(db),
		nil)
	c.now = func() time.Time { return time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC) }
	var seq int
	c.newID = func() string {
		seq++
		return fmt.Sprintf("id-%04d", seq)
	}
	return c, mock, db
}

func balanceRequest() CreateRequest {
	return CreateRequest{
		MemberID:      "A123456789",
		ShowingID:     "S00001",
		SeatNumbers:   []string{"A01", "A02"},
		TicketTypeID:  "T00001",
		UnitPrice:     320,
		PaymentMethod: "balance",
	}
}

func expectSeatLock(mock sqlmock.Sqlmock, rows *sqlmock.Rows) {
	mock.ExpectQuery("SELECT seat_number, status FROM showing_seats").
		WillReturnRows(rows)
}

func expectMemberLock(mock sqlmock.Sqlmock, balance int64) {
	mock.ExpectQuery("SELECT id, email, role, balance_units FROM members").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "role", "balance_units"}).
			AddRow("A123456789", "a@example.com", "MEMBER", balance))
}

func TestCreateBookingBalanceSuccess(t *testing.T) {
	c, mock, db := newTestCoordinator(t)
	defer db.Close()

	mock.ExpectBegin()
	expectSeatLock(mock, sqlmock.NewRows([]string{"seat_number", "status"}).
		AddRow("A01", "FREE").AddRow("A02", "FREE"))
	expectMemberLock(mock, 5000)
	mock.ExpectExec("UPDATE members SET balance_units = balance_units -").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO booking_records").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("UPDATE showing_seats SET status").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	res, err := c.CreateBooking(context.Background(), balanceRequest())
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if res.TotalAmount != 640 {
		t.Fatalf("total = %d, want 640", res.TotalAmount)
	}
	if res.NewBalance != 4360 || !res.BalanceDebit {
		t.Fatalf("balance = %d (debit %v), want 4360 debited", res.NewBalance, res.BalanceDebit)
	}
	if res.OrderID != "id-0001" {
		t.Fatalf("orderID = %q", res.OrderID)
	}
	if len(res.ReservedSeats) != 2 || res.ReservedSeats[0] != "A01" || res.ReservedSeats[1] != "A02" {
		t.Fatalf("reserved = %v", res.ReservedSeats)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingCardSuccess(t *testing.T) {
	c, mock, db := newTestCoordinator(t)
	defer db.Close()

	mock.ExpectBegin()
	expectSeatLock(mock, sqlmock.NewRows([]string{"seat_number", "status"}).
		AddRow("A01", "FREE").AddRow("A02", "FREE"))
	expectMemberLock(mock, 5000)
	// card payment: no balance UPDATE
	mock.ExpectExec("INSERT INTO booking_records").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("UPDATE showing_seats SET status").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	req := balanceRequest()
	req.PaymentMethod = "creditcard"
	req.Card = &CardDetails{Number: "4111111111111111", SecurityCode: "123", ExpirationDate: "12/27"}

	res, err := c.CreateBooking(context.Background(), req)
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if res.BalanceDebit || res.NewBalance != 5000 {
		t.Fatalf("card payment must not touch balance, got %d (debit %v)", res.NewBalance, res.BalanceDebit)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingSeatUnavailable(t *testing.T) {
	c, mock, db := newTestCoordinator(t)
	defer db.Close()

	mock.ExpectBegin()
	expectSeatLock(mock, sqlmock.NewRows([]string{"seat_number", "status"}).
		AddRow("A01", "FREE").AddRow("A02", "RESERVED"))
	mock.ExpectRollback()

	_, err := c.CreateBooking(context.Background(), balanceRequest())
	if !errors.Is(err, ErrSeatUnavailable) {
		t.Fatalf("err = %v, want ErrSeatUnavailable", err)
	}
	if !strings.Contains(err.Error(), "A02") {
		t.Fatalf("error must name the conflicting seat: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingSeatNotFound(t *testing.T) {
	c, mock, db := newTestCoordinator(t)
	defer db.Close()

	mock.ExpectBegin()
	expectSeatLock(mock, sqlmock.NewRows([]string{"seat_number", "status"}).
		AddRow("A01", "FREE"))
	mock.ExpectRollback()

	_, err := c.CreateBooking(context.Background(), balanceRequest())
	if !errors.Is(err, ErrSeatNotFound) {
		t.Fatalf("err = %v, want ErrSeatNotFound", err)
	}
	if !strings.Contains(err.Error(), "A02") {
		t.Fatalf("error must name the missing seat: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingMemberNotFound(t *testing.T) {
	c, mock, db := newTestCoordinator(t)
	defer db.Close()

	mock.ExpectBegin()
	expectSeatLock(mock, sqlmock.NewRows([]string{"seat_number", "status"}).
		AddRow("A01", "FREE").AddRow("A02", "FREE"))
	mock.ExpectQuery("SELECT id, email, role, balance_units FROM members").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := c.CreateBooking(context.Background(), balanceRequest())
	if !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("err = %v, want ErrMemberNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingInsufficientBalance(t *testing.T) {
	c, mock, db := newTestCoordinator(t)
	defer db.Close()

	mock.ExpectBegin()
	expectSeatLock(mock, sqlmock.NewRows([]string{"seat_number", "status"}).
		AddRow("A01", "FREE").AddRow("A02", "FREE"))
	expectMemberLock(mock, 100)
	mock.ExpectRollback()

	_, err := c.CreateBooking(context.Background(), balanceRequest())
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("err = %v, want ErrInsufficientBalance", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingCardDeclined(t *testing.T) {
	c, mock, db := newTestCoordinator(t)
	defer db.Close()

	mock.ExpectBegin()
	expectSeatLock(mock, sqlmock.NewRows([]string{"seat_number", "status"}).
		AddRow("A01", "FREE").AddRow("A02", "FREE"))
	expectMemberLock(mock, 5000)
	mock.ExpectRollback()

	req := balanceRequest()
	req.PaymentMethod = "creditcard"
	req.Card = &CardDetails{Number: "4111111111111112", SecurityCode: "123", ExpirationDate: "12/27"}

	_, err := c.CreateBooking(context.Background(), req)
	if !errors.Is(err, ErrPaymentDeclined) {
		t.Fatalf("err = %v, want ErrPaymentDeclined", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingReserveCountMismatch(t *testing.T) {
	c, mock, db := newTestCoordinator(t)
	defer db.Close()

	mock.ExpectBegin()
	expectSeatLock(mock, sqlmock.NewRows([]string{"seat_number", "status"}).
		AddRow("A01", "FREE").AddRow("A02", "FREE"))
	expectMemberLock(mock, 5000)
	mock.ExpectExec("UPDATE members SET balance_units = balance_units -").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO booking_records").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("UPDATE showing_seats SET status").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	_, err := c.CreateBooking(context.Background(), balanceRequest())
	if !errors.Is(err, ErrSeatUnavailable) {
		t.Fatalf("err = %v, want ErrSeatUnavailable", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingInvalidRequest(t *testing.T) {
	c, mock, db := newTestCoordinator(t)
	defer db.Close()

	cases := map[string]func(*CreateRequest){
		"missing member":   func(r *CreateRequest) { r.MemberID = "" },
		"missing showing":  func(r *CreateRequest) { r.ShowingID = "" },
		"no seats":         func(r *CreateRequest) { r.SeatNumbers = nil },
		"duplicate seat":   func(r *CreateRequest) { r.SeatNumbers = []string{"A01", "A01"} },
		"zero price":       func(r *CreateRequest) { r.UnitPrice = 0 },
		"negative price":   func(r *CreateRequest) { r.UnitPrice = -320 },
		"unknown method":   func(r *CreateRequest) { r.PaymentMethod = "bitcoin" },
		"card sans fields": func(r *CreateRequest) { r.PaymentMethod = "creditcard" },
	}
	for name, mutate := range cases {
		req := balanceRequest()
		mutate(&req)
		if _, err := c.CreateBooking(context.Background(), req); !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("%s: err = %v, want ErrInvalidRequest", name, err)
		}
	}
	// validation fails before any transaction is opened
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("db touched during validation: %v", err)
	}
}
