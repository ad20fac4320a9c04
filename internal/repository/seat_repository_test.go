package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/cinehub/ticket-booking/internal/model"
)

func TestPlaceholders(t *testing.T) {
	cases := map[int]string{0: "", 1: "?", 3: "?,?,?"}
	for n, want := range cases {
		if got := placeholders(n); got != want {
			t.Fatalf("placeholders(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestReserveTxStatusGuard(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := NewSeatRepo(db)

	mock.ExpectBegin()
	// one of the two seats lost its FREE status before the update
	mock.ExpectExec("UPDATE showing_seats SET status").
		WithArgs(model.SeatReserved, "S00001", "A01", "A02", model.SeatFree).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	n, err := repo.ReserveTx(context.Background(), tx, "S00001", []string{"A01", "A02"})
	if err != nil {
		t.Fatalf("reserve error: %v", err)
	}
	if n != 1 {
		t.Fatalf("rows = %d, want 1", n)
	}
	_ = tx.Rollback()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetForUpdateTxOrdersBySeat(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := NewSeatRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT seat_number, status FROM showing_seats").
		WithArgs("S00001", "A02", "A01").
		WillReturnRows(sqlmock.NewRows([]string{"seat_number", "status"}).
			AddRow("A01", model.SeatFree).AddRow("A02", model.SeatReserved))
	mock.ExpectRollback()

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	seats, err := repo.GetForUpdateTx(context.Background(), tx, "S00001", []string{"A02", "A01"})
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if len(seats) != 2 || seats[0].SeatNumber != "A01" || seats[1].Status != model.SeatReserved {
		t.Fatalf("seats = %+v", seats)
	}
	_ = tx.Rollback()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
