package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestTopUp(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := NewMemberRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT balance_units FROM members").
		WillReturnRows(sqlmock.NewRows([]string{"balance_units"}).AddRow(4000))
	mock.ExpectExec("UPDATE members SET balance_units").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	balance, err := repo.TopUp(context.Background(), "A123456789", 1000)
	if err != nil {
		t.Fatalf("topup error: %v", err)
	}
	if balance != 5000 {
		t.Fatalf("balance = %d, want 5000", balance)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTopUpCeiling(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := NewMemberRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT balance_units FROM members").
		WillReturnRows(sqlmock.NewRows([]string{"balance_units"}).AddRow(999_500))
	mock.ExpectRollback()

	_, err = repo.TopUp(context.Background(), "A123456789", 1000)
	if !errors.Is(err, ErrBalanceCeiling) {
		t.Fatalf("err = %v, want ErrBalanceCeiling", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTopUpToExactCeiling(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := NewMemberRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT balance_units FROM members").
		WillReturnRows(sqlmock.NewRows([]string{"balance_units"}).AddRow(999_000))
	mock.ExpectExec("UPDATE members SET balance_units").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	balance, err := repo.TopUp(context.Background(), "A123456789", 1000)
	if err != nil {
		t.Fatalf("topup error: %v", err)
	}
	if balance != 1_000_000 {
		t.Fatalf("balance = %d, want the ceiling", balance)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDebitBalanceTxConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := NewMemberRepo(db)

	mock.ExpectBegin()
	// guard clause matched no row: balance below the debit amount
	mock.ExpectExec("UPDATE members SET balance_units = balance_units -").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	err = repo.DebitBalanceTx(context.Background(), tx, "A123456789", 640)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
	_ = tx.Rollback()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
