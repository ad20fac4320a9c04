package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/cinehub/ticket-booking/internal/model"
	"github.com/cinehub/ticket-booking/internal/utils"
)

// MemberRepo persists members and their stored-value balances.  The
// balance is the member balance ledger of the booking core: it may only
// be debited inside a booking transaction (DebitBalanceTx) and credited
// by top-up (TopUp).  No other code path mutates it.
type MemberRepo struct{ DB *sql.DB }

func NewMemberRepo(db *sql.DB) *MemberRepo { return &MemberRepo{DB: db} }

var ErrEmailExists = errors.New("email already exists")

// ErrBalanceCeiling is returned by TopUp when the credited balance
// would exceed model.MaxBalanceUnits.
var ErrBalanceCeiling = errors.New("balance ceiling exceeded")

// Create inserts a member with a zero balance and returns its ID.
func (r *MemberRepo) Create(ctx context.Context, email, password, role string, cost int) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO members (id, email, password_hash, role, balance_units) VALUES (?,?,?,?,0)",
		id, email, hash, role)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return "", ErrEmailExists
		}
		return "", err
	}
	return id, nil
}

// GetByEmail fetches a member by normalized email.
func (r *MemberRepo) GetByEmail(ctx context.Context, email string) (model.Member, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var m model.Member
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,role,balance_units,is_active,created_at,updated_at FROM members WHERE email=? LIMIT 1",
		email).Scan(&m.ID, &m.Email, &m.PasswordHash, &m.Role, &m.BalanceUnits, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// GetByID fetches a member by id.
func (r *MemberRepo) GetByID(ctx context.Context, id string) (model.Member, error) {
	var m model.Member
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,role,balance_units,is_active,created_at,updated_at FROM members WHERE id=? LIMIT 1",
		id).Scan(&m.ID, &m.Email, &m.PasswordHash, &m.Role, &m.BalanceUnits, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// GetForUpdateTx reads a member row with a row-level lock inside the
// provided transaction.  The booking coordinator uses this so that the
// balance it shows the payment authorizer cannot change before the
// debit is committed.
func (r *MemberRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id string) (model.Member, error) {
	var m model.Member
	err := tx.QueryRowContext(ctx,
		"SELECT id, email, role, balance_units FROM members WHERE id = ? FOR UPDATE",
		id).Scan(&m.ID, &m.Email, &m.Role, &m.BalanceUnits)
	return m, err
}

// DebitBalanceTx subtracts amount from a member's balance inside the
// provided transaction.  The balance_units >= amount guard keeps the
// balance non-negative even if a caller skipped the authorizer check;
// a zero row count is surfaced as ErrConflict.
func (r *MemberRepo) DebitBalanceTx(ctx context.Context, tx *sql.Tx, id string, amount int64) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE members SET balance_units = balance_units - ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND balance_units >= ?",
		amount, id, amount)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrConflict
	}
	return nil
}

// TopUp credits amount to a member's balance and returns the new
// balance.  The credit runs in its own transaction with the member row
// locked so the ceiling check cannot race a concurrent booking debit.
func (r *MemberRepo) TopUp(ctx context.Context, id string, amount int64) (int64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var balance int64
	if err := tx.QueryRowContext(ctx,
		"SELECT balance_units FROM members WHERE id = ? FOR UPDATE", id).Scan(&balance); err != nil {
		return 0, err
	}
	newBalance := balance + amount
	if newBalance > model.MaxBalanceUnits {
		return 0, ErrBalanceCeiling
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE members SET balance_units = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		newBalance, id); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return newBalance, nil
}
