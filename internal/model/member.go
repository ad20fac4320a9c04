package model

import "time"

// MaxBalanceUnits is the ceiling for a member's stored balance.  Top-ups
// that would push the balance past this value are rejected.  Bookings can
// only subtract, so the ceiling is enforced at top-up time.
const MaxBalanceUnits int64 = 1_000_000

// Member represents an application member as stored in the `members`
// table.  A member owns a stored-value balance that can pay for
// bookings.  The balance is held in whole currency units and must
// never go negative.
//
// Fields:
//  ID           – primary key identifier (opaque string).
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – MEMBER or ADMIN.
//  BalanceUnits – stored-value balance in currency units.
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type Member struct {
	ID           string    // members.id
	Email        string    // members.email
	PasswordHash string    // members.password_hash
	Role         string    // members.role
	BalanceUnits int64     // members.balance_units
	IsActive     bool      // members.is_active
	CreatedAt    time.Time // members.created_at
	UpdatedAt    time.Time // members.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to a member; only the SHA-256 hash of the raw
// token value is stored.
//
// Fields:
//  ID        – primary key identifier.
//  MemberID  – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	MemberID  string     // refresh_tokens.member_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
