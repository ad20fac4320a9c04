// Package booking implements the booking transaction core: the
// coordinator that atomically reserves seats and records orders, the
// payment authorizer, and the cancellation path that reverses a
// booking.  All seat-state and balance mutation in the system flows
// through this package.
package booking

import "errors"

// Sentinel errors surfaced by the coordinator and cancellation path.
// Handlers translate these into HTTP responses with errors.Is; any
// error raised inside a transaction has already triggered a rollback
// by the time the caller sees it.
var (
	// ErrInvalidRequest marks missing or malformed request fields.
	// Recoverable by the caller correcting input.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrSeatNotFound means one or more requested seat identifiers do
	// not exist for the showing.
	ErrSeatNotFound = errors.New("seat not found")

	// ErrSeatUnavailable means a requested seat is already reserved.
	// The caller should re-query availability and retry.
	ErrSeatUnavailable = errors.New("seat unavailable")

	// ErrMemberNotFound means the booking member does not exist.
	ErrMemberNotFound = errors.New("member not found")

	// ErrInsufficientBalance means the stored balance cannot cover the
	// total amount.  The caller may top up or switch payment method.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrPaymentDeclined means the external card authorization failed.
	ErrPaymentDeclined = errors.New("payment declined")

	// ErrBookingNotFound means no booking record matches the
	// cancellation request.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrForbidden means the booking belongs to a different member.
	ErrForbidden = errors.New("forbidden")
)
