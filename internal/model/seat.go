package model

import "time"

// Seat availability states.  A seat is either free or reserved; there is
// no intermediate held state.  FREE -> RESERVED happens only inside a
// committed booking transaction, RESERVED -> FREE only inside a committed
// cancellation.
const (
	SeatFree     = "FREE"
	SeatReserved = "RESERVED"
)

// ShowingSeat is the per-showing seat ledger row.  Identity is the
// composite (ShowingID, SeatNumber); there is one row for every seat a
// showing sells.  The row is the unit of contention for concurrent
// bookings and is locked for the duration of a booking or cancellation
// transaction.
//
// Fields:
//  ShowingID  – the showing this seat belongs to.
//  SeatNumber – seat label within the theater (e.g. "A01").
//  Status     – SeatFree or SeatReserved.
//  CreatedAt  – timestamp when the row was inserted.
//  UpdatedAt  – timestamp of last state transition.
type ShowingSeat struct {
	ShowingID  string    // showing_seats.showing_id
	SeatNumber string    // showing_seats.seat_number
	Status     string    // showing_seats.status
	CreatedAt  time.Time // showing_seats.created_at
	UpdatedAt  time.Time // showing_seats.updated_at
}
