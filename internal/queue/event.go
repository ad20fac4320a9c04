// Package queue defines message payloads exchanged over the message broker.
package queue

// Event types carried on the booking.events queue.
const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
)

// BookingCreatedEvent is published after a booking transaction commits.
// It carries enough for downstream consumers to log or notify without
// querying the primary database.
type BookingCreatedEvent struct {
	Type          string   `json:"type"`
	OrderID       string   `json:"order_id"`
	MemberID      string   `json:"member_id"`
	ShowingID     string   `json:"showing_id"`
	Seats         []string `json:"seats"`
	TotalAmount   int64    `json:"total_amount"`
	PaymentMethod string   `json:"payment_method"`
	BookedAt      string   `json:"booked_at"`
}

// BookingCancelledEvent is published after a cancellation commits and
// its seats have returned to FREE.
type BookingCancelledEvent struct {
	Type          string   `json:"type"`
	OrderID       string   `json:"order_id"`
	MemberID      string   `json:"member_id"`
	ShowingID     string   `json:"showing_id"`
	ReleasedSeats []string `json:"released_seats"`
	CancelledAt   string   `json:"cancelled_at"`
}
