package model

import "time"

// Payment methods accepted by the booking transaction.
const (
	PaymentBalance    = "balance"
	PaymentCreditCard = "creditcard"
)

// OrderStateEstablished is the order-state reference assigned to every
// booking record written by a successful create call.
const OrderStateEstablished = "ESTABLISHED"

// BookingRecord is one row of the durable booking log: one record per
// ticket/seat.  All records created by a single create call share one
// OrderID and one BookingTime and are written atomically as a batch.
//
// Fields:
//  OrderID       – groups tickets bought in one transaction.
//  TicketID      – unique per seat/ticket.
//  MemberID      – member who made the booking.
//  ShowingID     – showing the ticket is for.
//  OrderStateID  – order status reference.
//  MealsID       – optional meal add-on.
//  TicketTypeID  – ticket class reference (adult, child, ...).
//  BookingTime   – when the order was established (UTC).
//  SeatNumber    – the reserved seat.
//  PaymentMethod – PaymentBalance or PaymentCreditCard.
type BookingRecord struct {
	OrderID       string    // booking_records.order_id
	TicketID      string    // booking_records.ticket_id
	MemberID      string    // booking_records.member_id
	ShowingID     string    // booking_records.showing_id
	OrderStateID  string    // booking_records.order_state_id
	MealsID       *string   // booking_records.meals_id (nullable)
	TicketTypeID  string    // booking_records.ticket_type_id
	BookingTime   time.Time // booking_records.booking_time
	SeatNumber    string    // booking_records.seat_number
	PaymentMethod string    // booking_records.payment_method
}
