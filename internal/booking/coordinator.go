package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cinehub/ticket-booking/internal/model"
	"github.com/cinehub/ticket-booking/internal/repository"
)

// CreateRequest is the input to CreateBooking.  SeatNumbers must be
// non-empty and distinct; UnitPrice is the per-seat price in balance
// units; Card is required iff PaymentMethod is creditcard.
type CreateRequest struct {
	MemberID      string
	ShowingID     string
	SeatNumbers   []string
	TicketTypeID  string
	UnitPrice     int64
	PaymentMethod string
	MealsID       *string
	Card          *CardDetails
}

// CreateResult is the committed outcome of a booking.
type CreateResult struct {
	OrderID       string
	ReservedSeats []string
	TotalAmount   int64
	NewBalance    int64
	BalanceDebit  bool
	BookingTime   time.Time
}

// Coordinator runs the booking transaction: lock seats, lock member,
// authorize payment, write records, flip seats to RESERVED, commit.
// Every failure between BeginTx and Commit rolls the whole thing back,
// so no partial reservation or debit is ever visible outside the
// transaction.
type Coordinator struct {
	db      *sql.DB
	seats   *repository.SeatRepo
	members *repository.MemberRepo
	records *repository.BookingRepo
	gateway CardGateway

	now   func() time.Time
	newID func() string
}

// NewCoordinator wires a Coordinator over the given repositories.  A
// nil gateway falls back to the simulated one.
func NewCoordinator(db *sql.DB, seats *repository.SeatRepo, members *repository.MemberRepo, records *repository.BookingRepo, gateway CardGateway) *Coordinator {
	if gateway == nil {
		gateway = SimulatedGateway{}
	}
	return &Coordinator{
		db:      db,
		seats:   seats,
		members: members,
		records: records,
		gateway: gateway,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

func (r *CreateRequest) validate() error {
	if r.MemberID == "" || r.ShowingID == "" || r.TicketTypeID == "" || r.PaymentMethod == "" {
		return fmt.Errorf("%w: missing required fields", ErrInvalidRequest)
	}
	if len(r.SeatNumbers) == 0 {
		return fmt.Errorf("%w: at least one seat required", ErrInvalidRequest)
	}
	seen := make(map[string]struct{}, len(r.SeatNumbers))
	for _, sn := range r.SeatNumbers {
		if sn == "" {
			return fmt.Errorf("%w: empty seat number", ErrInvalidRequest)
		}
		if _, dup := seen[sn]; dup {
			return fmt.Errorf("%w: duplicate seat %s", ErrInvalidRequest, sn)
		}
		seen[sn] = struct{}{}
	}
	if r.UnitPrice <= 0 {
		return fmt.Errorf("%w: unit price must be positive", ErrInvalidRequest)
	}
	switch r.PaymentMethod {
	case model.PaymentBalance:
	case model.PaymentCreditCard:
		if r.Card == nil || r.Card.Number == "" || r.Card.SecurityCode == "" || r.Card.ExpirationDate == "" {
			return fmt.Errorf("%w: card fields required for creditcard payment", ErrInvalidRequest)
		}
	default:
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidRequest, r.PaymentMethod)
	}
	return nil
}

// CreateBooking executes the full booking transaction and returns the
// committed result.  On any error the transaction is rolled back and
// no seat, balance, or record mutation survives.
func (c *Coordinator) CreateBooking(ctx context.Context, req CreateRequest) (*CreateResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	total := req.UnitPrice * int64(len(req.SeatNumbers))

	auth, err := forMethod(req.PaymentMethod, c.gateway)
	if err != nil {
		return nil, err
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Lock the seat rows first; every concurrent attempt on the same
	// seats queues behind this transaction from here on.
	locked, err := c.seats.GetForUpdateTx(ctx, tx, req.ShowingID, req.SeatNumbers)
	if err != nil {
		return nil, err
	}
	if len(locked) != len(req.SeatNumbers) {
		missing := missingSeats(req.SeatNumbers, locked)
		return nil, fmt.Errorf("%w: %s", ErrSeatNotFound, strings.Join(missing, ", "))
	}
	var taken []string
	for _, s := range locked {
		if s.Status != model.SeatFree {
			taken = append(taken, s.SeatNumber)
		}
	}
	if len(taken) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrSeatUnavailable, strings.Join(taken, ", "))
	}

	member, err := c.members.GetForUpdateTx(ctx, tx, req.MemberID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrMemberNotFound, req.MemberID)
		}
		return nil, err
	}

	authorization, err := auth.Authorize(ctx, total, &member, req.Card)
	if err != nil {
		return nil, err
	}
	if authorization.DebitBalance {
		if err := c.members.DebitBalanceTx(ctx, tx, member.ID, total); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return nil, fmt.Errorf("%w: balance changed during booking", ErrInsufficientBalance)
			}
			return nil, err
		}
	}

	orderID := c.newID()
	bookingTime := c.now().UTC()
	recs := make([]model.BookingRecord, 0, len(req.SeatNumbers))
	for _, sn := range req.SeatNumbers {
		recs = append(recs, model.BookingRecord{
			OrderID:       orderID,
			TicketID:      c.newID(),
			MemberID:      member.ID,
			ShowingID:     req.ShowingID,
			OrderStateID:  model.OrderStateEstablished,
			MealsID:       req.MealsID,
			TicketTypeID:  req.TicketTypeID,
			BookingTime:   bookingTime,
			SeatNumber:    sn,
			PaymentMethod: req.PaymentMethod,
		})
	}
	if err := c.records.CreateBulkTx(ctx, tx, recs); err != nil {
		return nil, err
	}

	// The status guard on the UPDATE is the second line of defense:
	// the rows are locked, but a count mismatch still aborts.
	n, err := c.seats.ReserveTx(ctx, tx, req.ShowingID, req.SeatNumbers)
	if err != nil {
		return nil, err
	}
	if n != int64(len(req.SeatNumbers)) {
		return nil, fmt.Errorf("%w: reserved %d of %d seats", ErrSeatUnavailable, n, len(req.SeatNumbers))
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	reserved := append([]string(nil), req.SeatNumbers...)
	sort.Strings(reserved)
	return &CreateResult{
		OrderID:       orderID,
		ReservedSeats: reserved,
		TotalAmount:   total,
		NewBalance:    authorization.NewBalance,
		BalanceDebit:  authorization.DebitBalance,
		BookingTime:   bookingTime,
	}, nil
}

func missingSeats(requested []string, found []model.ShowingSeat) []string {
	have := make(map[string]struct{}, len(found))
	for _, s := range found {
		have[s.SeatNumber] = struct{}{}
	}
	var missing []string
	for _, sn := range requested {
		if _, ok := have[sn]; !ok {
			missing = append(missing, sn)
		}
	}
	sort.Strings(missing)
	return missing
}
