package booking

import (
	"context"
	"fmt"
	"strings"

	"github.com/cinehub/ticket-booking/internal/model"
)

// CardDetails carries the credit card fields of a booking request.
type CardDetails struct {
	Number         string
	SecurityCode   string
	ExpirationDate string
}

// Authorization is the answer an Authorizer gives the coordinator:
// whether the payment may proceed and what balance change (if any) to
// persist within the same transaction.  For card payments DebitBalance
// is false and NewBalance equals the member's current balance.
type Authorization struct {
	DebitBalance bool
	NewBalance   int64
}

// Authorizer decides whether a payment of the given amount may be
// charged.  Implementations must not mutate any state; the coordinator
// persists the resulting balance delta inside its own transaction.
type Authorizer interface {
	Authorize(ctx context.Context, amount int64, m *model.Member, card *CardDetails) (*Authorization, error)
}

// CardGateway is the external card authorization collaborator.  A nil
// error means the charge is approved; any error is surfaced to the
// caller as ErrPaymentDeclined.
type CardGateway interface {
	Charge(ctx context.Context, amount int64, card CardDetails) error
}

// balanceAuthorizer pays from the member's stored balance.
type balanceAuthorizer struct{}

func (balanceAuthorizer) Authorize(_ context.Context, amount int64, m *model.Member, _ *CardDetails) (*Authorization, error) {
	if m.BalanceUnits < amount {
		return nil, fmt.Errorf("%w: balance %d, need %d", ErrInsufficientBalance, m.BalanceUnits, amount)
	}
	return &Authorization{DebitBalance: true, NewBalance: m.BalanceUnits - amount}, nil
}

// cardAuthorizer delegates to the external gateway.  Field presence is
// validated by the request validator before the transaction starts;
// this re-check is the last line before money moves.
type cardAuthorizer struct {
	gateway CardGateway
}

func (a cardAuthorizer) Authorize(ctx context.Context, amount int64, m *model.Member, card *CardDetails) (*Authorization, error) {
	if card == nil || card.Number == "" || card.SecurityCode == "" || card.ExpirationDate == "" {
		return nil, fmt.Errorf("%w: card fields required", ErrInvalidRequest)
	}
	if err := a.gateway.Charge(ctx, amount, *card); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentDeclined, err)
	}
	return &Authorization{DebitBalance: false, NewBalance: m.BalanceUnits}, nil
}

// SimulatedGateway approves any card whose number passes the Luhn
// checksum.  It stands in for a real payment processor in development
// and tests.
type SimulatedGateway struct{}

func (SimulatedGateway) Charge(_ context.Context, _ int64, card CardDetails) error {
	if !luhnValid(card.Number) {
		return fmt.Errorf("card number failed checksum")
	}
	return nil
}

// luhnValid reports whether s (digits, optionally space/dash separated)
// passes the Luhn checksum.
func luhnValid(s string) bool {
	s = strings.NewReplacer(" ", "", "-", "").Replace(s)
	if len(s) < 12 {
		return false
	}
	sum := 0
	double := false
	for i := len(s) - 1; i >= 0; i-- {
		c := s[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// forMethod returns the authorizer for a payment method.  Method values
// are validated before this is called; an unknown method here is a
// programming error and surfaces as ErrInvalidRequest.
func forMethod(method string, gateway CardGateway) (Authorizer, error) {
	switch method {
	case model.PaymentBalance:
		return balanceAuthorizer{}, nil
	case model.PaymentCreditCard:
		return cardAuthorizer{gateway: gateway}, nil
	default:
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrInvalidRequest, method)
	}
}
