package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cinehub/ticket-booking/internal/booking"
	"github.com/cinehub/ticket-booking/internal/model"
	"github.com/cinehub/ticket-booking/internal/queue"
	"github.com/cinehub/ticket-booking/internal/repository"
	queue_publisher "github.com/cinehub/ticket-booking/internal/service"
)

// BookingHandler exposes the booking transaction over HTTP.  Events are
// published after the transaction commits; publish failures are ignored
// here because the booking is already durable.
type BookingHandler struct {
	Coordinator *booking.Coordinator
	Records     *repository.BookingRepo

	publishCreated   func(context.Context, queue.BookingCreatedEvent) error
	publishCancelled func(context.Context, queue.BookingCancelledEvent) error
}

func NewBookingHandler(coord *booking.Coordinator, records *repository.BookingRepo) *BookingHandler {
	return &BookingHandler{
		Coordinator:      coord,
		Records:          records,
		publishCreated:   queue_publisher.PublishBookingCreated,
		publishCancelled: queue_publisher.PublishBookingCancelled,
	}
}

type createBookingReq struct {
	ShowingID     string   `json:"showingID" validate:"required"`
	SeatNumbers   []string `json:"seatNumbers" validate:"required,min=1,unique,dive,required"`
	TicketTypeID  string   `json:"ticketTypeID" validate:"required"`
	UnitPrice     int64    `json:"unitPrice" validate:"required,gt=0"`
	PaymentMethod string   `json:"paymentMethod" validate:"required,oneof=balance creditcard"`
	MealsID       *string  `json:"mealsID"`

	// required iff paymentMethod = creditcard
	CardNumber     string `json:"cardNumber" validate:"required_if=PaymentMethod creditcard"`
	SecurityCode   string `json:"securityCode" validate:"required_if=PaymentMethod creditcard"`
	ExpirationDate string `json:"expirationDate" validate:"required_if=PaymentMethod creditcard"`
}

// Create handles POST /v1/bookings.
func (h *BookingHandler) Create(c echo.Context) error {
	memberID, err := memberIDFrom(c)
	if err != nil {
		return failJSON(c, http.StatusUnauthorized, "unauthorized")
	}

	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return failJSON(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return failJSON(c, http.StatusBadRequest, "invalid request: "+err.Error())
	}

	in := booking.CreateRequest{
		MemberID:      memberID,
		ShowingID:     req.ShowingID,
		SeatNumbers:   req.SeatNumbers,
		TicketTypeID:  req.TicketTypeID,
		UnitPrice:     req.UnitPrice,
		PaymentMethod: req.PaymentMethod,
		MealsID:       req.MealsID,
	}
	if req.PaymentMethod == "creditcard" {
		in.Card = &booking.CardDetails{
			Number:         req.CardNumber,
			SecurityCode:   req.SecurityCode,
			ExpirationDate: req.ExpirationDate,
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	res, err := h.Coordinator.CreateBooking(ctx, in)
	if err != nil {
		return failJSON(c, bookingStatus(err), err.Error())
	}

	_ = h.publishCreated(context.Background(), queue.BookingCreatedEvent{
		OrderID:       res.OrderID,
		MemberID:      memberID,
		ShowingID:     req.ShowingID,
		Seats:         res.ReservedSeats,
		TotalAmount:   res.TotalAmount,
		PaymentMethod: req.PaymentMethod,
		BookedAt:      res.BookingTime.Format(time.RFC3339),
	})

	// card payments leave the balance untouched
	var newBalance interface{} = "unchanged"
	if res.BalanceDebit {
		newBalance = res.NewBalance
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success":       true,
		"orderID":       res.OrderID,
		"reservedSeats": res.ReservedSeats,
		"totalAmount":   res.TotalAmount,
		"newBalance":    newBalance,
	})
}

// CancelTicket handles DELETE /v1/bookings/orders/:orderID/tickets/:ticketID.
func (h *BookingHandler) CancelTicket(c echo.Context) error {
	memberID, err := memberIDFrom(c)
	if err != nil {
		return failJSON(c, http.StatusUnauthorized, "unauthorized")
	}
	orderID := c.Param("orderID")
	ticketID := c.Param("ticketID")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	res, err := h.Coordinator.CancelTicket(ctx, orderID, ticketID, memberID)
	if err != nil {
		return failJSON(c, bookingStatus(err), err.Error())
	}
	h.emitCancelled(memberID, res)

	return c.JSON(http.StatusOK, echo.Map{
		"success":       true,
		"orderID":       res.OrderID,
		"releasedSeats": res.ReleasedSeats,
	})
}

// CancelOrder handles DELETE /v1/bookings/orders/:orderID.
func (h *BookingHandler) CancelOrder(c echo.Context) error {
	memberID, err := memberIDFrom(c)
	if err != nil {
		return failJSON(c, http.StatusUnauthorized, "unauthorized")
	}
	orderID := c.Param("orderID")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	res, err := h.Coordinator.CancelOrder(ctx, orderID, memberID)
	if err != nil {
		return failJSON(c, bookingStatus(err), err.Error())
	}
	h.emitCancelled(memberID, res)

	return c.JSON(http.StatusOK, echo.Map{
		"success":       true,
		"orderID":       res.OrderID,
		"releasedSeats": res.ReleasedSeats,
	})
}

func (h *BookingHandler) emitCancelled(memberID string, res *booking.CancelResult) {
	_ = h.publishCancelled(context.Background(), queue.BookingCancelledEvent{
		OrderID:       res.OrderID,
		MemberID:      memberID,
		ShowingID:     res.ShowingID,
		ReleasedSeats: res.ReleasedSeats,
		CancelledAt:   time.Now().UTC().Format(time.RFC3339),
	})
}

type ticketResp struct {
	TicketID      string  `json:"ticketID"`
	OrderID       string  `json:"orderID"`
	ShowingID     string  `json:"showingID"`
	SeatNumber    string  `json:"seatNumber"`
	TicketTypeID  string  `json:"ticketTypeID"`
	MealsID       *string `json:"mealsID,omitempty"`
	OrderState    string  `json:"orderState"`
	PaymentMethod string  `json:"paymentMethod"`
	BookingTime   string  `json:"bookingTime"`
}

func toTicketResp(recs []model.BookingRecord) []ticketResp {
	out := make([]ticketResp, 0, len(recs))
	for _, r := range recs {
		out = append(out, ticketResp{
			TicketID:      r.TicketID,
			OrderID:       r.OrderID,
			ShowingID:     r.ShowingID,
			SeatNumber:    r.SeatNumber,
			TicketTypeID:  r.TicketTypeID,
			MealsID:       r.MealsID,
			OrderState:    r.OrderStateID,
			PaymentMethod: r.PaymentMethod,
			BookingTime:   r.BookingTime.UTC().Format(time.RFC3339),
		})
	}
	return out
}

// MyBookings handles GET /v1/my-bookings.
func (h *BookingHandler) MyBookings(c echo.Context) error {
	memberID, err := memberIDFrom(c)
	if err != nil {
		return failJSON(c, http.StatusUnauthorized, "unauthorized")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	recs, err := h.Records.ListByMember(ctx, memberID)
	if err != nil {
		return failJSON(c, http.StatusInternalServerError, "query failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "tickets": toTicketResp(recs)})
}

// GetOrder handles GET /v1/bookings/orders/:orderID.
func (h *BookingHandler) GetOrder(c echo.Context) error {
	memberID, err := memberIDFrom(c)
	if err != nil {
		return failJSON(c, http.StatusUnauthorized, "unauthorized")
	}
	orderID := c.Param("orderID")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	recs, err := h.Records.ListByOrder(ctx, orderID)
	if err != nil {
		return failJSON(c, http.StatusInternalServerError, "query failed")
	}
	if len(recs) == 0 {
		return failJSON(c, http.StatusNotFound, "order not found")
	}
	if recs[0].MemberID != memberID {
		return failJSON(c, http.StatusForbidden, "forbidden")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "tickets": toTicketResp(recs)})
}
