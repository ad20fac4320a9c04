package handler // http handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/cinehub/ticket-booking/internal/booking"
)

// Validator adapts go-playground/validator to Echo's Validator
// interface so handlers can call c.Validate on bound DTOs.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{v: validator.New()}
}

func (val *Validator) Validate(i interface{}) error {
	return val.v.Struct(i)
}

// memberIDFrom extracts the authenticated member's ID set by the JWT
// middleware.
func memberIDFrom(c echo.Context) (string, error) {
	id, ok := c.Get("member_id").(string)
	if !ok || id == "" {
		return "", errors.New("no member in context")
	}
	return id, nil
}

// bookingStatus maps the booking error taxonomy to HTTP status codes.
func bookingStatus(err error) int {
	switch {
	case errors.Is(err, booking.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, booking.ErrSeatNotFound),
		errors.Is(err, booking.ErrMemberNotFound),
		errors.Is(err, booking.ErrBookingNotFound):
		return http.StatusNotFound
	case errors.Is(err, booking.ErrSeatUnavailable):
		return http.StatusConflict
	case errors.Is(err, booking.ErrInsufficientBalance),
		errors.Is(err, booking.ErrPaymentDeclined):
		return http.StatusPaymentRequired
	case errors.Is(err, booking.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// failJSON writes the uniform failure envelope.
func failJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"success": false, "error": msg})
}
