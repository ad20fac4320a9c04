package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cinehub/ticket-booking/internal/model"
	"github.com/cinehub/ticket-booking/internal/repository"
)

// AdminHandler holds the admin-only showing setup endpoints.  Showings
// are immutable once created, so the surface is create-and-list only.
type AdminHandler struct {
	Showings *repository.ShowingRepo
	Seats    *repository.SeatRepo
}

func NewAdminHandler(showings *repository.ShowingRepo, seats *repository.SeatRepo) *AdminHandler {
	return &AdminHandler{Showings: showings, Seats: seats}
}

type createShowingReq struct {
	ID         string `json:"id" validate:"required"`
	MovieTitle string `json:"movieTitle" validate:"required"`
	Theater    string `json:"theater" validate:"required"`
	Version    string `json:"version" validate:"required"`
	StartTime  string `json:"startTime" validate:"required"` // RFC 3339

	// Seat grid: either an explicit list of seat numbers, or a
	// rows x seatsPerRow grid generating labels A01..A<n>, B01..
	SeatNumbers []string `json:"seatNumbers" validate:"omitempty,unique,dive,required"`
	Rows        int      `json:"rows" validate:"omitempty,gt=0,lte=26"`
	SeatsPerRow int      `json:"seatsPerRow" validate:"omitempty,gt=0,lte=99"`
}

// CreateShowing handles POST /v1/admin/showings: inserts the showing
// and seeds its seat ledger, every seat FREE.
func (h *AdminHandler) CreateShowing(c echo.Context) error {
	var req createShowingReq
	if err := c.Bind(&req); err != nil {
		return failJSON(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return failJSON(c, http.StatusBadRequest, "invalid request: "+err.Error())
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return failJSON(c, http.StatusBadRequest, "startTime must be RFC 3339")
	}

	seatNumbers := req.SeatNumbers
	if len(seatNumbers) == 0 {
		if req.Rows <= 0 || req.SeatsPerRow <= 0 {
			return failJSON(c, http.StatusBadRequest, "provide seatNumbers or rows and seatsPerRow")
		}
		seatNumbers = seatGrid(req.Rows, req.SeatsPerRow)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	showing := &model.Showing{
		ID:         req.ID,
		MovieTitle: req.MovieTitle,
		Theater:    req.Theater,
		Version:    req.Version,
		StartTime:  start.UTC(),
	}
	if err := h.Showings.Create(ctx, showing); err != nil {
		return failJSON(c, http.StatusInternalServerError, "create showing failed")
	}

	seats := make([]model.ShowingSeat, 0, len(seatNumbers))
	for _, sn := range seatNumbers {
		seats = append(seats, model.ShowingSeat{ShowingID: req.ID, SeatNumber: sn})
	}
	if err := h.Seats.CreateBulk(ctx, seats); err != nil {
		return failJSON(c, http.StatusInternalServerError, "seed seats failed")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success":   true,
		"showingID": req.ID,
		"seatCount": len(seats),
	})
}

// seatGrid generates row-letter + zero-padded-number labels: A01..A05,
// B01.. for a rows x perRow auditorium.
func seatGrid(rows, perRow int) []string {
	out := make([]string, 0, rows*perRow)
	for r := 0; r < rows; r++ {
		for n := 1; n <= perRow; n++ {
			out = append(out, fmt.Sprintf("%c%02d", 'A'+r, n))
		}
	}
	return out
}
