// This file defines the unauthenticated browsing API: upcoming showings
// and per-showing seat maps.  Responses contain no member data and sit
// behind the response cache.
package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cinehub/ticket-booking/internal/model"
	"github.com/cinehub/ticket-booking/internal/repository"
)

// PublicHandler aggregates repositories needed for unauthenticated
// browsing.
type PublicHandler struct {
	Showings *repository.ShowingRepo
	Seats    *repository.SeatRepo
}

// PublicShowing is a showing in list responses.
type PublicShowing struct {
	ID         string    `json:"id"`
	MovieTitle string    `json:"movieTitle"`
	Theater    string    `json:"theater"`
	Version    string    `json:"version"`
	StartTime  time.Time `json:"startTime"`
}

// PublicSeat is one entry of a seat map response.
type PublicSeat struct {
	SeatNumber string `json:"seatNumber"`
	Status     string `json:"status"`
}

// ListShowings handles GET /v1/showings: upcoming showings, soonest
// first.
func (h *PublicHandler) ListShowings(c echo.Context) error {
	showings, err := h.Showings.ListUpcoming(c.Request().Context())
	if err != nil {
		return failJSON(c, http.StatusInternalServerError, "database error")
	}
	out := make([]PublicShowing, 0, len(showings))
	for _, s := range showings {
		out = append(out, PublicShowing{
			ID:         s.ID,
			MovieTitle: s.MovieTitle,
			Theater:    s.Theater,
			Version:    s.Version,
			StartTime:  s.StartTime,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "items": out})
}

// SeatMap handles GET /v1/showings/:id/seats.  The read takes no locks,
// so the map is advisory: a seat shown FREE may be taken by the time a
// booking for it runs.
func (h *PublicHandler) SeatMap(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	showing, err := h.Showings.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrShowingNotFound {
			return failJSON(c, http.StatusNotFound, "showing not found")
		}
		return failJSON(c, http.StatusInternalServerError, "database error")
	}

	seats, err := h.Seats.ListByShowing(ctx, id)
	if err != nil {
		return failJSON(c, http.StatusInternalServerError, "database error")
	}
	out := make([]PublicSeat, 0, len(seats))
	free := 0
	for _, s := range seats {
		if s.Status == model.SeatFree {
			free++
		}
		out = append(out, PublicSeat{SeatNumber: s.SeatNumber, Status: s.Status})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"showingID": showing.ID,
		"seats":     out,
		"freeCount": free,
	})
}
