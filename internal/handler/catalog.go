package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cinehub/ticket-booking/internal/repository"
)

// CatalogHandler serves the ticket class and meal reference catalogs
// that booking requests reference by ID.
type CatalogHandler struct {
	Catalog *repository.CatalogRepo
}

func NewCatalogHandler(cat *repository.CatalogRepo) *CatalogHandler {
	return &CatalogHandler{Catalog: cat}
}

// TicketTypes handles GET /v1/ticket-types.
func (h *CatalogHandler) TicketTypes(c echo.Context) error {
	types, err := h.Catalog.ListTicketTypes(c.Request().Context())
	if err != nil {
		return failJSON(c, http.StatusInternalServerError, "database error")
	}
	items := make([]echo.Map, 0, len(types))
	for _, t := range types {
		items = append(items, echo.Map{"id": t.ID, "name": t.Name, "priceUnits": t.PriceUnits})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "items": items})
}

// Meals handles GET /v1/meals.
func (h *CatalogHandler) Meals(c echo.Context) error {
	meals, err := h.Catalog.ListMeals(c.Request().Context())
	if err != nil {
		return failJSON(c, http.StatusInternalServerError, "database error")
	}
	items := make([]echo.Map, 0, len(meals))
	for _, m := range meals {
		items = append(items, echo.Map{"id": m.ID, "name": m.Name, "priceUnits": m.PriceUnits})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "items": items})
}
