package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cinehub/ticket-booking/internal/model"
	"github.com/cinehub/ticket-booking/internal/repository"
)

// WalletHandler exposes the stored-value balance: read and top-up.
// Debits happen only inside booking transactions, never here.
type WalletHandler struct {
	Members *repository.MemberRepo
}

func NewWalletHandler(m *repository.MemberRepo) *WalletHandler {
	return &WalletHandler{Members: m}
}

type topUpReq struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

// Get handles GET /v1/wallet.
func (h *WalletHandler) Get(c echo.Context) error {
	memberID, err := memberIDFrom(c)
	if err != nil {
		return failJSON(c, http.StatusUnauthorized, "unauthorized")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Members.GetByID(ctx, memberID)
	if err != nil {
		if err == sql.ErrNoRows {
			return failJSON(c, http.StatusNotFound, "member not found")
		}
		return failJSON(c, http.StatusInternalServerError, "query failed")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"balance": m.BalanceUnits,
		"ceiling": model.MaxBalanceUnits,
	})
}

// TopUp handles POST /v1/wallet/topup.  The credited balance may not
// exceed the ceiling.
func (h *WalletHandler) TopUp(c echo.Context) error {
	memberID, err := memberIDFrom(c)
	if err != nil {
		return failJSON(c, http.StatusUnauthorized, "unauthorized")
	}

	var req topUpReq
	if err := c.Bind(&req); err != nil {
		return failJSON(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return failJSON(c, http.StatusBadRequest, "amount must be a positive integer")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	newBalance, err := h.Members.TopUp(ctx, memberID, req.Amount)
	if err != nil {
		switch err {
		case repository.ErrBalanceCeiling:
			return failJSON(c, http.StatusUnprocessableEntity, "balance may not exceed the ceiling")
		case sql.ErrNoRows:
			return failJSON(c, http.StatusNotFound, "member not found")
		}
		return failJSON(c, http.StatusInternalServerError, "top-up failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "balance": newBalance})
}
