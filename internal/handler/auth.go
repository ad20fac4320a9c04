package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cinehub/ticket-booking/internal/config"
	"github.com/cinehub/ticket-booking/internal/repository"
	"github.com/cinehub/ticket-booking/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg     config.Config
	Members *repository.MemberRepo
	Tokens  *repository.TokenRepo
}

func NewAuthHandler(cfg config.Config, m *repository.MemberRepo, t *repository.TokenRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Members: m, Tokens: t}
}

// ----- DTOs -----

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type memberPart struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
type authResp struct {
	Member  memberPart `json:"member"`
	Access  tokenPart  `json:"access"`
	Refresh tokenPart  `json:"refresh"`
}

// Register: create member and return tokens immediately.  All members
// register with the MEMBER role; admins are provisioned out of band.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "email/password required"})
	}
	const role = "MEMBER"

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Members.Create(ctx, req.Email, req.Password, role, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"success": false, "error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "create member failed"})
	}

	access, refresh, err := h.issuePair(ctx, id, role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "issue tokens failed"})
	}
	return c.JSON(http.StatusCreated, authResp{
		Member:  memberPart{ID: id, Email: req.Email, Role: role},
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, // raw back to client
	})
}

// Login: verify and return new pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Members.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "query failed"})
	}
	if !utils.VerifyPassword(m.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "invalid credentials"})
	}

	access, refresh, err := h.issuePair(ctx, m.ID, m.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "issue tokens failed"})
	}
	return c.JSON(http.StatusOK, authResp{
		Member:  memberPart{ID: m.ID, Email: m.Email, Role: m.Role},
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp},
	})
}

// Refresh: validate by hash, revoke old, issue new pair (rotation).
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "refresh_token required"})
	}
	hash := utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	memberID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "invalid refresh"})
	}
	_ = h.Tokens.RevokeByHash(ctx, hash)

	m, err := h.Members.GetByID(ctx, memberID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "load member failed"})
	}

	access, refresh, err := h.issuePair(ctx, m.ID, m.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "issue tokens failed"})
	}
	return c.JSON(http.StatusOK, authResp{
		Member:  memberPart{ID: m.ID, Email: m.Email, Role: m.Role},
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp},
	})
}

// Logout revokes refresh tokens: the one given in the body, or every
// session of the authenticated member when the body is empty.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	_ = c.Bind(&req)
	refreshToken := strings.TrimSpace(req.RefreshToken)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if refreshToken != "" {
		hash := utils.HashRefreshRaw(refreshToken)
		if _, err := h.Tokens.ValidateRefresh(ctx, hash); err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "invalid refresh token"})
		}
		if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "logout failed"})
		}
		return c.NoContent(http.StatusNoContent)
	}

	memberID, ok := c.Get("member_id").(string)
	if !ok || memberID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "provide refresh_token or Authorization header"})
	}
	if err := h.Tokens.RevokeAllForMember(ctx, memberID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "logout failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Me: simple protected endpoint.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"member_id": c.Get("member_id"),
		"role":      c.Get("role"),
	})
}

func (h *AuthHandler) issuePair(ctx context.Context, memberID, role string) (utils.AccessToken, utils.RefreshToken, error) {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, memberID, role, h.Cfg.AccessTTLMin)
	if err != nil {
		return utils.AccessToken{}, utils.RefreshToken{}, err
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return utils.AccessToken{}, utils.RefreshToken{}, err
	}
	if err := h.Tokens.StoreRefresh(ctx, memberID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return utils.AccessToken{}, utils.RefreshToken{}, err
	}
	return access, refresh, nil
}
