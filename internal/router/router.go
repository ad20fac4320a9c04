package router // route registration for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/cinehub/ticket-booking/internal/config"
	"github.com/cinehub/ticket-booking/internal/handler"
	"github.com/cinehub/ticket-booking/internal/middleware"
)

// RegisterRoutes wires every route of the service onto the Echo
// instance.  Public browse endpoints sit behind the response cache,
// booking mutation endpoints behind the token-bucket rate limiter;
// admin endpoints require the ADMIN role.
func RegisterRoutes(
	e *echo.Echo,
	cfg config.Config,
	rdb *redis.Client,
	auth *handler.AuthHandler,
	public *handler.PublicHandler,
	bookings *handler.BookingHandler,
	wallet *handler.WalletHandler,
	catalog *handler.CatalogHandler,
	admin *handler.AdminHandler,
) {
	e.GET("/healthz", handler.Health)

	// auth: no session required
	a := e.Group("/v1/auth")
	a.POST("/register", auth.Register)
	a.POST("/login", auth.Login)
	a.POST("/refresh", auth.Refresh)
	a.POST("/logout", auth.Logout)

	// public browse, cached
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	e.GET("/v1/showings", public.ListShowings, cache)
	e.GET("/v1/showings/:id/seats", public.SeatMap, cache)
	e.GET("/v1/ticket-types", catalog.TicketTypes, cache)
	e.GET("/v1/meals", catalog.Meals, cache)

	// member endpoints: valid JWT required
	m := e.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	m.GET("/me", auth.Me)
	m.GET("/wallet", wallet.Get)
	m.POST("/wallet/topup", wallet.TopUp)
	m.GET("/my-bookings", bookings.MyBookings)
	m.GET("/bookings/orders/:orderID", bookings.GetOrder)

	// booking mutations additionally pass the rate limiter
	limited := e.Group("/v1", middleware.JWTAuth(cfg.JWTSecret),
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	limited.POST("/bookings", bookings.Create)
	limited.DELETE("/bookings/orders/:orderID", bookings.CancelOrder)
	limited.DELETE("/bookings/orders/:orderID/tickets/:ticketID", bookings.CancelTicket)

	// admin showing setup
	adm := e.Group("/v1/admin", middleware.JWTAuth(cfg.JWTSecret), middleware.RequireRole("ADMIN"))
	adm.POST("/showings", admin.CreateShowing)
}
