package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/user-account-service/internal/auth"
	"github.com/iliyamo/user-account-service/internal/config"
	"github.com/iliyamo/user-account-service/internal/handler"
	"github.com/iliyamo/user-account-service/internal/middleware"
)

// RegisterRoutes wires every route of the service onto the Echo instance.
//
// Unauthenticated operations live under /v1/auth; every account record
// route under /v1/users requires a valid session token.  GET routes on the
// protected group go through the Redis response cache when one is
// configured.
func RegisterRoutes(e *echo.Echo, h *handler.UserHandler, issuer *auth.Issuer, cacheCfg config.CacheConfig, rdb *redis.Client, reg *prometheus.Registry) {
	// Health check for load balancers and monitoring.
	e.GET("/healthz", handler.Health)
	// Prometheus scrape endpoint.
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Session lifecycle: register, login, logout.  Logout requires no
	// valid session — it only clears the delivery cookie.
	g := e.Group("/v1/auth")
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/logout", h.Logout)

	// Account records.  TokenAuth extracts the identity from the session
	// cookie (or a bearer header) before any handler runs.
	users := e.Group("/v1/users")
	users.Use(middleware.TokenAuth(issuer))

	cache := middleware.NewRedisCache(cacheCfg, rdb)
	users.GET("", h.List, cache)
	users.GET("/me", h.GetSelf)
	users.PUT("/me", h.UpdateSelf)
	users.DELETE("/me", h.DeleteSelf)
	users.GET("/:id", h.GetByID, cache)
	users.PUT("/:id", h.UpdateByID)
	users.DELETE("/:id", h.DeleteByID)
}
