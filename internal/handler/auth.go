package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-account-service/internal/config"
	"github.com/iliyamo/user-account-service/internal/metrics"
	"github.com/iliyamo/user-account-service/internal/repository"
	"github.com/iliyamo/user-account-service/internal/service"
)

// UserHandler bundles dependencies for the auth and account endpoints.
type UserHandler struct {
	Cfg     config.Config
	Svc     *service.UserService
	Metrics *metrics.Collector
}

func NewUserHandler(cfg config.Config, svc *service.UserService, m *metrics.Collector) *UserHandler {
	return &UserHandler{Cfg: cfg, Svc: svc, Metrics: m}
}

// ----- DTOs -----

type registerReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
}
type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
type updateReq struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

// sessionCookie builds the token delivery cookie: http-only so scripts
// cannot read it, SameSite=None + Secure so cross-site frontends can send
// it, expiry per the configured TTL.  Expiry lives only on the cookie; the
// token itself carries none.
func (h *UserHandler) sessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
		Secure:   true,
		Expires:  time.Now().Add(time.Duration(h.Cfg.TokenTTLHrs) * time.Hour),
	}
}

// clearedSessionCookie returns an expired cookie that overwrites the
// client's copy.
func clearedSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
		Secure:   true,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	}
}

// Register handles POST /v1/auth/register.
func (h *UserHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "username/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Svc.Register(ctx, req.Username, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Username already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": err.Error()})
	}
	h.Metrics.RecordRegistration()
	return c.JSON(http.StatusOK, echo.Map{"message": "User registered", "user": u})
}

// Login handles POST /v1/auth/login.  A missing user and a wrong password
// are reported with different messages; both are 400 per the API contract.
func (h *UserHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	token, _, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			h.Metrics.RecordLoginFailure("user_not_found")
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "User not found"})
		case errors.Is(err, service.ErrInvalidPassword):
			h.Metrics.RecordLoginFailure("invalid_password")
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid password"})
		default:
			h.Metrics.RecordLoginFailure("internal")
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": err.Error()})
		}
	}

	c.SetCookie(h.sessionCookie(token))
	h.Metrics.RecordLoginSuccess()
	return c.JSON(http.StatusOK, echo.Map{"message": "Login successful", "token": token})
}

// Logout handles POST /v1/auth/logout.  It is idempotent: no prior session
// is required, the delivery cookie is simply overwritten with an expired
// one.  An already-issued token stays valid until its cookie expires —
// there is no server-side session table to revoke from.
func (h *UserHandler) Logout(c echo.Context) error {
	c.SetCookie(clearedSessionCookie())
	return c.JSON(http.StatusOK, echo.Map{"message": "Logout successful"})
}
