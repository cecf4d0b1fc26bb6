package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-account-service/internal/repository"
)

// userID extracts the authenticated user's id placed in the context by the
// TokenAuth middleware.
func userID(c echo.Context) (string, bool) {
	id, ok := c.Get("user_id").(string)
	return id, ok && id != ""
}

// reqCtx bounds a store call to five seconds.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// getUser loads a user and writes the standard response for the two
// failure shapes shared by every read path.
func (h *UserHandler) getUser(c echo.Context, id string) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Svc.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User found", "user": u})
}

func (h *UserHandler) updateUser(c echo.Context, id string) error {
	var req updateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Svc.UpdateByID(ctx, id, req.Username, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		case errors.Is(err, repository.ErrUsernameTaken):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Username already exists"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": err.Error()})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User updated", "user": u})
}

func (h *UserHandler) deleteUser(c echo.Context, id string) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Svc.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted"})
}

// GetSelf handles GET /v1/users/me.
func (h *UserHandler) GetSelf(c echo.Context) error {
	id, ok := userID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	return h.getUser(c, id)
}

// UpdateSelf handles PUT /v1/users/me.
func (h *UserHandler) UpdateSelf(c echo.Context) error {
	id, ok := userID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	return h.updateUser(c, id)
}

// DeleteSelf handles DELETE /v1/users/me.  Deleting the own account also
// clears the session cookie.  The cookie must be set before the body is
// written, so this does not reuse deleteUser.
func (h *UserHandler) DeleteSelf(c echo.Context) error {
	id, ok := userID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Svc.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": err.Error()})
	}
	c.SetCookie(clearedSessionCookie())
	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted"})
}

// GetByID handles GET /v1/users/:id.
func (h *UserHandler) GetByID(c echo.Context) error {
	return h.getUser(c, c.Param("id"))
}

// UpdateByID handles PUT /v1/users/:id.
func (h *UserHandler) UpdateByID(c echo.Context) error {
	return h.updateUser(c, c.Param("id"))
}

// DeleteByID handles DELETE /v1/users/:id.
func (h *UserHandler) DeleteByID(c echo.Context) error {
	return h.deleteUser(c, c.Param("id"))
}

// List handles GET /v1/users.  The full scan is unpaginated.
func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	users, err := h.Svc.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Users found", "users": users})
}
