package handlers

import (
	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/veranda/internal/repositories/session"
	"github.com/Ramsey-B/veranda/pkg/appctx"
	"github.com/Ramsey-B/veranda/pkg/models"
	"github.com/Ramsey-B/veranda/pkg/tracing"
)

// AuthHandler handles admin login and logout
type AuthHandler struct {
	sessions session.SessionRepository
	logger   ectologger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessions session.SessionRepository, logger ectologger.Logger) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		logger:   logger,
	}
}

// RegisterRoutes registers the auth routes
func (h *AuthHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/auth/login", h.Login)
	g.POST("/auth/logout", h.Logout)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "AuthHandler.Login")
	defer span.End()

	var req models.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	sess, err := h.sessions.Login(ctx, req)
	if err != nil {
		return err
	}

	return SuccessResponse(c, models.LoginResponse{Token: sess.Token})
}

// Logout handles POST /auth/logout. The token comes from the request headers;
// an unknown or absent token still succeeds.
func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "AuthHandler.Logout")
	defer span.End()

	token := appctx.GetSessionToken(ctx)
	if err := h.sessions.Logout(ctx, token); err != nil {
		return err
	}

	return NoContentResponse(c)
}
