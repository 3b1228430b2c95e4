package middleware

import (
	"context"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/veranda/pkg/appctx"
)

// SessionChecker reports whether a session token is currently valid.
type SessionChecker interface {
	IsAuthenticated(ctx context.Context, token string) bool
}

// AuthGate guards the back-office route subtree. Requests without a valid
// session token are rejected before any store interaction. Sessions never
// expire; this is a UI gate, not a security boundary.
func AuthGate(sessions SessionChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			token := appctx.GetSessionToken(ctx)
			if token == "" || !sessions.IsAuthenticated(ctx, token) {
				return httperror.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			ctx = appctx.SetAdmin(ctx, true)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
