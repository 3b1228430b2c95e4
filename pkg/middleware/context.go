package middleware

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/veranda/pkg/appctx"
)

const (
	// HeaderAdminToken is the header key for the admin session token
	HeaderAdminToken = "X-Admin-Token"
)

func Context() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			req := c.Request()

			// get request id from header
			requestID := req.Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.New().String()
			}

			ctx := req.Context()
			ctx = appctx.SetRequestID(ctx, requestID)
			ctx = appctx.SetMethod(ctx, req.Method)
			ctx = appctx.SetRoute(ctx, req.URL.Path)
			ctx = appctx.SetRemoteIP(ctx, c.RealIP())
			ctx = appctx.SetSessionToken(ctx, sessionToken(c))

			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	}
}

// sessionToken reads the admin session token from the X-Admin-Token header or
// a bearer Authorization header.
func sessionToken(c echo.Context) string {
	if token := c.Request().Header.Get(HeaderAdminToken); token != "" {
		return token
	}

	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
