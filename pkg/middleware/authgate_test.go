package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/veranda/pkg/appctx"
)

type stubChecker struct {
	valid string
}

func (s *stubChecker) IsAuthenticated(ctx context.Context, token string) bool {
	return token != "" && token == s.valid
}

func gatedRequest(t *testing.T, headers map[string]string) error {
	t.Helper()
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var sawAdmin bool
	chain := Context()(AuthGate(&stubChecker{valid: "good-token"})(func(c echo.Context) error {
		sawAdmin = appctx.IsAdmin(c.Request().Context())
		return c.NoContent(http.StatusOK)
	}))

	err := chain(c)
	if err == nil {
		assert.True(t, sawAdmin)
	}
	return err
}

func TestAuthGateRejectsMissingToken(t *testing.T) {
	err := gatedRequest(t, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, httperror.GetStatusCode(err))
}

func TestAuthGateRejectsUnknownToken(t *testing.T) {
	err := gatedRequest(t, map[string]string{HeaderAdminToken: "stale"})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, httperror.GetStatusCode(err))
}

func TestAuthGateAcceptsAdminHeader(t *testing.T) {
	require.NoError(t, gatedRequest(t, map[string]string{HeaderAdminToken: "good-token"}))
}

func TestAuthGateAcceptsBearerToken(t *testing.T) {
	require.NoError(t, gatedRequest(t, map[string]string{echo.HeaderAuthorization: "Bearer good-token"}))
}
