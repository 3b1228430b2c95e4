package session

import (
	"context"
	"testing"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/veranda/pkg/models"
	"github.com/Ramsey-B/veranda/pkg/storage"
)

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func testBridge() *storage.Bridge {
	return storage.NewBridge(storage.NewMemoryBackend(), "test", testLogger())
}

func TestLoginIssuesTokenOnMatch(t *testing.T) {
	repo := NewRepository("admin", "secret", testBridge(), testLogger())
	ctx := context.Background()

	sess, err := repo.Login(ctx, models.LoginRequest{Username: "admin", Password: "secret"})
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.False(t, sess.CreatedAt.IsZero())
	assert.True(t, repo.IsAuthenticated(ctx, sess.Token))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	repo := NewRepository("admin", "secret", testBridge(), testLogger())
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "wrong password", username: "admin", password: "nope"},
		{name: "wrong username", username: "root", password: "secret"},
		{name: "empty", username: "", password: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.Login(ctx, models.LoginRequest{Username: tt.username, Password: tt.password})
			require.Error(t, err)
			assert.Equal(t, 401, httperror.GetStatusCode(err))
		})
	}
}

func TestLogoutInvalidatesToken(t *testing.T) {
	repo := NewRepository("admin", "secret", testBridge(), testLogger())
	ctx := context.Background()

	sess, err := repo.Login(ctx, models.LoginRequest{Username: "admin", Password: "secret"})
	require.NoError(t, err)

	require.NoError(t, repo.Logout(ctx, sess.Token))
	assert.False(t, repo.IsAuthenticated(ctx, sess.Token))

	// Logging out an unknown token is a no-op.
	require.NoError(t, repo.Logout(ctx, "never-issued"))
}

func TestIsAuthenticatedRejectsEmptyToken(t *testing.T) {
	repo := NewRepository("admin", "secret", testBridge(), testLogger())
	assert.False(t, repo.IsAuthenticated(context.Background(), ""))
}

func TestSessionsSurviveRestart(t *testing.T) {
	bridge := testBridge()
	ctx := context.Background()

	repo := NewRepository("admin", "secret", bridge, testLogger())
	sess, err := repo.Login(ctx, models.LoginRequest{Username: "admin", Password: "secret"})
	require.NoError(t, err)

	reloaded := NewRepository("admin", "secret", bridge, testLogger())
	assert.True(t, reloaded.IsAuthenticated(ctx, sess.Token))
}
