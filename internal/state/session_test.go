package state_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentabook/booking-client/internal/state"
	"github.com/dentabook/booking-client/internal/storage"
	apperrors "github.com/dentabook/booking-client/pkg/errors"
	"github.com/dentabook/booking-client/pkg/logger"
	"github.com/dentabook/booking-client/pkg/metrics"
)

func TestLoginRejectsMalformedEmail(t *testing.T) {
	e := newEnv(t)

	// "a@b" has no TLD and must fail before any network call.
	err := e.app.Session.Login(context.Background(), "a@b", "passw0rd")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Invalid email format.", appErr.Message)
	assert.Zero(t, e.hits.Load())
}

func TestSignupRejectsWeakPassword(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	for _, password := range []string{"short1", "abcdefg", "1234567", "pass word1"} {
		err := e.app.Session.Signup(ctx, "Test User", "user@dentabook.dev", "5551234567", password)
		if password == "short1" {
			// Six alphanumeric characters with a letter and a digit is
			// the minimum, so this one is fine.
			require.NoError(t, err)
			continue
		}
		require.Error(t, err, "password %q should be rejected", password)
		assert.True(t, apperrors.IsValidation(err))
	}
}

func TestSignupRejectsBadPhone(t *testing.T) {
	e := newEnv(t)

	err := e.app.Session.Signup(context.Background(), "Test User", "user@dentabook.dev", "555-123", "passw0rd")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Zero(t, e.hits.Load())
}

func TestSignupEstablishesSession(t *testing.T) {
	e := newEnv(t)
	user := signIn(t, e)

	assert.True(t, e.app.Session.IsAuthenticated())
	assert.Equal(t, "user@dentabook.dev", user.Email)

	ctx := context.Background()
	stored, err := e.store.Get(ctx, storage.KeyUser)
	require.NoError(t, err)
	assert.Contains(t, stored, "user@dentabook.dev")

	token, err := e.store.Get(ctx, storage.KeyToken)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLoginKeepsServerMessage(t *testing.T) {
	e := newEnv(t)
	signIn(t, e)
	e.app.Session.Logout()

	err := e.app.Session.Login(context.Background(), "user@dentabook.dev", "wrong0pass")
	require.Error(t, err)
	assert.True(t, apperrors.IsNetwork(err))
	assert.Equal(t, "invalid email or password", e.app.Session.Err())
	assert.False(t, e.app.Session.IsAuthenticated())
}

func TestRestoreResumesPersistedSession(t *testing.T) {
	e := newEnv(t)
	user := signIn(t, e)

	// A second app sharing the store stands in for a process restart.
	restarted := state.New(e.client, e.store, logger.Nop(), metrics.New("test", prometheus.NewRegistry()))
	before := e.hits.Load()

	require.True(t, restarted.Session.Restore(context.Background()))
	assert.True(t, restarted.Session.IsAuthenticated())
	assert.Equal(t, user.ID, restarted.Session.User().ID)
	// Restore is purely local.
	assert.Equal(t, before, e.hits.Load())
}

func TestRestoreEmptyStore(t *testing.T) {
	e := newEnv(t)

	assert.False(t, e.app.Session.Restore(context.Background()))
	assert.False(t, e.app.Session.IsAuthenticated())
}

func TestLogoutClearsPersistedSession(t *testing.T) {
	e := newEnv(t)
	signIn(t, e)

	e.app.Session.Logout()

	assert.False(t, e.app.Session.IsAuthenticated())
	user, token := e.app.Session.Identity()
	assert.Nil(t, user)
	assert.Empty(t, token)

	_, err := e.store.Get(context.Background(), storage.KeyToken)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = e.store.Get(context.Background(), storage.KeyUser)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCheckExpiry(t *testing.T) {
	e := newEnv(t)
	signIn(t, e)

	assert.False(t, e.app.Session.CheckExpiry(time.Now()))
	assert.True(t, e.app.Session.IsAuthenticated())

	// The fixture backend issues 24h tokens.
	assert.True(t, e.app.Session.CheckExpiry(time.Now().Add(48*time.Hour)))
	assert.False(t, e.app.Session.IsAuthenticated())
}

func TestLoginFailureSurfacesGenericMessage(t *testing.T) {
	e := failingEnv(t)

	err := e.app.Session.Login(context.Background(), "user@dentabook.dev", "passw0rd")
	require.Error(t, err)
	assert.Equal(t, "boom", e.app.Session.Err())
	assert.False(t, e.app.Session.Loading())
}
