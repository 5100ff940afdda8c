package auth_test

import (
	"testing"
	"time"

	"github.com/MikeRez0/ypcheckout/internal/adapter/auth"
	"github.com/MikeRez0/ypcheckout/internal/adapter/config"
	"github.com/MikeRez0/ypcheckout/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasetoToken(t *testing.T) {
	ts, err := auth.New(&config.Auth{TokenTTL: time.Hour})
	require.NoError(t, err)

	token, err := ts.CreateToken(42)
	require.NoError(t, err)

	payload, err := ts.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), payload.UserID)

	_, err = ts.VerifyToken(token + "x")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	other, err := auth.New(&config.Auth{TokenTTL: time.Hour})
	require.NoError(t, err)
	_, err = other.VerifyToken(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestPasetoToken_Expired(t *testing.T) {
	ts, err := auth.New(&config.Auth{TokenTTL: -time.Minute})
	require.NoError(t, err)

	token, err := ts.CreateToken(1)
	require.NoError(t, err)

	_, err = ts.VerifyToken(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestNew_BadKey(t *testing.T) {
	_, err := auth.New(&config.Auth{TokenKey: "not-hex", TokenTTL: time.Hour})
	assert.Error(t, err)
}
