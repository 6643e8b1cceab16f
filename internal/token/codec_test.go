package token

import (
	"errors"
	"testing"
	"time"

	"storefront-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	payload := map[string]interface{}{
		"email": "a@x.com",
		"slug":  "a",
	}

	tokenString, err := Issue(payload, testSecret, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	got, err := Verify(tokenString, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", got["email"])
	assert.Equal(t, "a", got["slug"])
}

func TestIssueRejectsEmptyPayload(t *testing.T) {
	_, err := Issue(nil, testSecret, time.Minute)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrTokenEncoding))

	_, err = Issue(map[string]interface{}{}, testSecret, time.Minute)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrTokenEncoding))
}

func TestIssueRejectsEmptySecret(t *testing.T) {
	_, err := Issue(map[string]interface{}{"k": "v"}, "", time.Minute)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrTokenEncoding))
}

func TestVerifyExpiredToken(t *testing.T) {
	// Отрицательный ttl дает уже истекший токен
	tokenString, err := Issue(map[string]interface{}{"email": "a@x.com"}, testSecret, -time.Second)
	require.NoError(t, err)

	_, err = Verify(tokenString, testSecret)
	assert.ErrorIs(t, err, models.ErrTokenExpired)
}

func TestVerifyWrongSecret(t *testing.T) {
	tokenString, err := Issue(map[string]interface{}{"email": "a@x.com"}, testSecret, time.Minute)
	require.NoError(t, err)

	_, err = Verify(tokenString, "another-secret")
	assert.ErrorIs(t, err, models.ErrTokenInvalid)
}

func TestVerifyTamperedToken(t *testing.T) {
	tokenString, err := Issue(map[string]interface{}{"email": "a@x.com"}, testSecret, time.Minute)
	require.NoError(t, err)

	tampered := tokenString[:len(tokenString)-2] + "xx"
	_, err = Verify(tampered, testSecret)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrTokenInvalid) || errors.Is(err, models.ErrTokenMalformed))
}

func TestVerifyMissingToken(t *testing.T) {
	_, err := Verify("", testSecret)
	assert.ErrorIs(t, err, models.ErrTokenMissing)
}

func TestVerifyGarbageToken(t *testing.T) {
	_, err := Verify("not-a-jwt-at-all", testSecret)
	assert.ErrorIs(t, err, models.ErrTokenMalformed)
}
