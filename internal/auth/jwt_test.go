package auth_test

import (
	"testing"
	"time"

	"taskboard/internal/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret-key")

func TestIssueAndVerify(t *testing.T) {
	tokens := auth.NewTokenManager(testSecret, auth.DefaultTokenTTL)

	token, err := tokens.Issue(42, "ana@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
}

func TestVerify_ExpiresAfterTTL(t *testing.T) {
	issuedAt := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	now := issuedAt
	tokens := auth.NewTokenManager(testSecret, 7*time.Hour, auth.WithClock(func() time.Time { return now }))

	token, err := tokens.Issue(1, "a@x.com")
	require.NoError(t, err)

	// Accepted right after issuance and shortly before expiry
	_, err = tokens.Verify(token)
	assert.NoError(t, err)

	now = issuedAt.Add(7*time.Hour - time.Minute)
	_, err = tokens.Verify(token)
	assert.NoError(t, err)

	// Rejected once expiry has elapsed
	now = issuedAt.Add(7*time.Hour + time.Second)
	_, err = tokens.Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := auth.NewTokenManager([]byte("right-secret"), time.Hour).Issue(1, "a@x.com")
	require.NoError(t, err)

	_, err = auth.NewTokenManager([]byte("wrong-secret"), time.Hour).Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	_, err := auth.NewTokenManager(testSecret, time.Hour).Verify("not.a.jwt")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerify_RejectsOtherSigningMethods(t *testing.T) {
	claims := auth.Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString(testSecret)
	require.NoError(t, err)

	_, err = auth.NewTokenManager(testSecret, time.Hour).Verify(signed)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerify_RequiresExpiry(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{UserID: 1})
	signed, err := token.SignedString(testSecret)
	require.NoError(t, err)

	_, err = auth.NewTokenManager(testSecret, time.Hour).Verify(signed)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestNewTokenManager_DefaultsTTL(t *testing.T) {
	assert.Equal(t, auth.DefaultTokenTTL, auth.NewTokenManager(testSecret, 0).TTL())
}
