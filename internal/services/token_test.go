package services_test

import (
	"testing"
	"time"

	"contactbook/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	tokens := services.NewTokenService(testJWTSecret, 0)

	token, err := tokens.Issue("user-1")
	require.NoError(t, err)

	userID, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestTokenService_TTL(t *testing.T) {
	tokens := services.NewTokenService(testJWTSecret, time.Hour)

	token, err := tokens.Issue("user-1")
	require.NoError(t, err)

	parsed, _, err := new(jwt.Parser).ParseUnverified(token, jwt.MapClaims{})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Contains(t, claims, "exp")
}

func TestTokenService_Verify_Rejects(t *testing.T) {
	tokens := services.NewTokenService(testJWTSecret, 0)

	otherSecret, err := services.NewTokenService("another_secret", 0).Issue("user-1")
	require.NoError(t, err)

	noneSigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"userId": "user-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	missingClaim, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-1"}).
		SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "garbage"},
		{"empty", ""},
		{"wrong secret", otherSecret},
		{"alg none", noneSigned},
		{"missing userId claim", missingClaim},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tokens.Verify(tt.token)
			assert.ErrorIs(t, err, services.ErrInvalidToken)
		})
	}
}

func TestTokenService_Verify_Expired(t *testing.T) {
	tokens := services.NewTokenService(testJWTSecret, 0)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": "user-1",
		"exp":    time.Now().Add(-time.Minute).Unix(),
	}).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	_, err = tokens.Verify(expired)
	assert.ErrorIs(t, err, services.ErrExpiredToken)
}
