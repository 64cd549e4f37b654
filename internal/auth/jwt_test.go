package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret   = "a-long-secure-secret-only-for-tests"
	testUserID   = "9f4a2c1e-0000-0000-0000-000000000001"
	testUsername = "ala"
)

func initTestAuth(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", testSecret)
	Init()
}

func TestInitMissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	assert.Panics(t, func() { Init() })
}

func TestGenerateAndValidateJWT(t *testing.T) {
	initTestAuth(t)

	t.Run("ValidToken", func(t *testing.T) {
		tokenStr, err := GenerateJWT(testUserID, testUsername, 5*time.Minute)
		require.NoError(t, err)

		claims, err := ValidateJWT(tokenStr)
		require.NoError(t, err)
		assert.Equal(t, testUserID, claims.UserID)
		assert.Equal(t, testUsername, claims.Username)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		tokenStr, err := GenerateJWT(testUserID, testUsername, -time.Minute)
		require.NoError(t, err)

		_, err = ValidateJWT(tokenStr)
		require.Error(t, err)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("TamperedSignature", func(t *testing.T) {
		tokenStr, err := GenerateJWT(testUserID, testUsername, time.Minute)
		require.NoError(t, err)

		original := jwtSecret
		jwtSecret = []byte("a-completely-different-secret")
		defer func() { jwtSecret = original }()

		_, err = ValidateJWT(tokenStr)
		require.Error(t, err)
	})
}

func TestAuthMiddleware(t *testing.T) {
	initTestAuth(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := GetUserClaimsFromContext(r.Context())
		require.NoError(t, err)
		assert.Equal(t, testUsername, claims.Username)
		w.WriteHeader(http.StatusOK)
	})
	handler := AuthMiddleware(next)

	t.Run("MissingHeader", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/habits", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("MalformedHeader", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/habits", nil)
		req.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/habits", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("ValidToken", func(t *testing.T) {
		tokenStr, err := GenerateJWT(testUserID, testUsername, time.Minute)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/habits", nil)
		req.Header.Set("Authorization", "Bearer "+tokenStr)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestGetUserClaimsFromContextMissing(t *testing.T) {
	_, err := GetUserClaimsFromContext(httptest.NewRequest("GET", "/", nil).Context())
	assert.ErrorIs(t, err, ErrNoClaims)
}
