package middleware_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feastfinder/feastfinder-backend/internal/middleware"
	jwtPkg "github.com/feastfinder/feastfinder-backend/pkg/jwt"
)

const testSecret = "test-secret"

func newProtectedApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected", middleware.AuthMiddleware(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": c.Locals("userID")})
	})
	return app
}

func signToken(t *testing.T, tokenType string, expiresIn time.Duration) string {
	t.Helper()

	claims := gojwt.MapClaims{
		"email":   "amy@x.com",
		"sub":     "amy@x.com",
		"user_id": uint(42),
		"type":    tokenType,
		"exp":     time.Now().Add(expiresIn).Unix(),
		"iat":     time.Now().Add(-time.Minute).Unix(),
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func TestMissingAuthorizationHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	app := newProtectedApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestMalformedAuthorizationHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	app := newProtectedApp()

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGarbageToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	app := newProtectedApp()

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestValidAccessToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	app := newProtectedApp()

	token, err := jwtPkg.GenerateToken("amy@x.com", 42)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get(middleware.NewAccessTokenHeader))
}

func TestExpiredAccessTokenWithoutRefresh(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	app := newProtectedApp()

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "access", -time.Hour))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestExpiredAccessTokenWithValidRefresh(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	app := newProtectedApp()

	refreshToken, err := jwtPkg.GenerateRefreshToken("amy@x.com", 42)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "access", -time.Hour))
	req.Header.Set("Refresh-Token", refreshToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	renewed := resp.Header.Get(middleware.NewAccessTokenHeader)
	require.NotEmpty(t, renewed)

	_, err = jwtPkg.ValidateToken(renewed)
	assert.NoError(t, err)
}

func TestExpiredAccessTokenWithExpiredRefresh(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	app := newProtectedApp()

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "access", -time.Hour))
	req.Header.Set("Refresh-Token", signToken(t, "refresh", -time.Hour))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAccessTokenRejectedAsRefresh(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	app := newProtectedApp()

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "access", -time.Hour))
	req.Header.Set("Refresh-Token", signToken(t, "access", time.Hour))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
