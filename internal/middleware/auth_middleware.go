package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/feastfinder/feastfinder-backend/internal/models"
	jwtPkg "github.com/feastfinder/feastfinder-backend/pkg/jwt"
)

// NewAccessTokenHeader carries a renewed access token back to the
// client after a successful refresh.
const NewAccessTokenHeader = "X-New-Token"

// AuthMiddleware authenticates requests via the Authorization bearer
// token. An expired access token is not fatal on its own: if the
// client also sends a valid Refresh-Token header, the request proceeds
// and a fresh access token is returned in X-New-Token.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Authorization header is required"))
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid authorization header format"))
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := jwtPkg.ValidateToken(tokenString)
		if err != nil {
			if !errors.Is(err, jwtPkg.ErrTokenExpired) {
				return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid token"))
			}

			claims, err = refreshAccessToken(c)
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse(err.Error()))
			}
		}

		userID, userEmail, err := jwtPkg.IdentityFromClaims(claims)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid token claims"))
		}

		c.Locals("userID", userID)
		c.Locals("userEmail", userEmail)

		return c.Next()
	}
}

func refreshAccessToken(c *fiber.Ctx) (jwt.MapClaims, error) {
	refreshToken := c.Get("Refresh-Token")
	if refreshToken == "" {
		return nil, errors.New("access token expired")
	}

	claims, err := jwtPkg.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, errors.New("invalid or expired refresh token")
	}

	userID, userEmail, err := jwtPkg.IdentityFromClaims(claims)
	if err != nil {
		return nil, errors.New("invalid refresh token claims")
	}

	newAccessToken, err := jwtPkg.GenerateToken(userEmail, userID)
	if err != nil {
		return nil, errors.New("failed to renew access token")
	}
	c.Set(NewAccessTokenHeader, newAccessToken)

	return claims, nil
}
