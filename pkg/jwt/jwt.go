package jwt

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// AccessTokenExpiry bounds exposure from a leaked token.
	AccessTokenExpiry  = 1 * time.Hour
	RefreshTokenExpiry = 7 * 24 * time.Hour
)

// ErrTokenExpired lets callers distinguish an expired-but-otherwise-valid
// token from a malformed or forged one.
var ErrTokenExpired = jwt.ErrTokenExpired

// GenerateToken issues a signed access token carrying the user's
// identity and email.
func GenerateToken(email string, userID uint) (string, error) {
	return signToken(email, userID, "access", AccessTokenExpiry)
}

// GenerateRefreshToken issues the long-lived token used for silent
// renewal of an expired access token.
func GenerateRefreshToken(email string, userID uint) (string, error) {
	return signToken(email, userID, "refresh", RefreshTokenExpiry)
}

func signToken(email string, userID uint, tokenType string, expiry time.Duration) (string, error) {
	secretKey := []byte(os.Getenv("JWT_SECRET"))

	claims := jwt.MapClaims{
		"email":   email,
		"sub":     email,
		"user_id": userID,
		"type":    tokenType,
		"exp":     time.Now().Add(expiry).Unix(),
		"iat":     time.Now().Unix(),
		"iss":     os.Getenv("JWT_ISSUER"),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}

// ValidateToken parses and verifies a token, returning its claims.
// Expired tokens fail with an error matching ErrTokenExpired.
func ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// ValidateRefreshToken verifies a refresh token and rejects access
// tokens presented in its place.
func ValidateRefreshToken(tokenString string) (jwt.MapClaims, error) {
	claims, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if tokenType, _ := claims["type"].(string); tokenType != "refresh" {
		return nil, fmt.Errorf("not a refresh token")
	}
	return claims, nil
}

// IdentityFromClaims extracts the user identity embedded in a token.
func IdentityFromClaims(claims jwt.MapClaims) (uint, string, error) {
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, "", fmt.Errorf("invalid user ID in token")
	}

	email, ok := claims["email"].(string)
	if !ok {
		return 0, "", fmt.Errorf("invalid email in token")
	}

	return uint(userIDFloat), email, nil
}
