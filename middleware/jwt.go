package middleware

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"vibelms/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// TokenTTL is the bearer token validity window. Sessions are stateless:
// the token is the only session artifact and logout is client-side discard.
const TokenTTL = 7 * 24 * time.Hour

// GenerateJWT generates a signed bearer token bound to the user id.
func GenerateJWT(secret string, userID uint) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Protected returns a middleware that resolves the bearer token to a user
// record. It rejects missing, malformed and expired tokens, and tokens
// whose user no longer exists. On success it stores "userId" and "user"
// in the request locals.
func Protected(db *gorm.DB, secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := resolveToken(db, secret, c.Get("Authorization"))
		if err != nil {
			return ErrorResponse(c, fiber.StatusUnauthorized, CodeUnauthorized, "Invalid or expired token")
		}

		c.Locals("userId", user.ID)
		c.Locals("user", user)
		return c.Next()
	}
}

// OptionalAuth resolves the bearer token when one is present but lets the
// request through anonymously otherwise. Used by routes whose response
// shape depends on who is asking (draft course visibility).
func OptionalAuth(db *gorm.DB, secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if user, err := resolveToken(db, secret, c.Get("Authorization")); err == nil {
			c.Locals("userId", user.ID)
			c.Locals("user", user)
		}
		return c.Next()
	}
}

func resolveToken(db *gorm.DB, secret, authHeader string) (*models.User, error) {
	if authHeader == "" {
		return nil, errors.New("missing Authorization header")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, errors.New("invalid Authorization header format")
	}
	tokenString := authHeader[len("Bearer "):]

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["userId"] == nil {
		return nil, errors.New("invalid token payload")
	}

	userID, ok := claims["userId"].(float64)
	if !ok {
		return nil, errors.New("invalid token payload")
	}

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", uint(userID), false).First(&user).Error; err != nil {
		return nil, errors.New("user not found")
	}

	return &user, nil
}
