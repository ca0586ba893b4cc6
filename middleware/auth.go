// middleware/auth.go
package middleware

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// ValidateSecrets checks the token signing secrets at boot so a missing
// secret surfaces immediately instead of on the first authenticated request.
func ValidateSecrets() {
	if os.Getenv("ACCESS_TOKEN_SECRET") == "" {
		log.Fatal("❌ ACCESS_TOKEN_SECRET is not set")
	}
	if os.Getenv("REFRESH_TOKEN_SECRET") == "" {
		log.Fatal("❌ REFRESH_TOKEN_SECRET is not set")
	}
}

// AccessSecret returns the HS256 signing secret for access tokens.
func AccessSecret() []byte {
	return []byte(os.Getenv("ACCESS_TOKEN_SECRET"))
}

// RefreshSecret returns the HS256 signing secret for refresh tokens.
func RefreshSecret() []byte {
	return []byte(os.Getenv("REFRESH_TOKEN_SECRET"))
}

func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader {
		// no "Bearer " prefix — accept the raw value
		token = authHeader
	}
	return token
}

func parseAccessToken(tokenString string) (userID, username string, err error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return AccessSecret(), nil
	})
	if err != nil || !token.Valid {
		return "", "", fmt.Errorf("invalid access token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", fmt.Errorf("invalid access token claims")
	}
	userID, _ = claims["user_id"].(string)
	username, _ = claims["username"].(string)
	if userID == "" {
		return "", "", fmt.Errorf("access token missing user_id")
	}
	return userID, username, nil
}

// RequireAuth rejects requests without a valid access token and attaches the
// caller's identity to the request context.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "access token missing",
			})
		}
		userID, username, err := parseAccessToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or expired access token",
			})
		}
		c.Locals("user_id", userID)
		c.Locals("username", username)
		return c.Next()
	}
}

// OptionalAuth attaches the caller's identity when a valid access token is
// present and lets the request through either way. Routes that serve both
// anonymous and logged-in players use this.
func OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c)
		if tokenString != "" {
			if userID, username, err := parseAccessToken(tokenString); err == nil {
				c.Locals("user_id", userID)
				c.Locals("username", username)
			}
		}
		return c.Next()
	}
}

// CallerID returns the authenticated user's ID, or "" for anonymous callers.
func CallerID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
