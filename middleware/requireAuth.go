package middleware

import (
	"strings"
	"time"

	"passkey_ms/config"
	"passkey_ms/services"

	"github.com/gofiber/fiber/v2"
)

func parseBearerUser(c *fiber.Ctx) (uint, bool) {
	secret := config.Conf.Application.Security.Secret
	issuer := config.Conf.Application.Security.Issuer
	acctm := config.Conf.Application.Security.TokenValidityInSeconds
	reftm := config.Conf.Application.Security.TokenValidityInSecondsForRememberMe

	jwt := services.NewJWTService([]byte(secret), issuer, time.Duration(acctm)*time.Second, time.Duration(reftm)*time.Second)

	authHeader := c.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return 0, false
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	token, err := jwt.ParseJWT(tokenString)
	if err != nil || !token.Valid {
		return 0, false
	}
	claims, err := jwt.GetClaims(token)
	if err != nil {
		return 0, false
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, false
	}
	return uint(sub), true
}

func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := parseBearerUser(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing or invalid token",
			})
		}
		c.Locals("userId", userID)
		return c.Next()
	}
}

// OptionalAuthMiddleware resolves the caller when a valid token is present
// but lets anonymous requests through; verify-registration falls back to the
// user recorded in the stored challenge.
func OptionalAuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if userID, ok := parseBearerUser(c); ok {
			c.Locals("userId", userID)
		}
		return c.Next()
	}
}
