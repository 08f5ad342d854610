package middleware

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"talent-service/internal/service"

	"github.com/gofiber/fiber/v3"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// Locals keys populated for downstream handlers.
	UserIDKey   = "userID"
	UsernameKey = "username"
	UsertypeKey = "usertype"
	TokenKey    = "token"
)

// Auth verifies bearer tokens and resolves the caller identity for
// protected routes. When a session store is wired, revoked tokens are
// rejected even before their JWT expiry.
type Auth struct {
	secret   []byte
	sessions service.SessionStore
}

func NewAuth(secret string, sessions service.SessionStore) *Auth {
	return &Auth{
		secret:   []byte(secret),
		sessions: sessions,
	}
}

// RequireUser rejects the request with 401 unless it carries a valid,
// unrevoked bearer token. The resolved caller id lands in Locals.
func (a *Auth) RequireUser(c fiber.Ctx) error {
	header := c.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authorization token required",
		})
	}
	token := strings.TrimPrefix(header, "Bearer ")

	claims := &service.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid or expired token",
		})
	}

	if a.sessions != nil {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()

		live, err := a.sessions.Exists(ctx, token)
		if err != nil {
			// Session store trouble should not lock everyone out; the
			// JWT signature already checked out.
			log.Printf("Session check failed: %v", err)
		} else if !live {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Session expired, please log in again",
			})
		}
	}

	c.Locals(UserIDKey, claims.Id)
	c.Locals(UsernameKey, claims.Username)
	c.Locals(UsertypeKey, claims.Usertype)
	c.Locals(TokenKey, token)

	return c.Next()
}

// CallerID returns the authenticated caller id stored by RequireUser.
func CallerID(c fiber.Ctx) string {
	if id, ok := c.Locals(UserIDKey).(string); ok {
		return id
	}
	return ""
}

// Token returns the raw bearer token stored by RequireUser.
func Token(c fiber.Ctx) string {
	if token, ok := c.Locals(TokenKey).(string); ok {
		return token
	}
	return ""
}
