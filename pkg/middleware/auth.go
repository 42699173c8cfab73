package middleware

import (
	"errors"
	"time"

	"github.com/amirasaad/accounts/pkg/config"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// ErrAuthDisabled is returned by NewToken when no signing secret is configured.
var ErrAuthDisabled = errors.New("auth secret not configured")

// JwtProtected requires an HS256 bearer token signed with cfg.Secret.
// Without a secret every request passes through.
func JwtProtected(cfg *config.Auth) fiber.Handler {
	if cfg == nil || cfg.Secret == "" {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(cfg.Secret)},
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	c.Set(fiber.HeaderContentType, "application/problem+json")
	if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"type":   "about:blank",
			"title":  "Missing or malformed JWT",
			"status": fiber.StatusBadRequest,
		})
	}
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"type":   "about:blank",
		"title":  "Invalid or expired JWT",
		"status": fiber.StatusUnauthorized,
	})
}

// NewToken signs a token for subject that JwtProtected accepts until cfg.Expiry elapses.
func NewToken(cfg *config.Auth, subject string) (string, error) {
	if cfg == nil || cfg.Secret == "" {
		return "", ErrAuthDisabled
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(cfg.Expiry)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
}
