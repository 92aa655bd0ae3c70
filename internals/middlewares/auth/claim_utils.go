package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

/* ======== Extractors ======== */

func extractBearerToken(c *fiber.Ctx) (string, error) {
	// Authorization header, cookie fallback
	auth := strings.TrimSpace(c.Get("Authorization"))
	if auth == "" {
		if cookieTok := c.Cookies("access_token"); cookieTok != "" {
			auth = "Bearer " + cookieTok
		}
	}
	if auth == "" {
		return "", fmt.Errorf("unauthorized - no token provided")
	}

	// tolerant split: repeated whitespace, case-insensitive scheme
	fields := strings.Fields(auth)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", fmt.Errorf("unauthorized - invalid token format")
	}
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", fmt.Errorf("unauthorized - empty token")
	}
	return tok, nil
}

func validateTokenExpiry(claims jwt.MapClaims, skew time.Duration) error {
	expVal, ok := claims["exp"]
	if !ok {
		return fmt.Errorf("token has no exp")
	}

	var expUnix int64
	switch t := expVal.(type) {
	case float64:
		expUnix = int64(t)
	case int64:
		expUnix = t
	default:
		return fmt.Errorf("invalid exp claim type")
	}

	if time.Now().Add(-skew).Unix() >= expUnix {
		return fmt.Errorf("token expired")
	}
	return nil
}

func extractStaffID(claims jwt.MapClaims) (uuid.UUID, error) {
	// "staff_id" preferred, "id"/"sub" kept for older tokens
	for _, key := range []string{"staff_id", "id", "sub"} {
		if raw, ok := claims[key]; ok {
			if s, ok := raw.(string); ok && s != "" {
				return uuid.Parse(s)
			}
		}
	}
	return uuid.Nil, fmt.Errorf("missing staff id claim")
}

func storeBasicClaimsToLocals(c *fiber.Ctx, claims jwt.MapClaims) {
	if v, ok := claims["username"].(string); ok {
		c.Locals("username", v)
	}
	if v, ok := claims["role"].(string); ok {
		c.Locals("userRole", strings.ToUpper(v))
	}
}
