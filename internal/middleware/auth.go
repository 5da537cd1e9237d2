package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Vishwa-247/light-and-lovely-space/internal/config"
	"github.com/Vishwa-247/light-and-lovely-space/internal/models"
)

const identityKey = "identity"

// Claims follows the access tokens issued by the auth provider.
type Claims struct {
	jwt.RegisteredClaims
	Email        string       `json:"email"`
	UserMetadata UserMetadata `json:"user_metadata"`
}

type UserMetadata struct {
	FullName string `json:"full_name"`
}

// NewAuthMiddleware validates HS256 bearer tokens and stores the caller's
// identity in the request locals.
func NewAuthMiddleware(cfg config.AuthConfig) fiber.Handler {
	secret := []byte(cfg.Secret)

	return func(c *fiber.Ctx) error {
		tokenStr := bearerToken(c.Get(fiber.HeaderAuthorization))
		if tokenStr == "" {
			return unauthorized(c, "missing bearer token")
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
			return secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
		if err != nil || !token.Valid {
			return unauthorized(c, "invalid or expired token")
		}

		if cfg.Issuer != "" && claims.Issuer != cfg.Issuer {
			return unauthorized(c, "invalid token issuer")
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			return unauthorized(c, "invalid token subject")
		}

		SetIdentity(c, &models.Identity{
			UserID:   userID,
			Email:    claims.Email,
			FullName: claims.UserMetadata.FullName,
		})

		return c.Next()
	}
}

func SetIdentity(c *fiber.Ctx, identity *models.Identity) {
	c.Locals(identityKey, identity)
}

// IdentityFrom returns the identity set by the auth middleware, or nil.
func IdentityFrom(c *fiber.Ctx) *models.Identity {
	identity, _ := c.Locals(identityKey).(*models.Identity)
	return identity
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found {
		return ""
	}
	if !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": msg,
		"code":  fiber.StatusUnauthorized,
	})
}
