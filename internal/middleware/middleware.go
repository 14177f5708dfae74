package middleware

import (
	"My-Tax-Tracker/domain"
	"My-Tax-Tracker/internal/api/presenters"
	"My-Tax-Tracker/internal/utils"
	"My-Tax-Tracker/pkg/auth"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(authService auth.AuthService, ledger auth.RevocationLedger) fiber.Handler
	}

	middleware struct{}
)

func NewMiddleware() Middleware {
	return &middleware{}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	allowOrigin := utils.GetConfig("ALLOW_ORIGIN")
	if allowOrigin == "" {
		allowOrigin = "*"
	}
	return cors.New(cors.Config{
		AllowOrigins:     allowOrigin,
		AllowCredentials: allowOrigin != "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
	})
}

// AuthMiddleware accepts the bearer token from the Authorization header
// with the access_token cookie as fallback, rejects revoked tokens,
// verifies the signature against the provider keys and stores the
// caller's username in locals.
func (m *middleware) AuthMiddleware(authService auth.AuthService, ledger auth.RevocationLedger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			token = c.Cookies("access_token")
		}
		if token == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenMissing)
		}

		if ledger.IsRevoked(c.Context(), token, "") {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenRevoked)
		}

		claims, err := authService.VerifyAccessToken(c.Context(), token)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, err)
		}

		c.Locals("user_id", auth.UsernameFromClaims(claims))
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
