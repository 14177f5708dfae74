package handlers

import (
	"My-Tax-Tracker/domain"
	"My-Tax-Tracker/internal/api/presenters"
	"My-Tax-Tracker/internal/utils"
	"My-Tax-Tracker/pkg/auth"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type (
	AuthHandler interface {
		Login(c *fiber.Ctx) error
		Authorize(c *fiber.Ctx) error
		Logout(c *fiber.Ctx) error
		Refresh(c *fiber.Ctx) error
		Me(c *fiber.Ctx) error
	}

	authHandler struct {
		authService auth.AuthService
		ledger      auth.RevocationLedger
	}
)

func NewAuthHandler(authService auth.AuthService, ledger auth.RevocationLedger) AuthHandler {
	return &authHandler{
		authService: authService,
		ledger:      ledger,
	}
}

func (h *authHandler) callbackURI() string {
	return fmt.Sprintf("%s/auth/authorize", utils.GetConfig("APP_URL"))
}

func (h *authHandler) Login(c *fiber.Ctx) error {
	state := uuid.New().String()
	c.Cookie(&fiber.Cookie{
		Name:     "oauth_state",
		Value:    state,
		HTTPOnly: true,
		Expires:  time.Now().Add(10 * time.Minute),
	})
	return c.Redirect(h.authService.AuthorizeURL(h.callbackURI(), state), fiber.StatusFound)
}

func (h *authHandler) Authorize(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedProcessRequest, domain.ErrMissingAuthCode)
	}
	if state := c.Query("state"); state == "" || state != c.Cookies("oauth_state") {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedProcessRequest, domain.ErrStateMismatch)
	}

	tokens, err := h.authService.ExchangeCode(c.Context(), code, h.callbackURI())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedProcessRequest, err)
	}

	setTokenCookie(c, "id_token", tokens.IDToken)
	setTokenCookie(c, "access_token", tokens.AccessToken)
	setTokenCookie(c, "refresh_token", tokens.RefreshToken)
	clearCookie(c, "oauth_state")

	return c.Redirect(utils.GetConfig("REDIRECT_URI"), fiber.StatusFound)
}

func (h *authHandler) Logout(c *fiber.Ctx) error {
	if accessToken := c.Cookies("access_token"); accessToken != "" {
		if err := h.ledger.Revoke(c.Context(), accessToken, auth.TokenKindAccess, auth.DefaultRevocationTTL); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedProcessRequest, err)
		}
	}
	if refreshToken := c.Cookies("refresh_token"); refreshToken != "" {
		if err := h.ledger.Revoke(c.Context(), refreshToken, auth.TokenKindRefresh, auth.DefaultRevocationTTL); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedProcessRequest, err)
		}
	}

	clearCookie(c, "refresh_token")
	clearCookie(c, "access_token")
	clearCookie(c, "id_token")
	return c.Redirect("/", fiber.StatusFound)
}

func (h *authHandler) Refresh(c *fiber.Ctx) error {
	refreshToken := c.Cookies("refresh_token")
	if refreshToken == "" {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedRefreshToken, domain.ErrNoRefreshToken)
	}

	if h.ledger.IsRevoked(c.Context(), refreshToken, auth.TokenKindRefresh) {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedRefreshToken, domain.ErrRefreshTokenRevoked)
	}

	tokens, err := h.authService.ExchangeRefreshToken(c.Context(), refreshToken)
	if err != nil || tokens.AccessToken == "" {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedRefreshToken, domain.ErrRefreshFailed)
	}

	// The spent refresh token is revoked so it cannot be replayed.
	if err := h.ledger.Revoke(c.Context(), refreshToken, auth.TokenKindRefresh, auth.DefaultRevocationTTL); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedRefreshToken, err)
	}

	setTokenCookie(c, "access_token", tokens.AccessToken)
	setTokenCookie(c, "refresh_token", tokens.RefreshToken)

	return presenters.SuccessResponse(c, domain.RefreshResponse{
		AccessToken: tokens.AccessToken,
	}, fiber.StatusOK, domain.MessageSuccessRefreshToken)
}

// Me reads the profile from the id_token cookie without verifying its
// signature. Display data only; authorization always goes through the
// verified access token.
func (h *authHandler) Me(c *fiber.Ctx) error {
	idToken := c.Cookies("id_token")
	if idToken == "" {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetProfile, domain.ErrNoIDToken)
	}

	claims, err := h.authService.DecodeUnverified(idToken)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetProfile, err)
	}

	return presenters.SuccessResponse(c, domain.ProfileResponse{
		Username:    auth.UsernameFromClaims(claims),
		Email:       auth.StringClaim(claims, "email"),
		PhoneNumber: auth.StringClaim(claims, "phone_number"),
		Gender:      auth.StringClaim(claims, "gender"),
	}, fiber.StatusOK, domain.MessageSuccessGetProfile)
}

// setTokenCookie writes a session-scoped, HTTP-only cookie. No Expires:
// the token's own exp claim bounds its usable lifetime. Secure is left
// unset on purpose so the flow works over plain HTTP in local
// development; deployments are expected to terminate TLS in front.
func setTokenCookie(c *fiber.Ctx, name, value string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clearCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		HTTPOnly: true,
		Expires:  time.Now().Add(-time.Hour),
	})
}
