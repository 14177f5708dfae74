package auth

import (
	"My-Tax-Tracker/domain"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type (
	// AuthService is the gateway to the hosted identity provider. Access
	// tokens are verified against the provider's published signing keys;
	// DecodeUnverified is for profile display only and must never gate an
	// authorization decision.
	AuthService interface {
		VerifyAccessToken(ctx context.Context, token string) (jwt.MapClaims, error)
		DecodeUnverified(token string) (jwt.MapClaims, error)
		AuthorizeURL(redirectURI, state string) string
		ExchangeCode(ctx context.Context, code, redirectURI string) (TokenSet, error)
		ExchangeRefreshToken(ctx context.Context, refreshToken string) (TokenSet, error)
	}

	TokenSet struct {
		AccessToken  string `json:"access_token"`
		IDToken      string `json:"id_token"`
		RefreshToken string `json:"refresh_token"`
	}

	ProviderConfig struct {
		Issuer       string // e.g. https://cognito-idp.<region>.amazonaws.com/<pool-id>
		Domain       string // hosted UI base URL, e.g. https://<prefix>.auth.<region>.amazoncognito.com
		ClientID     string
		ClientSecret string
	}

	authService struct {
		provider   ProviderConfig
		keyCache   *KeyCache
		httpClient *http.Client
	}
)

func NewAuthService(provider ProviderConfig, keyCache *KeyCache, httpClient *http.Client) AuthService {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &authService{
		provider:   provider,
		keyCache:   keyCache,
		httpClient: httpClient,
	}
}

// JWKSURL builds the published-keys endpoint for an issuer.
func JWKSURL(issuer string) string {
	return strings.TrimSuffix(issuer, "/") + "/.well-known/jwks.json"
}

func (s *authService) VerifyAccessToken(ctx context.Context, token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"RS256"}))

	parsed, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("token missing kid header")
		}
		return s.keyCache.Key(ctx, kid)
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !parsed.Valid {
		return nil, domain.ErrTokenInvalid
	}

	if issuer, _ := claims["iss"].(string); issuer != s.provider.Issuer {
		return nil, domain.ErrTokenInvalid
	}
	if !s.audienceMatches(claims) {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}

// audienceMatches accepts either the aud claim (id tokens) or the
// client_id claim (access tokens).
func (s *authService) audienceMatches(claims jwt.MapClaims) bool {
	if clientID, _ := claims["client_id"].(string); clientID == s.provider.ClientID {
		return true
	}
	if aud, _ := claims["aud"].(string); aud == s.provider.ClientID {
		return true
	}
	return false
}

func (s *authService) DecodeUnverified(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}

func (s *authService) AuthorizeURL(redirectURI, state string) string {
	query := url.Values{}
	query.Set("response_type", "code")
	query.Set("client_id", s.provider.ClientID)
	query.Set("redirect_uri", redirectURI)
	query.Set("scope", "email openid phone profile")
	query.Set("state", state)
	return fmt.Sprintf("%s/oauth2/authorize?%s", strings.TrimSuffix(s.provider.Domain, "/"), query.Encode())
}

func (s *authService) ExchangeCode(ctx context.Context, code, redirectURI string) (TokenSet, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", redirectURI)
	return s.tokenRequest(ctx, form)
}

// ExchangeRefreshToken trades a refresh token for new tokens. Refresh
// token rotation is a provider-side setting; when no new refresh token
// is issued the old one is returned and stays valid.
func (s *authService) ExchangeRefreshToken(ctx context.Context, refreshToken string) (TokenSet, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)

	tokens, err := s.tokenRequest(ctx, form)
	if err != nil {
		return TokenSet{}, err
	}
	if tokens.RefreshToken == "" {
		tokens.RefreshToken = refreshToken
	}
	return tokens, nil
}

func (s *authService) tokenRequest(ctx context.Context, form url.Values) (TokenSet, error) {
	form.Set("client_id", s.provider.ClientID)

	endpoint := fmt.Sprintf("%s/oauth2/token", strings.TrimSuffix(s.provider.Domain, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return TokenSet{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if s.provider.ClientSecret != "" {
		req.SetBasicAuth(s.provider.ClientID, s.provider.ClientSecret)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return TokenSet{}, fmt.Errorf("token endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return TokenSet{}, fmt.Errorf("token endpoint: %s - %s", resp.Status, string(body))
	}

	var tokens TokenSet
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return TokenSet{}, fmt.Errorf("decoding token response: %w", err)
	}
	return tokens, nil
}
