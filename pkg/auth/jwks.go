package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"
)

var ErrUnknownSigningKey = errors.New("no signing key found for token kid")

type (
	jwk struct {
		Kid string `json:"kid"`
		Kty string `json:"kty"`
		Alg string `json:"alg"`
		Use string `json:"use"`
		N   string `json:"n"`
		E   string `json:"e"`
	}

	jwksDocument struct {
		Keys []jwk `json:"keys"`
	}

	// KeyCache holds the identity provider's published signing keys
	// together with the time they were fetched. Keys are refreshed when
	// older than maxAge or when a token references an unknown kid, which
	// covers provider key rotation without a restart.
	KeyCache struct {
		jwksURL    string
		httpClient *http.Client
		maxAge     time.Duration

		mu        sync.Mutex
		keys      map[string]*rsa.PublicKey
		fetchedAt time.Time
	}
)

func NewKeyCache(jwksURL string, httpClient *http.Client, maxAge time.Duration) *KeyCache {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &KeyCache{
		jwksURL:    jwksURL,
		httpClient: httpClient,
		maxAge:     maxAge,
	}
}

// Key returns the public key for kid, refreshing the key set when it is
// stale or does not contain the kid.
func (c *KeyCache) Key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if time.Since(c.fetchedAt) < c.maxAge {
		if key, ok := c.keys[kid]; ok {
			return key, nil
		}
	}

	if err := c.refresh(ctx); err != nil {
		return nil, err
	}

	key, ok := c.keys[kid]
	if !ok {
		return nil, ErrUnknownSigningKey
	}
	return key, nil
}

func (c *KeyCache) refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.jwksURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetching jwks: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetching jwks: unexpected status %s", resp.Status)
	}

	var document jwksDocument
	if err := json.NewDecoder(resp.Body).Decode(&document); err != nil {
		return fmt.Errorf("decoding jwks: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(document.Keys))
	for _, key := range document.Keys {
		if key.Kty != "RSA" {
			continue
		}
		publicKey, err := rsaPublicKey(key)
		if err != nil {
			return fmt.Errorf("parsing jwk %s: %w", key.Kid, err)
		}
		keys[key.Kid] = publicKey
	}

	c.keys = keys
	c.fetchedAt = time.Now()
	return nil
}

func rsaPublicKey(key jwk) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(key.N)
	if err != nil {
		return nil, err
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(key.E)
	if err != nil {
		return nil, err
	}

	e := 0
	for _, b := range eBytes {
		e = e<<8 | int(b)
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: e,
	}, nil
}
