package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	"expensetracker/internal"

	"github.com/golang-jwt/jwt/v5"
)

const (
	appleIssuer      = "https://appleid.apple.com"
	appleKeysURL     = "https://appleid.apple.com/auth/keys"
	appleKeyCacheTTL = 24 * time.Hour
)

// AppleVerifier validates Apple identity tokens against Apple's published
// signing keys: the token header's kid selects a key from the JWKS, the
// signature is checked with RS256 only, and audience/issuer/expiry must all
// match.
type AppleVerifier struct {
	clientID string
	keysURL  string
	client   *http.Client

	mu        sync.Mutex
	keys      map[string]*rsa.PublicKey
	fetchedAt time.Time
}

func NewAppleVerifier(clientID, keysURL string) *AppleVerifier {
	if keysURL == "" {
		keysURL = appleKeysURL
	}
	return &AppleVerifier{
		clientID: clientID,
		keysURL:  keysURL,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (v *AppleVerifier) Verify(ctx context.Context, identityToken string) (*Identity, error) {
	// Decode the header only; the signature is checked once the key is known.
	kid, err := tokenKeyID(identityToken)
	if err != nil {
		return nil, internal.NewUnauthorizedError("Invalid or expired token", internal.ErrCodeProviderRejected).WithCause(err)
	}

	key, err := v.signingKey(ctx, kid)
	if err != nil {
		return nil, internal.NewUnauthorizedError("Invalid or expired token", internal.ErrCodeProviderRejected).WithCause(err)
	}

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(identityToken, claims,
		func(token *jwt.Token) (interface{}, error) { return key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(v.clientID),
		jwt.WithIssuer(appleIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, internal.NewUnauthorizedError("Invalid or expired token", internal.ErrCodeProviderRejected).WithCause(err)
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, internal.NewUnauthorizedError("Invalid or expired token", internal.ErrCodeProviderRejected)
	}
	email, _ := claims["email"].(string)

	return &Identity{Provider: ProviderApple, Subject: sub, Email: email}, nil
}

// signingKey returns the cached RSA key for kid, refreshing the key set from
// Apple when the kid is unknown or the cache is stale.
func (v *AppleVerifier) signingKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if key, ok := v.keys[kid]; ok && time.Since(v.fetchedAt) < appleKeyCacheTTL {
		return key, nil
	}

	keys, err := v.fetchKeys(ctx)
	if err != nil {
		return nil, err
	}
	v.keys = keys
	v.fetchedAt = time.Now()

	key, ok := v.keys[kid]
	if !ok {
		return nil, fmt.Errorf("no signing key for kid %q", kid)
	}
	return key, nil
}

type jwksDocument struct {
	Keys []struct {
		Kty string `json:"kty"`
		Kid string `json:"kid"`
		N   string `json:"n"`
		E   string `json:"e"`
	} `json:"keys"`
}

func (v *AppleVerifier) fetchKeys(ctx context.Context) (map[string]*rsa.PublicKey, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.keysURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build key request: %w", err)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch signing keys: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("key endpoint returned status %d", resp.StatusCode)
	}

	var doc jwksDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode key set: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(doc.Keys))
	for _, k := range doc.Keys {
		if k.Kty != "RSA" {
			continue
		}
		pub, err := rsaKeyFromJWK(k.N, k.E)
		if err != nil {
			return nil, fmt.Errorf("parse key %s: %w", k.Kid, err)
		}
		keys[k.Kid] = pub
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("key set contains no RSA keys")
	}
	return keys, nil
}

func rsaKeyFromJWK(n, e string) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(n)
	if err != nil {
		return nil, fmt.Errorf("decode modulus: %w", err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(e)
	if err != nil {
		return nil, fmt.Errorf("decode exponent: %w", err)
	}

	exponent := 0
	for _, b := range eBytes {
		exponent = exponent<<8 | int(b)
	}
	if exponent == 0 {
		return nil, fmt.Errorf("zero exponent")
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: exponent,
	}, nil
}

// tokenKeyID reads the kid from an unverified JWT header.
func tokenKeyID(token string) (string, error) {
	parts, err := splitToken(token)
	if err != nil {
		return "", err
	}

	headerJSON, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return "", fmt.Errorf("decode header: %w", err)
	}

	var header struct {
		Kid string `json:"kid"`
	}
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return "", fmt.Errorf("parse header: %w", err)
	}
	if header.Kid == "" {
		return "", fmt.Errorf("token header missing kid")
	}
	return header.Kid, nil
}

func splitToken(token string) ([3]string, error) {
	var parts [3]string
	start, idx := 0, 0
	for i := 0; i < len(token); i++ {
		if token[i] == '.' {
			if idx >= 2 {
				return parts, fmt.Errorf("malformed token")
			}
			parts[idx] = token[start:i]
			idx++
			start = i + 1
		}
	}
	if idx != 2 {
		return parts, fmt.Errorf("malformed token")
	}
	parts[2] = token[start:]
	return parts, nil
}
