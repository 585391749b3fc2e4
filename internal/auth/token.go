package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService signs and verifies the self-contained bearer tokens used for
// session authentication and password resets. Tokens are HS256-signed with a
// server-held symmetric secret and are never persisted.
type TokenService struct {
	secret     []byte
	sessionTTL time.Duration
	resetTTL   time.Duration
}

func NewTokenService(secret string, sessionTTL, resetTTL time.Duration) *TokenService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	if resetTTL <= 0 {
		resetTTL = time.Hour
	}
	return &TokenService{
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
		resetTTL:   resetTTL,
	}
}

// IssueSession produces a session token with the default 24h lifetime.
func (t *TokenService) IssueSession(userID int64) (string, error) {
	return t.issue(userID, "", t.sessionTTL)
}

// IssueReset produces a short-lived token restricted to password resets.
func (t *TokenService) IssueReset(userID int64) (string, error) {
	return t.issue(userID, PurposePasswordReset, t.resetTTL)
}

func (t *TokenService) issue(userID int64, purpose string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:  userID,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry and returns a tagged result.
// Expiry and invalidity are distinguished so callers can report "expired"
// versus "invalid" where the product behavior calls for it.
func (t *TokenService) Verify(tokenString string) VerifyResult {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})

	if err != nil {
		return VerifyResult{
			Valid:   false,
			Expired: errors.Is(err, jwt.ErrTokenExpired),
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return VerifyResult{}
	}

	return VerifyResult{Valid: true, Claims: claims}
}
