package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mente-leve/wellbeing-service/internal/cache"
)

const (
	AccessTokenTTL  = time.Hour
	RefreshTokenTTL = 30 * 24 * time.Hour

	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrRevokedToken = errors.New("token has been revoked")
	ErrWrongType    = errors.New("wrong token type")
)

// Claims are the JWT claims issued by this service.
type Claims struct {
	UserID    uint   `json:"uid"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// TokenPair is an access/refresh token pair bound to one user.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenManager issues and verifies HMAC-signed JWTs. Revocation is a
// server-side set of jti values kept in the cache with a TTL matching the
// token's remaining lifetime.
type TokenManager struct {
	secret []byte
	store  cache.CacheService
	now    func() time.Time
}

func NewTokenManager(secret string, store cache.CacheService) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		store:  store,
		now:    time.Now,
	}
}

// IssueTokenPair creates a fresh access and refresh token for the user.
func (tm *TokenManager) IssueTokenPair(userID uint) (*TokenPair, error) {
	access, err := tm.issue(userID, TokenTypeAccess, AccessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := tm.issue(userID, TokenTypeRefresh, RefreshTokenTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// IssueAccessToken creates a new access token only, for the refresh flow.
func (tm *TokenManager) IssueAccessToken(userID uint) (string, error) {
	return tm.issue(userID, TokenTypeAccess, AccessTokenTTL)
}

func (tm *TokenManager) issue(userID uint, tokenType string, ttl time.Duration) (string, error) {
	now := tm.now()
	claims := Claims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprintf("%d", userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// Verify parses a token, checks its signature, expiry, type and the
// revocation set. Returns the claims on success.
func (tm *TokenManager) Verify(ctx context.Context, tokenString, wantType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return tm.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != wantType {
		return nil, ErrWrongType
	}

	revoked, err := tm.isRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrRevokedToken
	}

	return claims, nil
}

// Revoke adds the token's jti to the revocation set until it would have
// expired anyway.
func (tm *TokenManager) Revoke(ctx context.Context, claims *Claims) error {
	remaining := claims.ExpiresAt.Time.Sub(tm.now())
	if remaining <= 0 {
		return nil
	}
	return tm.store.Set(ctx, revocationKey(claims.ID), true, remaining)
}

func (tm *TokenManager) isRevoked(ctx context.Context, jti string) (bool, error) {
	var revoked bool
	err := tm.store.Get(ctx, revocationKey(jti), &revoked)
	if errors.Is(err, cache.ErrCacheMiss) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return revoked, nil
}

func revocationKey(jti string) string {
	return cache.Key("revoked_token", jti)
}
