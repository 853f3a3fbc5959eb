// Package auth resolves inbound bearer credentials to billing accounts.
// Two credential shapes are accepted: HS256 session tokens issued by the
// identity collaborator, and stored API keys looked up by secret hash.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/clipforge/render-broker/pkg/storage"
)

// ErrUnauthenticated is returned for unknown, inactive or malformed
// credentials.
var ErrUnauthenticated = errors.New("unauthenticated")

// Identity is the resolved caller.
type Identity struct {
	AccountID string
	// KeyID is set when the credential was an API key, empty for session
	// tokens.
	KeyID string
}

// Resolver maps a bearer credential to an account.
type Resolver interface {
	Resolve(ctx context.Context, bearer string) (*Identity, error)
}

// TokenResolver implements Resolver against the API key store.
type TokenResolver struct {
	Keys      storage.ApiKeyStore
	Accounts  storage.AccountStore
	JWTSecret []byte
	// Timeout bounds the credential lookup independently of the overall
	// request deadline; the identity store is a network dependency.
	Timeout time.Duration
	Logger  *slog.Logger
}

// NewTokenResolver creates a TokenResolver with a default lookup timeout.
func NewTokenResolver(keys storage.ApiKeyStore, accounts storage.AccountStore, jwtSecret []byte, logger *slog.Logger) *TokenResolver {
	return &TokenResolver{
		Keys:      keys,
		Accounts:  accounts,
		JWTSecret: jwtSecret,
		Timeout:   5 * time.Second,
		Logger:    logger,
	}
}

var _ Resolver = (*TokenResolver)(nil)

// Resolve maps a bearer credential to an account id. The account row is
// created on first sight with a zero balance.
func (r *TokenResolver) Resolve(ctx context.Context, bearer string) (*Identity, error) {
	if bearer == "" {
		return nil, ErrUnauthenticated
	}

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	if accountID, ok := r.resolveJWT(bearer); ok {
		if _, err := r.Accounts.EnsureAccount(ctx, accountID); err != nil {
			return nil, fmt.Errorf("failed to ensure account %s: %w", accountID, err)
		}
		return &Identity{AccountID: accountID}, nil
	}

	key, err := r.Keys.GetApiKeyByHash(ctx, HashSecret(bearer))
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to resolve api key: %w", err)
	}
	if !key.IsActive {
		return nil, ErrUnauthenticated
	}

	// Best effort; a failed touch must not reject the request.
	if err := r.Keys.TouchApiKey(ctx, key.ID, time.Now()); err != nil {
		r.Logger.Warn("failed to update api key last_used_at", "key_id", key.ID, "error", err)
	}

	if _, err := r.Accounts.EnsureAccount(ctx, key.AccountID); err != nil {
		return nil, fmt.Errorf("failed to ensure account %s: %w", key.AccountID, err)
	}

	return &Identity{AccountID: key.AccountID, KeyID: key.ID}, nil
}

func (r *TokenResolver) resolveJWT(bearer string) (string, bool) {
	if len(r.JWTSecret) == 0 {
		return "", false
	}
	token, err := jwt.Parse(bearer, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return r.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return "", false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	accountID, _ := claims["user_id"].(string)
	return accountID, accountID != ""
}

// HashSecret returns the hex sha256 of an API key secret. Only this hash is
// ever persisted.
func HashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// GenerateSecret produces a new API key secret. The caller shows it to the
// owner once and stores only the hash.
func GenerateSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate key material: %w", err)
	}
	return "rk_" + hex.EncodeToString(buf), nil
}
