package tokencache

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound indicates that no cached token exists yet.
var ErrNotFound = errors.New("no cached token found")

// ErrDecryptFailure indicates that a cached token exists but could not be
// decrypted: wrong passphrase, truncated file, or tampered content. Callers
// treat this as a cache miss and perform a fresh login.
var ErrDecryptFailure = errors.New("token decryption failed")

// Cache reads and writes a single secret token to persistent storage.
type Cache interface {
	// Load returns the cached token. Returns ErrNotFound if no token has
	// been stored and ErrDecryptFailure if the stored token is unreadable.
	Load(ctx context.Context) (string, error)

	// Save persists the token, replacing any previous value.
	Save(ctx context.Context, token string) error

	// Clear removes the cached token. Clearing an empty cache is not an error.
	Clear(ctx context.Context) error
}

// LoginFunc performs a fresh authentication and returns a new token.
type LoginFunc func(ctx context.Context) (string, error)

// LoadOrCreate returns the cached token if one can be decrypted, and
// otherwise runs login and persists the result before returning it.
//
// A decrypt failure is treated the same as a missing token: the stale file
// is replaced by the freshly obtained one. Any other load error, and any
// login error, is returned as-is.
func LoadOrCreate(ctx context.Context, cache Cache, login LoginFunc) (string, error) {
	token, err := cache.Load(ctx)
	if err == nil {
		return token, nil
	}
	if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrDecryptFailure) {
		return "", err
	}

	token, err = login(ctx)
	if err != nil {
		return "", err
	}

	if err := cache.Save(ctx, token); err != nil {
		return "", fmt.Errorf("failed to persist token: %w", err)
	}

	return token, nil
}
