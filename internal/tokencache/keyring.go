package tokencache

import (
	"context"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// KeyringCache stores the token in the OS-native credential store:
// macOS Keychain, Windows Credential Manager, or Linux Secret Service.
// The OS handles encryption at rest, so no passphrase is involved.
type KeyringCache struct {
	service string
	user    string
}

// Compile-time check to ensure KeyringCache implements Cache
var _ Cache = (*KeyringCache)(nil)

// NewKeyringCache creates a KeyringCache under the given service and user
// identifiers.
func NewKeyringCache(service, user string) (*KeyringCache, error) {
	if service == "" {
		return nil, fmt.Errorf("service cannot be empty")
	}
	if user == "" {
		return nil, fmt.Errorf("user cannot be empty")
	}

	return &KeyringCache{
		service: service,
		user:    user,
	}, nil
}

// Load returns the token from the system keyring.
func (k *KeyringCache) Load(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	token, err := keyring.Get(k.service, k.user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read keyring: %w", err)
	}
	if token == "" {
		return "", ErrNotFound
	}

	return token, nil
}

// Save persists the token to the system keyring, overwriting any existing value.
func (k *KeyringCache) Save(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}

	return keyring.Set(k.service, k.user, token)
}

// Clear removes the token from the system keyring.
func (k *KeyringCache) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := keyring.Delete(k.service, k.user)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to clear keyring: %w", err)
	}
	return nil
}
