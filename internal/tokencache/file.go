package tokencache

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// saltSize is the length of the random PBKDF2 salt stored at the head
	// of the cache file.
	saltSize = 16

	// keySize selects AES-256.
	keySize = 32

	// pbkdf2Iterations follows the OWASP recommendation for PBKDF2-SHA256.
	pbkdf2Iterations = 600_000
)

// FileCache stores a single token on disk, encrypted with a key derived
// from a passphrase via PBKDF2-SHA256 and sealed with AES-256-GCM.
//
// File layout: salt || nonce || ciphertext+tag. The file is written with
// 0600 permissions and its permissions are checked before every read.
type FileCache struct {
	path       string
	passphrase []byte
}

// Compile-time check to ensure FileCache implements Cache
var _ Cache = (*FileCache)(nil)

// NewFileCache creates a FileCache at the given path, creating parent
// directories with 0700 permissions if they don't exist.
func NewFileCache(path, passphrase string) (*FileCache, error) {
	if path == "" {
		return nil, fmt.Errorf("cache path cannot be empty")
	}
	if passphrase == "" {
		return nil, fmt.Errorf("passphrase cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &FileCache{
		path:       path,
		passphrase: []byte(passphrase),
	}, nil
}

// Load reads and decrypts the cached token.
func (c *FileCache) Load(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	info, err := os.Stat(c.path)
	if os.IsNotExist(err) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat token cache: %w", err)
	}
	if perm := info.Mode().Perm(); perm&0077 != 0 {
		return "", fmt.Errorf("insecure permissions on %s: %04o (expected 0600)", c.path, perm)
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		return "", fmt.Errorf("failed to read token cache: %w", err)
	}

	if len(data) < saltSize {
		return "", fmt.Errorf("%w: file too short", ErrDecryptFailure)
	}
	salt, sealed := data[:saltSize], data[saltSize:]

	gcm, err := c.aead(salt)
	if err != nil {
		return "", err
	}

	if len(sealed) < gcm.NonceSize() {
		return "", fmt.Errorf("%w: file too short", ErrDecryptFailure)
	}
	nonce, ciphertext := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		// Wrong passphrase and tampering are indistinguishable here;
		// both must surface as a decrypt failure, never a usable token.
		return "", fmt.Errorf("%w: %v", ErrDecryptFailure, err)
	}

	return string(plaintext), nil
}

// Save encrypts the token and writes it atomically with 0600 permissions.
func (c *FileCache) Save(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}

	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	gcm, err := c.aead(salt)
	if err != nil {
		return err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}

	data := append(salt, gcm.Seal(nonce, nonce, []byte(token), nil)...)

	// Temp file + rename in the same directory for crash safety
	dir := filepath.Dir(c.path)
	tmp, err := os.CreateTemp(dir, ".token-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := tmp.Chmod(0600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write token cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, c.path); err != nil {
		return fmt.Errorf("failed to replace token cache: %w", err)
	}

	return nil
}

// Clear removes the cache file.
func (c *FileCache) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token cache: %w", err)
	}
	return nil
}

// aead builds the AES-256-GCM cipher for the key derived from the
// passphrase and the given salt.
func (c *FileCache) aead(salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key(c.passphrase, salt, pbkdf2Iterations, keySize, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return gcm, nil
}
