package tokencache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestKeyringCache_RoundTrip(t *testing.T) {
	keyring.MockInit()

	cache, err := NewKeyringCache("todopush-test", "user@example.com")
	require.NoError(t, err)

	ctx := context.Background()

	_, err = cache.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, cache.Save(ctx, "master-token"))

	token, err := cache.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "master-token", token)

	require.NoError(t, cache.Clear(ctx))
	_, err = cache.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewKeyringCache_Validation(t *testing.T) {
	_, err := NewKeyringCache("", "user@example.com")
	assert.Error(t, err)

	_, err = NewKeyringCache("todopush-test", "")
	assert.Error(t, err)
}
