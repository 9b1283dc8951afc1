package images

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sc "github.com/todovault/todovault/internal/server/config"
)

func testConfig() *sc.Config {
	cfg := &sc.Config{}
	cfg.LoadDefaults()
	return cfg
}

func TestStorageKey_ShardedByUser(t *testing.T) {
	k1 := storageKey("u-1")
	k2 := storageKey("u-1")

	assert.True(t, strings.HasPrefix(k1, "avatars/u-1/"))
	assert.NotEqual(t, k1, k2, "every upload gets a fresh object key")
}

func TestGetPresignedPutUrl(t *testing.T) {
	svc := NewService(testConfig())

	key, url, err := svc.GetPresignedPutUrl(context.Background(), "u-1")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, "avatars/u-1/"))
	assert.Contains(t, url, key)
	assert.Contains(t, url, "X-Amz-Signature=")
}

func TestGetPresignedGetUrl(t *testing.T) {
	svc := NewService(testConfig())

	url, err := svc.GetPresignedGetUrl(context.Background(), "avatars/u-1/obj")
	require.NoError(t, err)

	assert.Contains(t, url, "avatars/u-1/obj")
	assert.Contains(t, url, "X-Amz-Signature=")
}
