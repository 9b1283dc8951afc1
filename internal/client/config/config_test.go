package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, BackendLocal, c.Backend)
	assert.Equal(t, "todovault.db", c.DatabasePath)
	assert.Equal(t, "http://127.0.0.1:8080", c.ServerEndpointAddr)
	assert.False(t, c.AdminEnabled)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	c := LoadConfig()

	require.NotNil(t, c, "LoadConfig must not return nil")

	assert.Equal(t, BackendLocal, c.Backend)
	assert.Equal(t, "todovault.db", c.DatabasePath)
	assert.Equal(t, "http://127.0.0.1:8080", c.ServerEndpointAddr)
}
