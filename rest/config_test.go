package rest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()

	assert.Equal(t, DefaultVersion, cfg.Version)
	assert.Equal(t, DefaultServerName, cfg.ServerName)
	assert.EqualValues(t, DefaultMaxBodyBytes, cfg.MaxBodyBytes)
	assert.False(t, cfg.RequireVersion)
	assert.NotNil(t, cfg.GenerateID)
	assert.NotNil(t, cfg.Logger)
}

func TestConfigExplicitValuesKept(t *testing.T) {
	cfg := Config{
		Version:      "3.1.0",
		ServerName:   "custom",
		MaxBodyBytes: 123,
	}.withDefaults()

	assert.Equal(t, "3.1.0", cfg.Version)
	assert.Equal(t, "custom", cfg.ServerName)
	assert.EqualValues(t, 123, cfg.MaxBodyBytes)
}

func TestConfigFromFile(t *testing.T) {
	t.Run("loads yaml fields", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "server.yaml")
		data := []byte("apiVersion: \"2.0.0\"\nserverName: myapi\nrequireApiVersion: true\nmaxBodyBytes: 1024\n")
		require.NoError(t, os.WriteFile(path, data, 0o600))

		cfg, err := ConfigFromFile(path)
		require.NoError(t, err)

		assert.Equal(t, "2.0.0", cfg.Version)
		assert.Equal(t, "myapi", cfg.ServerName)
		assert.True(t, cfg.RequireVersion)
		assert.EqualValues(t, 1024, cfg.MaxBodyBytes)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ConfigFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("apiVersion: [\n"), 0o600))

		_, err := ConfigFromFile(path)
		assert.Error(t, err)
	})
}

func TestGenerateUUID(t *testing.T) {
	a := GenerateUUIDv4()
	b := GenerateUUIDv4()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)

	c := GenerateUUIDv7()
	d := GenerateUUIDv7()
	assert.NotEqual(t, c, d)
	assert.Len(t, c, 36)
}
