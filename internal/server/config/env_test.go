package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseEnv_ReadsPrefixedVariables(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	t.Setenv(EnvPrefix+"HTTP_ADDR", ":9999")
	t.Setenv(EnvPrefix+"STORAGE", "memory")
	t.Setenv(EnvPrefix+"MONGO_URI", "mongodb://db:27017")
	t.Setenv(EnvPrefix+"PRESIGN_VALIDITY", "90s")
	t.Setenv(EnvPrefix+"ALLOWED_ORIGINS", "http://a.example, http://b.example,,")
	t.Setenv(EnvPrefix+"LOG_FORMAT", "zap")

	c := &Config{}
	c.LoadDefaults()
	parseEnv(c)

	assert.Equal(t, ":9999", c.EndpointAddrHTTP)
	assert.Equal(t, StorageMemory, c.Storage)
	assert.Equal(t, "mongodb://db:27017", c.MongoURI)
	assert.Equal(t, 90*time.Second, c.PresignValidityDuration)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, c.AllowedOrigins)
	assert.Equal(t, "zap", c.LogFormat)
	// untouched
	assert.Equal(t, "secretKey", c.SecretKey)
}

func Test_parseEnv_LoadsDotenvFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	key := EnvPrefix + "S3_BUCKET"
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))

	path := filepath.Join(t.TempDir(), "scanmed.env")
	require.NoError(t, os.WriteFile(path, []byte(
		"SCANMED_S3_BUCKET=images\nSCANMED_LOG_LEVEL=debug\n"), 0o600))

	// already exported variables win over the file
	t.Setenv(EnvPrefix+"LOG_LEVEL", "warn")

	os.Args = []string{"testbin", "-env", path}

	c := &Config{}
	c.LoadDefaults()
	require.NotPanics(t, func() { parseEnv(c) })
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	assert.Equal(t, "images", c.S3Bucket)
	assert.Equal(t, "warn", c.LogLevel)
}

func Test_parseEnv_Panics(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("missing explicit file", func(t *testing.T) {
		os.Args = []string{"testbin", "-env", filepath.Join(t.TempDir(), "nope.env")}
		require.Panics(t, func() { parseEnv(&Config{}) })
	})

	t.Run("bad duration", func(t *testing.T) {
		os.Args = []string{"testbin"}
		t.Setenv(EnvPrefix+"PRESIGN_VALIDITY", "soon")
		require.Panics(t, func() { parseEnv(&Config{}) })
	})
}

func Test_splitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"*"}, splitList(" * "))
	assert.Equal(t, []string{"a", "b"}, splitList("a,,b,"))
}
