package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"endpoint_addr_http":        "www.example:9000",
		"storage":                   "mongo",
		"database_dsn":              "scanmed.db",
		"mongo_uri":                 "mongodb://m:27017",
		"mongo_database":            "records",
		"secret_key":                "my_secret_key",
		"s3_root_user":              "user",
		"s3_root_password":          "password",
		"s3_bucket":                 "bucket",
		"s3_region":                 "region",
		"s3_base_endpoint":          "base_endpoint",
		"presign_validity_duration": "5m",
		"display_timezone":          "Europe/Riga",
		"allowed_origins":           []string{"*"},
		"log_level":                 "debug",
		"log_format":                "text",
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		c := &Config{}
		parseJson(c)

		assert.Equal(t, "www.example:9000", c.EndpointAddrHTTP)
		assert.Equal(t, StorageMongo, c.Storage)
		assert.Equal(t, "scanmed.db", c.DatabaseDSN)
		assert.Equal(t, "mongodb://m:27017", c.MongoURI)
		assert.Equal(t, "records", c.MongoDatabase)
		assert.Equal(t, "my_secret_key", c.SecretKey)
		assert.Equal(t, "user", c.S3RootUser)
		assert.Equal(t, "password", c.S3RootPassword)
		assert.Equal(t, "bucket", c.S3Bucket)
		assert.Equal(t, "region", c.S3Region)
		assert.Equal(t, "base_endpoint", c.S3BaseEndpoint)
		assert.Equal(t, 5*time.Minute, c.PresignValidityDuration)
		assert.Equal(t, "Europe/Riga", c.DisplayTimezone)
		assert.Equal(t, []string{"*"}, c.AllowedOrigins)
		assert.Equal(t, "debug", c.LogLevel)
		assert.Equal(t, "text", c.LogFormat)
	})

	t.Run("absent keys keep current values", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{"s3_bucket": "only"})
		os.Args = []string{"testbin", "-c", partial}

		c := &Config{}
		c.LoadDefaults()
		parseJson(c)

		assert.Equal(t, "only", c.S3Bucket)
		assert.Equal(t, ":8080", c.EndpointAddrHTTP)
		assert.Equal(t, []string{"http://localhost:5173"}, c.AllowedOrigins)
	})

	t.Run("no flag leaves config untouched", func(t *testing.T) {
		os.Args = []string{"testbin"}

		c := &Config{SecretKey: "keep"}
		parseJson(c)

		assert.Equal(t, "keep", c.SecretKey)
	})
}

func Test_parseJson_Panics(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("missing file", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(t.TempDir(), "missing.json")}
		require.Panics(t, func() { parseJson(&Config{}) })
	})

	t.Run("invalid json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
		os.Args = []string{"testbin", "-c", path}
		require.Panics(t, func() { parseJson(&Config{}) })
	})
}
