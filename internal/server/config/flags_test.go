package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd",
			"-a", "127.0.0.1:9090", "-storage", "memory", "-d", "db", "-m", "mongodb://x", "-n", "mdb",
			"-s", "secret", "-u", "user", "-p", "password", "-b", "bucket", "-g", "us-west-1",
			"-e", "http://endpoint", "-t", "2", "-z", "Europe/Riga", "-o", "http://a,http://b",
			"-l", "debug", "-f", "zap",
		}, expectPanic: false,
			expected: &Config{
				EndpointAddrHTTP:        "127.0.0.1:9090",
				Storage:                 "memory",
				DatabaseDSN:             "db",
				MongoURI:                "mongodb://x",
				MongoDatabase:           "mdb",
				SecretKey:               "secret",
				S3RootUser:              "user",
				S3RootPassword:          "password",
				S3Bucket:                "bucket",
				S3Region:                "us-west-1",
				S3BaseEndpoint:          "http://endpoint",
				PresignValidityDuration: 2 * time.Minute,
				DisplayTimezone:         "Europe/Riga",
				AllowedOrigins:          []string{"http://a", "http://b"},
				LogLevel:                "debug",
				LogFormat:               "zap",
			}},
		{name: "foreign flags ignored", args: []string{"cmd", "-c", "cfg.json", "-env", ".env", "-a", ":1"},
			expected: &Config{EndpointAddrHTTP: ":1"}},
		{name: "bad int", args: []string{"cmd", "-t", "soon"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origArgs := os.Args
			t.Cleanup(func() { os.Args = origArgs })
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
