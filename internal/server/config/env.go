package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/scanmed/internal/flagx"
	"github.com/joho/godotenv"
)

// EnvPrefix precedes every environment variable read by parseEnv.
const EnvPrefix = "SCANMED_"

// parseEnv loads a dotenv file into the process environment and then copies
// any SCANMED_* variables into config.
//
// The dotenv path comes from the -env flag; without it ".env" in the working
// directory is tried and silently skipped when absent. Variables already set
// in the environment take precedence over the file. An explicitly named file
// that cannot be read causes a panic, like an unreadable JSON config.
func parseEnv(config *Config) {
	if path := flagx.EnvFileFlags(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			*dst = v
		}
	}

	str("HTTP_ADDR", &config.EndpointAddrHTTP)
	str("STORAGE", &config.Storage)
	str("DATABASE_DSN", &config.DatabaseDSN)
	str("MONGO_URI", &config.MongoURI)
	str("MONGO_DATABASE", &config.MongoDatabase)
	str("SECRET_KEY", &config.SecretKey)
	str("S3_ROOT_USER", &config.S3RootUser)
	str("S3_ROOT_PASSWORD", &config.S3RootPassword)
	str("S3_BUCKET", &config.S3Bucket)
	str("S3_REGION", &config.S3Region)
	str("S3_BASE_ENDPOINT", &config.S3BaseEndpoint)
	str("DISPLAY_TIMEZONE", &config.DisplayTimezone)
	str("LOG_LEVEL", &config.LogLevel)
	str("LOG_FORMAT", &config.LogFormat)

	if v, ok := os.LookupEnv(EnvPrefix + "PRESIGN_VALIDITY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.PresignValidityDuration = d
	}

	if v, ok := os.LookupEnv(EnvPrefix + "ALLOWED_ORIGINS"); ok {
		config.AllowedOrigins = splitList(v)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
