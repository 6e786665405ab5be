package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/growflow/internal/flagx"
)

// dotenvFiles are loaded (if present) before the environment is read.
// Variables already set in the process environment win.
var dotenvFiles = []string{".env"}

// parseEnv overlays Config with environment variables:
//
//	PORT                  REST port (bound as ":PORT")
//	HTTP_ADDR             REST bind address, overrides PORT
//	GRPC_ADDR             gRPC health bind address
//	DATABASE_DSN          PostgreSQL DSN
//	JWT_SECRET            token signing secret
//	TOKEN_TTL             token validity, Go duration ("5h")
//	ALLOWED_ORIGINS       comma-separated CORS origins
//	REDIS_ADDR            rate limiter Redis address
//	LOG_LEVEL             log level
//	S3_ROOT_USER, S3_ROOT_PASSWORD, S3_BUCKET, S3_REGION, S3_BASE_ENDPOINT
//
// A missing .env file is ignored; a malformed one, or an unparsable value,
// panics like the other config layers.
func parseEnv(config *Config) {
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}

	if v, ok := os.LookupEnv("PORT"); ok && v != "" {
		if _, err := strconv.Atoi(v); err != nil {
			panic("invalid PORT: " + v)
		}
		config.EndpointAddrHTTP = ":" + v
	}

	setString(&config.EndpointAddrHTTP, "HTTP_ADDR")
	setString(&config.EndpointAddrGRPC, "GRPC_ADDR")
	setString(&config.DatabaseDSN, "DATABASE_DSN")
	setString(&config.SecretKey, "JWT_SECRET")
	setString(&config.RedisAddr, "REDIS_ADDR")
	setString(&config.LogLevel, "LOG_LEVEL")
	setString(&config.S3RootUser, "S3_ROOT_USER")
	setString(&config.S3RootPassword, "S3_ROOT_PASSWORD")
	setString(&config.S3Bucket, "S3_BUCKET")
	setString(&config.S3Region, "S3_REGION")
	setString(&config.S3BaseEndpoint, "S3_BASE_ENDPOINT")

	if v, ok := os.LookupEnv("TOKEN_TTL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.AccessTokenValidityDuration = d
	}

	if v, ok := os.LookupEnv("ALLOWED_ORIGINS"); ok && v != "" {
		config.AllowedOrigins = flagx.SplitList(v)
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
