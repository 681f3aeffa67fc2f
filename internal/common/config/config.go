package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/trandrew/microblog/internal/common/constants"
	commonerrors "github.com/trandrew/microblog/internal/common/errors"
)

type Config struct {
	DatabaseURL    string
	SecretKey      string
	PostsPerPage   int
	ResetTokenTTL  time.Duration
	RequestTimeout time.Duration
	LogDir         string
	LogLevel       string
}

func Load() (Config, error) {
	databaseURL, err := mustEnv("DATABASE_URL")
	if err != nil {
		return Config{}, err
	}

	secretKey, err := mustEnv("SECRET_KEY")
	if err != nil {
		return Config{}, err
	}

	if err := validateSecretKey(secretKey); err != nil {
		return Config{}, err
	}

	return Config{
		DatabaseURL:    databaseURL,
		SecretKey:      secretKey,
		PostsPerPage:   getIntEnv("POSTS_PER_PAGE", constants.DefaultPostsPerPage),
		ResetTokenTTL:  getDurationEnv("RESET_TOKEN_TTL", constants.DefaultResetTokenTTL),
		RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
		LogDir:         getEnv("LOG_DIR", ""),
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),
	}, nil
}

func validateSecretKey(secret string) error {
	if len(secret) < constants.SecretKeyMinLength {
		return commonerrors.ErrInvalidSecretKey.WithCause(
			fmt.Errorf("got %d bytes", len(secret)),
		)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", commonerrors.ErrMissingRequiredEnv.WithCause(fmt.Errorf("%s", key))
	}
	return v, nil
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getIntEnv(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}
