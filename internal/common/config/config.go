package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/AlibekovAA/notes-app/backend/internal/common/constants"
)

var (
	ErrMissingRequiredEnv = errors.New("missing required environment variable")
	ErrInvalidJWTSecret   = errors.New("JWT_SECRET must be at least 32 bytes")
	ErrUnknownBackend     = errors.New("unknown store backend")
)

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

const (
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type NotesConfig struct {
	Env            string
	HTTPPort       string
	StoreBackend   string
	MongoURI       string
	MongoDatabase  string
	DatabaseURL    string
	JWTSecret      string
	TokenTTL       time.Duration
	RequestTimeout time.Duration
	LogDir         string
	LogLevel       string
}

func (c NotesConfig) IsTest() bool {
	return c.Env == EnvTest
}

// LoadDotEnv reads files into the process environment without overriding
// variables that are already set. A missing file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

func LoadNotesConfig() (NotesConfig, error) {
	jwtSecret, err := mustEnv("JWT_SECRET")
	if err != nil {
		return NotesConfig{}, err
	}

	if err := validateJWTSecret(jwtSecret); err != nil {
		return NotesConfig{}, err
	}

	env := strings.ToLower(getEnv("APP_ENV", EnvDevelopment))

	cfg := NotesConfig{
		Env:            env,
		HTTPPort:       getEnv("HTTP_PORT", constants.DefaultHTTPPort),
		StoreBackend:   strings.ToLower(getEnv("STORE_BACKEND", BackendMongo)),
		JWTSecret:      jwtSecret,
		TokenTTL:       getDurationEnv("TOKEN_TTL", constants.DefaultTokenTTL),
		RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
		LogDir:         getEnv("LOG_DIR", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	switch cfg.StoreBackend {
	case BackendMongo:
		uri, err := mustEnv(mongoURIKey(env))
		if err != nil {
			return NotesConfig{}, err
		}
		cfg.MongoURI = uri
		cfg.MongoDatabase = getEnv("MONGODB_DATABASE", defaultMongoDatabase(env))
	case BackendPostgres:
		url, err := mustEnv("DATABASE_URL")
		if err != nil {
			return NotesConfig{}, err
		}
		cfg.DatabaseURL = url
	case BackendMemory:
	default:
		return NotesConfig{}, fmt.Errorf("%w: %s", ErrUnknownBackend, cfg.StoreBackend)
	}

	return cfg, nil
}

func mongoURIKey(env string) string {
	if env == EnvTest {
		if _, ok := os.LookupEnv("TEST_MONGODB_URI"); ok {
			return "TEST_MONGODB_URI"
		}
	}
	return "MONGODB_URI"
}

func defaultMongoDatabase(env string) string {
	if env == EnvTest {
		return constants.TestMongoDatabase
	}
	return constants.DefaultMongoDatabase
}

func validateJWTSecret(secret string) error {
	if len(secret) < constants.JWTSecretMinLength {
		return fmt.Errorf("%w: got %d bytes", ErrInvalidJWTSecret, len(secret))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingRequiredEnv, key)
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
