package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AppName    string
	Env        string
	Debug      bool
	Port       string
	APIVersion string

	// FrontendURL is embedded in verification-email links.
	FrontendURL string

	JWTSecret       string
	JWTAlgorithm    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	AppwriteEndpoint   string
	AppwriteProjectID  string
	AppwriteAPIKey     string
	AppwriteDatabaseID string
	UsersCollectionID  string

	CORSOrigins []string

	// BcryptRounds is carried for deployment parity; password hashing is
	// delegated to Appwrite and nothing in this process hashes.
	BcryptRounds int

	RegisterLimitPerMin int
	LoginLimitPerMin    int
	MeLimitPerMin       int
	LogoutLimitPerMin   int
}

func Load() Config {
	cfg := Config{
		AppName:    getEnv("APP_NAME", "cloudkeep-auth"),
		Env:        getEnv("APP_ENV", "development"),
		Debug:      getEnvBool("DEBUG", false),
		Port:       getEnv("PORT", "8000"),
		APIVersion: getEnv("API_VERSION", "v1"),

		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),

		JWTSecret:       getEnv("JWT_SECRET_KEY", "dev-secret-change-in-production"),
		JWTAlgorithm:    getEnv("JWT_ALGORITHM", "HS256"),
		AccessTokenTTL:  time.Duration(getEnvInt("JWT_ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,
		RefreshTokenTTL: time.Duration(getEnvInt("JWT_REFRESH_TOKEN_EXPIRE_DAYS", 7)) * 24 * time.Hour,

		AppwriteEndpoint:   getEnv("APPWRITE_ENDPOINT", "https://cloud.appwrite.io/v1"),
		AppwriteProjectID:  getEnv("APPWRITE_PROJECT_ID", ""),
		AppwriteAPIKey:     getEnv("APPWRITE_API_KEY", ""),
		AppwriteDatabaseID: getEnv("APPWRITE_DATABASE_ID", ""),
		UsersCollectionID:  getEnv("COLLECTION_USERS", "users"),

		CORSOrigins: splitOrigins(getEnv("CORS_ORIGINS", "http://localhost:3000")),

		BcryptRounds: getEnvInt("BCRYPT_ROUNDS", 12),

		RegisterLimitPerMin: getEnvInt("RATE_LIMIT_REGISTER", 5),
		LoginLimitPerMin:    getEnvInt("RATE_LIMIT_LOGIN", 10),
		MeLimitPerMin:       getEnvInt("RATE_LIMIT_ME", 5),
		LogoutLimitPerMin:   getEnvInt("RATE_LIMIT_LOGOUT", 5),
	}

	if cfg.Env == "production" && cfg.JWTSecret == "dev-secret-change-in-production" {
		slog.Error("JWT_SECRET_KEY must be set in production environment")
		os.Exit(1)
	}

	switch cfg.JWTAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		slog.Error("unsupported JWT_ALGORITHM, expected HS256/HS384/HS512", "algorithm", cfg.JWTAlgorithm)
		os.Exit(1)
	}

	return cfg
}

func splitOrigins(s string) []string {
	parts := strings.Split(s, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer env value, using fallback", "key", key, "value", v)
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid boolean env value, using fallback", "key", key, "value", v)
		return fallback
	}
	return b
}
