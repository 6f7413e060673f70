package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Auth     AuthConfig
	Platform PlatformConfig
	Jobs     JobsConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Env             string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver     string
	Host       string
	Port       int
	User       string
	Password   string
	DBName     string
	SSLMode    string
	SQLitePath string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	PASSWORD string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

// AuthConfig holds wallet sign-in configuration
type AuthConfig struct {
	NonceTTL time.Duration
}

// PlatformConfig holds the authority address and the settings seeded on first start
type PlatformConfig struct {
	AuthorityAddress      string
	KycVersion            uint64
	KycDurationUpdate     time.Duration
	KycRenewExpireTime    time.Duration
	ProjectExpireEach     time.Duration
	ProjectServiceFeeWei  string
	ProjectDurationPayFee time.Duration
	SettingsCacheTTL      time.Duration
}

// JobsConfig holds background job intervals
type JobsConfig struct {
	ExpiryReportInterval time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			Env:             getEnv("SERVER_ENV", "development"),
			AllowedOrigins:  getEnvAsList("CORS_ALLOWED_ORIGINS"),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", "postgres"),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnvAsInt("DB_PORT", 5432),
			User:       getEnv("DB_USER", "postgres"),
			Password:   getEnv("DB_PASSWORD", "postgres"),
			DBName:     getEnv("DB_NAME", "kyc_platform"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
			SQLitePath: getEnv("DB_SQLITE_PATH", "kyc_platform.db"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			PASSWORD: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret:       getEnv("JWT_SECRET", "change-this-in-production"),
			AccessExpiry: getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
		},
		Auth: AuthConfig{
			NonceTTL: getEnvAsDuration("AUTH_NONCE_TTL", 5*time.Minute),
		},
		Platform: PlatformConfig{
			AuthorityAddress:      getEnv("AUTHORITY_ADDRESS", ""),
			KycVersion:            getEnvAsUint64("KYC_VERSION", 1),
			KycDurationUpdate:     getEnvAsDuration("KYC_DURATION_UPDATE_VERSION", 30*24*time.Hour),
			KycRenewExpireTime:    getEnvAsDuration("KYC_RENEW_EXPIRE_TIME", 365*24*time.Hour),
			ProjectExpireEach:     getEnvAsDuration("PROJECT_EXPIRE_EACH", 365*24*time.Hour),
			ProjectServiceFeeWei:  getEnv("PROJECT_SERVICE_FEE_WEI", "0"),
			ProjectDurationPayFee: getEnvAsDuration("PROJECT_DURATION_PAYMENT_FEE", 30*24*time.Hour),
			SettingsCacheTTL:      getEnvAsDuration("SETTINGS_CACHE_TTL", time.Minute),
		},
		Jobs: JobsConfig{
			ExpiryReportInterval: getEnvAsDuration("EXPIRY_REPORT_INTERVAL", time.Minute),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsUint64(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.ParseUint(value, 10, 64); err == nil {
			return v
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated variable, dropping empty items
func getEnvAsList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
