// ============================================================================
// backend/internal/shared/config.go
// Shared configuration management and environment variable helpers
// ============================================================================

package shared

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ============================================================================
// Configuration Structs
// ============================================================================

// ServiceConfig holds configuration for the StudySync binaries
type ServiceConfig struct {
	ServiceName string
	HTTPPort    string
	GRPCPort    string
	Environment string // development, staging, production
	LogLevel    string // debug, info, warn, error

	// Store selects and configures the data access backend
	Store StoreConfig

	// MongoDB Configuration
	MongoDB MongoConfig

	// gRPC Configuration
	GRPC GRPCConfig

	// Security Configuration
	Security SecurityConfig

	// CORS Configuration
	CORS CORSConfig
}

// StoreConfig selects the persistence backend
type StoreConfig struct {
	Driver       string // mongo or bolt
	BoltPath     string
	QueryTimeout time.Duration
}

// GRPCConfig holds gRPC-specific configuration
type GRPCConfig struct {
	MaxRecvMsgSize    int // Maximum receive message size in bytes
	MaxSendMsgSize    int // Maximum send message size in bytes
	ConnectionTimeout time.Duration
	RequestTimeout    time.Duration
}

// SecurityConfig holds bearer token settings. Tokens are issued by the
// external identity provider and share the HMAC secret with this service.
type SecurityConfig struct {
	JWTSecret          string
	JWTIssuer          string
	JWTExpirationHours int
	AuthDisabled       bool
}

// CORSConfig holds CORS-related configuration
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
	MaxAge           int // in seconds
}

const (
	StoreDriverMongo = "mongo"
	StoreDriverBolt  = "bolt"

	DefaultHTTPPort = "8080"
	DefaultGRPCPort = "50056"
)

// ============================================================================
// Configuration Loading Functions
// ============================================================================

// LoadEnv loads environment variables from .env file
func LoadEnv(envFile string) error {
	if envFile == "" {
		envFile = ".env"
	}

	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("load %s: %w", envFile, err)
	}

	slog.Info("loaded environment", "file", envFile)
	return nil
}

// LoadServiceConfig loads service configuration from environment
func LoadServiceConfig(serviceName string) (*ServiceConfig, error) {
	config := &ServiceConfig{
		ServiceName: serviceName,
		HTTPPort:    GetEnv("HTTP_PORT", DefaultHTTPPort),
		GRPCPort:    GetEnv("GRPC_PORT", DefaultGRPCPort),
		Environment: GetEnv("ENVIRONMENT", "development"),
		LogLevel:    GetEnv("LOG_LEVEL", "info"),
	}

	config.Store = StoreConfig{
		Driver:       strings.ToLower(GetEnv("STORE_DRIVER", StoreDriverMongo)),
		BoltPath:     GetEnv("BOLT_PATH", "studysync.db"),
		QueryTimeout: GetDurationEnv("STORE_QUERY_TIMEOUT", 10*time.Second),
	}

	// MongoDB is only mandatory when it is the selected backend
	mongoURI := GetEnv("MONGO_URI", "")
	if mongoURI == "" && config.Store.Driver == StoreDriverMongo {
		return nil, fmt.Errorf("MONGO_URI environment variable is required")
	}

	config.MongoDB = MongoConfig{
		URI:            mongoURI,
		Database:       GetEnv("MONGO_DB_NAME", "StudySync"),
		ConnectTimeout: GetDurationEnv("MONGO_CONNECT_TIMEOUT", 20*time.Second),
		MaxPoolSize:    uint64(GetIntEnv("MONGO_MAX_POOL_SIZE", 50)),
		MinPoolSize:    uint64(GetIntEnv("MONGO_MIN_POOL_SIZE", 5)),
		MaxIdleTime:    GetDurationEnv("MONGO_MAX_IDLE_TIME", 30*time.Second),
	}

	config.GRPC = GRPCConfig{
		MaxRecvMsgSize:    GetIntEnv("GRPC_MAX_RECV_MSG_SIZE", 4*1024*1024), // 4MB
		MaxSendMsgSize:    GetIntEnv("GRPC_MAX_SEND_MSG_SIZE", 4*1024*1024), // 4MB
		ConnectionTimeout: GetDurationEnv("GRPC_CONNECTION_TIMEOUT", 10*time.Second),
		RequestTimeout:    GetDurationEnv("GRPC_REQUEST_TIMEOUT", 30*time.Second),
	}

	config.Security = SecurityConfig{
		JWTSecret:          GetEnv("JWT_SECRET", ""),
		JWTIssuer:          GetEnv("JWT_ISSUER", "studysync"),
		JWTExpirationHours: GetIntEnv("JWT_EXPIRATION_HOURS", 24),
		AuthDisabled:       GetBoolEnv("AUTH_DISABLED", false),
	}

	config.CORS = CORSConfig{
		AllowedOrigins:   GetStringSliceEnv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		AllowedMethods:   GetStringSliceEnv("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		AllowedHeaders:   GetStringSliceEnv("CORS_ALLOWED_HEADERS", []string{"Accept", "Authorization", "Content-Type"}),
		AllowCredentials: GetBoolEnv("CORS_ALLOW_CREDENTIALS", true),
		MaxAge:           GetIntEnv("CORS_MAX_AGE", 300),
	}

	return config, nil
}

// ============================================================================
// Environment Variable Helper Functions
// ============================================================================

// GetEnv retrieves an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetIntEnv retrieves an integer environment variable or returns a default value
func GetIntEnv(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		slog.Warn("invalid integer env value, using default", "key", key, "value", valueStr, "default", defaultValue)
		return defaultValue
	}

	return value
}

// GetBoolEnv retrieves a boolean environment variable or returns a default value
func GetBoolEnv(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		slog.Warn("invalid boolean env value, using default", "key", key, "value", valueStr, "default", defaultValue)
		return defaultValue
	}

	return value
}

// GetDurationEnv retrieves a duration environment variable or returns a default value
// Supports format like "30s", "5m", "1h"
func GetDurationEnv(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		slog.Warn("invalid duration env value, using default", "key", key, "value", valueStr, "default", defaultValue)
		return defaultValue
	}

	return value
}

// GetStringSliceEnv retrieves a comma-separated string list or returns a default value
func GetStringSliceEnv(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var result []string
	for _, part := range strings.Split(valueStr, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	if len(result) == 0 {
		return defaultValue
	}

	return result
}

// ============================================================================
// Configuration Validation
// ============================================================================

// ValidateServiceConfig validates service configuration
func ValidateServiceConfig(config *ServiceConfig) error {
	if config.ServiceName == "" {
		return fmt.Errorf("service name is required")
	}

	if config.HTTPPort == "" {
		return fmt.Errorf("HTTP port is required")
	}

	switch config.Store.Driver {
	case StoreDriverMongo:
		if config.MongoDB.URI == "" {
			return fmt.Errorf("MongoDB URI is required")
		}
		if config.MongoDB.Database == "" {
			return fmt.Errorf("MongoDB database name is required")
		}
	case StoreDriverBolt:
		if config.Store.BoltPath == "" {
			return fmt.Errorf("bolt path is required")
		}
	default:
		return fmt.Errorf("unknown store driver %q", config.Store.Driver)
	}

	if config.Security.JWTSecret == "" && !config.Security.AuthDisabled {
		return fmt.Errorf("JWT_SECRET is required unless AUTH_DISABLED=true")
	}

	return nil
}

// ============================================================================
// Configuration Display (for debugging)
// ============================================================================

// PrintConfig logs configuration (sanitized) for debugging
func PrintConfig(config *ServiceConfig) {
	slog.Info("service configuration",
		"service", config.ServiceName,
		"http_port", config.HTTPPort,
		"grpc_port", config.GRPCPort,
		"environment", config.Environment,
		"log_level", config.LogLevel,
	)
	slog.Info("store configuration",
		"driver", config.Store.Driver,
		"bolt_path", config.Store.BoltPath,
		"mongo_database", config.MongoDB.Database,
		"mongo_max_pool", config.MongoDB.MaxPoolSize,
		"query_timeout", config.Store.QueryTimeout,
	)
	slog.Info("security configuration",
		"jwt_issuer", config.Security.JWTIssuer,
		"jwt_expiration_hours", config.Security.JWTExpirationHours,
		"auth_disabled", config.Security.AuthDisabled,
	)
	slog.Info("cors configuration",
		"allowed_origins", config.CORS.AllowedOrigins,
		"allow_credentials", config.CORS.AllowCredentials,
	)
}

// ============================================================================
// Environment-Specific Configuration
// ============================================================================

// IsDevelopment checks if running in development environment
func IsDevelopment(config *ServiceConfig) bool {
	return config.Environment == "development"
}

// IsProduction checks if running in production environment
func IsProduction(config *ServiceConfig) bool {
	return config.Environment == "production"
}

// GetLogLevel returns the configured log level
func GetLogLevel(config *ServiceConfig) string {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if validLevels[config.LogLevel] {
		return config.LogLevel
	}

	return "info" // Default
}
