package config

import (
	"os"
	"strconv"
	"strings"
)

// Server configuration
type ServerConfig struct {
	Port string
	Host string
}

// MongoDB configuration
type MongoConfig struct {
	URI      string
	Database string
}

// Auth configuration
type AuthConfig struct {
	JWTSecret        string
	TokenTTLHours    int
	BcryptCost       int
	PlatformAdminCap int
}

// Relay configuration
type RelayConfig struct {
	Port           string
	Host           string
	MaxMessageSize int64
	SendBuffer     int
}

// Seed admin configuration
type SeedAdminConfig struct {
	Name     string
	Email    string
	Password string
}

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Mongo     MongoConfig
	Auth      AuthConfig
	Relay     RelayConfig
	SeedAdmin SeedAdminConfig
}

// Default configuration values
const (
	DefaultServerPort = "3000"
	DefaultServerHost = ""
	DefaultMongoURI   = "mongodb://localhost:27017/supportdesk"
	DefaultMongoDB    = "supportdesk"

	DefaultJWTSecret        = "change-me-in-production"
	DefaultTokenTTLHours    = 168 // 7 days
	DefaultBcryptCost       = 10
	DefaultPlatformAdminCap = 2

	DefaultRelayPort      = "3001"
	DefaultRelayHost      = ""
	DefaultMaxMessageSize = 8 * 1024
	DefaultSendBuffer     = 32

	DefaultSeedAdminName  = "Platform Admin"
	DefaultSeedAdminEmail = "admin@support.com"
)

// New returns a new Config with values from the environment, falling
// back to defaults.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", DefaultServerPort),
			Host: getEnv("SERVER_HOST", DefaultServerHost),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", DefaultMongoURI),
			Database: getEnv("MONGO_DB", DefaultMongoDB),
		},
		Auth: AuthConfig{
			JWTSecret:        getEnv("JWT_SECRET", DefaultJWTSecret),
			TokenTTLHours:    getEnvInt("TOKEN_TTL_HOURS", DefaultTokenTTLHours),
			BcryptCost:       getEnvInt("BCRYPT_COST", DefaultBcryptCost),
			PlatformAdminCap: getEnvInt("AUTH_PLATFORM_ADMIN_CAP", DefaultPlatformAdminCap),
		},
		Relay: RelayConfig{
			Port:           getEnv("RELAY_PORT", DefaultRelayPort),
			Host:           getEnv("RELAY_HOST", DefaultRelayHost),
			MaxMessageSize: int64(getEnvInt("RELAY_MAX_MESSAGE_SIZE", DefaultMaxMessageSize)),
			SendBuffer:     getEnvInt("RELAY_SEND_BUFFER", DefaultSendBuffer),
		},
		SeedAdmin: SeedAdminConfig{
			Name:     getEnv("SEED_ADMIN_NAME", DefaultSeedAdminName),
			Email:    getEnv("SEED_ADMIN_EMAIL", DefaultSeedAdminEmail),
			Password: getEnv("SEED_ADMIN_PASSWORD", ""),
		},
	}
}

// Address returns the server address string
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// Address returns the relay listen address string
func (c *RelayConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		switch strings.ToLower(value) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return defaultValue
}
