// internal/config/config.go

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"campusnav/internal/domain/geo"
)

// Config holds all application configuration
type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	NATS        NATSConfig
	Auth        AuthConfig
	Campus      CampusConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CorsOrigins     []string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Database     string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
	SSLMode      string
}

// NATSConfig holds NATS configuration
type NATSConfig struct {
	URL            string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectTimeout time.Duration
}

// AuthConfig holds admin authentication configuration
type AuthConfig struct {
	TokenSecret string
	TokenExpiry time.Duration
}

// CampusConfig holds the campus map geometry and export naming.
// Defaults match the KIIT deployment.
type CampusConfig struct {
	Center      geo.LatLng
	Bounds      geo.Bounds
	DefaultZoom int
	FocusZoom   int
	OrgName     string
}

// Load loads configuration from environment variables
func Load() (Config, error) {
	config := Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			CorsOrigins:     getEnvAsSlice("SERVER_CORS_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnvAsInt("DB_PORT", 5432),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Database:     getEnv("DB_NAME", "campusnav"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsDuration("DB_MAX_LIFETIME", 5*time.Minute),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
		},
		NATS: NATSConfig{
			URL:            getEnv("NATS_URL", "nats://localhost:4222"),
			MaxReconnects:  getEnvAsInt("NATS_MAX_RECONNECTS", 10),
			ReconnectWait:  getEnvAsDuration("NATS_RECONNECT_WAIT", 1*time.Second),
			ConnectTimeout: getEnvAsDuration("NATS_CONNECT_TIMEOUT", 2*time.Second),
		},
		Auth: AuthConfig{
			TokenSecret: getEnv("AUTH_TOKEN_SECRET", "your-secret-key"),
			TokenExpiry: getEnvAsDuration("AUTH_TOKEN_EXPIRY", 24*time.Hour),
		},
		Campus: CampusConfig{
			Center: geo.LatLng{
				Lat: getEnvAsFloat("CAMPUS_CENTER_LAT", 20.3532),
				Lng: getEnvAsFloat("CAMPUS_CENTER_LNG", 85.8180),
			},
			Bounds: geo.Bounds{
				North: getEnvAsFloat("CAMPUS_BOUND_NORTH", 20.37),
				South: getEnvAsFloat("CAMPUS_BOUND_SOUTH", 20.34),
				East:  getEnvAsFloat("CAMPUS_BOUND_EAST", 85.84),
				West:  getEnvAsFloat("CAMPUS_BOUND_WEST", 85.80),
			},
			DefaultZoom: getEnvAsInt("CAMPUS_DEFAULT_ZOOM", 15),
			FocusZoom:   getEnvAsInt("CAMPUS_FOCUS_ZOOM", 17),
			OrgName:     getEnv("CAMPUS_ORG_NAME", "kiit"),
		},
	}

	return config, validate(config)
}

// validate checks if config is valid
func validate(config Config) error {
	if config.Auth.TokenSecret == "your-secret-key" && config.Environment != "development" {
		return fmt.Errorf("token secret must be set in non-development environments")
	}

	if config.Campus.Bounds.North <= config.Campus.Bounds.South {
		return fmt.Errorf("campus bound box is inverted: north must be greater than south")
	}

	if config.Campus.Bounds.East <= config.Campus.Bounds.West {
		return fmt.Errorf("campus bound box is inverted: east must be greater than west")
	}

	if !config.Campus.Bounds.Contains(config.Campus.Center) {
		return fmt.Errorf("campus center lies outside the campus bound box")
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
