package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Backend names accepted for QUERY_BACKEND.
const (
	BackendPostgres = "postgres"
	BackendRemote   = "remote"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system:
// server settings, the query backend selection, and analytics policy.
//
// Example YAML/ENV equivalent:
//
//	SERVER_PORT=8080
//	QUERY_BACKEND=postgres
//	POSTGRES_HOST=localhost
//	POSTGRES_PORT=5432
//	POSTGRES_USER=admin
//	POSTGRES_PASSWORD=secret
//	POSTGRES_DB=bondpulse
//	POSTGRES_SSLMODE=disable
//	QUERY_API_BASE_URL=https://api.example.com
//	QUERY_API_APP_ID=glimpse-app
//	GLIMPSE_CLIENT_ID=Client 1
//	MARKET_LAG_DAYS=30
//	MIN_CONTRIBUTORS=5
type Config struct {
	Server    ServerConfig    // HTTP server configuration
	Query     QueryConfig     // Query backend selection and remote API settings
	Postgres  PostgresConfig  // PostgreSQL connection settings (postgres backend)
	Analytics AnalyticsConfig // Analytics policy knobs
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string // The TCP port the HTTP server will listen on (e.g., "8080")
}

// QueryConfig selects and configures the query-execution backend.
//
// Fields:
//   - Backend: "postgres" for a direct database connection, "remote" for
//     the hosted query API.
//   - BaseURL, AppID, APIKey: remote backend settings.
type QueryConfig struct {
	Backend string
	BaseURL string
	AppID   string
	APIKey  string
}

// AnalyticsConfig carries the deployment's analytics policy.
//
// Fields:
//   - ClientID: the authenticated client identity used for client-context
//     queries. Read from configuration only — never from request input —
//     so one client cannot impersonate another.
//   - MarketLagDays: market data can never be more recent than this many
//     days; the date cap is applied to every market-scope range.
//   - MinContributors: minimum distinct contributors before market totals
//     are released.
type AnalyticsConfig struct {
	ClientID        string
	MarketLagDays   int
	MinContributors int
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host: hostname of the database server.
//   - Port: port number of the database server (default 5432).
//   - User: username for authentication.
//   - Password: password for authentication.
//   - DBName: target database name.
//   - SSLMode: SSL mode (e.g., "disable", "require").
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
// All services should import this package and read from AppConfig instead of
// reloading environment variables directly.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Behavior:
//   - Sets defaults for all required fields.
//   - Reads environment variables automatically with viper.AutomaticEnv().
//   - Constructs the PostgreSQL connection string (DSN).
//   - Calls validateConfig() to ensure required fields are present.
//
// Fatal exit:
//   - If required variables are missing, validateConfig() will terminate the app
//     with a descriptive log message.
func LoadConfig() {
	// Default values
	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("QUERY_BACKEND", BackendPostgres)
	viper.SetDefault("QUERY_API_BASE_URL", "")
	viper.SetDefault("QUERY_API_APP_ID", "")
	viper.SetDefault("QUERY_API_KEY", "")

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "bondpulse")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	viper.SetDefault("GLIMPSE_CLIENT_ID", "")
	viper.SetDefault("MARKET_LAG_DAYS", 30)
	viper.SetDefault("MIN_CONTRIBUTORS", 5)

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	// Read environment variables automatically
	viper.AutomaticEnv()

	// Populate global config instance
	AppConfig = Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Query: QueryConfig{
			Backend: strings.ToLower(viper.GetString("QUERY_BACKEND")),
			BaseURL: viper.GetString("QUERY_API_BASE_URL"),
			AppID:   viper.GetString("QUERY_API_APP_ID"),
			APIKey:  viper.GetString("QUERY_API_KEY"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
		Analytics: AnalyticsConfig{
			ClientID:        viper.GetString("GLIMPSE_CLIENT_ID"),
			MarketLagDays:   viper.GetInt("MARKET_LAG_DAYS"),
			MinContributors: viper.GetInt("MIN_CONTRIBUTORS"),
		},
	}

	// Construct Postgres DSN (used by database/sql)
	AppConfig.Postgres.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		AppConfig.Postgres.User,
		AppConfig.Postgres.Password,
		AppConfig.Postgres.Host,
		AppConfig.Postgres.Port,
		AppConfig.Postgres.DBName,
		AppConfig.Postgres.SSLMode,
	)

	// Validate critical fields
	validateConfig()
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing.
//
// This avoids unexpected runtime failures due to incomplete configuration.
//
// Behavior:
//   - Checks the fields the selected query backend requires.
//   - Collects missing ones in a slice.
//   - If any are missing, logs them and terminates the app with log.Fatalf().
func validateConfig() {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}

	switch AppConfig.Query.Backend {
	case BackendPostgres:
		if AppConfig.Postgres.Host == "" {
			missing = append(missing, "POSTGRES_HOST")
		}
		if AppConfig.Postgres.Port == 0 {
			missing = append(missing, "POSTGRES_PORT")
		}
		if AppConfig.Postgres.User == "" {
			missing = append(missing, "POSTGRES_USER")
		}
		if AppConfig.Postgres.Password == "" {
			missing = append(missing, "POSTGRES_PASSWORD")
		}
		if AppConfig.Postgres.DBName == "" {
			missing = append(missing, "POSTGRES_DB")
		}
	case BackendRemote:
		if AppConfig.Query.BaseURL == "" {
			missing = append(missing, "QUERY_API_BASE_URL")
		}
		if AppConfig.Query.AppID == "" {
			missing = append(missing, "QUERY_API_APP_ID")
		}
	default:
		log.Fatalf("❌ Unknown QUERY_BACKEND %q (expected %q or %q)\n",
			AppConfig.Query.Backend, BackendPostgres, BackendRemote)
	}

	if len(missing) > 0 {
		log.Fatalf("❌ Missing required environment variables: %v\n", missing)
	}
}
