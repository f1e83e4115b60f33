package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	POSTGRES_HOST=localhost
//	POSTGRES_PORT=5432
//	POSTGRES_USER=admin
//	POSTGRES_PASSWORD=secret
//	POSTGRES_DB=negspulse
//	POSTGRES_SSLMODE=disable
//	NEGS_INPUT_DIR=./data/input
//	NEGS_WINDOW_DAYS=7
//	NEGS_PARALLEL=0
//	NEGS_BATCH_SIZE=5000
//	EXPORT_DIR=./data/output
//	EXPORT_FORMAT=csv
//	UPLOAD_MAX_BYTES=33554432
type Config struct {
	Server    ServerConfig
	Postgres  PostgresConfig
	Ingestion IngestionConfig
	Export    ExportConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string // TCP port the HTTP server listens on (e.g., "8080")
	UploadMaxBytes int64  // Largest NEGS upload accepted by POST /api/v1/negs/parse
	RateLimitRPS   float64
	RateLimitBurst int
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host, Port, User, Password, DBName, SSLMode: connection parameters.
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

// IngestionConfig controls the directory ingestion mode.
//
// Fields:
//   - InputDir: directory scanned for NEGS .txt files.
//   - WindowDays: only sessions within the last N business days are ingested (0 = all).
//   - Parallel: files decoded concurrently (0 = auto, capped at 7).
//   - BatchSize: trades per COPY batch.
type IngestionConfig struct {
	InputDir   string
	WindowDays int
	Parallel   int
	BatchSize  int
}

// ExportConfig controls the export mode.
type ExportConfig struct {
	Dir    string
	Format string // "csv" or "xlsx"
}

// AppConfig is the globally accessible configuration instance, populated by LoadConfig().
var AppConfig Config

// LoadConfig initializes the global AppConfig.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing, validateConfig() terminates the app.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("UPLOAD_MAX_BYTES", 32<<20)
	viper.SetDefault("RATE_LIMIT_RPS", 1.0)
	viper.SetDefault("RATE_LIMIT_BURST", 60)

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "negspulse")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	viper.SetDefault("NEGS_INPUT_DIR", "./data/input")
	viper.SetDefault("NEGS_WINDOW_DAYS", 7)
	viper.SetDefault("NEGS_PARALLEL", 0)
	viper.SetDefault("NEGS_BATCH_SIZE", 5000)

	viper.SetDefault("EXPORT_DIR", "./data/output")
	viper.SetDefault("EXPORT_FORMAT", "csv")

	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // .env is optional

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			UploadMaxBytes: viper.GetInt64("UPLOAD_MAX_BYTES"),
			RateLimitRPS:   viper.GetFloat64("RATE_LIMIT_RPS"),
			RateLimitBurst: viper.GetInt("RATE_LIMIT_BURST"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
		Ingestion: IngestionConfig{
			InputDir:   viper.GetString("NEGS_INPUT_DIR"),
			WindowDays: viper.GetInt("NEGS_WINDOW_DAYS"),
			Parallel:   viper.GetInt("NEGS_PARALLEL"),
			BatchSize:  viper.GetInt("NEGS_BATCH_SIZE"),
		},
		Export: ExportConfig{
			Dir:    viper.GetString("EXPORT_DIR"),
			Format: viper.GetString("EXPORT_FORMAT"),
		},
	}

	AppConfig.Postgres.URL = AppConfig.Postgres.DSN()

	validateConfig()
}

// DSN builds the PostgreSQL connection string used by database/sql.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.DBName,
		p.SSLMode,
	)
}

// validateConfig collects missing or invalid settings and terminates the
// application with log.Fatalf if there are any.
func validateConfig() {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
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
	if AppConfig.Ingestion.BatchSize <= 0 {
		missing = append(missing, "NEGS_BATCH_SIZE")
	}
	if f := AppConfig.Export.Format; f != "csv" && f != "xlsx" {
		missing = append(missing, "EXPORT_FORMAT")
	}

	if len(missing) > 0 {
		log.Fatalf("missing or invalid environment variables: %v\n", missing)
	}
}
