package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DriverPostgres and DriverSQLite are the two datastore backends the
	// env cascade can resolve to.
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	ServerPort  string
	Environment string

	// Resolved datastore target, see resolveDatabase.
	DatabaseDriver string
	DatabaseDSN    string

	// Upstream sources for the refresh pipeline.
	CountriesAPIURL string
	ExchangeAPIURL  string
	FetchTimeout    time.Duration

	// Where the summary artifact is written and served from.
	CachePath string
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Platforms like Railway inject PORT; SERVER_PORT is the local override.
	port := os.Getenv("PORT")
	if port == "" {
		port = getEnv("SERVER_PORT", "8080")
	}

	driver, dsn := resolveDatabase()

	return &Config{
		ServerPort:      port,
		Environment:     getEnv("ENVIRONMENT", "development"),
		DatabaseDriver:  driver,
		DatabaseDSN:     dsn,
		CountriesAPIURL: getEnv("COUNTRIES_API_URL", "https://restcountries.com/v2/all?fields=name,capital,region,population,flag,currencies"),
		ExchangeAPIURL:  getEnv("EXCHANGE_API_URL", "https://open.er-api.com/v6/latest/USD"),
		FetchTimeout:    time.Duration(getEnvInt("API_TIMEOUT_SECONDS", 30)) * time.Second,
		CachePath:       getEnv("CACHE_PATH", "cache/summary.png"),
	}
}

// resolveDatabase walks the supported variable-naming schemes in priority
// order and returns the first datastore target that is fully specified.
func resolveDatabase() (driver, dsn string) {
	// Priority 1: a full connection string
	if url := os.Getenv("DATABASE_URL"); url != "" {
		log.Println("Using DATABASE_URL from environment")
		return DriverPostgres, url
	}

	// Priority 2: discrete PG* variables (Railway style, no underscores)
	if dsn := postgresDSN(
		os.Getenv("PGHOST"),
		os.Getenv("PGUSER"),
		os.Getenv("PGPASSWORD"),
		os.Getenv("PGDATABASE"),
		os.Getenv("PGPORT"),
	); dsn != "" {
		log.Println("Using PG* variables from environment")
		return DriverPostgres, dsn
	}

	// Priority 3: underscored POSTGRES_* variables
	if dsn := postgresDSN(
		os.Getenv("POSTGRES_HOST"),
		os.Getenv("POSTGRES_USER"),
		os.Getenv("POSTGRES_PASSWORD"),
		os.Getenv("POSTGRES_DB"),
		os.Getenv("POSTGRES_PORT"),
	); dsn != "" {
		log.Println("Using POSTGRES_* variables from environment")
		return DriverPostgres, dsn
	}

	// Priority 4: local sqlite file
	return DriverSQLite, getEnv("DB_PATH", "db/app.db")
}

// postgresDSN builds a GORM postgres DSN from discrete variables. Returns
// an empty string unless host, user and database name are all present.
func postgresDSN(host, user, password, dbname, port string) string {
	if host == "" || user == "" || dbname == "" {
		return ""
	}
	if port == "" {
		port = "5432"
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		host, user, password, dbname, port,
	)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
