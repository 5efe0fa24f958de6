package config

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration values.
type Config struct {
	Secret      string
	TokenTTL    time.Duration
	DBDriver    string
	DatabaseDSN string
	HTTPPort    string
	CORSOrigins []string

	LogLevel  string
	LogFormat string
	LogFile   string

	SeedProducts  string
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

const defaultHTTPPort = "3000"

// Load reads configuration from the environment (and an optional .env file)
// with reasonable defaults.
func Load() Config {
	_ = godotenv.Load()
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("TOKEN_TTL", "8h")
	v.SetDefault("HTTP_PORT", defaultHTTPPort)
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_USER", "root")
	v.SetDefault("DB_NAME", "optimanager")
	v.SetDefault("CORS_ORIGINS", "http://127.0.0.1:5500")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) Config {
	driver := strings.ToLower(v.GetString("DB_DRIVER"))
	switch driver {
	case "postgres", "postgresql":
		driver = "pgx"
	case "sqlite3":
		driver = "sqlite"
	}

	dsn := v.GetString("DATABASE_DSN")
	if dsn == "" {
		dsn = buildDSN(v, driver)
	}

	port := v.GetString("HTTP_PORT")
	// Validate that port is numeric.
	if _, err := strconv.Atoi(port); err != nil {
		slog.Warn("invalid HTTP_PORT, using default", "value", port, "default", defaultHTTPPort)
		port = defaultHTTPPort
	}

	ttl, err := time.ParseDuration(v.GetString("TOKEN_TTL"))
	if err != nil || ttl <= 0 {
		ttl = 8 * time.Hour
	}

	var origins []string
	for _, o := range strings.Split(v.GetString("CORS_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return Config{
		Secret:        v.GetString("JWT_SECRET"),
		TokenTTL:      ttl,
		DBDriver:      driver,
		DatabaseDSN:   dsn,
		HTTPPort:      port,
		CORSOrigins:   origins,
		LogLevel:      v.GetString("LOG_LEVEL"),
		LogFormat:     v.GetString("LOG_FORMAT"),
		LogFile:       v.GetString("LOG_FILE"),
		SeedProducts:  v.GetString("SEED_PRODUCTS"),
		AdminName:     v.GetString("ADMIN_NAME"),
		AdminEmail:    v.GetString("ADMIN_EMAIL"),
		AdminPassword: v.GetString("ADMIN_PASSWORD"),
	}
}

func buildDSN(v *viper.Viper, driver string) string {
	host := v.GetString("DB_HOST")
	user := v.GetString("DB_USER")
	password := v.GetString("DB_PASSWORD")
	name := v.GetString("DB_NAME")
	dbPort := v.GetString("DB_PORT")

	switch driver {
	case "mysql":
		if dbPort == "" {
			dbPort = "3306"
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", user, password, host, dbPort, name)
	case "pgx":
		if dbPort == "" {
			dbPort = "5432"
		}
		return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, dbPort, name)
	default:
		return name + ".db"
	}
}
