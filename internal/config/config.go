package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the full configuration surface of the desk backend.
type Config struct {
	Server   ServerConfig
	Admin    AdminConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Worker   WorkerConfig
}

// ServerConfig holds HTTP listener options.
type ServerConfig struct {
	Port      string
	StaticDir string
}

// AdminConfig holds the shared secret guarding stock overwrites.
type AdminConfig struct {
	Password string
}

// PostgresConfig holds connection settings for the ledger database.
type PostgresConfig struct {
	Host    string
	Port    string
	User    string
	Pass    string
	DB      string
	SSLMode string
}

// RedisConfig holds the broker address for the import queue.
type RedisConfig struct {
	Addr string
}

// WorkerConfig holds import-queue consumer settings.
type WorkerConfig struct {
	Concurrency int
}

// Load reads the environment (optionally seeded from a .env file) and
// materializes a Config. Missing .env files are fine; configuration may come
// from the process environment directly.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:      getEnv("PORT", "3000"),
			StaticDir: getEnv("STATIC_DIR", "./public"),
		},
		Admin: AdminConfig{
			Password: getEnv("ADMIN_PWD", "admin123"),
		},
		Postgres: PostgresConfig{
			Host:    getEnv("PG_HOST", "localhost"),
			Port:    getEnv("PG_PORT", "5432"),
			User:    getEnv("PG_USER", "postgres"),
			Pass:    getEnv("PG_PASS", "postgres"),
			DB:      getEnv("PG_DB", "bullion"),
			SSLMode: getEnv("PG_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr: getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		},
		Worker: WorkerConfig{
			Concurrency: getEnvInt("WORKER_CONCURRENCY", 10),
		},
	}
}

// ConnectionURI renders the pgx/golang-migrate connection string.
func (p PostgresConfig) ConnectionURI() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		p.User, p.Pass, p.Host, p.Port, p.DB, p.SSLMode)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}
