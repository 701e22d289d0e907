package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const defaultDSN = "host=localhost user=postgres password=postgres dbname=attendance port=5432 sslmode=disable"

type Config struct {
	HTTPPort    string
	DBDriver    string // postgres | mysql | sqlite
	DatabaseDSN string
	JWTSecret   string
	TokenTTL    time.Duration
	CORSOrigins string
	LogSQL      bool
}

func Load() *Config {
	// .env opsiyonel, gerçek ortam değişkenleri önceliklidir
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] .env dosyası bulunamadı, ortam değişkenleri kullanılıyor")
	}

	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		DBDriver:    getEnv("DB_DRIVER", "postgres"),
		DatabaseDSN: getEnv("DATABASE_DSN", defaultDSN),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		TokenTTL:    time.Duration(getEnvInt("JWT_TTL_HOURS", 7*24)) * time.Hour,
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		LogSQL:      getEnvBool("LOG_SQL", false),
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
	if cfg.DatabaseDSN == defaultDSN {
		log.Println("[WARN] DATABASE_DSN varsayılan değer kullanılıyor, production için kendi bağlantı bilgini tanımla.")
	}
	if cfg.CORSOrigins == "http://localhost:3000" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS varsayılan değer kullanılıyor.")
	}

	return cfg
}

// Validate: kullanılamaz bir ayar varsa hata döner
func (c *Config) Validate() error {
	switch {
	case c.JWTSecret == "":
		return errors.New("JWT_SECRET environment değişkeni tanımlanmamış")
	case len(c.JWTSecret) < 32:
		return errors.New("JWT_SECRET en az 32 karakter olmalıdır")
	case c.TokenTTL <= 0:
		return errors.New("JWT_TTL_HOURS pozitif olmalıdır")
	}
	switch c.DBDriver {
	case "postgres", "mysql", "sqlite":
	default:
		return errors.New("DB_DRIVER desteklenmiyor: " + c.DBDriver)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[WARN] %s sayı değil (%q), varsayılan %d kullanılıyor", key, v, def)
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
