package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Port           string
	Env            string
	MongoURI       string
	DBName         string
	StoreDriver    string
	JWTSecret      []byte
	TokenTTL       time.Duration
	CookieName     string
	ShippingFee    decimal.Decimal
	FreeShipping   decimal.Decimal
	RequestTimeout time.Duration
	CartIdleTTL    time.Duration
	CORSOrigins    []string
	AdminEmails    []string
	KafkaBrokers   []string
}

func (c Config) Production() bool { return c.Env == "production" }

// LoadEnv reads .env into the process environment. A missing file is fine;
// real deployments set variables directly.
func LoadEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: error loading .env: %v", err)
	}
}

func GetEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func Load() (Config, error) {
	cfg := Config{
		Port:         GetEnv("PORT", "8080"),
		Env:          GetEnv("APP_ENV", "development"),
		MongoURI:     GetEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:       GetEnv("DB_NAME", "storefront"),
		StoreDriver:  GetEnv("STORE_DRIVER", StoreMongo),
		CookieName:   GetEnv("COOKIE_NAME", "token"),
		CORSOrigins:  list(GetEnv("CORS_ORIGINS", "http://localhost:3000")),
		AdminEmails:  list(strings.ToLower(GetEnv("ADMIN_EMAILS", ""))),
		KafkaBrokers: list(GetEnv("KAFKA_BROKERS", "")),
	}

	secret := GetEnv("JWT_SECRET", "")
	if secret == "" {
		return Config{}, errors.New("JWT_SECRET is not set")
	}
	cfg.JWTSecret = []byte(secret)

	if cfg.StoreDriver != StoreMongo && cfg.StoreDriver != StoreMemory {
		return Config{}, fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreMongo, StoreMemory, cfg.StoreDriver)
	}

	var err error
	if cfg.TokenTTL, err = duration("TOKEN_TTL", 32*24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.RequestTimeout, err = duration("REQUEST_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.CartIdleTTL, err = duration("CART_IDLE_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.ShippingFee, err = money("SHIPPING_FEE", "2500"); err != nil {
		return Config{}, err
	}
	if cfg.FreeShipping, err = money("FREE_SHIPPING_THRESHOLD", "0"); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func duration(key string, fallback time.Duration) (time.Duration, error) {
	raw := GetEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s: invalid duration %q", key, raw)
	}
	return d, nil
}

func money(key, fallback string) (decimal.Decimal, error) {
	raw := GetEnv(key, fallback)
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s: invalid amount %q", key, raw)
	}
	return d, nil
}

func list(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
