package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"

	"table-ordering-api/auth"
	"table-ordering-api/models"

	"github.com/joho/godotenv"
)

// defaultJWTSecret is only accepted outside production
const defaultJWTSecret = "table_ordering_dev_secret"

type Config struct {
	Port       string
	Production bool
	PublicURL  string
	DBPath     string
	// CORSOrigins are the browser origins allowed to call the API with
	// credentials. Defaults to PublicURL.
	CORSOrigins []string

	JWTSecret   []byte
	Credentials auth.Credentials

	// StrictTransitions enforces the per-role transition table on PATCH
	// instead of accepting any status from any authenticated caller.
	StrictTransitions bool
	// VerifyOrderTotal rejects orders whose totalAmount disagrees with
	// the sum of their line items.
	VerifyOrderTotal bool

	Redis RedisConfig
	Minio MinioConfig
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func (r RedisConfig) Enabled() bool { return r.Addr != "" }

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string
	UseSSL    bool
}

func (m MinioConfig) Enabled() bool { return m.Endpoint != "" && m.Bucket != "" }

// Load reads an optional .env file, then the process environment
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		log.Println("⚠️  No .env file found, using process environment")
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:       getEnv("PORT", "8080"),
		Production: strings.EqualFold(os.Getenv("APP_ENV"), "production") || os.Getenv("GIN_MODE") == "release",
		PublicURL:  strings.TrimRight(getEnv("PUBLIC_URL", "http://localhost:8080"), "/"),
		DBPath:     getEnv("DB_PATH", "table_ordering.db"),
		JWTSecret:  []byte(getEnv("JWT_SECRET", "")),
		Credentials: auth.Credentials{
			models.RoleAdmin:   {Username: os.Getenv("ADMIN_USERNAME"), Password: os.Getenv("ADMIN_PASSWORD")},
			models.RoleKitchen: {Username: os.Getenv("KITCHEN_USERNAME"), Password: os.Getenv("KITCHEN_PASSWORD")},
			models.RoleBilling: {Username: os.Getenv("BILLING_USERNAME"), Password: os.Getenv("BILLING_PASSWORD")},
		},
		StrictTransitions: getBool("STRICT_TRANSITIONS", false),
		VerifyOrderTotal:  getBool("VERIFY_ORDER_TOTAL", false),
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0),
		},
		Minio: MinioConfig{
			Endpoint:  os.Getenv("MINIO_ENDPOINT"),
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			Bucket:    getEnv("MINIO_BUCKET", "menu-images"),
			PublicURL: strings.TrimRight(os.Getenv("MINIO_PUBLIC_URL"), "/"),
			UseSSL:    getBool("MINIO_USE_SSL", false),
		},
	}

	cfg.CORSOrigins = splitList(os.Getenv("CORS_ORIGINS"))
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{cfg.PublicURL}
	}

	if len(cfg.JWTSecret) == 0 {
		if cfg.Production {
			return nil, errors.New("JWT_SECRET must be set in production")
		}
		log.Println("⚠️  JWT_SECRET not set, using development secret")
		cfg.JWTSecret = []byte(defaultJWTSecret)
	}

	configured := 0
	for _, cred := range cfg.Credentials {
		if cred.Username != "" && cred.Password != "" {
			configured++
		}
	}
	if configured == 0 {
		log.Println("⚠️  No staff credentials configured, staff login is disabled")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
