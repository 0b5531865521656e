package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// insecureDefaultSecret matches the fallback the original deployment
// shipped with. It is only honored in development mode.
const insecureDefaultSecret = "supersecretkey"

type Config struct {
	Port           string
	AppEnv         string
	MongoURI       string
	MongoDBName    string
	JWTSecret      string
	AllowedOrigins []string
	LogsPath       string
}

// Load reads configuration from the environment, after loading a .env
// file when one is present.
func Load() (*Config, error) {
	// .env is optional; real deployments configure the environment directly.
	_ = godotenv.Load(".env")

	cfg := &Config{
		Port:        getEnv("PORT", "5000"),
		AppEnv:      getEnv("APP_ENV", "development"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName: getEnv("MONGO_DB_NAME", "project_tracker"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		LogsPath:    getEnv("LOGS_PATH", "logs/server.log"),
	}

	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	if cfg.JWTSecret == "" {
		if cfg.AppEnv != "development" {
			return nil, fmt.Errorf("JWT_SECRET must be set when APP_ENV=%s", cfg.AppEnv)
		}
		cfg.JWTSecret = insecureDefaultSecret
	}

	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
