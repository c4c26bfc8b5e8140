package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the server reads from the environment. Load a .env
// file first (main does) so local dev only needs the file.
type Config struct {
	AppEnv  string `envconfig:"APP_ENV" default:"dev"`
	Port    int    `envconfig:"PORT" default:"4000"`
	DataDir string `envconfig:"DATA_DIR" default:"./data"`

	// Frontend Vite default origin.
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`

	JWTSecret string `envconfig:"JWT_SECRET" default:"dev-secret-change-me"`

	ResendAPIKey string `envconfig:"RESEND_API_KEY"`
	FromEmail    string `envconfig:"FROM_EMAIL"`

	StoreBackend string `envconfig:"STORE_BACKEND" default:"file"`
	MongoURI     string `envconfig:"MONGODB_URI"`
	DBName       string `envconfig:"DB_NAME" default:"geoportal"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if cfg.StoreBackend == "mongo" && cfg.MongoURI == "" {
		return Config{}, fmt.Errorf("MONGODB_URI is required when STORE_BACKEND=mongo")
	}
	return cfg, nil
}
