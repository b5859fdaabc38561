package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all process configuration. It is loaded once in main and
// passed explicitly to the components that need it.
type Config struct {
	Port           string        `envconfig:"PORT" default:"5001"`
	Env            string        `envconfig:"APP_ENV" default:"production"`
	MongoURI       string        `envconfig:"MONGODB_URI" default:"mongodb://localhost:27017"`
	MongoDatabase  string        `envconfig:"MONGODB_DATABASE" default:"hamzashop"`
	AdminUsername  string        `envconfig:"ADMIN_USERNAME" required:"true"`
	AdminPassword  string        `envconfig:"ADMIN_PASSWORD" required:"true"`
	SessionTTL     time.Duration `envconfig:"SESSION_TTL" default:"168h"`
	AllowedOrigins string        `envconfig:"ALLOWED_ORIGINS" default:"http://onyxia.store"`
	UploadDir      string        `envconfig:"UPLOAD_DIR" default:"./uploads"`
	BodyLimit      int           `envconfig:"BODY_LIMIT" default:"10485760"`
}

// Load reads .env (when present) and the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Development reports whether the process runs in development mode.
// Error details in responses are only exposed in development.
func (c Config) Development() bool {
	return c.Env == "development"
}
