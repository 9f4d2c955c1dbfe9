package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HTTPPort        string        `envconfig:"HTTP_PORT" default:"8080"`
	CatalogBaseURL  string        `envconfig:"CATALOG_BASE_URL" default:"https://fakestoreapi.com"`
	IdentityBaseURL string        `envconfig:"IDENTITY_BASE_URL" default:"https://identitytoolkit.googleapis.com"`
	IdentityAPIKey  string        `envconfig:"IDENTITY_API_KEY" default:""`
	RedisAddr       string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword   string        `envconfig:"REDIS_PASSWORD" default:""`
	MongoURI        string        `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDBName     string        `envconfig:"MONGO_DB_NAME" default:"urbanwear"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	PaymentDelay    time.Duration `envconfig:"PAYMENT_DELAY" default:"2s"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
