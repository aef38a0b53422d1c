package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

type Config struct {
	HTTPPort       string        `yaml:"HTTP_PORT"       env:"HTTP_PORT"       env-default:"8080"`
	MongoURI       string        `yaml:"MONGO_URI"       env:"MONGO_URI"       env-default:"mongodb://localhost:27017"`
	MongoDatabase  string        `yaml:"MONGO_DATABASE"  env:"MONGO_DATABASE"  env-default:"surveyform"`
	StorageBackend string        `yaml:"STORAGE_BACKEND" env:"STORAGE_BACKEND" env-default:"mongo"`
	StoreTimeout   time.Duration `yaml:"STORE_TIMEOUT"   env:"STORE_TIMEOUT"   env-default:"5s"`
	RedisAddr      string        `yaml:"REDIS_ADDR"      env:"REDIS_ADDR"`
	RedisPassword  string        `yaml:"REDIS_PASSWORD"  env:"REDIS_PASSWORD"`
	RedisDB        int           `yaml:"REDIS_DB"        env:"REDIS_DB"        env-default:"0"`
	JWTSecret      string        `yaml:"JWT_SECRET"      env:"JWT_SECRET"      env-default:"super-secret-key-change-in-production"`
	SessionTTL     time.Duration `yaml:"SESSION_TTL"     env:"SESSION_TTL"     env-default:"24h"`
	BcryptCost     int           `yaml:"BCRYPT_COST"     env:"BCRYPT_COST"     env-default:"12"`
	LogLevel       string        `yaml:"LOG_LEVEL"       env:"LOG_LEVEL"       env-default:"info"`
	CORSOrigins    string        `yaml:"CORS_ALLOWED_ORIGINS" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
}

// Load reads configuration from the environment, after an optional .env file
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot start with
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case BackendMongo, BackendMemory:
	default:
		return fmt.Errorf("config: unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET must not be empty")
	}
	if c.SessionTTL <= 0 {
		return errors.New("config: SESSION_TTL must be positive")
	}
	return nil
}
