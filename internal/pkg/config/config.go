package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	DebugAddr string `env:"DEBUG_ADDR"` // empty disables the debug listener

	Service    ServiceConfig
	Credential CredentialConfig
	Redis      RedisConfig
}

type ServiceConfig struct {
	BaseURL string        `env:"SERVICE_BASE_URL, default=http://localhost:5100"`
	Timeout time.Duration `env:"SERVICE_TIMEOUT,  default=15s"`
}

type CredentialConfig struct {
	// Backend selects where the session token lives: "file" or "redis".
	Backend string `env:"CREDENTIAL_BACKEND, default=file"`
	// Path overrides the token file location for the file backend.
	Path string `env:"CREDENTIAL_PATH"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
