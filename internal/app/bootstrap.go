package app

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/consultation-platform/intake-client/internal/api"
	"github.com/consultation-platform/intake-client/internal/core/ports"
	"github.com/consultation-platform/intake-client/internal/infrastructure/credstore"
	"github.com/consultation-platform/intake-client/internal/pkg/config"
	"github.com/consultation-platform/intake-client/pkg/logger"
)

// Bootstrap is a fully wired client plus its optional debug listener.
type Bootstrap struct {
	App   *App
	Debug *echo.Echo // nil when DEBUG_ADDR is unset
}

// FromConfig builds the client from environment configuration: logger,
// credential store backend, gateway client and app shell. The caller owns
// starting the debug listener.
func FromConfig(ctx context.Context, cfg *config.Config) (*Bootstrap, error) {
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	var (
		store ports.CredentialStore
		rdb   *redis.Client
	)
	switch cfg.Credential.Backend {
	case "redis":
		client, err := credstore.ConnectRedis(ctx, credstore.RedisConfig{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("bootstrap: %w", err)
		}
		rdb = client
		store = credstore.NewRedis(client)
	case "file", "":
		store = credstore.NewFile(cfg.Credential.Path)
	default:
		return nil, fmt.Errorf("bootstrap: unknown credential backend %q", cfg.Credential.Backend)
	}

	a := New(Options{
		ServiceBaseURL: cfg.Service.BaseURL,
		ServiceTimeout: cfg.Service.Timeout,
	}, store, log)

	b := &Bootstrap{App: a}
	if cfg.DebugAddr != "" {
		b.Debug = api.NewRouter(cfg.Service.BaseURL, rdb)
	}
	return b, nil
}
