package main

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"islandtracker/internal/backends"
	"islandtracker/internal/cache"
	"islandtracker/internal/config"
	"islandtracker/internal/flow"
	"islandtracker/internal/gateway"
	"islandtracker/internal/ports"
	"islandtracker/internal/types"

	log "github.com/sirupsen/logrus"
)

// app is what every command runs against.
type app struct {
	store   ports.LocalStore
	service *flow.Service
	out     io.Writer
}

func newApp(ctx context.Context, cfg config.Config, out io.Writer) (*app, error) {
	lvl, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	log.SetLevel(lvl)

	store, err := backends.LocalStoreFromConfig(ctx, cfg.Cache)
	if err != nil {
		return nil, err
	}
	cs := cache.NewStore(store, cache.WithCompression(cfg.Cache.Compress))
	identity := envIdentity(cfg.Identity)

	gw, err := gateway.New(gateway.Options{
		BaseURL:    cfg.BaseURL,
		HTTPClient: &http.Client{Timeout: cfg.HTTPTimeout},
		Identity:   identity,
		Cache:      cs,
		Codes:      cfg.Codes,
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	offline := cfg.Offline
	svc, err := flow.NewService(flow.Deps{
		Cache:        cs,
		Gateway:      gw,
		Settings:     store,
		Identity:     identity,
		Connectivity: ports.ConnectivityFunc(func() bool { return !offline }),
		TTL:          cfg.TTL,
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	log.WithFields(log.Fields{"backend": cfg.Cache.Backend, "offline": offline}).Debug("data layer ready")
	return &app{store: store, service: svc, out: out}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// envIdentity serves the key pair from configuration in place of device secure storage.
type envIdentity config.IdentityConfig

func (e envIdentity) Identity(context.Context) (types.Identity, error) {
	if e.PublicKey == "" || e.PrivateKey == "" {
		return types.Identity{}, fmt.Errorf("IDENTITY_PUBLIC_KEY and IDENTITY_PRIVATE_KEY must be set")
	}
	return types.Identity{PublicKey: e.PublicKey, PrivateKey: e.PrivateKey}, nil
}
