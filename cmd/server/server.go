package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/packvault/collection-api/internal/clients/catalog"
	"github.com/packvault/collection-api/internal/config"
	"github.com/packvault/collection-api/internal/coordinator"
	"github.com/packvault/collection-api/internal/handlers/api"
	"github.com/packvault/collection-api/internal/orchestrators/economy"
	"github.com/packvault/collection-api/internal/packs"
	"github.com/packvault/collection-api/internal/pkg/clock"
	"github.com/packvault/collection-api/internal/pkg/idgen"
	"github.com/packvault/collection-api/internal/redis"
	"github.com/packvault/collection-api/internal/repositories/collection"
	"github.com/packvault/collection-api/internal/repositories/profile"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the collection API server",
	RunE:  runServer,
}

func init() {
	rootCmd.AddCommand(serverCmd)
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	handler, err := buildHandler(cfg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler.Routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("collection API listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		slog.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}

// buildHandler wires the full dependency graph: Redis-backed repositories
// with in-memory fallback, the catalog client, the coordinator, and the
// economy engine behind the HTTP handler.
func buildHandler(cfg *config.Config) (*api.Handler, error) {
	redisClient, err := redis.NewClient(cfg.RedisAddr, &redis.Options{
		UseTLS:                cfg.RedisUseTLS,
		InsecureSkipTLSVerify: cfg.RedisInsecureSkipTLSVerify,
	})
	if err != nil {
		return nil, err
	}

	profileRedis, err := profile.NewRedis(&profile.RedisConfig{Client: redisClient})
	if err != nil {
		return nil, err
	}
	profileRepo, err := profile.NewFallback(&profile.FallbackConfig{
		Primary: profileRedis,
		Memory:  profile.NewInMemory(),
	})
	if err != nil {
		return nil, err
	}

	collectionRedis, err := collection.NewRedis(&collection.RedisConfig{Client: redisClient})
	if err != nil {
		return nil, err
	}
	collectionRepo, err := collection.NewFallback(&collection.FallbackConfig{
		Primary: collectionRedis,
		Memory:  collection.NewInMemory(),
	})
	if err != nil {
		return nil, err
	}

	catalogClient, err := catalog.New(&catalog.Config{
		BaseURL:           cfg.CatalogBaseURL,
		RequestsPerSecond: cfg.CatalogRequestsPerSecond,
		Burst:             cfg.CatalogBurst,
	})
	if err != nil {
		return nil, err
	}

	packCatalog, err := packs.NewCatalog(packs.DefaultPacks())
	if err != nil {
		return nil, err
	}

	orch, err := economy.NewOrchestrator(&economy.Config{
		ProfileRepo:    profileRepo,
		CollectionRepo: collectionRepo,
		CatalogClient:  catalogClient,
		PackCatalog:    packCatalog,
		Coordinator:    coordinator.New(),
		IDGenerator:    idgen.NewUUID("card"),
		Clock:          clock.New(),
	})
	if err != nil {
		return nil, err
	}

	return api.NewHandler(&api.Config{Service: orch})
}
