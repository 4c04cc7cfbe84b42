// Package server wires the DramaHub server together: storage, collaborator
// clients, services and the HTTP and gRPC listeners. It handles graceful
// shutdown on SIGINT, SIGTERM and SIGQUIT.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/dramahub/internal/dbx"
	"github.com/dmitrijs2005/dramahub/internal/logging"
	"github.com/dmitrijs2005/dramahub/internal/server/catalog"
	"github.com/dmitrijs2005/dramahub/internal/server/config"
	"github.com/dmitrijs2005/dramahub/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/dramahub/internal/server/rest"
	"github.com/dmitrijs2005/dramahub/internal/server/services"
	"github.com/dmitrijs2005/dramahub/internal/server/textgen"
	"github.com/redis/go-redis/v9"

	gs "github.com/dmitrijs2005/dramahub/internal/server/grpc"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	redis  *redis.Client
	http   *rest.Server
	grpc   *gs.GRPCServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, c.Log.Level, c.Log.Format)

	db, err := dbx.Open(ctx, c.Database.Driver, c.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm, err := repomanager.New(c.Database.Driver)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	app := &App{config: c, logger: logger, db: db}

	var provider services.CatalogProvider = catalog.NewHTTPClient(catalog.Options{
		BaseURL:       c.Catalog.BaseURL,
		APIKey:        c.Catalog.APIKey,
		Timeout:       c.Catalog.Timeout,
		RatePerSecond: c.Catalog.RatePerSecond,
		Burst:         c.Catalog.Burst,
	}, logger)

	if c.Redis.URL != "" {
		rc, err := catalog.ConnectRedis(ctx, c.Redis.URL)
		if err != nil {
			logger.Warn(ctx, "redis unavailable, catalog cache disabled", "error", err)
		} else {
			app.redis = rc
			provider = catalog.NewCachedProvider(provider, catalog.NewRedisCache(rc), c.Redis.TTL, logger)
		}
	}

	generator := textgen.NewGeminiClient(textgen.Options{
		APIURL:  c.TextGen.APIURL,
		APIKey:  c.TextGen.APIKey,
		Model:   c.TextGen.Model,
		Timeout: c.TextGen.Timeout,
	}, logger)

	us := services.NewUserService(db, rm, logger)
	ls := services.NewListService(services.NewMembershipService(db, rm, logger), provider, generator, c.Catalog.MaxConcurrency, logger)

	router := rest.NewRouter(rest.RouterConfig{
		Handler:        rest.NewHandler(us, ls, logger),
		AllowedOrigins: c.CORS.AllowedOrigins,
		Health:         db,
		Logger:         logger,
	})
	app.http = rest.NewServer(c.HTTPAddr, router, logger)

	checks := []gs.Check{{Name: "database", Ping: db.PingContext}}
	if app.redis != nil {
		checks = append(checks, gs.Check{Name: "redis", Ping: func(ctx context.Context) error {
			return app.redis.Ping(ctx).Err()
		}})
	}
	app.grpc = gs.NewGRPCServer(c.GRPCAddr, logger, checks...)

	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// runServer runs one listener; a listener failure stops the whole app.
func (app *App) runServer(ctx context.Context, cancelFunc context.CancelFunc, name string, run func(context.Context) error) {
	if err := run(ctx); err != nil {
		app.logger.Error(ctx, "server failed", "server", name, "error", err)
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.runServer(ctx, cancelFunc, "http", app.http.Run)
	}()
	go func() {
		defer wg.Done()
		app.runServer(ctx, cancelFunc, "grpc", app.grpc.Run)
	}()

	wg.Wait()

	app.close(ctx)
	app.logger.Info(ctx, "App stopped")
}

func (app *App) close(ctx context.Context) {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Warn(ctx, "redis close", "error", err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "db close", "error", err)
	}
}
