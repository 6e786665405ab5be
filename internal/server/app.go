// Package server wires the GrowFlow server together: database and
// migrations, services, the REST API and the gRPC health endpoint.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/growflow/internal/logging"
	"github.com/dmitrijs2005/growflow/internal/server/auth"
	"github.com/dmitrijs2005/growflow/internal/server/config"
	"github.com/dmitrijs2005/growflow/internal/server/httpapi"
	"github.com/dmitrijs2005/growflow/internal/server/metrics"
	"github.com/dmitrijs2005/growflow/internal/server/ratelimit"
	"github.com/dmitrijs2005/growflow/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/growflow/internal/server/services"

	gs "github.com/dmitrijs2005/growflow/internal/server/grpc"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	redis  *redis.Client
	http   *httpapi.Server
	health *gs.HealthServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, err := repomanager.OpenDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.RegisterMetrics(reg)

	hasher := auth.NewBcryptHasher(c.BcryptCost)
	us := services.NewUserService(db, rm, hasher, logger, c)
	ts := services.NewTaskService(db, rm, logger)
	ss := services.NewSnapshotService(ts, c, logger)

	app := &App{config: c, logger: logger, db: db}

	var limiter ratelimit.Limiter
	if c.RedisAddr != "" {
		app.redis = redis.NewClient(&redis.Options{Addr: c.RedisAddr})
		limiter = ratelimit.NewRedisLimiter(app.redis, "auth", c.AuthRateLimit, c.AuthRateBurst)
	}

	app.health = gs.NewHealthServer(c.EndpointAddrGRPC, logger, db, c.HealthCheckInterval)

	app.http = httpapi.NewServer(httpapi.Options{
		Address:        c.EndpointAddrHTTP,
		Secret:         []byte(c.SecretKey),
		Users:          us,
		Tasks:          ts,
		Snapshots:      ss,
		Limiter:        limiter,
		Health:         app.health,
		Gatherer:       reg,
		AllowedOrigins: c.AllowedOrigins,
		Logger:         logger,
	})

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

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.http.Run(ctx); err != nil {
		app.logger.Error(ctx, "http server error", "error", err)
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.health.Run(ctx); err != nil {
		app.logger.Error(ctx, "grpc server error", "error", err)
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
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.close(ctx)
}

func (app *App) close(ctx context.Context) {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Warn(ctx, "redis close error", "error", err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
