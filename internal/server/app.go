// Package server wires the MovieDeck backend together: storage, services,
// the gRPC endpoint, the admin HTTP endpoint and the token janitor.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/moviedeck/internal/dbx"
	"github.com/dmitrijs2005/moviedeck/internal/logging"
	"github.com/dmitrijs2005/moviedeck/internal/server/config"
	gs "github.com/dmitrijs2005/moviedeck/internal/server/grpc"
	"github.com/dmitrijs2005/moviedeck/internal/server/httpadmin"
	"github.com/dmitrijs2005/moviedeck/internal/server/janitor"
	"github.com/dmitrijs2005/moviedeck/internal/server/metrics"
	"github.com/dmitrijs2005/moviedeck/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/moviedeck/internal/server/services"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	grpc    *gs.GRPCServer
	admin   *httpadmin.Server
	janitor *janitor.Janitor
}

// openDB is a seam for tests.
var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

// NewApp opens storage and builds every component. With config.MemoryDSN
// no database is opened.
func NewApp(ctx context.Context, c *config.Config, out io.Writer) (*App, error) {
	logger, err := logging.New(c.LogFormat, c.LogLevel, out)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	var (
		db    *sql.DB
		store dbx.Store
		rm    repomanager.RepositoryManager
	)
	if c.InMemory() {
		rm = repomanager.NewMemoryRepositoryManager()
		store = dbx.NopStore{}
		logger.Warn(ctx, "running with in-memory storage; data is lost on exit")
	} else {
		db, err = openDB(c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		pm := repomanager.NewPostgresRepositoryManager()
		if err := pm.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("db migration error: %w", err)
		}
		rm = pm
		store = dbx.NewSQLStore(db)
	}

	m := metrics.New()
	users := services.NewUserService(store, rm, c, services.NewLogMailer(logger), logger)
	svc := gs.Services{
		Users:   users,
		Catalog: services.NewCatalogService(store, rm, logger),
		Posters: services.NewPosterService(c, logger),
	}

	var pinger httpadmin.Pinger
	if db != nil {
		pinger = db
	}

	return &App{
		config:  c,
		logger:  logger,
		db:      db,
		grpc:    gs.NewGRPCServer(c, logger, svc, m),
		admin:   httpadmin.NewServer(c.AdminAddr, httpadmin.NewRouter(pinger, m.Handler()), logger),
		janitor: janitor.New(c.JanitorSchedule, users, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// runComponent runs fn and cancels the whole app when it fails.
func (app *App) runComponent(ctx context.Context, cancelFunc context.CancelFunc, name string, fn func(context.Context) error) {
	if err := fn(ctx); err != nil {
		app.logger.Error(ctx, "component failed", "component", name, "error", err)
		cancelFunc()
	}
}

// Run blocks until a termination signal arrives or a component fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup
	components := map[string]func(context.Context) error{
		"grpc":    app.grpc.Run,
		"admin":   app.admin.Run,
		"janitor": app.janitor.Run,
	}
	for name, run := range components {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.runComponent(ctx, cancelFunc, name, run)
		}()
	}

	wg.Wait()
	app.Close()
}

// Close releases the database and flushes the logger.
func (app *App) Close() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(context.Background(), "db close error", "error", err)
		}
	}
	if z, ok := app.logger.(*logging.ZapLogger); ok {
		_ = z.Sync()
	}
}
