package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dmitrijs2005/moviedeck/internal/client/client"
	"github.com/dmitrijs2005/moviedeck/internal/client/config"
	"github.com/dmitrijs2005/moviedeck/internal/client/models"
	"github.com/dmitrijs2005/moviedeck/internal/client/repositories/prefs"
	"github.com/dmitrijs2005/moviedeck/internal/client/services"
	"github.com/dmitrijs2005/moviedeck/internal/client/session"
	"github.com/dmitrijs2005/moviedeck/internal/filex"
	"github.com/dmitrijs2005/moviedeck/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type posterUploader interface {
	Upload(ctx context.Context, contentType string, body []byte) (string, error)
}

type settingsStore interface {
	Load(ctx context.Context) (models.Settings, error)
	Set(ctx context.Context, key string, value bool) error
}

type seeder interface {
	SeedIfFirstRun(ctx context.Context) (bool, error)
}

type App struct {
	config   *config.Config
	log      logging.Logger
	auth     services.AuthService
	catalog  services.CatalogService
	posters  posterUploader
	settings settingsStore
	boot     seeder
	session  *session.Holder
	db       *sql.DB

	reader *bufio.Reader
	out    io.Writer

	mu   sync.RWMutex
	mode Mode

	screens *screens
}

// NewApp opens the local preferences store, dials the server and builds the
// facades. The app talks to the terminal through stdin and stdout.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log, err := logging.New(c.LogFormat, c.LogLevel, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	dir, err := filex.EnsureDir(c.DataDir)
	if err != nil {
		return nil, fmt.Errorf("data dir error: %w", err)
	}

	db, err := client.InitDatabase(ctx, filepath.Join(dir, config.PrefsFileName))
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	apiClient, err := client.NewMovieDeckClient(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("client init error: %w", err)
	}

	holder := session.NewHolder()
	repo := prefs.NewSQLiteRepository(db)
	catalog := services.NewCatalogService(apiClient, holder)

	a := &App{
		config:   c,
		log:      log,
		auth:     services.NewAuthService(apiClient, holder, log.With("module", "auth")),
		catalog:  catalog,
		posters:  services.NewPosterService(apiClient, &http.Client{Timeout: c.RequestTimeout}),
		settings: services.NewSettingsService(repo),
		boot:     services.NewBootstrap(repo, catalog, log.With("module", "bootstrap")),
		session:  holder,
		db:       db,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		mode:     ModeOffline,
	}
	a.screens = newScreens(a)
	return a, nil
}

// Run seeds the catalog on first launch, starts the connectivity watcher and
// serves the REPL until the user quits or ctx is done.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.checkOnline(ctx)

	seeded, err := a.boot.SeedIfFirstRun(ctx)
	switch {
	case err != nil:
		a.log.Warn(ctx, "default catalog not seeded", "error", err)
	case seeded:
		a.log.Info(ctx, "default catalog seeded")
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	a.printf("MovieDeck CLI (type 'help' for commands)\n")
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) Close() {
	var errs []error
	if a.auth != nil {
		errs = append(errs, a.auth.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	if err := errors.Join(errs...); err != nil {
		a.log.Warn(context.Background(), "close failed", "error", err)
	}
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) isLoggedIn() bool {
	return a.session.Current() != nil
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(context.Background(), "connectivity changed", "mode", string(mode))
	}
}

// status is shown in the prompt: the signed-in email (or guest) and the mode.
func (a *App) status() string {
	who := "guest"
	if id := a.session.Current(); id != nil {
		who = id.Email
	}
	return fmt.Sprintf("%s [%s]", who, a.Mode())
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.auth.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// StartOnlineStatusWatcher pings the server every interval and flips Mode.
// It returns when ctx is done, or at once for a non-positive interval.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		a.log.Warn(ctx, "online status watcher disabled", "interval", interval)
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}
