package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/dramahub/internal/client/api"
	"github.com/dmitrijs2005/dramahub/internal/client/config"
	"github.com/dmitrijs2005/dramahub/internal/logging"
	"github.com/goccy/go-json"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// apiClient is the part of api.Client the commands use.
type apiClient interface {
	Ping(ctx context.Context) error
	SignUp(ctx context.Context, name, email string, password []byte) (*api.User, error)
	Login(ctx context.Context, email string, password []byte) (*api.User, error)
	ChangePassword(ctx context.Context, userID int64, current, next, confirm []byte) error
	DeleteUser(ctx context.Context, userID int64) error
	Add(ctx context.Context, set api.Set, userID, itemID int64) ([]int64, error)
	Remove(ctx context.Context, set api.Set, userID, itemID int64) ([]int64, error)
	List(ctx context.Context, set api.Set, userID int64) ([]int64, error)
	Details(ctx context.Context, set api.Set, userID int64) ([]json.RawMessage, error)
	Recommend(ctx context.Context, p api.Preferences) (*api.Recommendation, error)
}

type App struct {
	config *config.Config
	api    apiClient
	user   *api.User
	reader *bufio.Reader
	out    io.Writer
	logger logging.Logger

	mu   sync.Mutex
	mode Mode
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		api:    api.New(c.ServerURL, c.RequestTimeout),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		logger: logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil))),
	}
}

func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	fmt.Fprintln(a.out, "Welcome to DramaHub CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mode != mode {
		a.mode = mode
		a.logger.Info(context.Background(), "connectivity changed", "mode", mode, "server", a.config.ServerURL)
	}
}

func (a *App) getMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

// getStatus renders "(email mode)" for the prompt.
func (a *App) getStatus() string {
	s := ""
	if a.user != nil {
		s = a.user.Email + " "
	}
	if m := a.getMode(); m != "" {
		s += string(m)
	}
	if s == "" {
		return ""
	}
	return "(" + s + ")"
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.api.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// StartOnlineStatusWatcher pings the server every interval until ctx ends.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	a.checkOnline(ctx)

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
