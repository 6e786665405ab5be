package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/dmitrijs2005/growflow/internal/client/client"
	"github.com/dmitrijs2005/growflow/internal/client/config"
	"github.com/dmitrijs2005/growflow/internal/client/services"
	"github.com/dmitrijs2005/growflow/internal/netx"
)

type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

type App struct {
	config      *config.Config
	db          *sql.DB
	authService services.AuthService
	taskService services.TaskService
	email       string
	Mode        Mode
	reader      *bufio.Reader
	out         io.Writer

	// download fetches a presigned snapshot URL; nil skips the local copy.
	download    func(ctx context.Context, url string) ([]byte, error)
	snapshotDir string
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	db, err := client.InitDatabase(ctx, c.LocalDBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	apiClient, err := client.NewHTTPClient(c.ServerEndpointAddr, c.Timeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	httpClient := &http.Client{Timeout: c.Timeout}

	return &App{
		config:      c,
		db:          db,
		authService: services.NewAuthService(apiClient, db),
		taskService: services.NewTaskService(apiClient, db),
		Mode:        ModeOnline,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		download: func(ctx context.Context, url string) ([]byte, error) {
			return netx.Download(ctx, httpClient, url)
		},
		snapshotDir: c.SnapshotDir,
	}, nil
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) isLoggedIn() bool {
	return a.email != ""
}

func (a *App) getStatus() string {
	s := ""
	if a.email != "" {
		s = a.email
	}
	if a.Mode == ModeOffline {
		if s != "" {
			s += " "
		}
		s += string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// report prints err and updates the session and connectivity state it implies.
func (a *App) report(err error) error {
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		a.email = ""
		fmt.Fprintln(a.out, "Session expired, please login again.")
		return err
	case errors.Is(err, client.ErrUnavailable):
		a.setMode(ModeOffline)
	default:
		a.setMode(ModeOnline)
	}
	fmt.Fprintf(a.out, "Error: %v\n", err)
	return err
}

// ok marks a successful round trip.
func (a *App) ok() {
	a.setMode(ModeOnline)
}

// Run restores a saved session and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if a.db != nil {
			_ = a.db.Close()
		}
	}()

	fmt.Fprintln(a.out, "Welcome to GrowFlow (type 'help' for commands)")

	email, ok, err := a.authService.Restore(ctx)
	if err != nil {
		log.Printf("could not restore session: %v", err)
	}
	if ok {
		a.email = email
		fmt.Fprintf(a.out, "Logged in as %s\n", email)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}
