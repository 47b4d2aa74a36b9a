// Package cli wires the SDK into the jotpad command line client.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/jotpadhq/jotpad/pkg/notesdk"
	"github.com/jotpadhq/jotpad/pkg/sealbox"
	"github.com/jotpadhq/jotpad/pkg/slogx"
	"github.com/jotpadhq/jotpad/pkg/tokenstore/sqlite"
	"golang.org/x/time/rate"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

var errUsage = errors.New("usage error")

// App encapsulates the CLI with all its dependencies.
type App struct {
	cfg    Config
	logger *slog.Logger

	store  *sqlite.Store
	client *notesdk.Client

	stdin  io.Reader
	stdout io.Writer
}

// New creates an App with the durable token store opened and migrated.
func New(cfg Config) (*App, error) {
	app := &App{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "jotpad",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		stdin:  os.Stdin,
		stdout: os.Stdout,
	}

	if cfg.APIBaseURL == "" {
		return nil, errors.New("JOTPAD_API_BASE_URL is required")
	}

	var sealer sqlite.Sealer
	if cfg.SealKeyFile != "" {
		box, err := sealbox.FromFile(cfg.SealKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load seal key: %w", err)
		}
		sealer = box
	}

	store, err := sqlite.NewStore(cfg.TokenDBFile, sealer)
	if err != nil {
		return nil, fmt.Errorf("failed to open token store: %w", err)
	}
	if err := store.ApplyMigrations(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate token store: %w", err)
	}
	app.store = store

	client := notesdk.New(cfg.APIBaseURL, store)
	client.Logger = app.logger
	client.Leeway = cfg.Leeway
	client.HTTPClient.Timeout = cfg.HTTPTimeout
	if cfg.RateLimit > 0 {
		client.Limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}
	app.client = client

	return app, nil
}

// Close releases the token store.
func (app *App) Close() error { return app.store.Close() }

// Run dispatches a single CLI invocation.
func (app *App) Run(ctx context.Context, args []string) error {
	ctx = slogx.WithContext(ctx, app.logger)

	if len(args) == 0 {
		app.printUsage()
		return errUsage
	}

	command, rest := args[0], args[1:]
	switch command {
	case "login":
		return app.runLogin(ctx, rest)
	case "logout":
		return app.client.Logout(ctx)
	case "status":
		return app.runStatus(ctx)
	case "list":
		return app.protected(ctx, app.runList)
	case "add":
		return app.protected(ctx, func(ctx context.Context) error {
			return app.runAdd(ctx, rest)
		})
	case "done":
		return app.protected(ctx, func(ctx context.Context) error {
			return app.runDone(ctx, rest)
		})
	case "rm":
		return app.protected(ctx, func(ctx context.Context) error {
			return app.runRemove(ctx, rest)
		})
	default:
		app.printUsage()
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

// protected runs fn only if the session guard authorizes the attempt. The
// CLI analogue of the login redirect is a pointer at the login command.
func (app *App) protected(ctx context.Context, fn func(context.Context) error) error {
	if state := app.client.CheckAccess(ctx); !state.Authorized() {
		fmt.Fprintln(app.stdout, "not signed in; run 'jotpad login <username>'")
		return errors.New("unauthorized")
	}
	return fn(ctx)
}

func (app *App) runLogin(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: login <username>", errUsage)
	}
	username := args[0]

	password := os.Getenv("JOTPAD_PASSWORD")
	if password == "" {
		fmt.Fprint(app.stdout, "password: ")
		line, err := bufio.NewReader(app.stdin).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	if err := app.client.PasswordLogin(ctx, username, password); err != nil {
		var apiErr *notesdk.APIError
		if errors.As(err, &apiErr) && apiErr.IsAuthFailure() {
			fmt.Fprintln(app.stdout, "login failed: check username and password")
		}
		return err
	}

	fmt.Fprintf(app.stdout, "signed in as %s\n", username)
	return nil
}

func (app *App) runStatus(ctx context.Context) error {
	state := app.client.CheckAccess(ctx)
	fmt.Fprintf(app.stdout, "session: %s\n", state)
	return nil
}

func (app *App) runList(ctx context.Context) error {
	notes, err := app.client.ListNotes(ctx)
	if err != nil {
		return err
	}

	if len(notes) == 0 {
		fmt.Fprintln(app.stdout, "no notes")
		return nil
	}

	for _, note := range notes {
		marker := " "
		if note.Done {
			marker = "x"
		}
		fmt.Fprintf(app.stdout, "[%s] %4d  %s\n", marker, note.ID, note.Body)
	}
	return nil
}

func (app *App) runAdd(ctx context.Context, args []string) error {
	body := strings.Join(args, " ")
	if body == "" {
		return fmt.Errorf("%w: add <text>", errUsage)
	}

	note, err := app.client.CreateNote(ctx, notesdk.NoteDraft{Body: body})
	if err != nil {
		return err
	}

	fmt.Fprintf(app.stdout, "created note %d\n", note.ID)
	return nil
}

func (app *App) runDone(ctx context.Context, args []string) error {
	id, err := parseNoteID(args)
	if err != nil {
		return err
	}

	if _, err := app.client.SetNoteDone(ctx, id, true); err != nil {
		return err
	}

	fmt.Fprintf(app.stdout, "note %d done\n", id)
	return nil
}

func (app *App) runRemove(ctx context.Context, args []string) error {
	id, err := parseNoteID(args)
	if err != nil {
		return err
	}

	if err := app.client.DeleteNote(ctx, id); err != nil {
		return err
	}

	fmt.Fprintf(app.stdout, "note %d removed\n", id)
	return nil
}

func parseNoteID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: expected a note id", errUsage)
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid note id %q", errUsage, args[0])
	}
	return id, nil
}

func (app *App) printUsage() {
	fmt.Fprintln(app.stdout, `usage: jotpad <command>

commands:
  login <username>   sign in and store the credential pair
  logout             destroy stored credentials
  status             show the session guard verdict
  list               list notes
  add <text>         create a note
  done <id>          mark a note done
  rm <id>            delete a note`)
}
