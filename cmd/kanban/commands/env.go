package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dyluth/kanban/internal/config"
	"github.com/dyluth/kanban/internal/logging"
	"github.com/dyluth/kanban/internal/printer"
	"github.com/dyluth/kanban/internal/prompt"
	"github.com/dyluth/kanban/internal/resolver"
	"github.com/dyluth/kanban/internal/surface"
	"github.com/dyluth/kanban/pkg/board"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// env is what every command needs: configuration, a logger and a connected client.
type env struct {
	cfg    *config.KanbanConfig
	log    *logrus.Logger
	client *board.Client
}

func (e *env) Close() error {
	return e.client.Close()
}

// connect loads configuration, applies the global flags and connects to Redis.
func connect(ctx context.Context, cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, printer.Error(
			"invalid configuration",
			err.Error(),
			[]string{fmt.Sprintf("Fix %s or point --config at another file", configPath)},
		)
	}
	if redisURL != "" {
		cfg.Redis.URL = redisURL
	}
	if profile != "" {
		cfg.Profile = profile
	}
	if err := cfg.Validate(); err != nil {
		return nil, printer.Error("invalid configuration", err.Error(), nil)
	}

	log, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	redisOpts, err := cfg.RedisOptions()
	if err != nil {
		return nil, err
	}

	client, err := board.NewClient(redisOpts, cfg.Profile,
		board.WithStorageKey(cfg.StorageKey),
		board.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kanban client: %w", err)
	}

	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, printer.ErrorWithContext(
			"Redis connection failed",
			fmt.Sprintf("Could not connect to Redis at %s", cfg.Redis.URL),
			map[string]string{"Profile": cfg.Profile},
			[]string{
				"Start a local Redis:\n  docker run -d -p 6379:6379 redis:7-alpine",
				"Point at another server:\n  kanban --redis-url redis://host:6379/0 ...",
			},
		)
	}

	return &env{cfg: cfg, log: log, client: client}, nil
}

// terminal returns an interactive prompter on the command's streams.
func terminal(cmd *cobra.Command, assumeYes bool) *prompt.Terminal {
	t := prompt.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout())
	t.AssumeYes = assumeYes
	return t
}

// activeBoard opens the panel's document and returns it with its active board.
func activeBoard(ctx context.Context, panel *surface.Panel) (*board.Document, *board.Board, error) {
	doc, _, err := panel.Session().Open(ctx)
	if err != nil {
		return nil, nil, err
	}
	b := doc.ActiveBoard()
	if b == nil {
		b = &doc.Boards[0]
	}
	return doc, b, nil
}

// activeColumn returns columnID on the active board of doc, or nil.
func activeColumn(doc *board.Document, columnID string) *board.Column {
	b := doc.ActiveBoard()
	if b == nil {
		return nil
	}
	i := b.ColumnIndex(columnID)
	if i < 0 {
		return nil
	}
	return &b.Columns[i]
}

// fail converts a surface or store error into the CLI's formatted output.
// A cancelled prompt is not a failure.
func fail(err error) error {
	if err == nil {
		return nil
	}

	var saveErr *board.SaveError
	var ambiguous *resolver.AmbiguousError
	switch {
	case board.IsCancelled(err):
		printer.Info("Cancelled.\n")
		return nil
	case errors.As(err, &saveErr):
		return printer.Error(
			"failed to save",
			fmt.Sprintf("The change was not applied: %v", saveErr.Err),
			[]string{"Check that Redis is reachable and retry"},
		)
	case errors.As(err, &ambiguous):
		fmt.Fprintln(os.Stderr, resolver.FormatAmbiguousError(ambiguous))
		return fmt.Errorf("ambiguous %s reference", ambiguous.Kind)
	case resolver.IsNotFoundError(err):
		return printer.Error(
			err.Error(),
			"Nothing on the active board matches that reference.",
			[]string{"Show the board with ids:\n  kanban show", "Switch boards:\n  kanban board use BOARD"},
		)
	case errors.Is(err, board.ErrLastColumn):
		return printer.Error("cannot delete the last column", "A board must keep at least one column.", nil)
	case errors.Is(err, board.ErrLastBoard):
		return printer.Error("cannot delete the last board", "A document must keep at least one board.", nil)
	default:
		return printer.Error("command failed", err.Error(), nil)
	}
}
