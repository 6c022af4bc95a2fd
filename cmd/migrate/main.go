// Команда migrate управляет схемой PostgreSQL сервиса заказов:
//
//	migrate -direction=up [-steps=N]
//	migrate -direction=down [-steps=N]
//	migrate -direction=status|pending
//
// DSN берётся из -dsn или OMS_POSTGRES_DSN.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/vladislavdragonenkov/oms/internal/storage/postgres"
)

const envPostgresDSN = "OMS_POSTGRES_DSN"

var errDSNRequired = errors.New(envPostgresDSN + " (or -dsn) is required")

// migrator — операции Store, нужные командам.
type migrator interface {
	MigrateUp(ctx context.Context, steps int) error
	MigrateDown(ctx context.Context, steps int) error
	MigrationStatus(ctx context.Context) (int64, int, error)
	PendingMigrations(ctx context.Context) ([]string, error)
}

type options struct {
	direction string
	steps     int
	dsn       string
	timeout   time.Duration
}

func parseOptions(args []string, getenv func(string) string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opts.direction, "direction", "up", "up|down|status|pending")
	fs.IntVar(&opts.steps, "steps", 0, "migrations to apply or roll back (up: 0 = all, down: 0 = 1)")
	fs.StringVar(&opts.dsn, "dsn", "", "PostgreSQL DSN, defaults to "+envPostgresDSN)
	fs.DurationVar(&opts.timeout, "timeout", 30*time.Second, "deadline for the whole command")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	opts.direction = strings.ToLower(strings.TrimSpace(opts.direction))
	opts.dsn = strings.TrimSpace(opts.dsn)
	if opts.dsn == "" {
		opts.dsn = strings.TrimSpace(getenv(envPostgresDSN))
	}
	switch {
	case opts.dsn == "":
		return options{}, errDSNRequired
	case opts.steps < 0:
		return options{}, fmt.Errorf("steps must be >= 0, got %d", opts.steps)
	case opts.timeout <= 0:
		return options{}, fmt.Errorf("timeout must be > 0, got %s", opts.timeout)
	}
	return opts, nil
}

func main() {
	opts, err := parseOptions(os.Args[1:], os.Getenv)
	if err != nil {
		exit(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()

	// Команде хватает пары соединений.
	store, err := postgres.Open(ctx, opts.dsn, postgres.PoolConfig{MaxOpenConns: 2})
	if err != nil {
		exit(err)
	}
	err = run(ctx, store, opts.direction, opts.steps, os.Stdout)
	_ = store.Close()
	if err != nil {
		exit(err)
	}
}

func run(ctx context.Context, store migrator, direction string, steps int, out io.Writer) error {
	switch direction {
	case "up":
		if err := store.MigrateUp(ctx, steps); err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
		return printStatus(ctx, store, out, "migrate up ok")
	case "down":
		if steps == 0 {
			steps = 1
		}
		if err := store.MigrateDown(ctx, steps); err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}
		return printStatus(ctx, store, out, "migrate down ok")
	case "status":
		return printStatus(ctx, store, out, "migration status")
	case "pending":
		return printPending(ctx, store, out)
	default:
		return fmt.Errorf("unsupported direction %q (use up|down|status|pending)", direction)
	}
}

func printStatus(ctx context.Context, store migrator, out io.Writer, prefix string) error {
	version, applied, err := store.MigrationStatus(ctx)
	if err != nil {
		return fmt.Errorf("migration status: %w", err)
	}
	_, err = fmt.Fprintf(out, "%s: version=%d applied=%d\n", prefix, version, applied)
	return err
}

func printPending(ctx context.Context, store migrator, out io.Writer) error {
	pending, err := store.PendingMigrations(ctx)
	if err != nil {
		return fmt.Errorf("pending migrations: %w", err)
	}
	if len(pending) == 0 {
		_, err = fmt.Fprintln(out, "no pending migrations")
		return err
	}
	_, err = fmt.Fprintln(out, strings.Join(pending, "\n"))
	return err
}

func exit(err error) {
	_, _ = fmt.Fprintln(os.Stderr, "migrate:", err)
	os.Exit(1)
}
