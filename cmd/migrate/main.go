package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ecommerce/backend/internal/infrastructure/config"
	"github.com/ecommerce/backend/internal/infrastructure/logger"
	"github.com/ecommerce/backend/internal/infrastructure/migration"
	"github.com/ecommerce/backend/internal/infrastructure/persistence"
	"github.com/ecommerce/backend/migrations"
	"go.uber.org/zap"
)

const defaultMigrationsDir = "migrations"

var errUsage = errors.New("usage")

// fileCommands work on the migrations directory and never touch the database.
var fileCommands = map[string]func(log *zap.Logger, dir string, args []string) error{
	"create": createCmd,
	"list":   listCmd,
}

// dbCommands run against the configured database.
var dbCommands = map[string]func(log *zap.Logger, m *migration.Migrator, args []string) error{
	"up":   func(_ *zap.Logger, m *migration.Migrator, _ []string) error { return m.Up() },
	"down": func(_ *zap.Logger, m *migration.Migrator, _ []string) error { return m.Down() },
	"steps": func(_ *zap.Logger, m *migration.Migrator, args []string) error {
		n, err := intArg(args, "steps <n>")
		if err != nil {
			return err
		}
		return m.Steps(n)
	},
	"goto": func(_ *zap.Logger, m *migration.Migrator, args []string) error {
		v, err := intArg(args, "goto <version>")
		if err != nil {
			return err
		}
		if v < 0 {
			return fmt.Errorf("%w: version must not be negative", errUsage)
		}
		return m.GoTo(uint(v))
	},
	"force": func(_ *zap.Logger, m *migration.Migrator, args []string) error {
		v, err := intArg(args, "force <version>")
		if err != nil {
			return err
		}
		return m.Force(v)
	},
	"version": versionCmd,
}

func main() {
	dir := flag.String("path", "", "Read migrations from this directory instead of the embedded set")
	level := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Usage = printUsage
	flag.Parse()

	log, err := logger.New(&logger.Config{Level: *level, Format: "console", TimeFormat: "2006-01-02 15:04:05"})
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}

	err = run(log, *dir, flag.Args())
	_ = log.Sync()
	switch {
	case errors.Is(err, errUsage):
		fmt.Fprintln(os.Stderr, err)
		printUsage()
		os.Exit(2)
	case err != nil:
		log.Error("Migration command failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(log *zap.Logger, dir string, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: command required", errUsage)
	}
	name, rest := args[0], args[1:]

	if cmd, ok := fileCommands[name]; ok {
		if dir == "" {
			dir = defaultMigrationsDir
		}
		return cmd(log, dir, rest)
	}
	cmd, ok := dbCommands[name]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", errUsage, name)
	}

	src, err := migrationSource(dir)
	if err != nil {
		return fmt.Errorf("migrations path: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := context.Background()
	db, err := persistence.NewDatabase(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close(ctx) }()

	m, err := migration.New(db.Client, db.Name(), src, log)
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()

	log.Info("Running migration command", zap.String("command", name), zap.String("database", db.Name()))
	return cmd(log, m, rest)
}

func createCmd(log *zap.Logger, dir string, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: create <name>", errUsage)
	}
	mf, err := migration.CreateMigration(dir, args[0])
	if err != nil {
		return err
	}
	log.Info("Migration created", zap.String("up", mf.UpPath), zap.String("down", mf.DownPath))
	return nil
}

func listCmd(log *zap.Logger, dir string, _ []string) error {
	names, err := migration.ListMigrations(dir)
	if err != nil {
		return err
	}
	log.Info("Migrations", zap.String("dir", dir), zap.Int("count", len(names)))
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func versionCmd(log *zap.Logger, m *migration.Migrator, _ []string) error {
	v, dirty, err := m.Version()
	if err != nil {
		return err
	}
	if v == 0 {
		log.Info("No migrations applied")
		return nil
	}
	log.Info("Current migration version", zap.Uint("version", v), zap.Bool("dirty", dirty))
	return nil
}

func intArg(args []string, usage string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%w: %s", errUsage, usage)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %q is not a number", errUsage, usage, args[0])
	}
	return n, nil
}

// migrationSource is the embedded set, or the directory at path.
func migrationSource(path string) (fs.FS, error) {
	if path == "" {
		return migrations.FS, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, err
	}
	return os.DirFS(abs), nil
}

func printUsage() {
	fmt.Fprint(os.Stderr, `Usage: migrate [-path dir] [-log-level level] <command> [arg]

Database commands (connection from config.toml / SHOP_DATABASE_URI / MONGODB_URI):
  up                 apply all pending migrations
  down               roll back every migration
  steps <n>          apply n migrations; negative n rolls back
  goto <version>     migrate up or down to version
  version            print the applied version
  force <version>    record version as applied without running it

File commands (default dir ./migrations):
  create <name>      write an empty <timestamp>_<name>.{up,down}.json pair
  list               list migrations in the directory

Without -path, database commands use the migrations embedded in the binary.
`)
}
