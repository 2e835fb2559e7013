package migration

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mongodb"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// MigrationsCollection stores the applied migration version
const MigrationsCollection = "schema_migrations"

// Migrator runs the JSON command migrations against one MongoDB database.
type Migrator struct {
	m   *migrate.Migrate
	src source.Driver
	log *zap.Logger
}

// New reads migrations from the root of files (embedded or os.DirFS) and
// targets databaseName through the caller's client.
func New(client *mongo.Client, databaseName string, files fs.FS, log *zap.Logger) (*Migrator, error) {
	db, err := mongodb.WithInstance(client, &mongodb.Config{
		DatabaseName:         databaseName,
		MigrationsCollection: MigrationsCollection,
	})
	if err != nil {
		return nil, fmt.Errorf("migration driver: %w", err)
	}
	src, err := iofs.New(files, ".")
	if err != nil {
		return nil, fmt.Errorf("migration source: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "mongodb", db)
	if err != nil {
		_ = src.Close()
		return nil, fmt.Errorf("migration setup: %w", err)
	}
	return &Migrator{m: m, src: src, log: log.Named("migration")}, nil
}

// run executes step and treats "nothing to do" as success.
func (mg *Migrator) run(name string, step func() error, fields ...zap.Field) error {
	mg.log.Info("Migration "+name, fields...)
	err := step()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		mg.log.Info("Migration " + name + ": no change")
		return nil
	case err != nil:
		return fmt.Errorf("migration %s: %w", name, err)
	}
	version, dirty, err := mg.Version()
	if err != nil {
		return err
	}
	mg.log.Info("Migration "+name+" done", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

// Up applies every pending migration.
func (mg *Migrator) Up() error { return mg.run("up", mg.m.Up) }

// Down rolls every migration back.
func (mg *Migrator) Down() error { return mg.run("down", mg.m.Down) }

// Steps moves n migrations; negative n rolls back.
func (mg *Migrator) Steps(n int) error {
	return mg.run("steps", func() error { return mg.m.Steps(n) }, zap.Int("n", n))
}

// GoTo migrates up or down to version.
func (mg *Migrator) GoTo(version uint) error {
	return mg.run("goto", func() error { return mg.m.Migrate(version) }, zap.Uint("target", version))
}

// Version reports the applied version; 0 means none.
func (mg *Migrator) Version() (uint, bool, error) {
	version, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("migration version: %w", err)
	}
	return version, dirty, nil
}

// Force records version as applied and clean without running anything.
func (mg *Migrator) Force(version int) error {
	mg.log.Warn("Forcing migration version", zap.Int("version", version))
	if err := mg.m.Force(version); err != nil {
		return fmt.Errorf("migration force %d: %w", version, err)
	}
	return nil
}

// Close releases the source only. migrate.Close would also close the
// mongodb driver, which disconnects the caller's client.
func (mg *Migrator) Close() error {
	return mg.src.Close()
}
