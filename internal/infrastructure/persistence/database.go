package persistence

import (
	"context"
	"fmt"

	"github.com/ecommerce/backend/internal/infrastructure/config"
	"github.com/ecommerce/backend/internal/infrastructure/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Collection names
const (
	UsersCollection    = "users"
	ProductsCollection = "products"
)

// Database holds the MongoDB client and the application database.
// It is created once at startup, shared by all repositories and closed
// at shutdown.
type Database struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// NewDatabase connects to MongoDB with the given configuration and verifies
// the connection with a ping
func NewDatabase(ctx context.Context, cfg config.DatabaseConfig, zapLogger *zap.Logger) (*Database, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetRegistry(NewRegistry()).
		SetMonitor(logger.NewCommandMonitor(zapLogger, logger.CommandMonitorOptions{
			SlowThreshold: cfg.SlowCommandThreshold,
			LogCommands:   cfg.LogCommands,
		}))
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}
	if cfg.MinPoolSize > 0 {
		opts.SetMinPoolSize(cfg.MinPoolSize)
	}
	if cfg.MaxConnIdleTime > 0 {
		opts.SetMaxConnIdleTime(cfg.MaxConnIdleTime)
	}
	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout)
		opts.SetServerSelectionTimeout(cfg.ConnectTimeout)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	pingCtx := ctx
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	name := cfg.Name
	if name == "" {
		name = cfg.DatabaseFromURI()
	}

	return &Database{
		Client: client,
		DB:     client.Database(name),
	}, nil
}

// Close disconnects the client
func (d *Database) Close(ctx context.Context) error {
	return d.Client.Disconnect(ctx)
}

// Ping checks if the database connection is alive
func (d *Database) Ping(ctx context.Context) error {
	return d.Client.Ping(ctx, readpref.Primary())
}

// Collection returns a handle to the named collection
func (d *Database) Collection(name string) *mongo.Collection {
	return d.DB.Collection(name)
}

// Name returns the application database name
func (d *Database) Name() string {
	return d.DB.Name()
}
