// Package integration runs repository and API tests against a real MongoDB
// started with testcontainers. Tests are skipped with -short.
package integration

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ecommerce/backend/internal/infrastructure/config"
	"github.com/ecommerce/backend/internal/infrastructure/migration"
	"github.com/ecommerce/backend/internal/infrastructure/persistence"
	"github.com/ecommerce/backend/migrations"
	"github.com/stretchr/testify/require"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.uber.org/zap"
)

const mongoImage = "mongo:7"

var (
	sharedContainer    *tcmongo.MongoDBContainer
	sharedContainerMu  sync.Mutex
	sharedContainerURI string
	databaseSeq        atomic.Int64
)

// TestDB is a migrated database of its own on the shared container
type TestDB struct {
	*persistence.Database
	t *testing.T
}

// NewTestDB returns a fresh, migrated database. The container is started
// on first use and shared by every test of the package; each test gets a
// uniquely named database that is dropped on cleanup.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	uri := containerURI(t)
	name := fmt.Sprintf("shop_test_%d_%d", time.Now().UnixNano(), databaseSeq.Add(1))

	ctx := context.Background()
	db, err := persistence.NewDatabase(ctx, config.DatabaseConfig{
		URI:            uri,
		Name:           name,
		ConnectTimeout: 10 * time.Second,
	}, zap.NewNop())
	require.NoError(t, err, "Failed to connect to MongoDB")

	m, err := migration.New(db.Client, db.Name(), migrations.FS, zap.NewNop())
	require.NoError(t, err, "Failed to create migrator")
	require.NoError(t, m.Up(), "Failed to run migrations")
	_ = m.Close()

	tdb := &TestDB{Database: db, t: t}
	t.Cleanup(tdb.Close)
	return tdb
}

// Close drops the test database and disconnects
func (tdb *TestDB) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := tdb.DB.Drop(ctx); err != nil {
		tdb.t.Logf("Warning: failed to drop database %s: %v", tdb.Name(), err)
	}
	_ = tdb.Database.Close(ctx)
}

// CleanCollections empties both collections and keeps the indexes
func (tdb *TestDB) CleanCollections() {
	tdb.t.Helper()
	ctx := context.Background()
	for _, name := range []string{persistence.UsersCollection, persistence.ProductsCollection} {
		_, err := tdb.Collection(name).DeleteMany(ctx, map[string]any{})
		require.NoError(tdb.t, err, "Failed to clean collection %s", name)
	}
}

func containerURI(t *testing.T) string {
	t.Helper()
	sharedContainerMu.Lock()
	defer sharedContainerMu.Unlock()

	if sharedContainer == nil {
		container, err := tcmongo.Run(context.Background(), mongoImage)
		require.NoError(t, err, "Failed to start MongoDB container")

		uri, err := container.ConnectionString(context.Background())
		require.NoError(t, err, "Failed to get connection string")

		sharedContainer = container
		sharedContainerURI = uri
	}
	return sharedContainerURI
}

// CleanupSharedContainer terminates the shared container.
// Call it from TestMain after m.Run.
func CleanupSharedContainer() {
	sharedContainerMu.Lock()
	defer sharedContainerMu.Unlock()

	if sharedContainer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_ = sharedContainer.Terminate(ctx)
		sharedContainer = nil
		sharedContainerURI = ""
	}
}
