package mongo

import (
	"context"
	"sync"
	"testing"

	"note-scribe/internal/config"
	"note-scribe/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	msgClientShouldBeNil = "client should be nil on connection failure"
	msgDBShouldBeNil     = "db should be nil on connection failure"
	mongoTestURI         = "mongodb://invalid/?connectTimeoutMS=1&serverSelectionTimeoutMS=1"
)

// stubDriver implements the driver interface for testing
type stubDriver struct{}

func (stubDriver) Connect(_ context.Context, _ *options.ClientOptions) (*mongo.Client, error) {
	return nil, context.DeadlineExceeded // fail immediately to avoid retry delays
}

func (stubDriver) Ping(_ context.Context, _ *mongo.Client) error {
	return context.DeadlineExceeded
}

func (stubDriver) Disconnect(_ context.Context, _ *mongo.Client) error { return nil }

// withStubDriver temporarily replaces the global driver with a stub for testing
func withStubDriver(t *testing.T) func() {
	t.Helper()
	old := drv
	drv = stubDriver{}
	return func() { drv = old }
}

func testConfig() config.Config {
	return config.Config{
		MongoURI:    mongoTestURI,
		MongoDBName: "test",
		LogLevel:    "error",
		LogFormat:   "json",
	}
}

func TestResetKeepsActiveDriver(t *testing.T) {
	defer withStubDriver(t)()
	reset()
	defer reset()

	_, ok := drv.(stubDriver)
	assert.True(t, ok, "reset must not swap the driver out from under a test")
}

func TestMongoClientIdempotency(t *testing.T) {
	defer withStubDriver(t)()
	reset()
	defer reset()

	cfg := testConfig()
	log, err := logger.Init(cfg)
	require.NoError(t, err)

	ctx := context.Background()

	client1, db1, err1 := Init(ctx, cfg, log)
	client2, db2, err2 := Init(ctx, cfg, log)

	assert.Nil(t, client1, msgClientShouldBeNil)
	assert.Nil(t, db1, msgDBShouldBeNil)
	assert.Nil(t, client2, msgClientShouldBeNil)
	assert.Nil(t, db2, msgDBShouldBeNil)
	assert.Error(t, err1)
	assert.Error(t, err2)
}

func TestMongoClientConcurrency(t *testing.T) {
	defer withStubDriver(t)()
	reset()
	defer reset()

	cfg := testConfig()
	log, err := logger.Init(cfg)
	require.NoError(t, err)

	ctx := context.Background()

	const goroutines = 10
	var wg sync.WaitGroup
	clients := make([]*mongo.Client, goroutines)
	dbs := make([]*mongo.Database, goroutines)

	wg.Add(goroutines)

	for i := range goroutines {
		go func(index int) {
			defer wg.Done()
			client, db, err := Init(ctx, cfg, log)
			if err == nil {
				t.Errorf("Init should fail: %v", err)
			}
			clients[index] = client
			dbs[index] = db
		}(i)
	}

	wg.Wait()

	require.Nil(t, clients[0])
	require.Nil(t, dbs[0])

	for i := 1; i < goroutines; i++ {
		assert.Equal(t, clients[0], clients[i], "all clients should be nil")
		assert.Equal(t, dbs[0], dbs[i], "all databases should be nil")
	}
}

func TestMongoClientAccessorsAfterInit(t *testing.T) {
	defer withStubDriver(t)()
	reset()
	defer reset()

	cfg := testConfig()
	log, err := logger.Init(cfg)
	require.NoError(t, err)

	initClient, initDB, initErr := Init(context.Background(), cfg, log)
	require.Error(t, initErr)

	assert.Equal(t, initClient, Client(), "Client() should return the same instance as Init")
	assert.Equal(t, initDB, DB(), "DB() should return the same instance as Init")
}

func TestMongoClientShutdownIdempotency(t *testing.T) {
	defer withStubDriver(t)()
	reset()
	defer reset()

	ctx := context.Background()

	// Shutdown before Init and repeated Shutdowns are no-ops.
	assert.NoError(t, Shutdown(ctx))
	assert.NoError(t, Shutdown(ctx))

	assert.Nil(t, Client())
	assert.Nil(t, DB())
}

func TestWithRepoTimeout(t *testing.T) {
	t.Run("wraps a background context", func(t *testing.T) {
		ctx, cancel := WithRepoTimeout(context.Background(), OpTimeout)
		defer cancel()

		dl, ok := ctx.Deadline()
		require.True(t, ok)
		assert.False(t, dl.IsZero())
	})

	t.Run("keeps a stricter existing deadline", func(t *testing.T) {
		parent, parentCancel := context.WithTimeout(context.Background(), OpTimeout/10)
		defer parentCancel()

		ctx, cancel := WithRepoTimeout(parent, OpTimeout)
		defer cancel()

		assert.Equal(t, parent, ctx)
	})

	t.Run("passes through a canceled context", func(t *testing.T) {
		parent, parentCancel := context.WithCancel(context.Background())
		parentCancel()

		ctx, cancel := WithRepoTimeout(parent, OpTimeout)
		defer cancel()

		assert.Equal(t, parent, ctx)
	})
}
