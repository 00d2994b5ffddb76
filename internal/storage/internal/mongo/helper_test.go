package mongo

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	globalTestClient     *mongo.Client
	globalTestClientOnce sync.Once
)

// testMongoURI returns the integration database URI or skips the test.
func testMongoURI(t *testing.T) string {
	uri := os.Getenv("PAGER_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("PAGER_TEST_MONGO_URI not set, skipping MongoDB integration test")
	}
	return uri
}

func getGlobalTestClient(t *testing.T) *mongo.Client {
	uri := testMongoURI(t)
	globalTestClientOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		require.NoError(t, err)
		require.NoError(t, client.Ping(ctx, nil))
		globalTestClient = client
	})
	return globalTestClient
}

type TestEnv struct {
	Client *mongo.Client
	DBName string
	DB     *mongo.Database
}

func setupTestEnv(t *testing.T) *TestEnv {
	client := getGlobalTestClient(t)
	t.Parallel()

	// Generate unique DB name
	safeName := strings.ReplaceAll(t.Name(), "/", "_")
	safeName = strings.ReplaceAll(safeName, "\\", "_")
	if len(safeName) > 20 {
		safeName = safeName[len(safeName)-20:]
	}
	dbName := fmt.Sprintf("test_pager_%s_%d", safeName, time.Now().UnixNano()%100000)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Database(dbName).Drop(ctx)
	})

	return &TestEnv{
		Client: client,
		DBName: dbName,
		DB:     client.Database(dbName),
	}
}
