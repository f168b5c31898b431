package mongostore

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/user/exercise-tracker-go/config"
	"github.com/user/exercise-tracker-go/db"
	"github.com/user/exercise-tracker-go/store"
	"github.com/user/exercise-tracker-go/store/storetest"
)

func TestStoreContract(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}

	storetest.Run(t, func(t *testing.T) store.Store {
		ctx := context.Background()
		database := fmt.Sprintf("exercise_tracker_test_%d", time.Now().UnixNano())
		client, err := db.ConnectMongo(ctx, &config.MongoConfig{URI: uri, Database: database})
		if err != nil {
			t.Skipf("Failed to connect to MongoDB: %v", err)
		}
		s, err := New(ctx, client, database)
		if err != nil {
			_ = client.Disconnect(ctx)
			t.Fatalf("New: %v", err)
		}
		t.Cleanup(func() {
			_ = client.Database(database).Drop(ctx)
			_ = s.Close(ctx)
		})
		return s
	})
}
