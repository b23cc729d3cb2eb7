package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/ksriramreddy/procurement-ai/config"
	"github.com/ksriramreddy/procurement-ai/model"
)

// ErrDuplicateVendor reports a unique-index violation on vendors.vendor_id.
var ErrDuplicateVendor = errors.New("vendor already exists")

// Mongo wraps the long-lived client handle and the application database. One
// instance is constructed at startup and injected into the handlers.
type Mongo struct {
	client   *mongo.Client
	database *mongo.Database
}

func Connect(ctx context.Context, cfg *config.MongoConfig) (*Mongo, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URL))
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return &Mongo{
		client:   client,
		database: client.Database(cfg.Database),
	}, nil
}

func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *Mongo) Vendors() *mongo.Collection {
	return m.database.Collection("vendors")
}

func (m *Mongo) VendorCompliances() *mongo.Collection {
	return m.database.Collection("vendor_compliances")
}

func (m *Mongo) EmailThreads() *mongo.Collection {
	return m.database.Collection("email_threads")
}

func (m *Mongo) Messages() *mongo.Collection {
	return m.database.Collection("messages")
}

func (m *Mongo) Contracts() *mongo.Collection {
	return m.database.Collection("contracts")
}

func (m *Mongo) InternalVendors() *mongo.Collection {
	return m.database.Collection("internal_vendors")
}

// EnsureIndexes creates the startup indexes. Failures are logged and
// tolerated: the API still works, only uniqueness enforcement is lost.
func (m *Mongo) EnsureIndexes(ctx context.Context) {
	indexes := []struct {
		coll   *mongo.Collection
		field  string
		unique bool
	}{
		{m.Vendors(), "vendor_id", true},
		{m.EmailThreads(), "vendor_id", false},
		{m.Contracts(), "contract_id", false},
		{m.InternalVendors(), "vendor_id", false},
	}

	for _, idx := range indexes {
		_, err := idx.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: idx.field, Value: 1}},
			Options: options.Index().SetUnique(idx.unique),
		})
		if err != nil {
			slog.Error("index creation failed",
				"collection", idx.coll.Name(),
				"field", idx.field,
				"error", err,
			)
		}
	}
}

// InsertThread stores a new email thread document.
func (m *Mongo) InsertThread(ctx context.Context, thread model.EmailThreadCreate) error {
	if _, err := m.EmailThreads().InsertOne(ctx, thread); err != nil {
		return fmt.Errorf("failed to insert thread: %w", err)
	}
	return nil
}

// AppendThreadID atomically pushes a thread ID onto the vendor matching the
// given natural key. The boolean reports whether a vendor matched.
func (m *Mongo) AppendThreadID(ctx context.Context, vendorID, threadID string) (bool, error) {
	result, err := m.Vendors().UpdateOne(ctx,
		bson.M{"vendor_id": vendorID},
		bson.M{"$push": bson.M{"thread_ids": threadID}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to push thread id: %w", err)
	}
	return result.MatchedCount > 0, nil
}

// InsertVendor stores a new vendor document. A unique-index violation on
// vendor_id is reported as ErrDuplicateVendor so callers can retry as an
// update.
func (m *Mongo) InsertVendor(ctx context.Context, vendor model.VendorCreate) error {
	if _, err := m.Vendors().InsertOne(ctx, vendor); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateVendor
		}
		return fmt.Errorf("failed to insert vendor: %w", err)
	}
	return nil
}
