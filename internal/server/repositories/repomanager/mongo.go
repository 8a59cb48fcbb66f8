package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/scanmed/internal/server/repositories/chats"
	"github.com/dmitrijs2005/scanmed/internal/server/repositories/medications"
	"github.com/dmitrijs2005/scanmed/internal/server/repositories/readings"
	"github.com/dmitrijs2005/scanmed/internal/server/repositories/scans"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoRepositoryManager vends MongoDB-backed repositories over one client.
type MongoRepositoryManager struct {
	client *mongo.Client
	db     *mongo.Database

	scans       *scans.MongoRepository
	medications *medications.MongoRepository
	readings    *readings.MongoRepository
	chats       *chats.MongoRepository
}

// createIndexes is a seam for testing index creation without a server.
var createIndexes = func(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	_, err := coll.Indexes().CreateMany(ctx, models)
	return err
}

// NewMongoRepositoryManager creates a client for uri. The driver connects
// lazily, so an unreachable server surfaces on first use or Ping.
func NewMongoRepositoryManager(ctx context.Context, uri, database string) (*MongoRepositoryManager, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	db := client.Database(database)

	return &MongoRepositoryManager{
		client:      client,
		db:          db,
		scans:       scans.NewMongoRepository(db),
		medications: medications.NewMongoRepository(db),
		readings:    readings.NewMongoRepository(db),
		chats:       chats.NewMongoRepository(db),
	}, nil
}

// RunMigrations creates the per-collection indexes. CreateMany is a no-op
// for indexes that already exist.
func (m *MongoRepositoryManager) RunMigrations(ctx context.Context) error {
	for name, models := range map[string][]mongo.IndexModel{
		scans.CollectionName:       scans.Indexes(),
		medications.CollectionName: medications.Indexes(),
		readings.CollectionName:    readings.Indexes(),
		chats.CollectionName:       chats.Indexes(),
	} {
		if err := createIndexes(ctx, m.db.Collection(name), models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}

func (m *MongoRepositoryManager) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

func (m *MongoRepositoryManager) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *MongoRepositoryManager) Scans() scans.Repository             { return m.scans }
func (m *MongoRepositoryManager) Medications() medications.Repository { return m.medications }
func (m *MongoRepositoryManager) Readings() readings.Repository       { return m.readings }
func (m *MongoRepositoryManager) Chats() chats.Repository             { return m.chats }
