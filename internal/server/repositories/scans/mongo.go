package scans

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/scanmed/internal/common"
	"github.com/dmitrijs2005/scanmed/internal/server/models"
	"github.com/dmitrijs2005/scanmed/internal/server/repositories/trashfilter"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// CollectionName is the document collection holding scans.
const CollectionName = "health_scans"

// MongoRepository implements scan storage over a MongoDB collection.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionName)}
}

// Indexes lists the indexes the collection needs.
func Indexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "deleted_at", Value: 1}}},
	}
}

func (r *MongoRepository) Create(ctx context.Context, s *models.ScanRecord) error {
	if _, err := r.coll.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("mongo error: %w", err)
	}
	return nil
}

func (r *MongoRepository) Get(ctx context.Context, id string) (*models.ScanRecord, error) {
	var s models.ScanRecord
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("mongo error: %w", err)
	}
	return &s, nil
}

func (r *MongoRepository) List(ctx context.Context, userID string, filter models.TrashFilter) ([]*models.ScanRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.coll.Find(ctx, trashfilter.Mongo(userID, filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find scans: %w", err)
	}

	result := []*models.ScanRecord{}
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("failed to decode scans: %w", err)
	}
	return result, nil
}

type trashDoc struct {
	UserID    string     `bson:"user_id"`
	DeletedAt *time.Time `bson:"deleted_at"`
}

func (r *MongoRepository) TrashState(ctx context.Context, id string) (models.TrashState, error) {
	var d trashDoc
	opts := options.FindOne().SetProjection(bson.M{"user_id": 1, "deleted_at": 1})
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.TrashState{}, common.ErrorNotFound
		}
		return models.TrashState{}, fmt.Errorf("mongo error: %w", err)
	}
	return models.TrashState{UserID: d.UserID, DeletedAt: d.DeletedAt}, nil
}

func (r *MongoRepository) SetDeletedAt(ctx context.Context, id string, deletedAt *time.Time, updatedAt time.Time) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"deleted_at": deletedAt, "updated_at": updatedAt}},
	)
	if err != nil {
		return fmt.Errorf("mongo error: %w", err)
	}
	if res.MatchedCount == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *MongoRepository) Stats(ctx context.Context) (*models.ScanStats, error) {
	active := bson.D{{Key: "$match", Value: bson.D{{Key: "deleted_at", Value: nil}}}}

	cursor, err := r.coll.Aggregate(ctx, mongo.Pipeline{
		active,
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$scan_type"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "avg_confidence", Value: bson.D{{Key: "$avg", Value: "$confidence"}}},
		}}},
	})
	if err != nil {
		return nil, fmt.Errorf("mongo error: %w", err)
	}
	var byType []models.ScanTypeStats
	if err := cursor.All(ctx, &byType); err != nil {
		return nil, fmt.Errorf("mongo error: %w", err)
	}

	cursor, err = r.coll.Aggregate(ctx, mongo.Pipeline{
		active,
		{{Key: "$group", Value: bson.D{{Key: "_id", Value: "$user_id"}}}},
		{{Key: "$count", Value: "users"}},
	})
	if err != nil {
		return nil, fmt.Errorf("mongo error: %w", err)
	}
	var counts []struct {
		Users int64 `bson:"users"`
	}
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("mongo error: %w", err)
	}

	var users int64
	if len(counts) > 0 {
		users = counts[0].Users
	}
	return models.NewScanStats(users, byType), nil
}
