package medications

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

const CollectionName = "medications"

// MongoRepository implements medication storage over a MongoDB collection.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionName)}
}

func Indexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "deleted_at", Value: 1}}},
	}
}

func (r *MongoRepository) Create(ctx context.Context, m *models.MedicationRecord) error {
	if _, err := r.coll.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("mongo error: %w", err)
	}
	return nil
}

func (r *MongoRepository) Get(ctx context.Context, id string) (*models.MedicationRecord, error) {
	var m models.MedicationRecord
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("mongo error: %w", err)
	}
	return &m, nil
}

func (r *MongoRepository) List(ctx context.Context, userID string, filter models.TrashFilter) ([]*models.MedicationRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.coll.Find(ctx, trashfilter.Mongo(userID, filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find medications: %w", err)
	}

	result := []*models.MedicationRecord{}
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("failed to decode medications: %w", err)
	}
	return result, nil
}

func (r *MongoRepository) Update(ctx context.Context, m *models.MedicationRecord) error {
	return r.set(ctx, m.ID, bson.M{
		"status":     m.Status,
		"adherence":  m.Adherence,
		"end_date":   m.EndDate,
		"notes":      m.Notes,
		"updated_at": m.UpdatedAt,
	})
}

func (r *MongoRepository) TrashState(ctx context.Context, id string) (models.TrashState, error) {
	var d struct {
		UserID    string     `bson:"user_id"`
		DeletedAt *time.Time `bson:"deleted_at"`
	}
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
	return r.set(ctx, id, bson.M{"deleted_at": deletedAt, "updated_at": updatedAt})
}

func (r *MongoRepository) set(ctx context.Context, id string, fields bson.M) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("mongo error: %w", err)
	}
	if res.MatchedCount == 0 {
		return common.ErrorNotFound
	}
	return nil
}
