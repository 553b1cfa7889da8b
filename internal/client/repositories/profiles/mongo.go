package profiles

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/budgetkeeper/internal/client/models"
	"github.com/dmitrijs2005/budgetkeeper/internal/common"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "profiles"

// MongoRepository implements Repository over the profiles collection.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(collectionName)}
}

func (r *MongoRepository) Get(ctx context.Context, userID string) (*models.Profile, error) {
	var p models.Profile
	err := r.coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

// SaveKeyBackup uses $set so unrelated profile fields survive the write
// (merge semantics, not replace).
func (r *MongoRepository) SaveKeyBackup(ctx context.Context, userID, exportedKey string, at time.Time) error {
	update := bson.M{"$set": bson.M{
		"encryption_key": exportedKey,
		"key_backup_at":  at,
	}}
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": userID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save key backup: %w", err)
	}
	return nil
}
