package budgets

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/budgetkeeper/internal/client/models"
	"github.com/dmitrijs2005/budgetkeeper/internal/common"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "budgets"

// MongoRepository implements Repository over the budgets collection.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(collectionName)}
}

// Upsert keys budgets by (user, category, month) so that re-setting a limit
// updates the existing budget instead of accumulating duplicates. The _id is
// immutable in the document store, so only the mutable fields are $set and
// the identity fields apply on insert alone; b is refreshed from the stored
// document, preserving the original _id and created_at on update.
func (r *MongoRepository) Upsert(ctx context.Context, b *models.Budget) error {
	filter := bson.M{"user_id": b.UserID, "category": b.Category, "month": b.Month}
	update := bson.M{
		"$set": bson.M{
			"limit":      b.Limit,
			"updated_at": b.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"_id":        b.ID,
			"created_at": b.CreatedAt,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(b); err != nil {
		return fmt.Errorf("failed to upsert budget: %w", err)
	}
	return nil
}

func (r *MongoRepository) ListByUserMonth(ctx context.Context, userID, month string) ([]models.Budget, error) {
	opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID, "month": month}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer cursor.Close(ctx)

	var result []models.Budget
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("failed to decode budgets: %w", err)
	}
	return result, nil
}

func (r *MongoRepository) DeleteByID(ctx context.Context, userID, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	if res.DeletedCount == 0 {
		return common.ErrorNotFound
	}
	return nil
}
