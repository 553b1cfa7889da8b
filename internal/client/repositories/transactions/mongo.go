package transactions

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

const collectionName = "transactions"

// MongoRepository implements Repository over a collection in the hosted
// document database.
type MongoRepository struct {
	coll *mongo.Collection
}

// NewMongoRepository returns a MongoRepository bound to the transactions
// collection of the given database.
func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(collectionName)}
}

// Save replaces the whole document by id, inserting it when absent.
func (r *MongoRepository) Save(ctx context.Context, tx *models.Transaction) error {
	filter := bson.M{"_id": tx.ID, "user_id": tx.UserID}
	_, err := r.coll.ReplaceOne(ctx, filter, tx, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}
	return nil
}

func (r *MongoRepository) GetByID(ctx context.Context, userID, id string) (*models.Transaction, error) {
	var tx models.Transaction
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&tx)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &tx, nil
}

func (r *MongoRepository) ListByUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *MongoRepository) ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]models.Transaction, error) {
	filter := bson.M{
		"user_id":    userID,
		"date_plain": bson.M{"$gte": from, "$lt": to},
	}
	return r.list(ctx, filter)
}

func (r *MongoRepository) list(ctx context.Context, filter bson.M) ([]models.Transaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date_plain", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var result []models.Transaction
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}
	return result, nil
}

func (r *MongoRepository) DeleteByID(ctx context.Context, userID, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if res.DeletedCount == 0 {
		return common.ErrorNotFound
	}
	return nil
}
