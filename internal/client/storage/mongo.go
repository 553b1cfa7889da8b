// Package storage wires the client to the hosted document database.
package storage

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/budgetkeeper/internal/logging"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect establishes a connection to the document database and verifies it
// with a ping. The caller owns the returned client and must Disconnect it.
func Connect(ctx context.Context, uri string, log logging.Logger) (*mongo.Client, error) {
	log.Debug(ctx, "connecting to document store", "uri", uri)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to document store: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping document store: %w", err)
	}

	log.Info(ctx, "connected to document store")
	return client, nil
}
