// Package mongodb implements the store interfaces against a MongoDB
// deployment using the official driver.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tuitionnetwork/tuition-api/internal/config"
)

// Collection names used by the application.
const (
	CollectionTutorRequests = "tutorRequests"
	CollectionUsers         = "users"
	CollectionTutors        = "tutors"
	CollectionPayments      = "payments"
)

// Connect establishes a MongoDB client for the configured deployment and
// verifies connectivity with a ping. The caller owns the returned client and
// must Disconnect it on shutdown.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*mongo.Client, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(cfg.URI).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Database("admin").RunCommand(pingCtx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		// Best-effort disconnect; the ping failure is the error that matters.
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client, nil
}
