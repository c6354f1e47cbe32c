package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/AlibekovAA/notes-app/backend/internal/common/constants"
	"github.com/AlibekovAA/notes-app/backend/internal/common/logger"
	"github.com/AlibekovAA/notes-app/backend/internal/observability/metrics"
)

func NewMongoClient(ctx context.Context, log *logger.Logger, uri string) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, constants.MongoConnectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetAppName("notes-app").
		SetMaxPoolSize(constants.DBPoolMaxOpenConns).
		SetMinPoolSize(constants.DBPoolMinOpenConns)

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	log.Infof("mongodb client connected")
	return client, nil
}

// ObjectID parses a hex id; anything that is not a 24 digit hex string is
// ErrMalformedID.
func ObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrMalformedID
	}
	return oid, nil
}

// HandleMongoError is the document store counterpart of HandleStoreError.
func HandleMongoError(err error, notFound error, operation, collection string, startTime time.Time) error {
	metrics.DBQueryDurationSeconds.WithLabelValues(operation, collection).Observe(time.Since(startTime).Seconds())

	if err == nil {
		return nil
	}
	if notFound != nil && (errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, notFound)) {
		return notFound
	}

	metrics.DBQueryErrors.WithLabelValues(operation, collection, fmt.Sprintf("%T", err)).Inc()

	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("failed to %s: %w", operation, ErrUniqueViolation)
	}
	return fmt.Errorf("failed to %s: %w", operation, err)
}
