package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"recruitment-tracker/internal/logger"
	"recruitment-tracker/internal/repository"
)

type Options struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

// Store wraps one long-lived client. The driver's connection pool handles
// reconnects; reads and writes are never retried.
type Store struct {
	client *mongo.Client
	repository.RecruitmentRepository
}

var _ repository.Store = (*Store)(nil)

func Open(ctx context.Context, opts Options) (*Store, error) {
	clientOpts := options.Client().
		ApplyURI(opts.URI).
		SetRetryReads(false).
		SetRetryWrites(false)
	if opts.Timeout > 0 {
		clientOpts.SetTimeout(opts.Timeout).SetServerSelectionTimeout(opts.Timeout)
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	coll := client.Database(opts.Database).Collection(opts.Collection)
	if err := ensureIndexes(ctx, coll); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	logger.Info("MongoDB connection established", "database", opts.Database, "collection", opts.Collection)
	return &Store{
		client:                client,
		RecruitmentRepository: NewRecruitmentRepository(coll),
	}, nil
}

func ensureIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("createdAt_desc"),
	})
	return err
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
