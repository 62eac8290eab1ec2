package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/JayR61/congregation-connect/pkg/config"
)

// MongoStore keeps one document per key, with the JSON payload held as a string.
type MongoStore struct {
	c *mongo.Collection
}

type mongoEntry struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// OpenMongo connects, pings and returns a store over cfg.Collection.
func OpenMongo(cfg config.MongoConfig) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return NewMongoStore(client.Database(cfg.Database).Collection(cfg.Collection)), nil
}

// NewMongoStore wraps an existing collection.
func NewMongoStore(c *mongo.Collection) *MongoStore {
	return &MongoStore{c: c}
}

func (s *MongoStore) Read(ctx context.Context, key string) ([]byte, bool, error) {
	if s.c == nil {
		return nil, false, ErrClosed
	}
	var entry mongoEntry
	err := s.c.FindOne(ctx, bson.M{"_id": key}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("mongo find %s: %w", key, err)
	}
	return []byte(entry.Value), true, nil
}

func (s *MongoStore) Write(ctx context.Context, key string, value []byte) error {
	if s.c == nil {
		return ErrClosed
	}
	update := bson.M{
		"$set": bson.M{
			"value":      string(value),
			"updated_at": time.Now().UTC(),
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := s.c.UpdateOne(ctx, bson.M{"_id": key}, update, opts); err != nil {
		return fmt.Errorf("mongo upsert %s: %w", key, err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, key string) error {
	if s.c == nil {
		return ErrClosed
	}
	if _, err := s.c.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("mongo delete %s: %w", key, err)
	}
	return nil
}

// Close disconnects the owning client.
func (s *MongoStore) Close() error {
	if s.c == nil {
		return nil
	}
	client := s.c.Database().Client()
	s.c = nil
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return client.Disconnect(ctx)
}
