package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo is a Cache backed by a MongoDB collection with a TTL index on
// expires_at. Expiry is enforced both by the index and by the read
// query, since the TTL monitor only sweeps periodically.
type Mongo struct {
	client     *mongo.Client
	collection *mongo.Collection
	ttl        time.Duration
}

type entry struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	CreatedAt time.Time `bson:"created_at"`
	ExpiresAt time.Time `bson:"expires_at"`
}

// NewMongo connects, pings, and ensures the TTL index. Connection
// failure is returned to the caller, which typically downgrades to Noop.
func NewMongo(ctx context.Context, uri, database, collection string, ttl time.Duration) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	coll := client.Database(database).Collection(collection)

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	}
	if _, err := coll.Indexes().CreateOne(ctx, indexModel); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("create TTL index: %w", err)
	}

	return &Mongo{client: client, collection: coll, ttl: ttl}, nil
}

func (m *Mongo) Get(ctx context.Context, key string) ([]byte, error) {
	filter := bson.M{
		"_id":        key,
		"expires_at": bson.M{"$gt": time.Now().UTC()},
	}

	var e entry
	err := m.collection.FindOne(ctx, filter).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache read: %w", err)
	}
	return e.Value, nil
}

func (m *Mongo) Set(ctx context.Context, key string, value []byte) error {
	now := time.Now().UTC()
	e := entry{
		Key:       key,
		Value:     value,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	_, err := m.collection.ReplaceOne(ctx, bson.M{"_id": key}, e, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("cache write: %w", err)
	}
	return nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
