package store

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoStore implements Store on MongoDB collections, for deployments that
// outgrow the flat-file backend. Write keeps the Store contract of replacing
// the whole collection; it is not meant to be efficient, just interchangeable.
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(uri, dbName string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return &MongoStore{db: client.Database(dbName)}, nil
}

// Ensure is a no-op: MongoDB creates collections on first insert.
func (s *MongoStore) Ensure(ctx context.Context, collection string) error {
	return nil
}

func (s *MongoStore) Read(ctx context.Context, collection string, out any) error {
	cursor, err := s.db.Collection(collection).Find(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("read %s collection: %w", collection, err)
	}
	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("decode %s collection: %w", collection, err)
	}
	return nil
}

func (s *MongoStore) Write(ctx context.Context, collection string, records any) error {
	coll := s.db.Collection(collection)
	if _, err := coll.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("replace %s collection: %w", collection, err)
	}
	v := reflect.ValueOf(records)
	if v.Kind() != reflect.Slice || v.Len() == 0 {
		return nil
	}
	docs := make([]any, v.Len())
	for i := 0; i < v.Len(); i++ {
		docs[i] = v.Index(i).Interface()
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("replace %s collection: %w", collection, err)
	}
	return nil
}
