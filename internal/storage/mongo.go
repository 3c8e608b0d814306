package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medreminder/internal/reminder"
)

// MongoStorage implements the Storage interface using MongoDB. The
// whole reminder list lives in one document, keeping the same
// single-key whole-blob discipline as the other backends.
type MongoStorage struct {
	client     *mongo.Client
	collection *mongo.Collection
	mu         sync.Mutex
}

type reminderDocument struct {
	ID        string               `bson:"_id"`
	Reminders []*reminder.Reminder `bson:"reminders"`
}

// NewMongoStorage creates a new MongoDB storage instance.
func NewMongoStorage(connectionString, databaseName string) (*MongoStorage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(connectionString))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &MongoStorage{
		client:     client,
		collection: client.Database(databaseName).Collection("kv"),
	}, nil
}

// Close closes the MongoDB connection.
func (ms *MongoStorage) Close(ctx context.Context) error {
	return ms.client.Disconnect(ctx)
}

func (ms *MongoStorage) LoadReminders() ([]*reminder.Reminder, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ctx := context.Background()
	var doc reminderDocument
	err := ms.collection.FindOne(ctx, bson.M{"_id": remindersKey}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load reminders: %w", err)
	}
	return doc.Reminders, nil
}

func (ms *MongoStorage) StoreReminders(reminders []*reminder.Reminder) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ctx := context.Background()
	doc := reminderDocument{ID: remindersKey, Reminders: reminders}
	opts := options.Replace().SetUpsert(true)
	if _, err := ms.collection.ReplaceOne(ctx, bson.M{"_id": remindersKey}, doc, opts); err != nil {
		return fmt.Errorf("failed to store reminders: %w", err)
	}
	return nil
}
