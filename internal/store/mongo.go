package store

import (
	"context"
	"errors"
	"time"

	"github.com/serroba/shorturl-service/internal/shortener"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// mongoDocument is the BSON layout of a short URL document.
type mongoDocument struct {
	ShortURL    string    `bson:"short_url"`
	OriginalURL string    `bson:"original_url"`
	CreatedAt   time.Time `bson:"created_at"`
}

// MongoStore is a MongoDB implementation of shortener.Repository.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoStore creates a new MongoDB-backed URL store on the given collection.
func NewMongoStore(client *mongo.Client, database, collection string) *MongoStore {
	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}
}

// EnsureIndexes creates a non-unique index on short_url. Codes may collide.
func (m *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := m.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "short_url", Value: 1}},
	})

	return err
}

func (m *MongoStore) Save(ctx context.Context, shortURL *shortener.ShortURL) error {
	_, err := m.collection.InsertOne(ctx, mongoDocument{
		ShortURL:    string(shortURL.Code),
		OriginalURL: shortURL.OriginalURL,
		CreatedAt:   shortURL.CreatedAt,
	})

	return err
}

func (m *MongoStore) GetByCode(ctx context.Context, code shortener.Code) (*shortener.ShortURL, error) {
	var doc mongoDocument

	err := m.collection.FindOne(ctx, bson.D{{Key: "short_url", Value: string(code)}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, shortener.ErrNotFound
		}

		return nil, err
	}

	return doc.toShortURL(), nil
}

func (m *MongoStore) List(ctx context.Context) ([]*shortener.ShortURL, error) {
	cursor, err := m.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}

	var docs []mongoDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	urls := make([]*shortener.ShortURL, 0, len(docs))
	for i := range docs {
		urls = append(urls, docs[i].toShortURL())
	}

	return urls, nil
}

// Ping checks MongoDB connectivity against the primary.
func (m *MongoStore) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (d *mongoDocument) toShortURL() *shortener.ShortURL {
	return &shortener.ShortURL{
		Code:        shortener.Code(d.ShortURL),
		OriginalURL: d.OriginalURL,
		CreatedAt:   d.CreatedAt,
	}
}

// Compile-time check.
var _ shortener.Repository = (*MongoStore)(nil)
