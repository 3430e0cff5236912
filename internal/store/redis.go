package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/shorturl-service/internal/shortener"
)

// redisRecord is the JSON document stored for every short URL.
type redisRecord struct {
	Code        string    `json:"short_url"`
	OriginalURL string    `json:"original_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// RedisStore is a Redis implementation of shortener.Repository.
//
// Each record is written twice in one transaction: under "shorturl:code:<code>"
// for lookups (first writer wins) and appended to the "shorturl:records" list,
// which List reads back in insertion order.
type RedisStore struct {
	client     *redis.Client
	prefix     string
	recordsKey string
}

// NewRedisStore creates a new Redis-backed URL store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client:     client,
		prefix:     "shorturl:code:",
		recordsKey: "shorturl:records",
	}
}

func (r *RedisStore) Save(ctx context.Context, shortURL *shortener.ShortURL) error {
	payload, err := json.Marshal(redisRecord{
		Code:        string(shortURL.Code),
		OriginalURL: shortURL.OriginalURL,
		CreatedAt:   shortURL.CreatedAt,
	})
	if err != nil {
		return err
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, r.prefix+string(shortURL.Code), payload, 0)
		pipe.RPush(ctx, r.recordsKey, payload)

		return nil
	})

	return err
}

func (r *RedisStore) GetByCode(ctx context.Context, code shortener.Code) (*shortener.ShortURL, error) {
	payload, err := r.client.Get(ctx, r.prefix+string(code)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shortener.ErrNotFound
		}

		return nil, err
	}

	return decodeRedisRecord(payload)
}

func (r *RedisStore) List(ctx context.Context) ([]*shortener.ShortURL, error) {
	payloads, err := r.client.LRange(ctx, r.recordsKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	urls := make([]*shortener.ShortURL, 0, len(payloads))

	for _, payload := range payloads {
		url, err := decodeRedisRecord([]byte(payload))
		if err != nil {
			return nil, err
		}

		urls = append(urls, url)
	}

	return urls, nil
}

// Ping checks Redis connectivity.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func decodeRedisRecord(payload []byte) (*shortener.ShortURL, error) {
	var record redisRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, err
	}

	return &shortener.ShortURL{
		Code:        shortener.Code(record.Code),
		OriginalURL: record.OriginalURL,
		CreatedAt:   record.CreatedAt,
	}, nil
}

// Compile-time check.
var _ shortener.Repository = (*RedisStore)(nil)
