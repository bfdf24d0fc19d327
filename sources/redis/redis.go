// Package redis implements the record Source interface using Redis as the storage backend.
// Documents are stored as JSON in a hash per namespace; a sorted set scored by an
// insertion counter keeps load order stable.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/remiges-tech/fuzzysearch/sources"
)

const (
	// prefixDoc is the Redis key prefix for hash maps storing ID → document JSON.
	prefixDoc = "fs:doc:"

	// prefixOrder is the Redis key prefix for sorted sets storing IDs by insertion sequence.
	prefixOrder = "fs:order:"

	// prefixSeq is the Redis key prefix for the per-namespace insertion counter.
	prefixSeq = "fs:seq:"
)

// Source implements the record Source interface using Redis.
// All methods are safe for concurrent use.
type Source struct {
	client *redis.Client
}

// Config holds Redis connection parameters.
type Config struct {
	// Addr is the Redis server address in the format "host:port".
	Addr string

	// Password is the Redis password (empty string for no password).
	Password string

	// DB is the Redis database number (0-15, default is 0).
	// Redis Cluster only supports DB 0.
	DB int
}

// New creates a new Redis source with the given configuration.
// It establishes a connection to Redis and verifies connectivity with a PING command.
func New(config Config) (*Source, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password, // pragma: allowlist secret
		DB:       config.DB,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Source{
		client: client,
	}, nil
}

// Put adds or updates a document. Existing documents keep their sequence number.
func (s *Source) Put(ctx context.Context, key string, doc sources.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	seq, err := s.client.Incr(ctx, prefixSeq+key).Result()
	if err != nil {
		return fmt.Errorf("failed to allocate sequence: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.ZAddNX(ctx, prefixOrder+key, &redis.Z{
		Score:  float64(seq),
		Member: doc.ID,
	})
	pipe.HSet(ctx, prefixDoc+key, doc.ID, data)

	_, err = pipe.Exec(ctx)
	return err
}

// Load returns all documents of a namespace in insertion order.
func (s *Source) Load(ctx context.Context, key string) ([]sources.Document, error) {
	ids, err := s.client.ZRange(ctx, prefixOrder+key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read document order: %w", err)
	}
	if len(ids) == 0 {
		return []sources.Document{}, nil
	}

	values, err := s.client.HMGet(ctx, prefixDoc+key, ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch documents: %w", err)
	}

	docs := make([]sources.Document, 0, len(ids))
	for i, id := range ids {
		raw, ok := values[i].(string)
		if !ok {
			continue
		}

		var doc sources.Document
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, fmt.Errorf("failed to decode document %s: %w", id, err)
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

// Delete removes a document.
func (s *Source) Delete(ctx context.Context, key, id string) error {
	pipe := s.client.TxPipeline()
	pipe.ZRem(ctx, prefixOrder+key, id)
	pipe.HDel(ctx, prefixDoc+key, id)

	_, err := pipe.Exec(ctx)
	return err
}

// DeleteAll removes all documents for a given namespace.
func (s *Source) DeleteAll(ctx context.Context, key string) error {
	pipe := s.client.Pipeline()

	deleteAllKeysForNamespace(pipe, ctx, key)

	_, err := pipe.Exec(ctx)
	return err
}

// Close closes the Redis connection.
func (s *Source) Close() error {
	return s.client.Close()
}

func deleteAllKeysForNamespace(pipe redis.Pipeliner, ctx context.Context, key string) {
	pipe.Del(ctx, prefixDoc+key)
	pipe.Del(ctx, prefixOrder+key)
	pipe.Del(ctx, prefixSeq+key)
}
