package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/RuvinSL/aeo-analyzer/pkg/interfaces"
	"github.com/RuvinSL/aeo-analyzer/pkg/models"
)

const (
	recentKey = "analyses:recent"

	// recordTTL bounds how long a record stays reachable by id.
	recordTTL = 7 * 24 * time.Hour
)

// RedisStore persists analyses as JSON strings in Redis.
//
// Keys:
//
//	analysis:<id>       the record
//	analysis:url:<url>  id of the newest record for url, expires with the freshness window
//	analyses:recent     list of ids, newest first, trimmed to retain entries
type RedisStore struct {
	client   *redis.Client
	freshFor time.Duration
	retain   int
	now      func() time.Time
}

// NewRedisClient parses a redis:// URL and verifies the connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

func NewRedisStore(client *redis.Client, freshFor time.Duration, retain int, now func() time.Time) *RedisStore {
	if now == nil {
		now = time.Now
	}
	return &RedisStore{
		client:   client,
		freshFor: freshFor,
		retain:   retain,
		now:      now,
	}
}

func recordKey(id string) string {
	return "analysis:" + id
}

func urlKey(url string) string {
	return "analysis:url:" + url
}

func (s *RedisStore) Save(ctx context.Context, result *models.AnalysisResult) (*models.Analysis, error) {
	record, err := models.NewAnalysis(uuid.NewString(), result, s.now())
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to encode analysis: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, recordKey(record.ID), data, recordTTL)
		pipe.Set(ctx, urlKey(record.URL), record.ID, s.freshFor)
		pipe.LPush(ctx, recentKey, record.ID)
		if s.retain > 0 {
			pipe.LTrim(ctx, recentKey, 0, int64(s.retain-1))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save analysis: %w", err)
	}

	return record, nil
}

func (s *RedisStore) FindRecent(ctx context.Context, url string) (*models.Analysis, bool, error) {
	id, err := s.client.Get(ctx, urlKey(url)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up analysis for %s: %w", url, err)
	}

	record, found, err := s.Get(ctx, id)
	if err != nil || !found {
		return nil, false, err
	}
	if !isFresh(*record, s.now(), s.freshFor) {
		return nil, false, nil
	}
	return record, true, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*models.Analysis, bool, error) {
	data, err := s.client.Get(ctx, recordKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load analysis %s: %w", id, err)
	}

	var record models.Analysis
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, false, fmt.Errorf("failed to decode analysis %s: %w", id, err)
	}
	return &record, true, nil
}

// List returns up to limit analyses, newest first. Ids whose record has
// expired are skipped.
func (s *RedisStore) List(ctx context.Context, limit int) ([]models.Analysis, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	ids, err := s.client.LRange(ctx, recentKey, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	if len(ids) == 0 {
		return []models.Analysis{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = recordKey(id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load analyses: %w", err)
	}

	out := make([]models.Analysis, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var record models.Analysis
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			return nil, fmt.Errorf("failed to decode analysis %s: %w", ids[i], err)
		}
		out = append(out, record)
	}
	return out, nil
}

func (s *RedisStore) CheckHealth(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ interfaces.AnalysisStore = (*RedisStore)(nil)
