package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/socraticlabs/copilot/discussion"
)

const (
	discussionKeyPrefix = "discussion:"
	indexKey            = "discussions:index"
	titlesKey           = "discussions:titles"
	auditKey            = "audit:log"

	defaultRedisTTL = 24 * time.Hour
)

// RedisStore persists discussions as JSON values with a TTL that is refreshed
// on every read and write. A sorted set scored by update time backs List, and
// the audit log is an append-only Redis list.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed Store. A non-positive ttl falls back
// to 24 hours.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = defaultRedisTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) key(id string) string {
	return discussionKeyPrefix + id
}

func (s *RedisStore) Save(ctx context.Context, d *discussion.Discussion) error {
	d.UpdatedAt = time.Now().UTC()

	val, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSaveFailed, d.ID, err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(d.ID), val, s.ttl)
	pipe.ZAdd(ctx, indexKey, redis.Z{Score: float64(d.UpdatedAt.Unix()), Member: d.ID})
	pipe.HSet(ctx, titlesKey, d.ID, d.Title())
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSaveFailed, d.ID, err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, id string) (*discussion.Discussion, error) {
	if id == "" {
		return nil, nil
	}

	val, err := s.client.Get(ctx, s.key(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoadFailed, id, err)
	}

	var d discussion.Discussion
	if err := json.Unmarshal([]byte(val), &d); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoadFailed, id, err)
	}

	// Best effort: a failed TTL refresh does not fail the read.
	_ = s.client.Expire(ctx, s.key(id), s.ttl).Err()

	return &d, nil
}

func (s *RedisStore) List(ctx context.Context) ([]Summary, error) {
	ids, err := s.client.ZRevRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	// Discussion values expire via TTL but index and title entries do not,
	// so an id can outlive its record. Filter those out and prune them.
	pipe := s.client.Pipeline()
	checks := make([]*redis.IntCmd, len(ids))
	for i, id := range ids {
		checks[i] = pipe.Exists(ctx, s.key(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}

	exists := make([]bool, len(ids))
	for i, check := range checks {
		exists[i] = check.Val() > 0
	}

	live, stale := partitionLive(ids, exists)
	if len(stale) > 0 {
		// Best effort: a failed prune leaves the entries for the next List.
		members := make([]interface{}, len(stale))
		for i, id := range stale {
			members[i] = id
		}
		_ = s.client.ZRem(ctx, indexKey, members...).Err()
		_ = s.client.HDel(ctx, titlesKey, stale...).Err()
	}
	if len(live) == 0 {
		return nil, nil
	}

	titles, err := s.client.HMGet(ctx, titlesKey, live...).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}

	return summariesFromTitles(live, titles), nil
}

// partitionLive splits ids by whether their discussion record still exists,
// preserving order. Ids past the end of exists count as stale.
func partitionLive(ids []string, exists []bool) (live, stale []string) {
	for i, id := range ids {
		if i < len(exists) && exists[i] {
			live = append(live, id)
		} else {
			stale = append(stale, id)
		}
	}
	return live, stale
}

// summariesFromTitles pairs ids with their stored titles, substituting the
// default title for missing or empty entries.
func summariesFromTitles(ids []string, titles []interface{}) []Summary {
	summaries := make([]Summary, 0, len(ids))
	for i, id := range ids {
		title := discussion.DefaultTitle
		if i < len(titles) {
			if t, ok := titles[i].(string); ok && t != "" {
				title = t
			}
		}
		summaries = append(summaries, Summary{ID: id, Title: title})
	}
	return summaries
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// RedisAuditLog appends events to an append-only Redis list.
type RedisAuditLog struct {
	client *redis.Client
}

// NewRedisAuditLog creates an audit log over the given client.
func NewRedisAuditLog(client *redis.Client) *RedisAuditLog {
	return &RedisAuditLog{client: client}
}

func (l *RedisAuditLog) Append(ctx context.Context, event string, data map[string]any) error {
	line, err := json.Marshal(auditRecord{
		Event:     event,
		Data:      data,
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("%w: audit: %v", ErrSaveFailed, err)
	}

	if err := l.client.RPush(ctx, auditKey, line).Err(); err != nil {
		return fmt.Errorf("%w: audit: %v", ErrSaveFailed, err)
	}
	return nil
}
