package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"teachmatch-dashboard/internal/config"
	"teachmatch-dashboard/internal/logging"
)

// ErrSessionNotFound is returned when no session exists for an ID
var ErrSessionNotFound = errors.New("search session not found")

// SessionStore persists search sessions between requests
type SessionStore interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, id string) error
}

// RedisStore keeps sessions in Redis as JSON values with a TTL
type RedisStore struct {
	client    *redis.Client
	ttl       time.Duration
	keyPrefix string
	logger    logging.Logger
}

// NewRedisStore creates a Redis-backed session store
func NewRedisStore(cfg *config.Config) *RedisStore {
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		// Fallback to default configuration
		opts = &redis.Options{
			Addr:     "localhost:6379",
			Password: "",
			DB:       0,
		}
	}

	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	opts.DB = cfg.Redis.DB
	opts.DialTimeout = cfg.Redis.Timeout
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	return &RedisStore{
		client:    redis.NewClient(opts),
		ttl:       cfg.Sessions.TTL,
		keyPrefix: cfg.Sessions.KeyPrefix,
		logger:    logging.GetGlobalLogger(),
	}
}

// Ping tests the Redis connection
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Get loads a session by ID
func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	val, err := s.client.Get(ctx, s.key(id)).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}

	var session Session
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		// A corrupt value is treated as absent; the caller recreates defaults
		s.logger.Warn("Discarding corrupt search session", map[string]interface{}{
			"session_id": id,
			"error":      err.Error(),
		})
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

// Save stores a session, refreshing its TTL
func (s *RedisStore) Save(ctx context.Context, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session %s: %w", session.ID, err)
	}
	if err := s.client.Set(ctx, s.key(session.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session %s: %w", session.ID, err)
	}
	return nil
}

// Delete removes a session
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.key(id)).Err()
}

func (s *RedisStore) key(id string) string {
	return s.keyPrefix + id
}

// MemoryStore is an in-process session store. It backs tests and serves as a
// degraded fallback when Redis is unreachable at startup.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore creates an empty in-memory session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

// Get loads a session by ID
func (s *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	copied := *session
	copied.Staged = session.Staged.Clone()
	copied.Applied = session.Applied.Clone()
	return &copied, nil
}

// Save stores a session
func (s *MemoryStore) Save(ctx context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *session
	copied.Staged = session.Staged.Clone()
	copied.Applied = session.Applied.Clone()
	s.sessions[session.ID] = &copied
	return nil
}

// Delete removes a session
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
