package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"newsroom/db"
)

const (
	fieldUsername  = "username"
	fieldLastQuery = "last_query"

	defaultTTL = 7 * 24 * time.Hour
)

// Session is the per-browser state: who is logged in and what they last
// searched for.
type Session struct {
	ID        string
	Username  string
	LastQuery string
}

// Store keeps sessions in Redis hashes so they survive process restarts.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client, ttl: defaultTTL}
}

func (s *Store) Create(ctx context.Context, username string) (*Session, error) {
	id := uuid.NewString()
	key := db.SessionKeyPrefix + id

	if err := s.client.HSet(ctx, key, fieldUsername, username).Err(); err != nil {
		return nil, err
	}
	if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
		return nil, err
	}

	return &Session{ID: id, Username: username}, nil
}

// Get returns nil for an unknown or expired session ID, with no error.
// A hit refreshes the TTL.
func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	key := db.SessionKeyPrefix + id

	fields, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 || fields[fieldUsername] == "" {
		return nil, nil
	}

	if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
		return nil, err
	}

	return &Session{
		ID:        id,
		Username:  fields[fieldUsername],
		LastQuery: fields[fieldLastQuery],
	}, nil
}

func (s *Store) SetLastQuery(ctx context.Context, id, query string) error {
	return s.client.HSet(ctx, db.SessionKeyPrefix+id, fieldLastQuery, query).Err()
}

func (s *Store) ClearLastQuery(ctx context.Context, id string) error {
	return s.client.HDel(ctx, db.SessionKeyPrefix+id, fieldLastQuery).Err()
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, db.SessionKeyPrefix+id).Err()
}
