package auth

import (
	"context"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"
	goredis "github.com/redis/go-redis/v9"

	redisplatform "github.com/FBSocial/subway2-team-activities/internal/platform/redis"
)

const keyPrefixSession = "subway2:session:"

// Identity is the minimal cached user identity kept for optimistic UI:
// enough to render an avatar and nickname before a fresh snapshot
// arrives.
type Identity struct {
	UserID   string `json:"user_id"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
}

// SessionStore holds token-keyed sessions in Redis with an in-process
// identity cache in front of it. It replaces the old module-level
// "last known user" variable: state lives in an explicit object with
// Init at session start and Clear on logout.
type SessionStore struct {
	client     *redisplatform.Client
	ttl        time.Duration
	identities *gocache.Cache
}

func NewSessionStore(client *redisplatform.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:     client,
		ttl:        ttl,
		identities: gocache.New(ttl, 10*time.Minute),
	}
}

func makeSessionKey(token string) string {
	return keyPrefixSession + token
}

// Init registers a session for the token and caches its identity.
func (s *SessionStore) Init(ctx context.Context, token string, id Identity) error {
	data, err := json.Marshal(id)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, makeSessionKey(token), data, s.ttl).Err(); err != nil {
		return err
	}
	s.identities.Set(token, id, s.ttl)
	return nil
}

// HasToken reports whether the token maps to a live session.
func (s *SessionStore) HasToken(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}
	if _, ok := s.identities.Get(token); ok {
		return true
	}
	n, err := s.client.Exists(ctx, makeSessionKey(token)).Result()
	return err == nil && n > 0
}

// Identity returns the cached identity for the token. The in-process
// cache answers synchronously; Redis is the fallback.
func (s *SessionStore) Identity(ctx context.Context, token string) (Identity, bool) {
	if token == "" {
		return Identity{}, false
	}
	if v, ok := s.identities.Get(token); ok {
		if id, ok := v.(Identity); ok {
			return id, true
		}
	}

	data, err := s.client.Get(ctx, makeSessionKey(token)).Bytes()
	if err != nil {
		return Identity{}, false
	}
	var id Identity
	if err := json.Unmarshal(data, &id); err != nil {
		return Identity{}, false
	}
	s.identities.Set(token, id, s.ttl)
	return id, true
}

// Clear removes the session token and every cached identity. This is a
// full reset, not a partial one: after logout nothing of the previous
// session may answer from any cache.
func (s *SessionStore) Clear(ctx context.Context, token string) error {
	s.identities.Flush()
	if token == "" {
		return nil
	}
	err := s.client.Del(ctx, makeSessionKey(token)).Err()
	if err != nil && err != goredis.Nil {
		return err
	}
	return nil
}
