package selection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	id "auditlink/pkg/domain"
)

// RedisStore persists selection sets in redis with a TTL, so selections
// survive process restarts and are shared across instances but still expire
// with the session.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a redis-backed selection store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

type setDTO struct {
	Evidence     []id.EvidenceID    `json:"evidence"`
	Requirements []id.RequirementID `json:"requirements"`
	Revision     uint64             `json:"revision"`
}

func key(session string) string {
	return "auditlink:selection:" + session
}

func (s *RedisStore) Load(ctx context.Context, session string) (*Set, error) {
	raw, err := s.client.Get(ctx, key(session)).Bytes()
	if errors.Is(err, redis.Nil) {
		return NewSet(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load selection: %w", err)
	}

	var dto setDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return nil, fmt.Errorf("decode selection: %w", err)
	}
	set := NewSet()
	for _, evidenceID := range dto.Evidence {
		set.evidence[evidenceID] = struct{}{}
	}
	for _, requirementID := range dto.Requirements {
		set.requirements[requirementID] = struct{}{}
	}
	set.revision = dto.Revision
	return set, nil
}

func (s *RedisStore) Save(ctx context.Context, session string, set *Set) error {
	raw, err := json.Marshal(setDTO{
		Evidence:     set.EvidenceIDs(),
		Requirements: set.RequirementIDs(),
		Revision:     set.Revision(),
	})
	if err != nil {
		return fmt.Errorf("encode selection: %w", err)
	}
	if err := s.client.Set(ctx, key(session), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save selection: %w", err)
	}
	return nil
}
