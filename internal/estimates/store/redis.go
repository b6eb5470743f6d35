package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/7svn/smeta-backend/internal/estimates/domain"
)

const (
	projectKeyPrefix = "smeta:project:" // smeta:project:{project_id} -> JSON record
	ownerIndexPrefix = "smeta:owner:"   // smeta:owner:{owner_id} -> zset of project ids scored by last_modified
)

type redisRecord struct {
	OwnerID string                   `json:"owner_id"`
	Project domain.RenovationProject `json:"project"`
}

// RedisStore keeps each project as a JSON string and an owner index as a
// sorted set ordered by modification time.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) List(ctx context.Context, ownerID string) ([]domain.RenovationProject, error) {
	if ownerID == "" {
		return nil, ErrOwnerRequired
	}

	ids, err := s.client.ZRevRange(ctx, s.ownerKey(ownerID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list projects for owner: %w", err)
	}
	if len(ids) == 0 {
		return []domain.RenovationProject{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.projectKey(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	out := make([]domain.RenovationProject, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// index entry without a record
			continue
		}
		var rec redisRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal project %s: %w", ids[i], err)
		}
		rec.Project.Normalize()
		out = append(out, rec.Project)
	}
	sortByLastModified(out)
	return out, nil
}

func (s *RedisStore) Upsert(ctx context.Context, ownerID string, p domain.RenovationProject) error {
	if ownerID == "" {
		return ErrOwnerRequired
	}

	existing, err := s.get(ctx, p.ID)
	if err != nil {
		return err
	}
	if existing != nil && existing.OwnerID != ownerID {
		return ErrNotOwner
	}

	data, err := json.Marshal(redisRecord{OwnerID: ownerID, Project: p})
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.projectKey(p.ID), data, 0)
	pipe.ZAdd(ctx, s.ownerKey(ownerID), redis.Z{Score: float64(p.LastModified), Member: p.ID})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to upsert project: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, ownerID, projectID string) error {
	if ownerID == "" {
		return ErrOwnerRequired
	}

	existing, err := s.get(ctx, projectID)
	if err != nil {
		return err
	}
	if existing == nil || existing.OwnerID != ownerID {
		return nil
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.projectKey(projectID))
	pipe.ZRem(ctx, s.ownerKey(ownerID), projectID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

func (s *RedisStore) get(ctx context.Context, projectID string) (*redisRecord, error) {
	raw, err := s.client.Get(ctx, s.projectKey(projectID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	var rec redisRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal project: %w", err)
	}
	return &rec, nil
}

func (s *RedisStore) projectKey(projectID string) string {
	return projectKeyPrefix + projectID
}

func (s *RedisStore) ownerKey(ownerID string) string {
	return ownerIndexPrefix + ownerID
}
