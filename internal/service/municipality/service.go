// Package municipality serves relocation reference data with a redis
// cache in front of the table. Rows change rarely, lookups are hot during
// onboarding, so a short TTL cache-aside is enough.
package municipality

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/relokit/vault/internal/models"
	"github.com/relokit/vault/internal/store"
	"github.com/relokit/vault/pkg/logger"
)

const cacheTTL = 6 * time.Hour

type Service struct {
	store  store.ProfileStore
	cache  *redis.Client
	logger logger.Logger
}

func NewService(st store.ProfileStore, cache *redis.Client, log logger.Logger) *Service {
	return &Service{
		store:  st,
		cache:  cache,
		logger: log,
	}
}

// ByCode resolves a municipality, preferring the cache. Cache failures only
// degrade to a direct table read.
func (s *Service) ByCode(ctx context.Context, code string) (*models.Municipality, error) {
	key := "municipality:" + code

	if s.cache != nil {
		data, err := s.cache.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			var m models.Municipality
			if err := json.Unmarshal(data, &m); err == nil {
				return &m, nil
			}
		case !errors.Is(err, redis.Nil):
			s.logger.Warn("Municipality cache read failed",
				logger.String("code", code),
				logger.Error(err),
			)
		}
	}

	m, err := s.store.MunicipalityByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(m); err == nil {
			if err := s.cache.Set(ctx, key, data, cacheTTL).Err(); err != nil {
				s.logger.Warn("Municipality cache write failed",
					logger.String("code", code),
					logger.Error(err),
				)
			}
		}
	}
	return m, nil
}
