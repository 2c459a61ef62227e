package services

import (
	"context"
	"sort"
	"strings"
	"time"

	redisclient "github.com/yungbote/advisorgraph-backend/internal/clients/redis"
	"github.com/yungbote/advisorgraph-backend/internal/domain/graphmodel"
	"github.com/yungbote/advisorgraph-backend/internal/platform/logger"
)

// OptionsSource enumerates selectable filter values for a region scope.
// Implemented by the Neo4j store.
type OptionsSource interface {
	FetchFilterOptions(ctx context.Context, regions []string) (graphmodel.FilterOptions, error)
}

// FilterOptionsService serves the picker enumerations, with a short-lived
// redis cache in front of the source keyed by region scope.
type FilterOptionsService struct {
	source OptionsSource
	cache  redisclient.Cache
	ttl    time.Duration
	log    *logger.Logger
}

func NewFilterOptionsService(log *logger.Logger, source OptionsSource, cache redisclient.Cache, ttl time.Duration) *FilterOptionsService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &FilterOptionsService{
		source: source,
		cache:  cache,
		ttl:    ttl,
		log:    log.With("service", "FilterOptionsService"),
	}
}

func (s *FilterOptionsService) Options(ctx context.Context, regions []string) (graphmodel.FilterOptions, error) {
	if len(regions) == 0 {
		regions = []string{graphmodel.DefaultRegion}
	}
	key := cacheKey(regions)

	var cached graphmodel.FilterOptions
	if s.cache != nil {
		hit, err := s.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			s.log.Warn("options cache read failed", "key", key, "error", err)
		} else if hit {
			return cached, nil
		}
	}

	opts, err := s.source.FetchFilterOptions(ctx, regions)
	if err != nil {
		return graphmodel.FilterOptions{}, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, opts, s.ttl); err != nil {
			s.log.Warn("options cache write failed", "key", key, "error", err)
		}
	}
	return opts, nil
}

func cacheKey(regions []string) string {
	sorted := make([]string, len(regions))
	copy(sorted, regions)
	sort.Strings(sorted)
	return "filter_options:" + strings.Join(sorted, ",")
}
