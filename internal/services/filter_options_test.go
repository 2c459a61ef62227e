package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/yungbote/advisorgraph-backend/internal/domain/graphmodel"
)

type fakeOptionsSource struct {
	opts  graphmodel.FilterOptions
	err   error
	calls int
}

func (f *fakeOptionsSource) FetchFilterOptions(ctx context.Context, regions []string) (graphmodel.FilterOptions, error) {
	f.calls++
	return f.opts, f.err
}

// memCache is an in-process stand-in for the redis cache.
type memCache struct {
	data map[string][]byte
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (m *memCache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *memCache) SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *memCache) Close() error { return nil }

func TestFilterOptions_CacheHitSkipsSource(t *testing.T) {
	src := &fakeOptionsSource{opts: graphmodel.FilterOptions{Markets: []string{"US East"}}}
	svc := NewFilterOptionsService(mustTestLogger(t), src, newMemCache(), time.Minute)
	ctx := context.Background()

	first, err := svc.Options(ctx, []string{"NAI"})
	if err != nil {
		t.Fatalf("first Options: %v", err)
	}
	second, err := svc.Options(ctx, []string{"NAI"})
	if err != nil {
		t.Fatalf("second Options: %v", err)
	}
	if src.calls != 1 {
		t.Fatalf("want 1 source call, got %d", src.calls)
	}
	if len(first.Markets) != 1 || len(second.Markets) != 1 {
		t.Fatalf("options: first=%+v second=%+v", first, second)
	}
}

func TestFilterOptions_CacheKeyIgnoresRegionOrder(t *testing.T) {
	src := &fakeOptionsSource{}
	svc := NewFilterOptionsService(mustTestLogger(t), src, newMemCache(), time.Minute)
	ctx := context.Background()

	if _, err := svc.Options(ctx, []string{"NAI", "EMEA"}); err != nil {
		t.Fatalf("Options: %v", err)
	}
	if _, err := svc.Options(ctx, []string{"EMEA", "NAI"}); err != nil {
		t.Fatalf("Options: %v", err)
	}
	if src.calls != 1 {
		t.Fatalf("region order must not change the cache key, got %d calls", src.calls)
	}
}

func TestFilterOptions_NoCacheFallsThrough(t *testing.T) {
	src := &fakeOptionsSource{}
	svc := NewFilterOptionsService(mustTestLogger(t), src, nil, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Options(ctx, nil); err != nil {
			t.Fatalf("Options: %v", err)
		}
	}
	if src.calls != 3 {
		t.Fatalf("no cache means every call hits the source, got %d", src.calls)
	}
}

func TestFilterOptions_SourceErrorPropagates(t *testing.T) {
	src := &fakeOptionsSource{err: errors.New("neo4j down")}
	svc := NewFilterOptionsService(mustTestLogger(t), src, newMemCache(), time.Minute)

	if _, err := svc.Options(context.Background(), []string{"NAI"}); err == nil {
		t.Fatalf("want error")
	}
}
