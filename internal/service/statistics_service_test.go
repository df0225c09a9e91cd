package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alimovshaxzod89/SMS/internal/models"
	"github.com/alimovshaxzod89/SMS/internal/query"
	appErrors "github.com/alimovshaxzod89/SMS/pkg/errors"
)

type memoryCacheRepo struct {
	mu      sync.Mutex
	entries map[string][]byte
	ttls    map[string]time.Duration
	gets    int
}

func newMemoryCacheRepo() *memoryCacheRepo {
	return &memoryCacheRepo{entries: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memoryCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	raw, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = raw
	m.ttls[key] = ttl
	return nil
}

func (m *memoryCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, pattern)
	return nil
}

func (m *memoryCacheRepo) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[key]
	return ok
}

type countingReader struct {
	query.Reader
	mu     sync.Mutex
	counts int
	err    error
}

func (r *countingReader) Count(ctx context.Context, collection string, filter query.Filter) (int64, error) {
	r.mu.Lock()
	r.counts++
	r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	return r.Reader.Count(ctx, collection, filter)
}

func TestStatisticsCountsAreCached(t *testing.T) {
	ctx := context.Background()
	s := newSchool(t)
	seed(t, s.store, models.CollectionStudents, query.Document{"id": "S2", "username": "ben", "sex": "male"})
	reader := &countingReader{Reader: s.store}
	repo := newMemoryCacheRepo()
	cache := NewCacheService(repo, NewMetricsService(), time.Minute, zap.NewNop(), true)
	svc := NewStatisticsService(reader, cache, 45*time.Second, zap.NewNop())

	counts, err := svc.Counts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, counts.Students)
	assert.EqualValues(t, 1, counts.Teachers)
	assert.EqualValues(t, 1, counts.Lessons)
	assert.EqualValues(t, 0, counts.Exams)
	assert.Equal(t, map[string]int64{"male": 1, "female": 1}, counts.StudentsBySex)
	assert.Equal(t, 45*time.Second, repo.ttls[statisticsCacheKey])
	queried := reader.counts

	again, err := svc.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, counts.Students, again.Students)
	assert.Equal(t, queried, reader.counts, "second call served from cache")
}

func TestStatisticsWithoutCacheQueriesStore(t *testing.T) {
	ctx := context.Background()
	s := newSchool(t)
	reader := &countingReader{Reader: s.store}
	svc := NewStatisticsService(reader, nil, 0, nil)

	_, err := svc.Counts(ctx)
	require.NoError(t, err)
	_, err = svc.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 24, reader.counts)
}

func TestStatisticsStoreFailure(t *testing.T) {
	s := newSchool(t)
	reader := &countingReader{Reader: s.store, err: &query.StoreError{Kind: query.StoreUnavailable, Err: errors.New("connection refused")}}
	svc := NewStatisticsService(reader, nil, 0, zap.NewNop())

	_, err := svc.Counts(context.Background())
	requireAppError(t, err, http.StatusInternalServerError, "")
}

func TestStatisticsCacheDroppedOnWrites(t *testing.T) {
	ctx := context.Background()
	s := newSchool(t)
	repo := newMemoryCacheRepo()
	cache := NewCacheService(repo, NewMetricsService(), time.Minute, zap.NewNop(), true)
	stats := NewStatisticsService(s.store, cache, time.Minute, zap.NewNop())
	classes := NewClassService(s.engine, nil, zap.NewNop(), WithChangeObserver(stats))
	grades := NewGradeService(s.engine, zap.NewNop(), WithChangeObserver(stats))

	counts, err := stats.Counts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, counts.Classes)
	require.True(t, repo.has(statisticsCacheKey))

	_, err = grades.Create(ctx, CreateGradeRequest{Level: 2})
	require.NoError(t, err)
	assert.True(t, repo.has(statisticsCacheKey), "grades are not counted")

	created, err := classes.Create(ctx, CreateClassRequest{Name: "2B", GradeID: s.grade.ID(), Capacity: 10})
	require.NoError(t, err)
	assert.False(t, repo.has(statisticsCacheKey))

	counts, err = stats.Counts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, counts.Classes)

	require.NoError(t, classes.Delete(ctx, created.ID()))
	counts, err = stats.Counts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, counts.Classes)
}

func TestStatisticsChangeWithoutCache(t *testing.T) {
	svc := NewStatisticsService(newTestStore(), nil, 0, zap.NewNop())
	assert.NotPanics(t, func() { svc.CollectionChanged(context.Background(), models.CollectionStudents) })
}
