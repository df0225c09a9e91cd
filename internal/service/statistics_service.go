package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/alimovshaxzod89/SMS/internal/models"
	"github.com/alimovshaxzod89/SMS/internal/query"
)

const statisticsCacheKey = "statistics:counts"

var countedCollections = map[string]bool{
	models.CollectionStudents:      true,
	models.CollectionTeachers:      true,
	models.CollectionParents:       true,
	models.CollectionClasses:       true,
	models.CollectionSubjects:      true,
	models.CollectionLessons:       true,
	models.CollectionExams:         true,
	models.CollectionAssignments:   true,
	models.CollectionAnnouncements: true,
	models.CollectionEvents:        true,
}

var studentSexes = []string{"male", "female"}

// StatisticsService computes the dashboard counters.
type StatisticsService struct {
	store  query.Reader
	cache  *CacheService
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

// NewStatisticsService constructs the service. cache may be nil.
func NewStatisticsService(store query.Reader, cache *CacheService, ttl time.Duration, logger *zap.Logger) *StatisticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatisticsService{store: store, cache: cache, ttl: ttl, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// Counts returns the number of records per collection and students by sex.
func (s *StatisticsService) Counts(ctx context.Context) (*models.EntityCounts, error) {
	var counts models.EntityCounts
	err := s.cache.Remember(ctx, statisticsCacheKey, s.ttl, &counts, func(ctx context.Context) error {
		fresh, err := s.compute(ctx)
		if err != nil {
			return err
		}
		counts = *fresh
		return nil
	})
	if err != nil {
		s.logger.Error("statistics failed", zap.Error(err))
		return nil, query.Translate(err, "")
	}
	return &counts, nil
}

// CollectionChanged drops the cached counts when a counted collection is
// written.
func (s *StatisticsService) CollectionChanged(ctx context.Context, collection string) {
	if !countedCollections[collection] {
		return
	}
	if err := s.cache.Invalidate(ctx, statisticsCacheKey); err != nil {
		s.logger.Warn("statistics cache not invalidated", zap.String("collection", collection), zap.Error(err))
	}
}

func (s *StatisticsService) compute(ctx context.Context) (*models.EntityCounts, error) {
	counts := &models.EntityCounts{StudentsBySex: make(map[string]int64, len(studentSexes))}
	targets := map[string]*int64{
		models.CollectionStudents:      &counts.Students,
		models.CollectionTeachers:      &counts.Teachers,
		models.CollectionParents:       &counts.Parents,
		models.CollectionClasses:       &counts.Classes,
		models.CollectionSubjects:      &counts.Subjects,
		models.CollectionLessons:       &counts.Lessons,
		models.CollectionExams:         &counts.Exams,
		models.CollectionAssignments:   &counts.Assignments,
		models.CollectionAnnouncements: &counts.Announcements,
		models.CollectionEvents:        &counts.Events,
	}
	bySex := make([]int64, len(studentSexes))

	g, gctx := errgroup.WithContext(ctx)
	for collection, dest := range targets {
		collection, dest := collection, dest
		g.Go(func() error {
			n, err := s.store.Count(gctx, collection, nil)
			*dest = n
			return err
		})
	}
	for i, sex := range studentSexes {
		i, sex := i, sex
		g.Go(func() error {
			n, err := s.store.Count(gctx, models.CollectionStudents, query.Eq{Field: "sex", Value: sex})
			bySex[i] = n
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, sex := range studentSexes {
		counts.StudentsBySex[sex] = bySex[i]
	}
	counts.GeneratedAt = s.now()
	return counts, nil
}
