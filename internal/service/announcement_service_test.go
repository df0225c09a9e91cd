package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alimovshaxzod89/SMS/internal/models"
	"github.com/alimovshaxzod89/SMS/internal/query"
)

func titles(result *query.ListResult) []string {
	out := make([]string, 0, len(result.Data))
	for _, doc := range result.Data {
		out = append(out, doc.String("title"))
	}
	return out
}

func TestAnnouncementListByCalendarDay(t *testing.T) {
	ctx := context.Background()
	s := newSchool(t)
	svc := NewAnnouncementService(s.engine, nil, zap.NewNop())

	for title, date := range map[string]string{
		"eve":      "2030-05-01T23:59:59Z",
		"late":     "2030-05-02T23:30:00Z",
		"morning":  "2030-05-02T00:00:00Z",
		"next day": "2030-05-03T00:00:00Z",
	} {
		_, err := svc.Create(ctx, CreateAnnouncementRequest{Title: title, Description: "d", Date: date})
		require.NoError(t, err)
	}

	result, err := svc.List(ctx, ListParams{Values: values("date", "2030-05-02")})
	require.NoError(t, err)
	assert.EqualValues(t, 2, result.Count)
	assert.Equal(t, []string{"late", "morning"}, titles(result))

	_, err = svc.List(ctx, ListParams{Values: values("date", "05/02/2030")})
	requireAppError(t, err, http.StatusBadRequest, "Invalid date format")
}

func TestAnnouncementClassReference(t *testing.T) {
	ctx := context.Background()
	s := newSchool(t)
	svc := NewAnnouncementService(s.engine, nil, zap.NewNop())

	_, err := svc.Create(ctx, CreateAnnouncementRequest{Title: "Trip", Description: "d", Date: "2030-05-02", ClassID: "class-1"})
	requireAppError(t, err, http.StatusBadRequest, "Invalid class ID format")
	_, err = svc.Create(ctx, CreateAnnouncementRequest{Title: "Trip", Description: "d", Date: "2030-05-02", ClassID: uuid.NewString()})
	requireAppError(t, err, http.StatusNotFound, "Class not found")
	assert.Equal(t, 0, s.store.Len(models.CollectionAnnouncements))

	created, err := svc.Create(ctx, CreateAnnouncementRequest{Title: "Trip", Description: "d", Date: "2030-05-02", ClassID: s.class.ID()})
	require.NoError(t, err)
	class, ok := created["classId"].(query.Document)
	require.True(t, ok)
	assert.Equal(t, "1A", class.String("name"))

	filtered, err := svc.List(ctx, ListParams{Values: values("classId", s.class.ID())})
	require.NoError(t, err)
	assert.EqualValues(t, 1, filtered.Count)

	updated, err := svc.Update(ctx, created.ID(), UpdateAnnouncementRequest{ClassID: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, updated["classId"])

	filtered, err = svc.List(ctx, ListParams{Values: values("classId", s.class.ID())})
	require.NoError(t, err)
	assert.EqualValues(t, 0, filtered.Count)
}

func TestAnnouncementUpdateRejectsBlankText(t *testing.T) {
	ctx := context.Background()
	s := newSchool(t)
	svc := NewAnnouncementService(s.engine, nil, zap.NewNop())
	created, err := svc.Create(ctx, CreateAnnouncementRequest{Title: "Trip", Description: "Bring lunch", Date: "2030-05-02"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID(), UpdateAnnouncementRequest{Title: strPtr("   ")})
	requireAppError(t, err, http.StatusBadRequest, "Announcement title is required")
	_, err = svc.Update(ctx, created.ID(), UpdateAnnouncementRequest{Description: strPtr("")})
	requireAppError(t, err, http.StatusBadRequest, "Announcement description is required")
	_, err = svc.Update(ctx, created.ID(), UpdateAnnouncementRequest{})
	requireAppError(t, err, http.StatusBadRequest, "No fields to update")

	stored, err := svc.Get(ctx, created.ID())
	require.NoError(t, err)
	assert.Equal(t, "Trip", stored.String("title"))
	assert.Equal(t, "Bring lunch", stored.String("description"))

	updated, err := svc.Update(ctx, created.ID(), UpdateAnnouncementRequest{Title: strPtr("  Museum trip ")})
	require.NoError(t, err)
	assert.Equal(t, "Museum trip", updated.String("title"))
}
