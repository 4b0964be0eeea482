package services

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/mente-leve/wellbeing-service/internal/cache"
	"github.com/mente-leve/wellbeing-service/internal/models"
	"github.com/mente-leve/wellbeing-service/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func newMoodServiceForTest(repo *mockRepository, cacheService cache.CacheService) *moodService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewMoodService(repo, cacheService, logger, utils.NewValidator()).(*moodService)
}

func TestMoodService_Create_InvalidatesUserCache(t *testing.T) {
	repo := newMockRepository()
	memory := cache.NewMemoryCache()
	svc := newMoodServiceForTest(repo, memory)

	// Seed a cached stats value for the user and one for a bystander.
	require.NoError(t, memory.SetForUser(context.Background(), 1, cache.Key("mood_stats", uint(1)), &MoodStats{TotalEntries: 3}, time.Minute))
	require.NoError(t, memory.SetForUser(context.Background(), 2, cache.Key("mood_stats", uint(2)), &MoodStats{TotalEntries: 9}, time.Minute))

	repo.moods.On("Create", mock.Anything, mock.AnythingOfType("*models.MoodEntry")).Return(nil)

	_, err := svc.Create(context.Background(), 1, &CreateMoodEntryRequest{MoodLevel: 4})
	require.NoError(t, err)

	var stats MoodStats
	err = memory.Get(context.Background(), cache.Key("mood_stats", uint(1)), &stats)
	assert.ErrorIs(t, err, cache.ErrCacheMiss)

	err = memory.Get(context.Background(), cache.Key("mood_stats", uint(2)), &stats)
	require.NoError(t, err)
	assert.Equal(t, int64(9), stats.TotalEntries)
}

func TestMoodService_Create_RejectsBadEntryDate(t *testing.T) {
	repo := newMockRepository()
	svc := newMoodServiceForTest(repo, cache.NewMemoryCache())

	badDate := "02/09/2026"
	_, err := svc.Create(context.Background(), 1, &CreateMoodEntryRequest{MoodLevel: 3, EntryDate: &badDate})

	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestMoodService_Create_RejectsOutOfRangeMood(t *testing.T) {
	repo := newMockRepository()
	svc := newMoodServiceForTest(repo, cache.NewMemoryCache())

	_, err := svc.Create(context.Background(), 1, &CreateMoodEntryRequest{MoodLevel: 6})

	assert.Error(t, err)
	repo.moods.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMoodService_Stats_ReadThrough(t *testing.T) {
	repo := newMockRepository()
	svc := newMoodServiceForTest(repo, cache.NewMemoryCache())

	entries := []*models.MoodEntry{
		{UserID: 1, MoodLevel: 3, Emotions: datatypes.NewJSONType([]string{"calm"})},
		{UserID: 1, MoodLevel: 5, Emotions: datatypes.NewJSONType([]string{"calm", "happy"})},
	}
	repo.moods.On("ListByUser", mock.Anything, uint(1), 0).Return(entries, nil).Once()

	first, err := svc.Stats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), first.TotalEntries)
	assert.Equal(t, 4.0, first.MeanMood)
	require.NotEmpty(t, first.FrequentEmotions)
	assert.Equal(t, "calm", first.FrequentEmotions[0].Tag)

	// Second call is served from the cache; the Once() above would fail
	// the expectation if the repository were hit again.
	second, err := svc.Stats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, first.TotalEntries, second.TotalEntries)
	repo.moods.AssertNumberOfCalls(t, "ListByUser", 1)
}

func TestMoodService_Recent_ReadThroughWithDefaultLimit(t *testing.T) {
	repo := newMockRepository()
	svc := newMoodServiceForTest(repo, cache.NewMemoryCache())

	entries := []*models.MoodEntry{{ID: 1, UserID: 1, MoodLevel: 4}}
	repo.moods.On("ListByUser", mock.Anything, uint(1), defaultRecentLimit).Return(entries, nil).Once()

	first, err := svc.Recent(context.Background(), 1, 0)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := svc.Recent(context.Background(), 1, 0)
	require.NoError(t, err)
	require.Len(t, second, 1)
	repo.moods.AssertNumberOfCalls(t, "ListByUser", 1)
}

func TestMoodService_CreateThenStats_RecomputesAggregate(t *testing.T) {
	repo := newMockRepository()
	svc := newMoodServiceForTest(repo, cache.NewMemoryCache())

	repo.moods.On("ListByUser", mock.Anything, uint(1), 0).
		Return([]*models.MoodEntry{{UserID: 1, MoodLevel: 2}}, nil).Once()

	stats, err := svc.Stats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalEntries)

	repo.moods.On("Create", mock.Anything, mock.AnythingOfType("*models.MoodEntry")).Return(nil)
	_, err = svc.Create(context.Background(), 1, &CreateMoodEntryRequest{MoodLevel: 4})
	require.NoError(t, err)

	// The create dropped the cached aggregate, so stats rebuilds from the
	// repository and sees both entries.
	repo.moods.On("ListByUser", mock.Anything, uint(1), 0).
		Return([]*models.MoodEntry{{UserID: 1, MoodLevel: 2}, {UserID: 1, MoodLevel: 4}}, nil).Once()

	stats, err = svc.Stats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalEntries)
	assert.Equal(t, 3.0, stats.MeanMood)
}

func TestMoodService_Trends_MapsOptionalFields(t *testing.T) {
	repo := newMockRepository()
	svc := newMoodServiceForTest(repo, cache.NewMemoryCache())

	stress := 4
	sleep := 2
	entries := []*models.MoodEntry{
		{UserID: 1, MoodLevel: 3, StressLevel: &stress, SleepQuality: &sleep, EntryDate: time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)},
		{UserID: 1, MoodLevel: 5, EntryDate: time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)},
	}
	repo.moods.On("ListByUserSince", mock.Anything, uint(1), mock.Anything).Return(entries, nil)

	samples, err := svc.Trends(context.Background(), 1, 7)
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Equal(t, "2026-08-30", samples[0].Date)
	assert.Equal(t, 4, samples[0].Stress)
	assert.Equal(t, 2, samples[0].Sleep)
	assert.Zero(t, samples[1].Stress)
}
