package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hungrypeople/feast/internal/model"
	"github.com/hungrypeople/feast/internal/service"
)

func seedSampleCatalog(t *testing.T, store *SQLiteStorage) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.SaveVenues(ctx, SampleVenues()))
	require.NoError(t, store.SaveEvents(ctx, SampleEvents()))
}

func TestSQLiteStorage_GetVenuesByRegion(t *testing.T) {
	store := createTestStorage(t)
	seedSampleCatalog(t, store)
	ctx := context.Background()

	venues, err := store.GetVenuesByRegion(ctx, "대전", 50)
	require.NoError(t, err)
	require.NotEmpty(t, venues)
	for _, v := range venues {
		assert.Equal(t, "대전", v.Region)
	}

	// Ordered by name.
	for i := 1; i < len(venues); i++ {
		assert.LessOrEqual(t, venues[i-1].Name, venues[i].Name)
	}
}

func TestSQLiteStorage_GetVenuesByKeyword(t *testing.T) {
	store := createTestStorage(t)
	seedSampleCatalog(t, store)
	ctx := context.Background()

	t.Run("matches name", func(t *testing.T) {
		venues, err := store.GetVenuesByKeyword(ctx, "고려회관", 50)
		require.NoError(t, err)
		require.Len(t, venues, 1)
		assert.Equal(t, "고려회관", venues[0].Name)
	})

	t.Run("matches address", func(t *testing.T) {
		venues, err := store.GetVenuesByKeyword(ctx, "중앙로", 50)
		require.NoError(t, err)
		assert.NotEmpty(t, venues)
	})

	t.Run("empty keyword lists catalog", func(t *testing.T) {
		venues, err := store.GetVenuesByKeyword(ctx, "", 50)
		require.NoError(t, err)
		assert.Len(t, venues, len(SampleVenues()))
	})
}

func TestSQLiteStorage_GetVenuesByAddressKeyword(t *testing.T) {
	store := createTestStorage(t)
	seedSampleCatalog(t, store)
	ctx := context.Background()

	venues, err := store.GetVenuesByAddressKeyword(ctx, "대전", 50)
	require.NoError(t, err)
	require.NotEmpty(t, venues)
	for _, v := range venues {
		assert.Contains(t, v.Address, "대전")
	}

	_, err = store.GetVenuesByAddressKeyword(ctx, "", 50)
	assert.Error(t, err)
}

func TestSQLiteStorage_FilterVenues(t *testing.T) {
	store := createTestStorage(t)
	seedSampleCatalog(t, store)
	ctx := context.Background()

	tests := []struct {
		check  func(*testing.T, model.Venue)
		name   string
		filter service.VenueFilter
	}{
		{
			name:   "venue type restriction",
			filter: service.VenueFilter{AllowedVenueTypes: []string{"카페", "베이커리"}, Limit: 50},
			check: func(t *testing.T, v model.Venue) {
				t.Helper()
				assert.Contains(t, []string{"카페", "베이커리"}, v.VenueType)
			},
		},
		{
			name:   "quiet or private room",
			filter: service.VenueFilter{RequireQuietOrPrivate: true, Limit: 50},
			check: func(t *testing.T, v model.Venue) {
				t.Helper()
				assert.True(t, v.NoiseLevel == model.NoiseLow || v.HasPrivateRoom,
					"venue %s is neither quiet nor has a private room", v.Name)
			},
		},
		{
			name:   "minimum party size",
			filter: service.VenueFilter{MinPartySize: 12, Limit: 50},
			check: func(t *testing.T, v model.Venue) {
				t.Helper()
				assert.GreaterOrEqual(t, v.MaxPartySize, 12)
			},
		},
		{
			name:   "location containment",
			filter: service.VenueFilter{LocationContains: "대전", Limit: 50},
			check: func(t *testing.T, v model.Venue) {
				t.Helper()
				assert.Contains(t, v.Address, "대전")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			venues, err := store.FilterVenues(ctx, tt.filter)
			require.NoError(t, err)
			require.NotEmpty(t, venues)
			for _, v := range venues {
				tt.check(t, v)
			}
		})
	}
}

func TestSQLiteStorage_FilterVenues_Limit(t *testing.T) {
	store := createTestStorage(t)
	seedSampleCatalog(t, store)

	venues, err := store.FilterVenues(context.Background(), service.VenueFilter{Limit: 3})
	require.NoError(t, err)
	assert.Len(t, venues, 3)
}

func TestSQLiteStorage_SaveVenues_Upsert(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	venue := model.Venue{ID: 1, Name: "원조집", Address: "대전 중구 1번지", Region: "대전", VenueType: "한식", NoiseLevel: model.NoiseMid, MaxPartySize: 4}
	require.NoError(t, store.SaveVenues(ctx, []model.Venue{venue}))

	venue.Name = "원조집 본점"
	require.NoError(t, store.SaveVenues(ctx, []model.Venue{venue}))

	venues, err := store.GetVenuesByRegion(ctx, "대전", 50)
	require.NoError(t, err)
	require.Len(t, venues, 1)
	assert.Equal(t, "원조집 본점", venues[0].Name)
}

func TestSQLiteStorage_GetAllRegions(t *testing.T) {
	store := createTestStorage(t)
	seedSampleCatalog(t, store)

	regions, err := store.GetAllRegions(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"서울", "대전", "부산", "대구", "전북"}, regions)

	// Sorted output.
	for i := 1; i < len(regions); i++ {
		assert.LessOrEqual(t, regions[i-1], regions[i])
	}
}

func TestSQLiteStorage_Stats(t *testing.T) {
	store := createTestStorage(t)
	seedSampleCatalog(t, store)

	stats, err := store.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(SampleVenues()), stats.TotalVenues)
	assert.Equal(t, len(SampleEvents()), stats.TotalEvents)
	assert.Equal(t, 5, stats.TotalRegions)
	assert.Len(t, stats.Regions, stats.TotalRegions)
}
