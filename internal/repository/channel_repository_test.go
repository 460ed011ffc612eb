package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"channelscout/internal/domain"
)

func strPtr(s string) *string { return &s }
func intPtr(n int64) *int64   { return &n }

func TestUpsertChannelsWritesIdentityProjection(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewChannelRepository(mock)

	records := []domain.ChannelRecord{
		{
			ID:           "UCa",
			Title:        "Channel A",
			CustomURL:    strPtr("@channela"),
			ThumbnailURL: strPtr("https://example.com/a.jpg"),
			ETag:         strPtr("etag-a"),
		},
		{
			ID:    "UCb",
			Title: "Channel B",
		},
	}

	mock.ExpectExec("INSERT INTO channels").
		WithArgs(
			"UCa", "Channel A", strPtr("@channela"), strPtr("https://example.com/a.jpg"), strPtr("etag-a"),
			"UCb", "Channel B", (*string)(nil), (*string)(nil), (*string)(nil),
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))

	require.NoError(t, repo.UpsertChannels(context.Background(), records))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertChannelStatsKeepsAbsentCountsNull(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewChannelRepository(mock)

	records := []domain.ChannelRecord{
		{
			ID:              "UCa",
			SubscriberCount: intPtr(1000),
			ViewCount:       intPtr(250000),
			VideoCount:      intPtr(120),
		},
		{
			// Hidden subscriber count stays NULL in storage.
			ID:        "UCb",
			ViewCount: intPtr(99),
		},
	}

	mock.ExpectExec("INSERT INTO channel_stats").
		WithArgs(
			"UCa", intPtr(1000), intPtr(250000), intPtr(120),
			"UCb", (*int64)(nil), intPtr(99), (*int64)(nil),
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))

	require.NoError(t, repo.UpsertChannelStats(context.Background(), records))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertEmptyBatchSkipsStorageCall(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewChannelRepository(mock)

	require.NoError(t, repo.UpsertChannels(context.Background(), nil))
	require.NoError(t, repo.UpsertChannelStats(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListReturnsPageAndFilteredTotal(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewChannelRepository(mock)

	filter := domain.ChannelListFilter{
		MinSubscribers:   500,
		MaxSubscribers:   2000,
		Page:             1,
		PageSize:         30,
		ExcludeTitleTerm: "vevo",
	}

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(500), int64(2000), "vevo").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))

	mock.ExpectQuery("SELECT c.id, c.title").
		WithArgs(int64(500), int64(2000), "vevo", 0, 30).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "title", "custom_url", "thumbnail_url", "etag",
			"subscriber_count", "view_count", "video_count",
		}).AddRow(
			"UCb", "Channel B", (*string)(nil), (*string)(nil), strPtr("etag-b"),
			intPtr(1000), intPtr(250000), intPtr(120),
		))

	records, total, err := repo.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, records, 1)
	assert.Equal(t, "UCb", records[0].ID)
	require.NotNil(t, records[0].SubscriberCount)
	assert.Equal(t, int64(1000), *records[0].SubscriberCount)
	assert.Nil(t, records[0].CustomURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListSecondPageUsesOffsetWindow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewChannelRepository(mock)

	filter := domain.ChannelListFilter{
		MinSubscribers: 0,
		MaxSubscribers: 10000,
		Page:           2,
		PageSize:       30,
	}

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(0), int64(10000), "").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(42)))

	mock.ExpectQuery("SELECT c.id, c.title").
		WithArgs(int64(0), int64(10000), "", 30, 30).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "title", "custom_url", "thumbnail_url", "etag",
			"subscriber_count", "view_count", "video_count",
		}))

	records, total, err := repo.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, int64(42), total)
	assert.Empty(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPropagatesQueryFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewChannelRepository(mock)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(0), int64(10000), "").
		WillReturnError(fmt.Errorf("relation \"channels\" does not exist"))

	_, _, err = repo.List(context.Background(), domain.ChannelListFilter{
		MaxSubscribers: 10000,
		Page:           1,
		PageSize:       30,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to count channels")
}
