package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"channelscout/internal/domain"
)

// Pool abstracts the pgx connection pool so repositories can be tested
// against a mock.
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ChannelRepository defines the interface for channel catalog persistence
type ChannelRepository interface {
	// UpsertChannels writes the identity projection (title, handle,
	// thumbnail, etag) of each record, keyed by channel id.
	UpsertChannels(ctx context.Context, records []domain.ChannelRecord) error

	// UpsertChannelStats writes the statistics projection of each record,
	// keyed by channel id.
	UpsertChannelStats(ctx context.Context, records []domain.ChannelRecord) error

	// List returns one page of the filtered, id-ordered catalog along with
	// the total filtered count.
	List(ctx context.Context, filter domain.ChannelListFilter) ([]domain.ChannelRecord, int64, error)
}

// Repositories aggregates all repository interfaces
type Repositories struct {
	Channel ChannelRepository
}
