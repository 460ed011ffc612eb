package repository

import (
	"context"
	"fmt"
	"strings"

	"channelscout/internal/domain"
)

// channelRepository persists the channel catalog in PostgreSQL
type channelRepository struct {
	pool Pool
}

// NewChannelRepository creates a new channel repository
func NewChannelRepository(pool Pool) ChannelRepository {
	return &channelRepository{
		pool: pool,
	}
}

// UpsertChannels writes the identity projection of each record. The whole
// batch is a single multi-row insert; conflicting rows are fully
// overwritten (last write wins). An empty batch performs no storage call.
func (r *channelRepository) UpsertChannels(ctx context.Context, records []domain.ChannelRecord) error {
	if len(records) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(records))
	args := make([]any, 0, len(records)*5)
	for i, rec := range records {
		base := i * 5
		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, NOW())",
			base+1, base+2, base+3, base+4, base+5))
		args = append(args, rec.ID, rec.Title, rec.CustomURL, rec.ThumbnailURL, rec.ETag)
	}

	query := fmt.Sprintf(`
		INSERT INTO channels (id, title, custom_url, thumbnail_url, etag, updated_at)
		VALUES %s
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			custom_url = EXCLUDED.custom_url,
			thumbnail_url = EXCLUDED.thumbnail_url,
			etag = EXCLUDED.etag,
			updated_at = EXCLUDED.updated_at
	`, strings.Join(placeholders, ", "))

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert channels: %w", err)
	}

	return nil
}

// UpsertChannelStats writes the statistics projection of each record.
// Missing statistics stay NULL so that "hidden" and zero remain distinct.
func (r *channelRepository) UpsertChannelStats(ctx context.Context, records []domain.ChannelRecord) error {
	if len(records) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(records))
	args := make([]any, 0, len(records)*4)
	for i, rec := range records {
		base := i * 4
		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d, $%d, $%d, NOW())",
			base+1, base+2, base+3, base+4))
		args = append(args, rec.ID, rec.SubscriberCount, rec.ViewCount, rec.VideoCount)
	}

	query := fmt.Sprintf(`
		INSERT INTO channel_stats (channel_id, subscriber_count, view_count, video_count, updated_at)
		VALUES %s
		ON CONFLICT (channel_id) DO UPDATE SET
			subscriber_count = EXCLUDED.subscriber_count,
			view_count = EXCLUDED.view_count,
			video_count = EXCLUDED.video_count,
			updated_at = EXCLUDED.updated_at
	`, strings.Join(placeholders, ", "))

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert channel stats: %w", err)
	}

	return nil
}

// List returns one page of channels whose subscriber count falls inside the
// inclusive filter range, ordered by id for reproducible pagination, plus
// the total filtered count. Channels without a recorded subscriber count
// are excluded from the filtered view. Title exclusion is applied here and
// re-checked again by the catalog service.
func (r *channelRepository) List(ctx context.Context, filter domain.ChannelListFilter) ([]domain.ChannelRecord, int64, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM channels c
		JOIN channel_stats s ON s.channel_id = c.id
		WHERE s.subscriber_count >= $1
		  AND s.subscriber_count <= $2
		  AND ($3 = '' OR c.title NOT ILIKE '%' || $3 || '%')
	`

	var total int64
	err := r.pool.QueryRow(ctx, countQuery,
		filter.MinSubscribers,
		filter.MaxSubscribers,
		filter.ExcludeTitleTerm,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count channels: %w", err)
	}

	pageQuery := `
		SELECT c.id, c.title, c.custom_url, c.thumbnail_url, c.etag,
		       s.subscriber_count, s.view_count, s.video_count
		FROM channels c
		JOIN channel_stats s ON s.channel_id = c.id
		WHERE s.subscriber_count >= $1
		  AND s.subscriber_count <= $2
		  AND ($3 = '' OR c.title NOT ILIKE '%' || $3 || '%')
		ORDER BY c.id
		OFFSET $4 LIMIT $5
	`

	rows, err := r.pool.Query(ctx, pageQuery,
		filter.MinSubscribers,
		filter.MaxSubscribers,
		filter.ExcludeTitleTerm,
		filter.Offset(),
		filter.PageSize,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query channels: %w", err)
	}
	defer rows.Close()

	var records []domain.ChannelRecord
	for rows.Next() {
		var rec domain.ChannelRecord
		err := rows.Scan(
			&rec.ID,
			&rec.Title,
			&rec.CustomURL,
			&rec.ThumbnailURL,
			&rec.ETag,
			&rec.SubscriberCount,
			&rec.ViewCount,
			&rec.VideoCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan channel row: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error reading channel rows: %w", err)
	}

	return records, total, nil
}
