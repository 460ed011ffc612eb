package service

import (
	"context"
	"strings"

	"channelscout/internal/domain"
	"channelscout/internal/repository"
	"channelscout/pkg/errors"
	"channelscout/pkg/logger"
)

// catalogService reconciles fetched channel records into storage and serves
// filtered, paginated reads back out
type catalogService struct {
	repo   repository.ChannelRepository
	logger *logger.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repo repository.ChannelRepository, logger *logger.Logger) CatalogService {
	return &catalogService{
		repo:   repo,
		logger: logger,
	}
}

// NewListFilter validates raw subscriber bounds and page number into a
// normalized filter. maxSubscribers above the ceiling is clamped, not
// rejected; minSubscribers above the ceiling is always rejected.
func NewListFilter(minSubs, maxSubs int64, page, pageSize int, ceiling int64, excludeTerm string) (domain.ChannelListFilter, *errors.AppError) {
	var filter domain.ChannelListFilter

	if minSubs < 0 || maxSubs < 0 {
		return filter, errors.NewValidationError(
			"minSubscribers and maxSubscribers must be non-negative", map[string]interface{}{
				"minSubscribers": minSubs,
				"maxSubscribers": maxSubs,
			})
	}

	if minSubs > ceiling {
		return filter, errors.NewValidationError(
			"minSubscribers exceeds the maximum allowed value", map[string]interface{}{
				"minSubscribers": minSubs,
				"ceiling":        ceiling,
			})
	}

	if maxSubs > ceiling {
		maxSubs = ceiling
	}

	if minSubs > maxSubs {
		return filter, errors.NewValidationError(
			"minSubscribers must not exceed maxSubscribers", map[string]interface{}{
				"minSubscribers": minSubs,
				"maxSubscribers": maxSubs,
			})
	}

	if page < 1 {
		page = 1
	}

	filter.MinSubscribers = minSubs
	filter.MaxSubscribers = maxSubs
	filter.Page = page
	filter.PageSize = pageSize
	filter.ExcludeTitleTerm = excludeTerm
	return filter, nil
}

// Sync splits each record into its identity and statistics projections and
// upserts both by channel id. Re-syncing identical records is a no-op in
// effect. The two projections are not wrapped in a transaction; a failure
// between them can leave one projection ahead of the other until the next
// refresh.
func (s *catalogService) Sync(ctx context.Context, records []domain.ChannelRecord) (int, error) {
	if len(records) == 0 {
		s.logger.Debug("Catalog sync skipped, no records fetched")
		return 0, nil
	}

	if err := s.repo.UpsertChannels(ctx, records); err != nil {
		s.logger.WithError(err).Error("Failed to upsert channel metadata")
		return 0, errors.NewStorageError("Failed to store channel metadata", err)
	}

	if err := s.repo.UpsertChannelStats(ctx, records); err != nil {
		s.logger.WithError(err).Error("Failed to upsert channel statistics")
		return 0, errors.NewStorageError("Failed to store channel statistics", err)
	}

	s.logger.WithField("count", len(records)).Info("Catalog sync completed")
	return len(records), nil
}

// List queries one page of the filtered catalog. The title exclusion is
// applied in the storage query and re-checked here case-insensitively.
func (s *catalogService) List(ctx context.Context, filter domain.ChannelListFilter) (*domain.ChannelPage, error) {
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.WithError(err).Error("Failed to query channel catalog")
		return nil, errors.NewStorageError("Failed to query channel catalog", err)
	}

	items = excludeByTitle(items, filter.ExcludeTitleTerm)
	if items == nil {
		items = []domain.ChannelRecord{}
	}

	return &domain.ChannelPage{
		Items:    items,
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Total:    total,
	}, nil
}

// excludeByTitle drops records whose title contains the term,
// case-insensitively
func excludeByTitle(records []domain.ChannelRecord, term string) []domain.ChannelRecord {
	if term == "" {
		return records
	}

	needle := strings.ToLower(term)
	filtered := records[:0]
	for _, rec := range records {
		if strings.Contains(strings.ToLower(rec.Title), needle) {
			continue
		}
		filtered = append(filtered, rec)
	}
	return filtered
}
