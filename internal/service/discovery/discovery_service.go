package discovery

import (
	"context"
	goerrors "errors"
	"fmt"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"channelscout/internal/domain"
	"channelscout/pkg/errors"
	"channelscout/pkg/logger"
)

// channelAPI is the slice of the YouTube Data API the fetcher consumes. It
// is an interface so the pagination state machine can be tested with fakes.
type channelAPI interface {
	// SearchPage fetches one page of channel search results for the
	// configured keyword.
	SearchPage(ctx context.Context, pageToken string, maxResults int64) (*youtube.SearchListResponse, error)

	// ChannelBatch resolves full metadata and statistics for a batch of
	// channel identifiers in a single call.
	ChannelBatch(ctx context.Context, ids []string) (*youtube.ChannelListResponse, error)
}

// Options configures a discovery run
type Options struct {
	Keyword           string
	Region            string
	RelevanceLanguage string
	ResultCap         int
	ChunkSize         int
}

// Service discovers YouTube channels matching a configured keyword
type Service struct {
	api    channelAPI
	opts   Options
	logger *logger.Logger
}

// NewService creates a new discovery service backed by the YouTube Data API
func NewService(apiKey string, opts Options, logger *logger.Logger) *Service {
	return &Service{
		api:    &apiClient{apiKey: apiKey, opts: opts},
		opts:   opts,
		logger: logger,
	}
}

// runState is the discovery loop's state. Each run walks
// paginating -> detailsPending -> paginating ... until it lands on
// exhausted or failed.
type runState int

const (
	statePaginating runState = iota
	stateDetailsPending
	stateExhausted
	stateFailed
)

// discoveryRun holds the mutable state of one discovery run
type discoveryRun struct {
	api  channelAPI
	opts Options

	accumulated []domain.ChannelRecord
	seen        map[string]struct{}
	pending     []string // newly found candidate ids, in search order
	pageToken   string
	nextToken   string
	err         *errors.AppError
}

// Discover pages through channel search results until the result cap is
// reached or the source is exhausted, deduplicates candidates across pages,
// resolves each page's new candidates with one batched details call, and
// returns the records in search order. Any non-success upstream call aborts
// the whole run.
func (s *Service) Discover(ctx context.Context) ([]domain.ChannelRecord, error) {
	run := &discoveryRun{
		api:  s.api,
		opts: s.opts,
		seen: make(map[string]struct{}),
	}

	state := statePaginating
	pages := 0
	for state == statePaginating || state == stateDetailsPending {
		switch state {
		case statePaginating:
			pages++
			state = run.paginate(ctx)
		case stateDetailsPending:
			state = run.resolveDetails(ctx)
		}
	}

	if state == stateFailed {
		s.logger.WithError(run.err).WithField("pages", pages).Error("Channel discovery aborted")
		return nil, run.err
	}

	if len(run.accumulated) > s.opts.ResultCap {
		run.accumulated = run.accumulated[:s.opts.ResultCap]
	}

	s.logger.WithFields(map[string]interface{}{
		"keyword":  s.opts.Keyword,
		"pages":    pages,
		"channels": len(run.accumulated),
	}).Info("Channel discovery completed")

	return run.accumulated, nil
}

// paginate fetches one search page and collects its new candidate ids.
func (r *discoveryRun) paginate(ctx context.Context) runState {
	remaining := r.opts.ResultCap - len(r.accumulated)
	if remaining <= 0 {
		return stateExhausted
	}

	pageSize := int64(r.opts.ChunkSize)
	if int64(remaining) < pageSize {
		pageSize = int64(remaining)
	}

	resp, err := r.api.SearchPage(ctx, r.pageToken, pageSize)
	if err != nil {
		r.err = upstreamError("search", err)
		return stateFailed
	}
	r.nextToken = resp.NextPageToken

	// The search API is not guaranteed duplicate-free across pages. Every
	// new id is marked seen, but only the first `remaining` are collected.
	r.pending = r.pending[:0]
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.ChannelId == "" {
			continue
		}
		id := item.Id.ChannelId
		if _, ok := r.seen[id]; ok {
			continue
		}
		r.seen[id] = struct{}{}
		if len(r.pending) < remaining {
			r.pending = append(r.pending, id)
		}
	}

	if len(r.pending) == 0 {
		// Page was entirely duplicates (or empty). Advance the cursor
		// without a details lookup, or stop when there is no next page.
		if r.nextToken == "" {
			return stateExhausted
		}
		r.pageToken = r.nextToken
		return statePaginating
	}

	return stateDetailsPending
}

// resolveDetails issues one batched details lookup for the current page's
// new candidates and appends the results in candidate order.
func (r *discoveryRun) resolveDetails(ctx context.Context) runState {
	resp, err := r.api.ChannelBatch(ctx, r.pending)
	if err != nil {
		r.err = upstreamError("channel details", err)
		return stateFailed
	}

	byID := make(map[string]*youtube.Channel, len(resp.Items))
	for _, ch := range resp.Items {
		byID[ch.Id] = ch
	}

	// Keep the search stage's relevance order, not the details response
	// order. A candidate the details call did not return (e.g. a deleted
	// channel) is dropped, not retried.
	for _, id := range r.pending {
		if ch, ok := byID[id]; ok {
			r.accumulated = append(r.accumulated, mapChannel(ch))
		}
	}
	r.pending = nil

	if r.nextToken == "" {
		return stateExhausted
	}
	r.pageToken = r.nextToken
	return statePaginating
}

// mapChannel converts a YouTube API channel into a catalog record. Hidden
// subscriber counts map to nil, never zero.
func mapChannel(ch *youtube.Channel) domain.ChannelRecord {
	rec := domain.ChannelRecord{ID: ch.Id}

	if ch.Etag != "" {
		etag := ch.Etag
		rec.ETag = &etag
	}

	if ch.Snippet != nil {
		rec.Title = ch.Snippet.Title
		if ch.Snippet.CustomUrl != "" {
			customURL := ch.Snippet.CustomUrl
			rec.CustomURL = &customURL
		}
		if ch.Snippet.Country != "" {
			country := ch.Snippet.Country
			rec.Country = &country
		}
		if url := bestThumbnail(ch.Snippet.Thumbnails); url != "" {
			rec.ThumbnailURL = &url
		}
	}

	if ch.Statistics != nil {
		if !ch.Statistics.HiddenSubscriberCount {
			subs := int64(ch.Statistics.SubscriberCount)
			rec.SubscriberCount = &subs
		}
		views := int64(ch.Statistics.ViewCount)
		rec.ViewCount = &views
		videos := int64(ch.Statistics.VideoCount)
		rec.VideoCount = &videos
	}

	return rec
}

// bestThumbnail picks the best available thumbnail resolution
func bestThumbnail(thumbnails *youtube.ThumbnailDetails) string {
	if thumbnails == nil {
		return ""
	}
	if thumbnails.High != nil && thumbnails.High.Url != "" {
		return thumbnails.High.Url
	}
	if thumbnails.Medium != nil && thumbnails.Medium.Url != "" {
		return thumbnails.Medium.Url
	}
	if thumbnails.Default != nil && thumbnails.Default.Url != "" {
		return thumbnails.Default.Url
	}
	return ""
}

// upstreamError maps a failed YouTube API call to an upstream error
// carrying the upstream HTTP status and response body when available.
func upstreamError(op string, err error) *errors.AppError {
	var gerr *googleapi.Error
	if goerrors.As(err, &gerr) {
		return errors.NewUpstreamError(
			fmt.Sprintf("YouTube %s request failed", op), gerr.Code, gerr.Body, err)
	}
	return errors.NewUpstreamError(fmt.Sprintf("YouTube %s request failed", op), 0, "", err)
}

// apiClient is the real channelAPI implementation over the YouTube Data API
type apiClient struct {
	apiKey string
	opts   Options
}

func (c *apiClient) SearchPage(ctx context.Context, pageToken string, maxResults int64) (*youtube.SearchListResponse, error) {
	svc, err := youtube.NewService(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return nil, err
	}

	call := svc.Search.List([]string{"snippet"}).
		Q(c.opts.Keyword).
		Type("channel").
		MaxResults(maxResults)
	if c.opts.Region != "" {
		call = call.RegionCode(c.opts.Region)
	}
	if c.opts.RelevanceLanguage != "" {
		call = call.RelevanceLanguage(c.opts.RelevanceLanguage)
	}
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	return call.Context(ctx).Do()
}

func (c *apiClient) ChannelBatch(ctx context.Context, ids []string) (*youtube.ChannelListResponse, error) {
	svc, err := youtube.NewService(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return nil, err
	}

	return svc.Channels.List([]string{"snippet", "statistics"}).
		Id(ids...).
		MaxResults(int64(len(ids))).
		Context(ctx).
		Do()
}
