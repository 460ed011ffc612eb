package domain

// MaxSubscriberCeiling is the highest subscriber bound the listing accepts.
// Requests above it are clamped for maxSubscribers and rejected for
// minSubscribers.
const MaxSubscriberCeiling = 10000

// ChannelRecord is the canonical channel entity persisted in the catalog.
// Statistics are pointers because the upstream API can withhold them; a
// hidden subscriber count is nil, never zero.
type ChannelRecord struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	CustomURL       *string `json:"custom_url,omitempty"`
	ThumbnailURL    *string `json:"thumbnail_url,omitempty"`
	Country         *string `json:"country,omitempty"`
	SubscriberCount *int64  `json:"subscriber_count,omitempty"`
	ViewCount       *int64  `json:"view_count,omitempty"`
	VideoCount      *int64  `json:"video_count,omitempty"`
	ETag            *string `json:"etag,omitempty"`
}

// ChannelListFilter is a validated, normalized read query. It is built per
// request and never persisted.
type ChannelListFilter struct {
	MinSubscribers   int64
	MaxSubscribers   int64
	Page             int
	PageSize         int
	ExcludeTitleTerm string
}

// Offset returns the row offset of the requested page window.
func (f ChannelListFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// ChannelPage is one window over the filtered, ordered catalog plus the
// total filtered count.
type ChannelPage struct {
	Items    []ChannelRecord `json:"items"`
	Page     int             `json:"page"`
	PageSize int             `json:"pageSize"`
	Total    int64           `json:"total"`
}

// RefreshResult is the outcome of a discovery refresh: how many records the
// fetch produced plus the page re-read after sync.
type RefreshResult struct {
	Refreshed int `json:"refreshed"`
	ChannelPage
}
