package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"channelscout/internal/config"
	"channelscout/internal/domain"
	"channelscout/internal/service"
	"channelscout/pkg/errors"
	"channelscout/pkg/logger"
)

// ChannelHandler serves the channel listing and refresh endpoints
type ChannelHandler struct {
	services *service.Services
	cache    *service.PageCache
	config   *config.Config
	logger   *logger.Logger
}

// NewChannelHandler creates a new channel handler. cache may be nil when
// Redis is not configured.
func NewChannelHandler(services *service.Services, cache *service.PageCache, cfg *config.Config, logger *logger.Logger) *ChannelHandler {
	return &ChannelHandler{
		services: services,
		cache:    cache,
		config:   cfg,
		logger:   logger,
	}
}

// List handles GET /channels
func (h *ChannelHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, appErr := h.parseFilter(r)
	if appErr != nil {
		h.writeError(w, appErr)
		return
	}

	if h.services.Catalog == nil {
		h.writeError(w, errors.NewConfigurationError("Channel storage is not configured"))
		return
	}

	if h.cache != nil {
		if page, ok := h.cache.GetPage(ctx, filter); ok {
			h.writeJSON(w, http.StatusOK, page)
			return
		}
	}

	page, err := h.services.Catalog.List(ctx, filter)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if h.cache != nil {
		h.cache.SetPage(ctx, filter, page)
	}

	h.writeJSON(w, http.StatusOK, page)
}

// Refresh handles POST /channels. It re-fetches channels from the discovery
// source, syncs them into storage, then re-reads the requested page so the
// caller sees a consistent view.
func (h *ChannelHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, appErr := h.parseFilter(r)
	if appErr != nil {
		h.writeError(w, appErr)
		return
	}

	if h.services.Catalog == nil {
		h.writeError(w, errors.NewConfigurationError("Channel storage is not configured"))
		return
	}

	if h.services.Discovery == nil {
		h.writeError(w, errors.NewConfigurationError("YouTube API key is not configured"))
		return
	}

	records, err := h.services.Discovery.Discover(ctx)
	if err != nil {
		h.writeError(w, err)
		return
	}

	refreshed, err := h.services.Catalog.Sync(ctx, records)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if h.cache != nil {
		h.cache.Invalidate(ctx)
	}

	page, err := h.services.Catalog.List(ctx, filter)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, &domain.RefreshResult{
		Refreshed:   refreshed,
		ChannelPage: *page,
	})
}

// parseFilter reads and validates the listing query parameters
func (h *ChannelHandler) parseFilter(r *http.Request) (domain.ChannelListFilter, *errors.AppError) {
	var filter domain.ChannelListFilter

	minSubs, appErr := queryInt64(r, "minSubscribers", 0)
	if appErr != nil {
		return filter, appErr
	}

	maxSubs, appErr := queryInt64(r, "maxSubscribers", h.config.MaxSubscribers)
	if appErr != nil {
		return filter, appErr
	}

	page, appErr := queryInt(r, "page", 1)
	if appErr != nil {
		return filter, appErr
	}

	return service.NewListFilter(minSubs, maxSubs, page, h.config.PageSize,
		h.config.MaxSubscribers, h.config.TitleExcludeTerm)
}

// queryInt64 parses an optional int64 query parameter
func queryInt64(r *http.Request, name string, fallback int64) (int64, *errors.AppError) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.NewValidationError(name+" must be an integer", map[string]interface{}{
			name: raw,
		})
	}
	return value, nil
}

// queryInt parses an optional int query parameter
func queryInt(r *http.Request, name string, fallback int) (int, *errors.AppError) {
	value, appErr := queryInt64(r, name, int64(fallback))
	if appErr != nil {
		return 0, appErr
	}
	return int(value), nil
}

// writeJSON writes a success response
func (h *ChannelHandler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.WithError(err).Error("Failed to encode response")
	}
}

// writeError maps an error to its HTTP status and error envelope
func (h *ChannelHandler) writeError(w http.ResponseWriter, err error) {
	appErr, ok := err.(*errors.AppError)
	if !ok {
		appErr = errors.NewInternalError("Unexpected error", err)
	}

	if appErr.StatusCode >= http.StatusInternalServerError {
		h.logger.WithError(appErr).Error("Request failed")
	} else {
		h.logger.WithField("type", string(appErr.Type)).Debug(appErr.Message)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)

	envelope := map[string]interface{}{
		"error": map[string]interface{}{
			"type":    appErr.Type,
			"message": appErr.Message,
		},
	}
	if len(appErr.Details) > 0 {
		envelope["error"].(map[string]interface{})["details"] = appErr.Details
	}

	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		h.logger.WithError(err).Error("Failed to encode error response")
	}
}
