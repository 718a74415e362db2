package repository

import (
	"context"
	"time"

	"transcript-app/domain/model"
)

// IEntityCache is the structured client-side cache for videos and channel listings.
// Expired records are removed lazily when read.
type IEntityCache interface {
	CacheVideo(ctx context.Context, videoID string, info model.VideoInfo, transcript []model.Segment) error
	// GetVideo returns nil without error on a miss or an expired record.
	GetVideo(ctx context.Context, videoID string) (*model.CachedVideoRecord, error)
	DeleteVideo(ctx context.Context, videoID string) error
	CacheChannel(ctx context.Context, channelURL string, data model.ChannelData) error
	GetChannel(ctx context.Context, channelURL string) (*model.CachedChannelRecord, error)
	DeleteChannel(ctx context.Context, channelURL string) error
	ClearAll(ctx context.Context) error
	GetCacheInfo(ctx context.Context) (model.CacheInfo, error)
	// RecentVideos returns up to limit live video records, most recently cached first.
	RecentVideos(ctx context.Context, limit int) ([]model.CachedVideoRecord, error)
}

// IBlobCache is a namespaced key-value cache for small JSON payloads, each with its own expiry.
type IBlobCache interface {
	// Set stores value under key. A non-positive expiry selects the default of 24h.
	Set(ctx context.Context, key string, value interface{}, expiry time.Duration) error
	// Get decodes the value into dst. It reports false for missing, expired or corrupt entries.
	Get(ctx context.Context, key string, dst interface{}) (bool, error)
	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
