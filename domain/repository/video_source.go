package repository

import (
	"context"

	"transcript-app/domain/model"
)

// ChannelRef identifies a channel either by @handle or by channel ID.
type ChannelRef struct {
	Handle string
	ID     string
}

// IVideoSource fetches public video data from YouTube
type IVideoSource interface {
	GetVideoInfo(ctx context.Context, videoID string) (*model.VideoInfo, error)
	// GetTranscript returns ErrNoTranscript when the video has no usable caption track.
	GetTranscript(ctx context.Context, videoID string) ([]model.Segment, error)
	GetChannelVideos(ctx context.Context, ref ChannelRef, limit int) (*model.ChannelData, error)
}
