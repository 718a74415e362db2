package usecase

import (
	"context"
	"fmt"

	"transcript-app/domain/dto"
	"transcript-app/domain/model"
	"transcript-app/domain/repository"
	"transcript-app/infrastructure/logger"

	"golang.org/x/sync/errgroup"
)

// IRemoteAPI is the part of the backend client the library flows need.
type IRemoteAPI interface {
	GetVideoInfo(ctx context.Context, videoURL string) (*model.VideoInfo, error)
	GetTranscript(ctx context.Context, videoURL string) (*dto.TranscriptResponse, error)
	GetChannelVideos(ctx context.Context, channelURL string, limit int) (*model.ChannelData, error)
	SaveTranscript(ctx context.Context, req dto.SaveTranscriptRequest) (*model.Transcript, error)
}

// VideoResult is a fetched video. FromCache is set when nothing was requested from the backend.
type VideoResult struct {
	Info       model.VideoInfo
	Transcript []model.Segment
	IsShort    bool
	FromCache  bool
}

type ChannelResult struct {
	Data      model.ChannelData
	FromCache bool
}

// Library runs the client-side fetch flows: the entity cache is consulted before the
// backend, and fresh results are written back to it.
type Library struct {
	api      IRemoteAPI
	entities repository.IEntityCache
	blobs    repository.IBlobCache
}

// NewLibrary builds the flows. blobs may be nil when no small-blob cache is configured.
func NewLibrary(api IRemoteAPI, entities repository.IEntityCache, blobs repository.IBlobCache) *Library {
	return &Library{api: api, entities: entities, blobs: blobs}
}

// FetchVideo returns the cached video when present, otherwise loads metadata and transcript
// concurrently. When only the transcript fails, the result carries the metadata and the error
// is returned alongside it.
func (l *Library) FetchVideo(ctx context.Context, videoURL string) (*VideoResult, error) {
	videoID, ok := ExtractVideoID(videoURL)
	if !ok {
		return nil, ErrInvalidVideoURL
	}

	cached, err := l.entities.GetVideo(ctx, videoID)
	if err != nil {
		logger.GetLogger().WithField("error", err).WithField("videoId", videoID).Warn("Cache lookup failed, fetching from backend")
	}
	if cached != nil {
		return &VideoResult{
			Info:       cached.VideoInfo,
			Transcript: cached.Transcript,
			IsShort:    looksShort(videoURL, cached.VideoInfo.LengthSeconds),
			FromCache:  true,
		}, nil
	}

	var (
		g             errgroup.Group
		info          *model.VideoInfo
		transcript    *dto.TranscriptResponse
		transcriptErr error
	)
	g.Go(func() error {
		var err error
		info, err = l.api.GetVideoInfo(ctx, videoURL)
		return err
	})
	g.Go(func() error {
		transcript, transcriptErr = l.api.GetTranscript(ctx, videoURL)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &VideoResult{Info: *info, IsShort: looksShort(videoURL, info.LengthSeconds)}
	if transcriptErr != nil {
		return result, transcriptErr
	}
	result.Transcript = transcript.Transcript
	result.IsShort = transcript.IsShort

	if err := l.entities.CacheVideo(ctx, videoID, *info, transcript.Transcript); err != nil {
		logger.GetLogger().WithField("error", err).WithField("videoId", videoID).Warn("Failed to cache video")
	}
	return result, nil
}

// FetchChannel is FetchVideo for channel listings, keyed by the URL as given.
func (l *Library) FetchChannel(ctx context.Context, channelURL string, limit int) (*ChannelResult, error) {
	cached, err := l.entities.GetChannel(ctx, channelURL)
	if err != nil {
		logger.GetLogger().WithField("error", err).WithField("channelUrl", channelURL).Warn("Cache lookup failed, fetching from backend")
	}
	if cached != nil {
		return &ChannelResult{Data: cached.ChannelData, FromCache: true}, nil
	}

	data, err := l.api.GetChannelVideos(ctx, channelURL, limit)
	if err != nil {
		return nil, err
	}
	if err := l.entities.CacheChannel(ctx, channelURL, *data); err != nil {
		logger.GetLogger().WithField("error", err).WithField("channelUrl", channelURL).Warn("Failed to cache channel")
	}
	return &ChannelResult{Data: *data}, nil
}

// SaveFetched stores a fetched video in the signed-in user's library.
func (l *Library) SaveFetched(ctx context.Context, v *VideoResult) (*model.Transcript, error) {
	if v == nil || v.Transcript == nil {
		return nil, fmt.Errorf("nothing to save: video has no transcript")
	}
	return l.api.SaveTranscript(ctx, dto.SaveTranscriptRequest{
		VideoID:       v.Info.VideoID,
		Title:         v.Info.Title,
		Author:        v.Info.Author,
		LengthSeconds: v.Info.LengthSeconds,
		ViewCount:     v.Info.ViewCount,
		UploadDate:    v.Info.UploadDate,
		Description:   v.Info.Description,
		Thumbnails:    v.Info.Thumbnails,
		Transcript:    v.Transcript,
	})
}

// ClearCache empties the entity cache and the small-blob cache.
func (l *Library) ClearCache(ctx context.Context) error {
	if err := l.entities.ClearAll(ctx); err != nil {
		return fmt.Errorf("clear entity cache: %w", err)
	}
	if l.blobs != nil {
		if err := l.blobs.Clear(ctx); err != nil {
			return fmt.Errorf("clear blob cache: %w", err)
		}
	}
	return nil
}

// CacheInfo reports record counts and the most recently cached videos.
func (l *Library) CacheInfo(ctx context.Context, recent int) (model.CacheInfo, []model.CachedVideoRecord, error) {
	info, err := l.entities.GetCacheInfo(ctx)
	if err != nil {
		return model.CacheInfo{}, nil, err
	}
	if recent <= 0 {
		return info, nil, nil
	}
	videos, err := l.entities.RecentVideos(ctx, recent)
	return info, videos, err
}
