package usecase

import (
	"context"
	"errors"
	"strings"

	"transcript-app/domain/dto"
	"transcript-app/domain/model"
	"transcript-app/domain/repository"
	"transcript-app/infrastructure/logger"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultChannelLimit = 10
	MaxChannelLimit     = 50
	shortMaxSeconds     = 60
)

type IVideoUsecase interface {
	GetVideoInfo(ctx context.Context, url string) (*model.VideoInfo, error)
	GetTranscript(ctx context.Context, url string) (*dto.TranscriptResponse, error)
	GetChannelVideos(ctx context.Context, channelURL string, limit int) (*model.ChannelData, error)
}

type VideoUsecase struct {
	source repository.IVideoSource
}

func NewVideoUsecase(source repository.IVideoSource) IVideoUsecase {
	return &VideoUsecase{source: source}
}

func parseVideoURL(url string) (string, error) {
	if strings.TrimSpace(url) == "" {
		return "", ErrURLRequired
	}
	id, ok := ExtractVideoID(url)
	if !ok {
		return "", ErrInvalidVideoURL
	}
	return id, nil
}

func (u *VideoUsecase) GetVideoInfo(ctx context.Context, url string) (*model.VideoInfo, error) {
	videoID, err := parseVideoURL(url)
	if err != nil {
		return nil, err
	}
	info, err := u.source.GetVideoInfo(ctx, videoID)
	if err != nil {
		return nil, videoError(err)
	}
	info.VideoID = videoID
	return info, nil
}

// GetTranscript loads metadata and captions concurrently. The metadata decides whether the
// video counts as a Short, which changes the message when no captions exist.
func (u *VideoUsecase) GetTranscript(ctx context.Context, url string) (*dto.TranscriptResponse, error) {
	videoID, err := parseVideoURL(url)
	if err != nil {
		return nil, err
	}

	var (
		g          errgroup.Group
		info       *model.VideoInfo
		segments   []model.Segment
		captionErr error
	)
	g.Go(func() error {
		var err error
		info, err = u.source.GetVideoInfo(ctx, videoID)
		return err
	})
	g.Go(func() error {
		segments, captionErr = u.source.GetTranscript(ctx, videoID)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, videoError(err)
	}

	isShort := looksShort(url, info.LengthSeconds)
	if captionErr != nil {
		if errors.Is(captionErr, repository.ErrNoTranscript) {
			logger.GetLogger().WithField("videoId", videoID).WithField("error", captionErr).Info("No transcript available")
			return nil, noTranscriptError(isShort)
		}
		return nil, captionErr
	}
	return &dto.TranscriptResponse{Transcript: segments, IsShort: isShort}, nil
}

func (u *VideoUsecase) GetChannelVideos(ctx context.Context, channelURL string, limit int) (*model.ChannelData, error) {
	if strings.TrimSpace(channelURL) == "" {
		return nil, ErrChannelURLRequired
	}
	ref, ok := ParseChannelRef(channelURL)
	if !ok {
		return nil, ErrInvalidChannelURL
	}
	if limit <= 0 {
		limit = DefaultChannelLimit
	}
	if limit > MaxChannelLimit {
		limit = MaxChannelLimit
	}

	data, err := u.source.GetChannelVideos(ctx, ref, limit)
	switch {
	case errors.Is(err, repository.ErrUnavailable):
		return nil, ErrChannelUnavailable
	case errors.Is(err, repository.ErrNotFound):
		return nil, ErrChannelNotFound
	case err != nil:
		return nil, err
	}
	if data.Videos == nil {
		data.Videos = []model.ChannelVideo{}
	}
	return data, nil
}

func videoError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrVideoNotFound
	}
	return err
}

// looksShort flags /shorts/ URLs and videos under a minute. An unknown length (0) is not a Short.
func looksShort(url string, lengthSeconds int64) bool {
	return IsShortURL(url) || (lengthSeconds > 0 && lengthSeconds < shortMaxSeconds)
}
