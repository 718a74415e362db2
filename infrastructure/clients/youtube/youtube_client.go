package youtube

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"transcript-app/domain/model"
	"transcript-app/domain/repository"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// ErrDataAPIUnavailable is returned for lookups that need the YouTube Data API when no key is configured.
var ErrDataAPIUnavailable = fmt.Errorf("youtube data api key not configured: %w", repository.ErrUnavailable)

const maxPlaylistPage = 50

// Client reads public video data. Metadata and channel listings come from the Data API,
// captions from the player endpoint used by the YouTube apps.
type Client struct {
	service      *youtube.Service
	http         *http.Client
	innertubeURL string
}

// Config represents YouTube client configuration
type Config struct {
	APIKey string
	// Endpoint overrides the Data API base URL.
	Endpoint string
	// InnertubeURL overrides the player endpoint.
	InnertubeURL string
	HTTPClient   *http.Client
}

// NewYouTubeClient creates a video source. Without an API key, video details fall back to the
// player response and channel listings are unavailable.
func NewYouTubeClient(ctx context.Context, config *Config) (*Client, error) {
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	c := &Client{
		http:         httpClient,
		innertubeURL: config.InnertubeURL,
	}
	if c.innertubeURL == "" {
		c.innertubeURL = playerURL
	}

	if config.APIKey == "" && config.Endpoint == "" {
		return c, nil
	}
	var opts []option.ClientOption
	if config.APIKey != "" {
		opts = append(opts, option.WithAPIKey(config.APIKey))
	} else {
		opts = append(opts, option.WithoutAuthentication())
	}
	if config.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(config.Endpoint))
	}
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	c.service = service
	return c, nil
}

var _ repository.IVideoSource = (*Client)(nil)

// GetVideoInfo retrieves details for a specific video
func (c *Client) GetVideoInfo(ctx context.Context, videoID string) (*model.VideoInfo, error) {
	if c.service == nil {
		player, err := c.player(ctx, videoID)
		if err != nil {
			return nil, err
		}
		if player.VideoDetails == nil {
			return nil, fmt.Errorf("video %s: %w", videoID, repository.ErrNotFound)
		}
		info := player.VideoDetails.toVideoInfo()
		return &info, nil
	}

	response, err := c.service.Videos.List([]string{"snippet", "statistics", "contentDetails"}).
		Id(videoID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get video details: %w", err)
	}
	if len(response.Items) == 0 {
		return nil, fmt.Errorf("video %s: %w", videoID, repository.ErrNotFound)
	}
	info := convertToVideoInfo(response.Items[0])
	return &info, nil
}

// GetChannelVideos lists the channel's most recent uploads, newest first.
func (c *Client) GetChannelVideos(ctx context.Context, ref repository.ChannelRef, limit int) (*model.ChannelData, error) {
	if c.service == nil {
		return nil, ErrDataAPIUnavailable
	}
	if limit <= 0 {
		limit = 10
	}

	call := c.service.Channels.List([]string{"snippet", "contentDetails"}).Context(ctx)
	if ref.Handle != "" {
		call = call.ForHandle(ref.Handle)
	} else {
		call = call.Id(ref.ID)
	}
	channels, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get channel: %w", err)
	}
	if len(channels.Items) == 0 {
		return nil, fmt.Errorf("channel %s%s: %w", ref.Handle, ref.ID, repository.ErrNotFound)
	}
	channel := channels.Items[0]
	data := &model.ChannelData{ChannelName: channel.Snippet.Title, Videos: []model.ChannelVideo{}}
	if channel.ContentDetails == nil || channel.ContentDetails.RelatedPlaylists == nil || channel.ContentDetails.RelatedPlaylists.Uploads == "" {
		return data, nil
	}

	var videoIDs []string
	pageToken := ""
	for len(videoIDs) < limit {
		pageSize := limit - len(videoIDs)
		if pageSize > maxPlaylistPage {
			pageSize = maxPlaylistPage
		}
		pc := c.service.PlaylistItems.List([]string{"contentDetails"}).
			PlaylistId(channel.ContentDetails.RelatedPlaylists.Uploads).
			MaxResults(int64(pageSize)).
			Context(ctx)
		if pageToken != "" {
			pc = pc.PageToken(pageToken)
		}
		page, err := pc.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list uploads: %w", err)
		}
		for _, item := range page.Items {
			if item.ContentDetails != nil && item.ContentDetails.VideoId != "" {
				videoIDs = append(videoIDs, item.ContentDetails.VideoId)
			}
		}
		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}
	if len(videoIDs) > limit {
		videoIDs = videoIDs[:limit]
	}
	if len(videoIDs) == 0 {
		return data, nil
	}

	details, err := c.service.Videos.List([]string{"snippet", "statistics", "contentDetails"}).
		Id(strings.Join(videoIDs, ",")).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get video details: %w", err)
	}
	byID := make(map[string]*youtube.Video, len(details.Items))
	for _, v := range details.Items {
		byID[v.Id] = v
	}
	for _, id := range videoIDs {
		v, ok := byID[id]
		if !ok {
			continue
		}
		info := convertToVideoInfo(v)
		data.Videos = append(data.Videos, model.ChannelVideo{
			VideoID:       info.VideoID,
			Title:         info.Title,
			Author:        info.Author,
			LengthSeconds: info.LengthSeconds,
			ViewCount:     info.ViewCount,
			UploadDate:    info.UploadDate,
			Thumbnails:    info.Thumbnails,
			Description:   info.Description,
		})
	}
	return data, nil
}

// convertToVideoInfo converts YouTube API video to our model
func convertToVideoInfo(video *youtube.Video) model.VideoInfo {
	info := model.VideoInfo{VideoID: video.Id}
	if video.Snippet != nil {
		info.Title = video.Snippet.Title
		info.Author = video.Snippet.ChannelTitle
		info.UploadDate = video.Snippet.PublishedAt
		info.Description = video.Snippet.Description
		info.Thumbnails = convertThumbnails(video.Snippet.Thumbnails)
	}
	if video.Statistics != nil {
		info.ViewCount = strconv.FormatUint(video.Statistics.ViewCount, 10)
	}
	if video.ContentDetails != nil {
		if secs, err := ParseISODuration(video.ContentDetails.Duration); err == nil {
			info.LengthSeconds = secs
		}
	}
	return info
}

func convertThumbnails(details *youtube.ThumbnailDetails) []model.Thumbnail {
	if details == nil {
		return nil
	}
	var out []model.Thumbnail
	for _, t := range []*youtube.Thumbnail{details.Default, details.Medium, details.High, details.Standard, details.Maxres} {
		if t == nil || t.Url == "" {
			continue
		}
		out = append(out, model.Thumbnail{URL: t.Url, Width: int(t.Width), Height: int(t.Height)})
	}
	return out
}
