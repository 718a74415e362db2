package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"transcript-app/domain/dto"
	"transcript-app/domain/model"
)

// Keys and lifetimes of the cached list reads.
const (
	CacheKeyTranscripts = "transcripts"
	CacheKeyMemories    = "memories"
	CacheKeyAISettings  = "ai-settings"

	TranscriptsTTL = 5 * time.Minute
	MemoriesTTL    = 5 * time.Minute
	AISettingsTTL  = 10 * time.Minute

	DefaultChannelLimit = 10
)

// Auth. Signing in or out drops the cached lists of the session on either side of the switch.

func (c *Client) SignUp(ctx context.Context, email, password, name string) (*dto.PublicUser, error) {
	c.dropSessionCache(ctx)
	var resp dto.UserResponse
	err := c.Request(ctx, "/api/auth/signup", Options{
		Method: http.MethodPost,
		Body:   dto.SignUpRequest{Email: email, Password: password, Name: name},
	}, &resp)
	if err != nil {
		return nil, err
	}
	c.dropSessionCache(ctx)
	return &resp.User, nil
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*dto.PublicUser, error) {
	c.dropSessionCache(ctx)
	var resp dto.UserResponse
	err := c.Request(ctx, "/api/auth/signin", Options{
		Method: http.MethodPost,
		Body:   dto.SignInRequest{Email: email, Password: password},
	}, &resp)
	if err != nil {
		return nil, err
	}
	c.dropSessionCache(ctx)
	return &resp.User, nil
}

func (c *Client) GoogleSignIn(ctx context.Context, req dto.GoogleSignInRequest) (*dto.PublicUser, error) {
	c.dropSessionCache(ctx)
	var resp dto.UserResponse
	if err := c.Request(ctx, "/api/auth/google", Options{Method: http.MethodPost, Body: req}, &resp); err != nil {
		return nil, err
	}
	c.dropSessionCache(ctx)
	return &resp.User, nil
}

func (c *Client) GetCurrentUser(ctx context.Context) (*dto.PublicUser, error) {
	var resp dto.UserResponse
	if err := c.Request(ctx, "/api/auth/me", Options{}, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (c *Client) SignOut(ctx context.Context) (string, error) {
	c.dropSessionCache(ctx)
	var resp dto.MessageResponse
	if err := c.Request(ctx, "/api/auth/signout", Options{Method: http.MethodPost}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Profile

func (c *Client) GetProfile(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.Request(ctx, "/api/user/profile", Options{}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateProfile(ctx context.Context, req dto.ProfileUpdateRequest) (*model.User, error) {
	var user model.User
	if err := c.Request(ctx, "/api/user/profile", Options{Method: http.MethodPut, Body: req}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Video and channel lookups are never cached here; callers consult the entity store first.

func (c *Client) GetVideoInfo(ctx context.Context, videoURL string) (*model.VideoInfo, error) {
	var info model.VideoInfo
	err := c.Request(ctx, "/api/video-info", Options{Method: http.MethodPost, Body: dto.VideoURLRequest{URL: videoURL}}, &info)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) GetTranscript(ctx context.Context, videoURL string) (*dto.TranscriptResponse, error) {
	var resp dto.TranscriptResponse
	err := c.Request(ctx, "/api/transcript", Options{Method: http.MethodPost, Body: dto.VideoURLRequest{URL: videoURL}}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetChannelVideos lists a channel's latest uploads; a non-positive limit means DefaultChannelLimit.
func (c *Client) GetChannelVideos(ctx context.Context, channelURL string, limit int) (*model.ChannelData, error) {
	if limit <= 0 {
		limit = DefaultChannelLimit
	}
	var data model.ChannelData
	err := c.Request(ctx, "/api/channel-videos", Options{
		Method: http.MethodPost,
		Body:   dto.ChannelVideosRequest{ChannelURL: channelURL, Limit: limit},
	}, &data)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// Transcripts

func (c *Client) SaveTranscript(ctx context.Context, req dto.SaveTranscriptRequest) (*model.Transcript, error) {
	var saved model.Transcript
	if err := c.Request(ctx, "/api/transcripts", Options{Method: http.MethodPost, Body: req}, &saved); err != nil {
		return nil, err
	}
	c.invalidate(ctx, CacheKeyTranscripts)
	return &saved, nil
}

func (c *Client) GetTranscripts(ctx context.Context) ([]model.Transcript, error) {
	var transcripts []model.Transcript
	if err := c.cachedGet(ctx, CacheKeyTranscripts, TranscriptsTTL, "/api/transcripts", &transcripts); err != nil {
		return nil, err
	}
	return transcripts, nil
}

func (c *Client) DeleteTranscript(ctx context.Context, id string) (string, error) {
	var resp dto.MessageResponse
	if err := c.Request(ctx, "/api/transcripts/"+url.PathEscape(id), Options{Method: http.MethodDelete}, &resp); err != nil {
		return "", err
	}
	c.invalidate(ctx, CacheKeyTranscripts)
	return resp.Message, nil
}

func (c *Client) DeleteAllTranscripts(ctx context.Context) (string, error) {
	var resp dto.MessageResponse
	if err := c.Request(ctx, "/api/transcripts", Options{Method: http.MethodDelete}, &resp); err != nil {
		return "", err
	}
	c.invalidate(ctx, CacheKeyTranscripts)
	return resp.Message, nil
}

// AI settings

func (c *Client) GetAISettings(ctx context.Context) (*model.AISettings, error) {
	var settings model.AISettings
	if err := c.cachedGet(ctx, CacheKeyAISettings, AISettingsTTL, "/api/ai-settings", &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateAISettings stores the change and primes the cache with the server's answer.
func (c *Client) UpdateAISettings(ctx context.Context, req dto.AISettingsUpdateRequest) (*model.AISettings, error) {
	var settings model.AISettings
	if err := c.Request(ctx, "/api/ai-settings", Options{Method: http.MethodPut, Body: req}, &settings); err != nil {
		return nil, err
	}
	c.cacheSet(ctx, CacheKeyAISettings, &settings, AISettingsTTL)
	return &settings, nil
}

// Memories

func (c *Client) SaveMemory(ctx context.Context, req dto.SaveMemoryRequest) (*model.Memory, error) {
	var saved model.Memory
	if err := c.Request(ctx, "/api/memories", Options{Method: http.MethodPost, Body: req}, &saved); err != nil {
		return nil, err
	}
	c.invalidate(ctx, CacheKeyMemories)
	return &saved, nil
}

func (c *Client) GetMemories(ctx context.Context) ([]model.Memory, error) {
	var memories []model.Memory
	if err := c.cachedGet(ctx, CacheKeyMemories, MemoriesTTL, "/api/memories", &memories); err != nil {
		return nil, err
	}
	return memories, nil
}

func (c *Client) DeleteMemory(ctx context.Context, id string) (string, error) {
	var resp dto.MessageResponse
	if err := c.Request(ctx, "/api/memories/"+url.PathEscape(id), Options{Method: http.MethodDelete}, &resp); err != nil {
		return "", err
	}
	c.invalidate(ctx, CacheKeyMemories)
	return resp.Message, nil
}
