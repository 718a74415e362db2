package dto

import "transcript-app/domain/model"

// VideoURLRequest is the body of /api/video-info and /api/transcript
type VideoURLRequest struct {
	URL string `json:"url"`
}

type TranscriptResponse struct {
	Transcript []model.Segment `json:"transcript"`
	IsShort    bool            `json:"isShort"`
}

type ChannelVideosRequest struct {
	ChannelURL string `json:"channelUrl"`
	Limit      int    `json:"limit,omitempty"`
}
