package dto

import (
	"time"

	"transcript-app/domain/model"
)

// SaveTranscriptRequest is the body of POST /api/transcripts
type SaveTranscriptRequest struct {
	VideoID       string            `json:"videoId"`
	Title         string            `json:"title"`
	Author        string            `json:"author"`
	LengthSeconds int64             `json:"lengthSeconds"`
	ViewCount     string            `json:"viewCount"`
	UploadDate    string            `json:"uploadDate"`
	Description   string            `json:"description"`
	Thumbnails    []model.Thumbnail `json:"thumbnails"`
	Transcript    []model.Segment   `json:"transcript"`
}

// SaveMemoryRequest is the body of POST /api/memories
type SaveMemoryRequest struct {
	TranscriptID string                `json:"transcriptId,omitempty"`
	Type         string                `json:"type"`
	Title        string                `json:"title"`
	VideoTitle   string                `json:"videoTitle,omitempty"`
	ToolName     string                `json:"toolName,omitempty"`
	Result       string                `json:"result,omitempty"`
	Cards        []model.Card          `json:"cards,omitempty"`
	Messages     []model.Message       `json:"messages,omitempty"`
	Metadata     *model.MemoryMetadata `json:"metadata,omitempty"`
	CreatedAt    *time.Time            `json:"createdAt,omitempty"`
}

// AISettingsUpdateRequest is a partial update; nil fields are left untouched.
type AISettingsUpdateRequest struct {
	GroqAPIKey     *string `json:"groqApiKey,omitempty"`
	GeminiAPIKey   *string `json:"geminiApiKey,omitempty"`
	GroqUnlocked   *bool   `json:"groqUnlocked,omitempty"`
	GeminiUnlocked *bool   `json:"geminiUnlocked,omitempty"`
}
