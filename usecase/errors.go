package usecase

import (
	"errors"
	"net/http"
)

// RequestError is a failure reported to the API caller with its own status and message.
type RequestError struct {
	Status  int
	Message string
	// IsShort is set on missing-transcript errors.
	IsShort *bool
}

func (e *RequestError) Error() string {
	return e.Message
}

func newRequestError(status int, message string) *RequestError {
	return &RequestError{Status: status, Message: message}
}

var (
	ErrCredentialsRequired = newRequestError(http.StatusBadRequest, "Email and password are required")
	ErrEmailRequired       = newRequestError(http.StatusBadRequest, "Email is required")
	ErrUserExists          = newRequestError(http.StatusBadRequest, "User already exists")
	ErrInvalidCredentials  = newRequestError(http.StatusUnauthorized, "Invalid email or password")
	ErrNotAuthenticated    = newRequestError(http.StatusUnauthorized, "Not authenticated")
	ErrUserNotFound        = newRequestError(http.StatusNotFound, "User not found")

	ErrURLRequired        = newRequestError(http.StatusBadRequest, "URL is required")
	ErrInvalidVideoURL    = newRequestError(http.StatusBadRequest, "Invalid YouTube URL")
	ErrChannelURLRequired = newRequestError(http.StatusBadRequest, "Channel URL is required")
	ErrInvalidChannelURL  = newRequestError(http.StatusBadRequest, "Invalid channel URL format")
	ErrVideoNotFound      = newRequestError(http.StatusNotFound, "Video not found")
	ErrChannelNotFound    = newRequestError(http.StatusNotFound, "Channel not found")
	ErrChannelUnavailable = newRequestError(http.StatusServiceUnavailable, "Channel listing is not configured on this server")

	ErrTranscriptNotFound = newRequestError(http.StatusNotFound, "Transcript not found")
	ErrMemoryNotFound     = newRequestError(http.StatusNotFound, "Memory not found")
	ErrTypeRequired       = newRequestError(http.StatusBadRequest, "Type is required")
	ErrTitleRequired      = newRequestError(http.StatusBadRequest, "Title is required")
	ErrInvalidMemoryType  = newRequestError(http.StatusBadRequest, "Invalid memory type")
	ErrInvalidTranscript  = newRequestError(http.StatusBadRequest, "Invalid transcriptId")
	ErrVideoIDRequired    = newRequestError(http.StatusBadRequest, "videoId and title are required")
)

// AsRequestError unwraps err into a *RequestError, if it carries one.
func AsRequestError(err error) (*RequestError, bool) {
	var re *RequestError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

func noTranscriptError(isShort bool) *RequestError {
	msg := "No transcript available for this video. The creator may not have enabled captions."
	if isShort {
		msg = "YouTube Shorts typically don't have transcripts. Most Shorts creators don't add captions, and YouTube doesn't auto-generate them for short videos."
	}
	return &RequestError{Status: http.StatusNotFound, Message: msg, IsShort: &isShort}
}
