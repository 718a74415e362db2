package dto

// ErrorResponse is the body of every non-2xx API response
type ErrorResponse struct {
	Error   string `json:"error"`
	IsShort *bool  `json:"isShort,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
