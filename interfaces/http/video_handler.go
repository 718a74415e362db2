package http

import (
	"net/http"

	"transcript-app/domain/dto"
	"transcript-app/usecase"

	"github.com/gin-gonic/gin"
)

type IVideoHandler interface {
	VideoInfo(c *gin.Context)
	Transcript(c *gin.Context)
	ChannelVideos(c *gin.Context)
}

type VideoHandler struct {
	videoUsecase usecase.IVideoUsecase
}

func NewVideoHandler(videoUsecase usecase.IVideoUsecase) IVideoHandler {
	return &VideoHandler{videoUsecase: videoUsecase}
}

// VideoInfo handles POST /api/video-info
func (h *VideoHandler) VideoInfo(c *gin.Context) {
	var req dto.VideoURLRequest
	if !bindJSON(c, &req) {
		return
	}
	info, err := h.videoUsecase.GetVideoInfo(c.Request.Context(), req.URL)
	if err != nil {
		respondError(c, err, "Failed to fetch video information")
		return
	}
	c.JSON(http.StatusOK, info)
}

// Transcript handles POST /api/transcript
func (h *VideoHandler) Transcript(c *gin.Context) {
	var req dto.VideoURLRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.videoUsecase.GetTranscript(c.Request.Context(), req.URL)
	if err != nil {
		respondError(c, err, "Failed to fetch transcript. The video might not have captions available.")
		return
	}
	c.JSON(http.StatusOK, res)
}

// ChannelVideos handles POST /api/channel-videos
func (h *VideoHandler) ChannelVideos(c *gin.Context) {
	var req dto.ChannelVideosRequest
	if !bindJSON(c, &req) {
		return
	}
	data, err := h.videoUsecase.GetChannelVideos(c.Request.Context(), req.ChannelURL, req.Limit)
	if err != nil {
		respondError(c, err, "Failed to fetch channel videos")
		return
	}
	c.JSON(http.StatusOK, data)
}
