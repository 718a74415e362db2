package http

import (
	"net/http"

	"transcript-app/domain/dto"
	"transcript-app/interfaces/middleware"
	"transcript-app/usecase"

	"github.com/gin-gonic/gin"
)

type ITranscriptHandler interface {
	Save(c *gin.Context)
	List(c *gin.Context)
	Delete(c *gin.Context)
	DeleteAll(c *gin.Context)
}

type TranscriptHandler struct {
	transcriptUsecase usecase.ITranscriptUsecase
}

func NewTranscriptHandler(transcriptUsecase usecase.ITranscriptUsecase) ITranscriptHandler {
	return &TranscriptHandler{transcriptUsecase: transcriptUsecase}
}

func (h *TranscriptHandler) Save(c *gin.Context) {
	var req dto.SaveTranscriptRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, _ := middleware.UserID(c)
	t, err := h.transcriptUsecase.Save(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to save transcript")
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TranscriptHandler) List(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	transcripts, err := h.transcriptUsecase.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to get transcripts")
		return
	}
	c.JSON(http.StatusOK, transcripts)
}

func (h *TranscriptHandler) Delete(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	if err := h.transcriptUsecase.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete transcript")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Transcript deleted"})
}

func (h *TranscriptHandler) DeleteAll(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	msg, err := h.transcriptUsecase.DeleteAll(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to delete transcripts")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: msg})
}
