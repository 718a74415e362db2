package http

import (
	"net/http"

	"transcript-app/domain/dto"
	"transcript-app/interfaces/middleware"
	"transcript-app/usecase"

	"github.com/gin-gonic/gin"
)

type IAISettingsHandler interface {
	Get(c *gin.Context)
	Update(c *gin.Context)
}

type AISettingsHandler struct {
	settingsUsecase usecase.IAISettingsUsecase
}

func NewAISettingsHandler(settingsUsecase usecase.IAISettingsUsecase) IAISettingsHandler {
	return &AISettingsHandler{settingsUsecase: settingsUsecase}
}

// Get returns the caller's settings, creating the defaults on first access.
func (h *AISettingsHandler) Get(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	settings, err := h.settingsUsecase.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to get AI settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *AISettingsHandler) Update(c *gin.Context) {
	var req dto.AISettingsUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, _ := middleware.UserID(c)
	settings, err := h.settingsUsecase.Update(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to update AI settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}
