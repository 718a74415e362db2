package http

import (
	"net/http"

	"transcript-app/domain/dto"
	"transcript-app/interfaces/middleware"
	"transcript-app/usecase"

	"github.com/gin-gonic/gin"
)

type IMemoryHandler interface {
	Save(c *gin.Context)
	List(c *gin.Context)
	Delete(c *gin.Context)
}

type MemoryHandler struct {
	memoryUsecase usecase.IMemoryUsecase
}

func NewMemoryHandler(memoryUsecase usecase.IMemoryUsecase) IMemoryHandler {
	return &MemoryHandler{memoryUsecase: memoryUsecase}
}

func (h *MemoryHandler) Save(c *gin.Context) {
	var req dto.SaveMemoryRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, _ := middleware.UserID(c)
	m, err := h.memoryUsecase.Save(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to save memory: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *MemoryHandler) List(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	memories, err := h.memoryUsecase.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to get memories")
		return
	}
	c.JSON(http.StatusOK, memories)
}

func (h *MemoryHandler) Delete(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	if err := h.memoryUsecase.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete memory")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Memory deleted"})
}
