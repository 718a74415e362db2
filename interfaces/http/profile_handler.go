package http

import (
	"net/http"

	"transcript-app/domain/dto"
	"transcript-app/interfaces/middleware"
	"transcript-app/usecase"

	"github.com/gin-gonic/gin"
)

type IProfileHandler interface {
	GetProfile(c *gin.Context)
	UpdateProfile(c *gin.Context)
}

type ProfileHandler struct {
	userUsecase usecase.IUserUsecase
}

func NewProfileHandler(userUsecase usecase.IUserUsecase) IProfileHandler {
	return &ProfileHandler{userUsecase: userUsecase}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	user, err := h.userUsecase.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to get profile")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req dto.ProfileUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, _ := middleware.UserID(c)
	user, err := h.userUsecase.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to update profile")
		return
	}
	c.JSON(http.StatusOK, user)
}
