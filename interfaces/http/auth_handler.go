package http

import (
	"net/http"

	"transcript-app/domain/dto"
	"transcript-app/domain/model"
	"transcript-app/infrastructure/logger"
	"transcript-app/interfaces/middleware"
	"transcript-app/usecase"

	"github.com/gin-gonic/gin"
)

type IAuthHandler interface {
	SignUp(c *gin.Context)
	SignIn(c *gin.Context)
	GoogleSignIn(c *gin.Context)
	Me(c *gin.Context)
	SignOut(c *gin.Context)
}

type AuthHandler struct {
	auth    usecase.IAuthUsecase
	cookies CookieConfig
}

func NewAuthHandler(auth usecase.IAuthUsecase, cookies CookieConfig) IAuthHandler {
	return &AuthHandler{auth: auth, cookies: cookies}
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.auth.SignUp(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create account")
		return
	}
	h.login(c, user, "Failed to create account")
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req dto.SignInRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.auth.SignIn(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Authentication failed")
		return
	}
	h.login(c, user, "Failed to save session")
}

func (h *AuthHandler) GoogleSignIn(c *gin.Context) {
	var req dto.GoogleSignInRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.auth.GoogleSignIn(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Authentication failed")
		return
	}
	h.login(c, user, "Authentication failed")
}

// login replaces any current session with a new one for user and writes the user body.
func (h *AuthHandler) login(c *gin.Context, user *model.User, failure string) {
	if !startSession(c, h.auth, h.cookies, user, failure) {
		return
	}
	c.JSON(http.StatusOK, dto.UserResponse{User: usecase.PublicUser(user)})
}

func startSession(c *gin.Context, auth usecase.IAuthUsecase, cookies CookieConfig, user *model.User, failure string) bool {
	if old := middleware.SessionID(c); old != "" {
		if err := auth.EndSession(c.Request.Context(), old); err != nil {
			logger.GetLogger().WithField("error", err).Warn("Failed to end previous session")
		}
	}
	grant, err := auth.StartSession(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err, failure)
		return false
	}
	cookies.Issue(c, grant.Token)
	return true
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, usecase.ErrNotAuthenticated, "")
		return
	}
	user, err := h.auth.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		if err == usecase.ErrUserNotFound {
			_ = h.auth.EndSession(c.Request.Context(), middleware.SessionID(c))
			h.cookies.Clear(c)
		}
		respondError(c, err, "Failed to get user")
		return
	}
	c.JSON(http.StatusOK, dto.UserResponse{User: usecase.PublicUser(user)})
}

func (h *AuthHandler) SignOut(c *gin.Context) {
	if err := h.auth.EndSession(c.Request.Context(), middleware.SessionID(c)); err != nil {
		respondError(c, err, "Failed to sign out")
		return
	}
	h.cookies.Clear(c)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Signed out successfully"})
}
