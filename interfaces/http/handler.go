package http

import (
	"net/http"
	"time"

	"transcript-app/domain/dto"
	"transcript-app/infrastructure/logger"
	"transcript-app/usecase"

	"github.com/gin-gonic/gin"
)

const ErrorInvalidBody = "Invalid request body"

// CookieConfig describes the session cookie.
type CookieConfig struct {
	Name   string
	MaxAge time.Duration
	// Secure cookies are sent with SameSite=None so a separately hosted client can use them.
	Secure bool
}

func (c CookieConfig) set(ctx *gin.Context, value string, maxAge int) {
	if c.Secure {
		ctx.SetSameSite(http.SameSiteNoneMode)
	} else {
		ctx.SetSameSite(http.SameSiteLaxMode)
	}
	ctx.SetCookie(c.Name, value, maxAge, "/", "", c.Secure, true)
}

// Issue writes the session token.
func (c CookieConfig) Issue(ctx *gin.Context, token string) {
	c.set(ctx, token, int(c.MaxAge/time.Second))
}

func (c CookieConfig) Clear(ctx *gin.Context) {
	c.set(ctx, "", -1)
}

// respondError writes a usecase.RequestError as-is. Anything else is logged and answered with
// a 500 carrying fallback.
func respondError(ctx *gin.Context, err error, fallback string) {
	if re, ok := usecase.AsRequestError(err); ok {
		ctx.JSON(re.Status, dto.ErrorResponse{Error: re.Message, IsShort: re.IsShort})
		return
	}
	logger.GetLogger().WithFields(map[string]interface{}{
		"error":  err,
		"method": ctx.Request.Method,
		"path":   ctx.FullPath(),
	}).Error(fallback)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: fallback})
}

func bindJSON(ctx *gin.Context, dst interface{}) bool {
	if err := ctx.ShouldBindJSON(dst); err != nil {
		logger.GetLogger().WithField("error", err).Warn(ErrorInvalidBody)
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: ErrorInvalidBody})
		return false
	}
	return true
}
