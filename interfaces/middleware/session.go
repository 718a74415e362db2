package middleware

import (
	"net/http"

	"transcript-app/domain/dto"
	"transcript-app/infrastructure/logger"
	"transcript-app/usecase"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	userIDKey    = "user_id"
	sessionIDKey = "session_id"
)

// Session resolves the session cookie, when present, and stores the user and session ids
// on the context. Requests without a valid session pass through anonymously.
func Session(auth usecase.IAuthUsecase, cookieName string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie(cookieName)
		if err != nil || token == "" {
			ctx.Next()
			return
		}
		session, err := auth.ResolveSession(ctx.Request.Context(), token)
		if err != nil {
			if _, ok := usecase.AsRequestError(err); !ok {
				logger.GetLogger().WithField("error", err).Error("Session lookup failed")
			}
			ctx.Next()
			return
		}
		ctx.Set(userIDKey, session.UserID)
		ctx.Set(sessionIDKey, session.ID)
		ctx.Next()
	}
}

// RequireAuth rejects requests that carry no valid session.
func RequireAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if _, ok := UserID(ctx); !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
			return
		}
		ctx.Next()
	}
}

// UserID returns the signed-in user's id set by Session.
func UserID(ctx *gin.Context) (bson.ObjectID, bool) {
	v, ok := ctx.Get(userIDKey)
	if !ok {
		return bson.ObjectID{}, false
	}
	id, ok := v.(bson.ObjectID)
	return id, ok
}

// SessionID returns the current session id, or "" for anonymous requests.
func SessionID(ctx *gin.Context) string {
	return ctx.GetString(sessionIDKey)
}
