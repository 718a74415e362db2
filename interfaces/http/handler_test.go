package http_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"transcript-app/domain/dto"
	"transcript-app/domain/model"
	httpHandler "transcript-app/interfaces/http"
	"transcript-app/interfaces/middleware"
	"transcript-app/server"
	"transcript-app/usecase"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	cookieName   = "sid"
	validToken   = "valid-token"
	sessionID    = "session-1"
	clientOrigin = "http://localhost:5173"
)

type testDeps struct {
	auth       *MockAuthUsecase
	users      *MockUserUsecase
	videos     *MockVideoUsecase
	transcript *MockTranscriptUsecase
	memories   *MockMemoryUsecase
	settings   *MockAISettingsUsecase
	ping       error
	limiter    *middleware.ClientLimiter
	userID     bson.ObjectID
}

func newTestDeps() *testDeps {
	gin.SetMode(gin.TestMode)
	return &testDeps{
		auth:       new(MockAuthUsecase),
		users:      new(MockUserUsecase),
		videos:     new(MockVideoUsecase),
		transcript: new(MockTranscriptUsecase),
		memories:   new(MockMemoryUsecase),
		settings:   new(MockAISettingsUsecase),
		userID:     bson.NewObjectID(),
	}
}

func (d *testDeps) router() *gin.Engine {
	cookies := httpHandler.CookieConfig{Name: cookieName, MaxAge: 24 * time.Hour}
	return server.InitiateRouter(server.RouterConfig{
		ClientURL:  clientOrigin,
		CookieName: cookieName,
		Limiter:    d.limiter,
	}, d.auth, server.Handlers{
		Auth:       httpHandler.NewAuthHandler(d.auth, cookies),
		Profile:    httpHandler.NewProfileHandler(d.users),
		Video:      httpHandler.NewVideoHandler(d.videos),
		Transcript: httpHandler.NewTranscriptHandler(d.transcript),
		Memory:     httpHandler.NewMemoryHandler(d.memories),
		AISettings: httpHandler.NewAISettingsHandler(d.settings),
		Health: httpHandler.NewHealthHandler(func(context.Context) error {
			return d.ping
		}),
	})
}

// signedIn makes the session middleware accept validToken.
func (d *testDeps) signedIn() {
	d.auth.On("ResolveSession", mock.Anything, validToken).
		Return(&model.Session{ID: sessionID, UserID: d.userID}, nil)
}

func doRequest(t *testing.T, r http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var res dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	return nil
}

func TestSignUp_StartsSession(t *testing.T) {
	d := newTestDeps()
	user := &model.User{ID: d.userID, Email: "a@b.c", Name: "Ann"}
	req := dto.SignUpRequest{Email: "a@b.c", Password: "secret", Name: "Ann"}
	d.auth.On("SignUp", mock.Anything, req).Return(user, nil)
	d.auth.On("StartSession", mock.Anything, d.userID).Return(&usecase.SessionGrant{Token: "new-token", SessionID: "s2"}, nil)

	w := doRequest(t, d.router(), http.MethodPost, "/api/auth/signup", req, "")

	require.Equal(t, http.StatusOK, w.Code)
	var res dto.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, d.userID.Hex(), res.User.ID)
	assert.Equal(t, "Ann", res.User.Name)

	c := sessionCookie(w)
	require.NotNil(t, c)
	assert.Equal(t, "new-token", c.Value)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, 86400, c.MaxAge)
	d.auth.AssertExpectations(t)
}

func TestSignUp_UsecaseErrorsPassThrough(t *testing.T) {
	d := newTestDeps()
	d.auth.On("SignUp", mock.Anything, mock.Anything).Return(nil, usecase.ErrUserExists)

	w := doRequest(t, d.router(), http.MethodPost, "/api/auth/signup", dto.SignUpRequest{Email: "a@b.c", Password: "x"}, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User already exists", decodeError(t, w).Error)
	assert.Nil(t, sessionCookie(w))
}

func TestSignUp_InvalidBody(t *testing.T) {
	d := newTestDeps()

	w := doRequest(t, d.router(), http.MethodPost, "/api/auth/signup", "{not json", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, httpHandler.ErrorInvalidBody, decodeError(t, w).Error)
	d.auth.AssertNotCalled(t, "SignUp", mock.Anything, mock.Anything)
}

func TestSignIn_InvalidCredentials(t *testing.T) {
	d := newTestDeps()
	d.auth.On("SignIn", mock.Anything, mock.Anything).Return(nil, usecase.ErrInvalidCredentials)

	w := doRequest(t, d.router(), http.MethodPost, "/api/auth/signin", dto.SignInRequest{Email: "a@b.c", Password: "bad"}, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", decodeError(t, w).Error)
}

func TestSignIn_ReplacesExistingSession(t *testing.T) {
	d := newTestDeps()
	d.signedIn()
	user := &model.User{ID: d.userID, Email: "a@b.c"}
	d.auth.On("SignIn", mock.Anything, mock.Anything).Return(user, nil)
	d.auth.On("EndSession", mock.Anything, sessionID).Return(nil).Once()
	d.auth.On("StartSession", mock.Anything, d.userID).Return(&usecase.SessionGrant{Token: "fresh"}, nil)

	w := doRequest(t, d.router(), http.MethodPost, "/api/auth/signin", dto.SignInRequest{Email: "a@b.c", Password: "pw"}, validToken)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "fresh", sessionCookie(w).Value)
	d.auth.AssertExpectations(t)
}

func TestSignIn_UnexpectedErrorUsesFallback(t *testing.T) {
	d := newTestDeps()
	d.auth.On("SignIn", mock.Anything, mock.Anything).Return(nil, errors.New("mongo down"))

	w := doRequest(t, d.router(), http.MethodPost, "/api/auth/signin", dto.SignInRequest{Email: "a@b.c", Password: "pw"}, "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Authentication failed", decodeError(t, w).Error)
}

func TestMe(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		d := newTestDeps()
		w := doRequest(t, d.router(), http.MethodGet, "/api/auth/me", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Not authenticated", decodeError(t, w).Error)
	})

	t.Run("stale token", func(t *testing.T) {
		d := newTestDeps()
		d.auth.On("ResolveSession", mock.Anything, "stale").Return(nil, usecase.ErrNotAuthenticated)
		w := doRequest(t, d.router(), http.MethodGet, "/api/auth/me", nil, "stale")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("signed in", func(t *testing.T) {
		d := newTestDeps()
		d.signedIn()
		d.auth.On("CurrentUser", mock.Anything, d.userID).Return(&model.User{ID: d.userID, Email: "a@b.c"}, nil)
		w := doRequest(t, d.router(), http.MethodGet, "/api/auth/me", nil, validToken)
		require.Equal(t, http.StatusOK, w.Code)
		var res dto.UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, "a@b.c", res.User.Email)
	})

	t.Run("deleted user ends the session", func(t *testing.T) {
		d := newTestDeps()
		d.signedIn()
		d.auth.On("CurrentUser", mock.Anything, d.userID).Return(nil, usecase.ErrUserNotFound)
		d.auth.On("EndSession", mock.Anything, sessionID).Return(nil).Once()
		w := doRequest(t, d.router(), http.MethodGet, "/api/auth/me", nil, validToken)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "User not found", decodeError(t, w).Error)
		c := sessionCookie(w)
		require.NotNil(t, c)
		assert.Equal(t, "", c.Value)
		assert.Less(t, c.MaxAge, 0)
		d.auth.AssertExpectations(t)
	})
}

func TestSignOut(t *testing.T) {
	d := newTestDeps()
	d.signedIn()
	d.auth.On("EndSession", mock.Anything, sessionID).Return(nil)

	w := doRequest(t, d.router(), http.MethodPost, "/api/auth/signout", nil, validToken)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Signed out successfully"}`, w.Body.String())
	assert.Less(t, sessionCookie(w).MaxAge, 0)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	d := newTestDeps()
	r := d.router()
	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/user/profile"},
		{http.MethodPut, "/api/user/profile"},
		{http.MethodGet, "/api/transcripts"},
		{http.MethodPost, "/api/transcripts"},
		{http.MethodDelete, "/api/transcripts"},
		{http.MethodDelete, "/api/transcripts/abc"},
		{http.MethodGet, "/api/ai-settings"},
		{http.MethodPut, "/api/ai-settings"},
		{http.MethodGet, "/api/memories"},
		{http.MethodPost, "/api/memories"},
		{http.MethodDelete, "/api/memories/abc"},
	} {
		w := doRequest(t, r, route.method, route.path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, route.method+" "+route.path)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
	}
}

func TestProfile(t *testing.T) {
	d := newTestDeps()
	d.signedIn()
	req := dto.ProfileUpdateRequest{Name: "New"}
	d.users.On("UpdateProfile", mock.Anything, d.userID, req).Return(&model.User{ID: d.userID, Name: "New", Password: "hash"}, nil)
	d.users.On("GetProfile", mock.Anything, d.userID).Return(nil, errors.New("boom"))
	r := d.router()

	w := doRequest(t, r, http.MethodPut, "/api/user/profile", req, validToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"New"`)
	assert.NotContains(t, w.Body.String(), "hash")

	w = doRequest(t, r, http.MethodGet, "/api/user/profile", nil, validToken)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to get profile", decodeError(t, w).Error)
}

func TestTranscript_NoCaptionsCarriesIsShort(t *testing.T) {
	d := newTestDeps()
	isShort := true
	d.videos.On("GetTranscript", mock.Anything, "https://youtube.com/shorts/abcdefghijk").
		Return(nil, &usecase.RequestError{Status: http.StatusNotFound, Message: "no captions", IsShort: &isShort})

	w := doRequest(t, d.router(), http.MethodPost, "/api/transcript", dto.VideoURLRequest{URL: "https://youtube.com/shorts/abcdefghijk"}, "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"no captions","isShort":true}`, w.Body.String())
}

func TestTranscript_Success(t *testing.T) {
	d := newTestDeps()
	d.videos.On("GetTranscript", mock.Anything, "https://youtu.be/dQw4w9WgXcQ").
		Return(&dto.TranscriptResponse{Transcript: []model.Segment{{Text: "hi", Offset: 0, Duration: 1000}}}, nil)

	w := doRequest(t, d.router(), http.MethodPost, "/api/transcript", dto.VideoURLRequest{URL: "https://youtu.be/dQw4w9WgXcQ"}, "")

	require.Equal(t, http.StatusOK, w.Code)
	var res dto.TranscriptResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.False(t, res.IsShort)
	require.Len(t, res.Transcript, 1)
}

func TestVideoInfo_Errors(t *testing.T) {
	d := newTestDeps()
	d.videos.On("GetVideoInfo", mock.Anything, "").Return(nil, usecase.ErrURLRequired)
	d.videos.On("GetVideoInfo", mock.Anything, "https://youtu.be/dQw4w9WgXcQ").Return(nil, errors.New("upstream 500"))
	r := d.router()

	w := doRequest(t, r, http.MethodPost, "/api/video-info", dto.VideoURLRequest{}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "URL is required", decodeError(t, w).Error)

	w = doRequest(t, r, http.MethodPost, "/api/video-info", dto.VideoURLRequest{URL: "https://youtu.be/dQw4w9WgXcQ"}, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to fetch video information", decodeError(t, w).Error)
}

func TestChannelVideos_PassesLimit(t *testing.T) {
	d := newTestDeps()
	d.videos.On("GetChannelVideos", mock.Anything, "https://youtube.com/@someone", 5).
		Return(&model.ChannelData{ChannelName: "Someone", Videos: []model.ChannelVideo{}}, nil)

	w := doRequest(t, d.router(), http.MethodPost, "/api/channel-videos", dto.ChannelVideosRequest{ChannelURL: "https://youtube.com/@someone", Limit: 5}, "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"channelName":"Someone","videos":[]}`, w.Body.String())
}

func TestYouTubeRoutesAreRateLimited(t *testing.T) {
	d := newTestDeps()
	d.limiter = middleware.NewClientLimiter(1, 2)
	d.videos.On("GetVideoInfo", mock.Anything, mock.Anything).Return(&model.VideoInfo{VideoID: "x"}, nil)
	r := d.router()

	for i := 0; i < 2; i++ {
		w := doRequest(t, r, http.MethodPost, "/api/video-info", dto.VideoURLRequest{URL: "u"}, "")
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := doRequest(t, r, http.MethodPost, "/api/video-info", dto.VideoURLRequest{URL: "u"}, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "Too many requests, please try again later", decodeError(t, w).Error)

	// routes outside the YouTube group are not limited
	w = doRequest(t, r, http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTranscriptLibrary(t *testing.T) {
	d := newTestDeps()
	d.signedIn()
	saved := &model.Transcript{ID: bson.NewObjectID(), UserID: d.userID, VideoID: "v", Title: "T"}
	d.transcript.On("Save", mock.Anything, d.userID, mock.MatchedBy(func(req dto.SaveTranscriptRequest) bool {
		return req.VideoID == "v" && req.Title == "T"
	})).Return(saved, nil)
	d.transcript.On("List", mock.Anything, d.userID).Return([]model.Transcript{*saved}, nil)
	d.transcript.On("Delete", mock.Anything, d.userID, "missing").Return(usecase.ErrTranscriptNotFound)
	d.transcript.On("Delete", mock.Anything, d.userID, saved.ID.Hex()).Return(nil)
	d.transcript.On("DeleteAll", mock.Anything, d.userID).Return("Deleted 3 transcripts", nil)
	r := d.router()

	w := doRequest(t, r, http.MethodPost, "/api/transcripts", dto.SaveTranscriptRequest{VideoID: "v", Title: "T"}, validToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), saved.ID.Hex())

	w = doRequest(t, r, http.MethodGet, "/api/transcripts", nil, validToken)
	require.Equal(t, http.StatusOK, w.Code)
	var list []model.Transcript
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	w = doRequest(t, r, http.MethodDelete, "/api/transcripts/missing", nil, validToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Transcript not found", decodeError(t, w).Error)

	w = doRequest(t, r, http.MethodDelete, "/api/transcripts/"+saved.ID.Hex(), nil, validToken)
	assert.JSONEq(t, `{"message":"Transcript deleted"}`, w.Body.String())

	w = doRequest(t, r, http.MethodDelete, "/api/transcripts", nil, validToken)
	assert.JSONEq(t, `{"message":"Deleted 3 transcripts"}`, w.Body.String())
	d.transcript.AssertExpectations(t)
}

func TestMemories(t *testing.T) {
	d := newTestDeps()
	d.signedIn()
	d.memories.On("Save", mock.Anything, d.userID, mock.Anything).Return(nil, usecase.ErrInvalidMemoryType).Once()
	d.memories.On("Save", mock.Anything, d.userID, mock.Anything).Return(nil, errors.New("write failed")).Once()
	d.memories.On("Delete", mock.Anything, d.userID, "m1").Return(nil)
	d.memories.On("List", mock.Anything, d.userID).Return([]model.Memory{}, nil)
	r := d.router()

	w := doRequest(t, r, http.MethodPost, "/api/memories", dto.SaveMemoryRequest{Type: "poem", Title: "x"}, validToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid memory type", decodeError(t, w).Error)

	w = doRequest(t, r, http.MethodPost, "/api/memories", dto.SaveMemoryRequest{Type: "chat", Title: "x"}, validToken)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to save memory: write failed", decodeError(t, w).Error)

	w = doRequest(t, r, http.MethodGet, "/api/memories", nil, validToken)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = doRequest(t, r, http.MethodDelete, "/api/memories/m1", nil, validToken)
	assert.JSONEq(t, `{"message":"Memory deleted"}`, w.Body.String())
}

func TestAISettings(t *testing.T) {
	d := newTestDeps()
	d.signedIn()
	key := "gsk_123"
	d.settings.On("Get", mock.Anything, d.userID).Return(&model.AISettings{UserID: d.userID}, nil)
	d.settings.On("Update", mock.Anything, d.userID, dto.AISettingsUpdateRequest{GroqAPIKey: &key}).
		Return(&model.AISettings{UserID: d.userID, GroqAPIKey: key}, nil)
	r := d.router()

	w := doRequest(t, r, http.MethodGet, "/api/ai-settings", nil, validToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"groqUnlocked":false`)

	w = doRequest(t, r, http.MethodPut, "/api/ai-settings", map[string]string{"groqApiKey": key}, validToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"groqApiKey":"gsk_123"`)
}

func TestHealthz(t *testing.T) {
	d := newTestDeps()
	w := doRequest(t, d.router(), http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	d.ping = errors.New("no primary")
	w = doRequest(t, d.router(), http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCORSAllowsClientOriginWithCredentials(t *testing.T) {
	d := newTestDeps()
	req := httptest.NewRequest(http.MethodOptions, "/api/auth/me", nil)
	req.Header.Set("Origin", clientOrigin)
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()

	d.router().ServeHTTP(w, req)

	assert.Equal(t, clientOrigin, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}
