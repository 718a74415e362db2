package http_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"transcript-app/domain/dto"
	"transcript-app/domain/model"
	httpHandler "transcript-app/interfaces/http"
	"transcript-app/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/oauth2"
)

func newGoogleServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "the-code", r.PostForm.Get("code"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at-1","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/oauth2/v2/userinfo", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer at-1", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"g-42","email":"ann@example.com","name":"Ann","picture":"https://lh3.example/p.png"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newGoogleRouter(srv *httptest.Server, auth usecase.IAuthUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := httpHandler.NewGoogleAuthHandler(httpHandler.GoogleAuthConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost:3000/auth/google/callback",
		ClientURL:    "http://localhost:5173/",
		Endpoint: oauth2.Endpoint{
			AuthURL:  srv.URL + "/auth",
			TokenURL: srv.URL + "/token",
		},
		APIEndpoint: srv.URL + "/",
	}, auth, httpHandler.CookieConfig{Name: cookieName, MaxAge: time.Hour})
	r := gin.New()
	r.GET("/auth/google", h.Login)
	r.GET("/auth/google/callback", h.Callback)
	return r
}

func TestGoogleLogin_RedirectsWithState(t *testing.T) {
	srv := newGoogleServer(t)
	r := newGoogleRouter(srv, new(MockAuthUsecase))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/google", nil))

	require.Equal(t, http.StatusFound, w.Code)
	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "client-id", loc.Query().Get("client_id"))
	assert.Contains(t, loc.Query().Get("scope"), "openid")

	var state *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "oauth_state" {
			state = c
		}
	}
	require.NotNil(t, state)
	assert.Equal(t, state.Value, loc.Query().Get("state"))
	assert.Equal(t, 600, state.MaxAge)
}

func TestGoogleCallback_RejectsStateMismatch(t *testing.T) {
	srv := newGoogleServer(t)
	r := newGoogleRouter(srv, new(MockAuthUsecase))

	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?state=forged&code=the-code", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "expected"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid OAuth state", decodeError(t, w).Error)
}

func TestGoogleCallback_SignsInAndRedirects(t *testing.T) {
	srv := newGoogleServer(t)
	auth := new(MockAuthUsecase)
	userID := bson.NewObjectID()
	user := &model.User{ID: userID, Email: "ann@example.com", Name: "Ann", PhotoURL: "https://lh3.example/p.png"}
	auth.On("GoogleSignIn", mock.Anything, dto.GoogleSignInRequest{
		Email:    "ann@example.com",
		Name:     "Ann",
		PhotoURL: "https://lh3.example/p.png",
		GoogleID: "g-42",
	}).Return(user, nil)
	auth.On("StartSession", mock.Anything, userID).Return(&usecase.SessionGrant{Token: "tok"}, nil)
	r := newGoogleRouter(srv, auth)

	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?state=s1&code=the-code", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "s1"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "localhost:5173", loc.Host)
	assert.Equal(t, "/auth/success", loc.Path)
	assert.Equal(t, userID.Hex(), loc.Query().Get("id"))
	assert.Equal(t, "ann@example.com", loc.Query().Get("email"))
	assert.Equal(t, "https://lh3.example/p.png", loc.Query().Get("photoURL"))
	assert.Equal(t, "tok", sessionCookie(w).Value)
	auth.AssertExpectations(t)
}

func TestGoogleCallback_ProviderError(t *testing.T) {
	srv := newGoogleServer(t)
	r := newGoogleRouter(srv, new(MockAuthUsecase))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/google/callback?error=access_denied", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "OAuth error: access_denied", decodeError(t, w).Error)
}
