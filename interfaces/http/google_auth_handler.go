package http

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"transcript-app/domain/dto"
	"transcript-app/infrastructure/logger"
	"transcript-app/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/go-querystring/query"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

const oauthStateCookie = "oauth_state"

// IGoogleAuthHandler runs the server-side Google sign in.
type IGoogleAuthHandler interface {
	Login(ctx *gin.Context)
	Callback(ctx *gin.Context)
}

// GoogleAuthConfig configures the OAuth client. Endpoint and APIEndpoint are only overridden in tests.
type GoogleAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	ClientURL    string
	Endpoint     oauth2.Endpoint
	APIEndpoint  string
}

type GoogleAuthHandler struct {
	oauth2Config *oauth2.Config
	apiEndpoint  string
	clientURL    string
	auth         usecase.IAuthUsecase
	cookies      CookieConfig
}

func NewGoogleAuthHandler(cfg GoogleAuthConfig, auth usecase.IAuthUsecase, cookies CookieConfig) IGoogleAuthHandler {
	endpoint := cfg.Endpoint
	if endpoint.AuthURL == "" {
		endpoint = google.Endpoint
	}
	return &GoogleAuthHandler{
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes: []string{
				"openid",
				oauth2api.UserinfoEmailScope,
				oauth2api.UserinfoProfileScope,
			},
			Endpoint: endpoint,
		},
		apiEndpoint: cfg.APIEndpoint,
		clientURL:   strings.TrimSuffix(cfg.ClientURL, "/"),
		auth:        auth,
		cookies:     cookies,
	}
}

// Login handles GET /auth/google
func (h *GoogleAuthHandler) Login(ctx *gin.Context) {
	state, err := generateRandomState()
	if err != nil {
		respondError(ctx, err, "Failed to start Google sign in")
		return
	}
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(oauthStateCookie, state, 600, "/", "", h.cookies.Secure, true)
	ctx.Redirect(http.StatusFound, h.oauth2Config.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "select_account")))
}

// Callback handles GET /auth/google/callback
func (h *GoogleAuthHandler) Callback(ctx *gin.Context) {
	if errorParam := ctx.Query("error"); errorParam != "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: fmt.Sprintf("OAuth error: %s", errorParam)})
		return
	}
	expected, _ := ctx.Cookie(oauthStateCookie)
	state := ctx.Query("state")
	if state == "" || state != expected {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid OAuth state"})
		return
	}
	ctx.SetCookie(oauthStateCookie, "", -1, "/", "", h.cookies.Secure, true)

	code := ctx.Query("code")
	if code == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Authorization code not found"})
		return
	}

	reqCtx := ctx.Request.Context()
	token, err := h.oauth2Config.Exchange(reqCtx, code)
	if err != nil {
		respondError(ctx, err, "Failed to exchange code for token")
		return
	}
	info, err := h.userInfo(reqCtx, token)
	if err != nil {
		respondError(ctx, err, "Failed to read Google profile")
		return
	}

	user, err := h.auth.GoogleSignIn(reqCtx, dto.GoogleSignInRequest{
		Email:    info.Email,
		Name:     info.Name,
		PhotoURL: info.Picture,
		GoogleID: info.Id,
	})
	if err != nil {
		respondError(ctx, err, "Authentication failed")
		return
	}
	if !startSession(ctx, h.auth, h.cookies, user, "Authentication failed") {
		return
	}

	values, err := query.Values(dto.GoogleSuccessQuery{
		ID:       user.ID.Hex(),
		Email:    user.Email,
		Name:     user.Name,
		PhotoURL: user.PhotoURL,
	})
	if err != nil {
		respondError(ctx, err, "Authentication failed")
		return
	}
	logger.GetLogger().WithField("userId", user.ID.Hex()).Info("Google sign in completed")
	ctx.Redirect(http.StatusFound, h.clientURL+"/auth/success?"+values.Encode())
}

func (h *GoogleAuthHandler) userInfo(ctx context.Context, token *oauth2.Token) (*oauth2api.Userinfo, error) {
	opts := []option.ClientOption{option.WithTokenSource(h.oauth2Config.TokenSource(ctx, token))}
	if h.apiEndpoint != "" {
		opts = append(opts, option.WithEndpoint(h.apiEndpoint))
	}
	service, err := oauth2api.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create oauth2 service: %w", err)
	}
	return service.Userinfo.Get().Context(ctx).Do()
}

// generateRandomState generates a random state parameter for OAuth2
func generateRandomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
