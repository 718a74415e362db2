package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"transcript-app/domain/dto"
	"transcript-app/domain/model"
	"transcript-app/domain/repository"
	"transcript-app/infrastructure/logger"
	"transcript-app/infrastructure/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"
)

const passwordCost = 10

// SessionGrant is a freshly started session and the signed token that refers to it.
type SessionGrant struct {
	Token     string
	SessionID string
	ExpiresAt time.Time
}

type IAuthUsecase interface {
	SignUp(ctx context.Context, req dto.SignUpRequest) (*model.User, error)
	SignIn(ctx context.Context, req dto.SignInRequest) (*model.User, error)
	// GoogleSignIn finds the user by email, creating it or linking the Google account as needed.
	GoogleSignIn(ctx context.Context, req dto.GoogleSignInRequest) (*model.User, error)
	CurrentUser(ctx context.Context, userID bson.ObjectID) (*model.User, error)

	StartSession(ctx context.Context, userID bson.ObjectID) (*SessionGrant, error)
	// ResolveSession maps a session token to its live session.
	ResolveSession(ctx context.Context, token string) (*model.Session, error)
	EndSession(ctx context.Context, sessionID string) error
}

type AuthUsecase struct {
	users    repository.IUser
	sessions repository.ISession
	secret   string
	maxAge   time.Duration
}

func NewAuthUsecase(users repository.IUser, sessions repository.ISession, secret string, maxAge time.Duration) IAuthUsecase {
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}
	return &AuthUsecase{users: users, sessions: sessions, secret: secret, maxAge: maxAge}
}

func (u *AuthUsecase) SignUp(ctx context.Context, req dto.SignUpRequest) (*model.User, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, ErrCredentialsRequired
	}
	if _, err := u.users.GetByEmail(ctx, req.Email, false); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), passwordCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Email:    req.Email,
		Password: string(hash),
		Name:     req.Name,
	}
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	user.Password = ""
	return user, nil
}

func (u *AuthUsecase) SignIn(ctx context.Context, req dto.SignInRequest) (*model.User, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, ErrCredentialsRequired
	}
	user, err := u.users.GetByEmail(ctx, req.Email, true)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	// Google-only accounts have no password.
	if user.Password == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	user.Password = ""
	return user, nil
}

func (u *AuthUsecase) GoogleSignIn(ctx context.Context, req dto.GoogleSignInRequest) (*model.User, error) {
	if strings.TrimSpace(req.Email) == "" {
		return nil, ErrEmailRequired
	}
	user, err := u.users.GetByEmail(ctx, req.Email, false)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		user = &model.User{
			Email:    req.Email,
			Name:     req.Name,
			PhotoURL: req.PhotoURL,
			GoogleID: req.GoogleID,
		}
		if err := u.users.Create(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	case err != nil:
		return nil, err
	}

	if req.GoogleID != "" && user.GoogleID == "" {
		return u.users.LinkGoogle(ctx, user.ID, req.GoogleID, req.Name, req.PhotoURL)
	}
	return user, nil
}

func (u *AuthUsecase) CurrentUser(ctx context.Context, userID bson.ObjectID) (*model.User, error) {
	user, err := u.users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

func (u *AuthUsecase) StartSession(ctx context.Context, userID bson.ObjectID) (*SessionGrant, error) {
	now := utils.GetCurrentTime()
	session := &model.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(u.maxAge),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	token, err := utils.GenerateSessionToken(session.ID, session.ExpiresAt, u.secret)
	if err != nil {
		return nil, err
	}
	logger.GetLogger().WithField("sessionId", session.ID).Debug("Session created")
	return &SessionGrant{Token: token, SessionID: session.ID, ExpiresAt: session.ExpiresAt}, nil
}

func (u *AuthUsecase) ResolveSession(ctx context.Context, token string) (*model.Session, error) {
	sessionID, err := utils.ParseSessionToken(token, u.secret)
	if err != nil {
		return nil, ErrNotAuthenticated
	}
	session, err := u.sessions.Get(ctx, sessionID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotAuthenticated
	}
	return session, err
}

func (u *AuthUsecase) EndSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return u.sessions.Delete(ctx, sessionID)
}

// PublicUser is the user shape returned by the auth endpoints.
func PublicUser(user *model.User) dto.PublicUser {
	return dto.PublicUser{
		ID:       user.ID.Hex(),
		Email:    user.Email,
		Name:     user.Name,
		PhotoURL: user.PhotoURL,
	}
}
