package repository

import (
	"context"

	"transcript-app/domain/model"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type IUser interface {
	Create(ctx context.Context, user *model.User) error
	// GetByEmail returns ErrNotFound when no user matches. The password hash is only loaded when withPassword is set.
	GetByEmail(ctx context.Context, email string, withPassword bool) (*model.User, error)
	GetByID(ctx context.Context, id bson.ObjectID) (*model.User, error)
	LinkGoogle(ctx context.Context, id bson.ObjectID, googleID, name, photoURL string) (*model.User, error)
	UpdateProfile(ctx context.Context, id bson.ObjectID, name, photoURL string) (*model.User, error)
}

type ISession interface {
	Create(ctx context.Context, session *model.Session) error
	// Get returns ErrNotFound for unknown or expired sessions.
	Get(ctx context.Context, id string) (*model.Session, error)
	Delete(ctx context.Context, id string) error
}
