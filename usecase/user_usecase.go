package usecase

import (
	"context"
	"errors"

	"transcript-app/domain/dto"
	"transcript-app/domain/model"
	"transcript-app/domain/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type IUserUsecase interface {
	GetProfile(ctx context.Context, userID bson.ObjectID) (*model.User, error)
	UpdateProfile(ctx context.Context, userID bson.ObjectID, req dto.ProfileUpdateRequest) (*model.User, error)
}

type UserUsecase struct {
	users repository.IUser
}

func NewUserUsecase(users repository.IUser) IUserUsecase {
	return &UserUsecase{users: users}
}

func (u *UserUsecase) GetProfile(ctx context.Context, userID bson.ObjectID) (*model.User, error) {
	user, err := u.users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

func (u *UserUsecase) UpdateProfile(ctx context.Context, userID bson.ObjectID, req dto.ProfileUpdateRequest) (*model.User, error) {
	user, err := u.users.UpdateProfile(ctx, userID, req.Name, req.PhotoURL)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}
