package usecase

import (
	"context"

	"transcript-app/domain/dto"
	"transcript-app/domain/model"
	"transcript-app/domain/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type IAISettingsUsecase interface {
	Get(ctx context.Context, userID bson.ObjectID) (*model.AISettings, error)
	Update(ctx context.Context, userID bson.ObjectID, req dto.AISettingsUpdateRequest) (*model.AISettings, error)
}

type AISettingsUsecase struct {
	settings repository.IAISettings
}

func NewAISettingsUsecase(settings repository.IAISettings) IAISettingsUsecase {
	return &AISettingsUsecase{settings: settings}
}

func (u *AISettingsUsecase) Get(ctx context.Context, userID bson.ObjectID) (*model.AISettings, error) {
	return u.settings.GetOrCreate(ctx, userID)
}

func (u *AISettingsUsecase) Update(ctx context.Context, userID bson.ObjectID, req dto.AISettingsUpdateRequest) (*model.AISettings, error) {
	return u.settings.Upsert(ctx, userID, req)
}
