package repository

import (
	"context"

	"transcript-app/domain/dto"
	"transcript-app/domain/model"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type ITranscript interface {
	Create(ctx context.Context, transcript *model.Transcript) error
	// ListByUser returns the user's transcripts, newest first.
	ListByUser(ctx context.Context, userID bson.ObjectID) ([]model.Transcript, error)
	// Delete removes one transcript owned by userID; returns ErrNotFound otherwise.
	Delete(ctx context.Context, userID, id bson.ObjectID) error
	DeleteAllByUser(ctx context.Context, userID bson.ObjectID) (int64, error)
}

type IMemory interface {
	Create(ctx context.Context, memory *model.Memory) error
	ListByUser(ctx context.Context, userID bson.ObjectID) ([]model.Memory, error)
	Delete(ctx context.Context, userID, id bson.ObjectID) error
}

type IAISettings interface {
	// GetOrCreate returns the user's settings, inserting defaults on first access.
	GetOrCreate(ctx context.Context, userID bson.ObjectID) (*model.AISettings, error)
	Upsert(ctx context.Context, userID bson.ObjectID, update dto.AISettingsUpdateRequest) (*model.AISettings, error)
}
