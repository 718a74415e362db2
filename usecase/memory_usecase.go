package usecase

import (
	"context"
	"errors"
	"strings"

	"transcript-app/domain/dto"
	"transcript-app/domain/model"
	"transcript-app/domain/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type IMemoryUsecase interface {
	Save(ctx context.Context, userID bson.ObjectID, req dto.SaveMemoryRequest) (*model.Memory, error)
	List(ctx context.Context, userID bson.ObjectID) ([]model.Memory, error)
	Delete(ctx context.Context, userID bson.ObjectID, id string) error
}

type MemoryUsecase struct {
	memories repository.IMemory
}

func NewMemoryUsecase(memories repository.IMemory) IMemoryUsecase {
	return &MemoryUsecase{memories: memories}
}

func (u *MemoryUsecase) Save(ctx context.Context, userID bson.ObjectID, req dto.SaveMemoryRequest) (*model.Memory, error) {
	if strings.TrimSpace(req.Type) == "" {
		return nil, ErrTypeRequired
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}
	if !model.IsValidMemoryType(req.Type) {
		return nil, ErrInvalidMemoryType
	}

	m := &model.Memory{
		UserID:     userID,
		Type:       req.Type,
		Title:      req.Title,
		VideoTitle: req.VideoTitle,
		ToolName:   req.ToolName,
		Result:     req.Result,
		Cards:      req.Cards,
		Messages:   req.Messages,
		Metadata:   req.Metadata,
	}
	if req.TranscriptID != "" {
		oid, err := bson.ObjectIDFromHex(req.TranscriptID)
		if err != nil {
			return nil, ErrInvalidTranscript
		}
		m.TranscriptID = &oid
	}
	if req.CreatedAt != nil {
		m.CreatedAt = req.CreatedAt.UTC()
	}
	if err := u.memories.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (u *MemoryUsecase) List(ctx context.Context, userID bson.ObjectID) ([]model.Memory, error) {
	return u.memories.ListByUser(ctx, userID)
}

func (u *MemoryUsecase) Delete(ctx context.Context, userID bson.ObjectID, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrMemoryNotFound
	}
	if err := u.memories.Delete(ctx, userID, oid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMemoryNotFound
		}
		return err
	}
	return nil
}
