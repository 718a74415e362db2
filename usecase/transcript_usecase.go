package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"transcript-app/domain/dto"
	"transcript-app/domain/model"
	"transcript-app/domain/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type ITranscriptUsecase interface {
	Save(ctx context.Context, userID bson.ObjectID, req dto.SaveTranscriptRequest) (*model.Transcript, error)
	List(ctx context.Context, userID bson.ObjectID) ([]model.Transcript, error)
	Delete(ctx context.Context, userID bson.ObjectID, id string) error
	// DeleteAll removes every transcript of the user and returns the confirmation message.
	DeleteAll(ctx context.Context, userID bson.ObjectID) (string, error)
}

type TranscriptUsecase struct {
	transcripts repository.ITranscript
}

func NewTranscriptUsecase(transcripts repository.ITranscript) ITranscriptUsecase {
	return &TranscriptUsecase{transcripts: transcripts}
}

func (u *TranscriptUsecase) Save(ctx context.Context, userID bson.ObjectID, req dto.SaveTranscriptRequest) (*model.Transcript, error) {
	if strings.TrimSpace(req.VideoID) == "" || strings.TrimSpace(req.Title) == "" {
		return nil, ErrVideoIDRequired
	}
	t := &model.Transcript{
		UserID:        userID,
		VideoID:       req.VideoID,
		Title:         req.Title,
		Author:        req.Author,
		LengthSeconds: req.LengthSeconds,
		ViewCount:     req.ViewCount,
		UploadDate:    req.UploadDate,
		Description:   req.Description,
		Thumbnails:    req.Thumbnails,
		Transcript:    req.Transcript,
	}
	if err := u.transcripts.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (u *TranscriptUsecase) List(ctx context.Context, userID bson.ObjectID) ([]model.Transcript, error) {
	return u.transcripts.ListByUser(ctx, userID)
}

func (u *TranscriptUsecase) Delete(ctx context.Context, userID bson.ObjectID, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrTranscriptNotFound
	}
	if err := u.transcripts.Delete(ctx, userID, oid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTranscriptNotFound
		}
		return err
	}
	return nil
}

func (u *TranscriptUsecase) DeleteAll(ctx context.Context, userID bson.ObjectID) (string, error) {
	n, err := u.transcripts.DeleteAllByUser(ctx, userID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Deleted %d transcripts", n), nil
}
