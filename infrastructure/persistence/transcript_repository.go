package persistence

import (
	"context"
	"time"

	"transcript-app/domain/model"
	"transcript-app/domain/repository"
	"transcript-app/infrastructure/logger"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var newestFirst = bson.D{{Key: "createdAt", Value: -1}}

type TranscriptRepository struct {
	collection *mongo.Collection
}

func NewTranscriptRepository(db *mongo.Database) repository.ITranscript {
	return &TranscriptRepository{collection: db.Collection(transcriptsCollection)}
}

func (r *TranscriptRepository) Create(ctx context.Context, transcript *model.Transcript) error {
	if transcript.ID.IsZero() {
		transcript.ID = bson.NewObjectID()
	}
	if transcript.CreatedAt.IsZero() {
		transcript.CreatedAt = time.Now().UTC()
	}
	if transcript.Transcript == nil {
		transcript.Transcript = []model.Segment{}
	}
	if _, err := r.collection.InsertOne(ctx, transcript); err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{
			"error":   err,
			"videoId": transcript.VideoID,
		}).Error("mongo: save transcript failed")
		return mapError(err)
	}
	return nil
}

func (r *TranscriptRepository) ListByUser(ctx context.Context, userID bson.ObjectID) ([]model.Transcript, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, options.Find().SetSort(newestFirst))
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("mongo: list transcripts failed")
		return nil, err
	}
	return decodeAll[model.Transcript](ctx, cursor)
}

func (r *TranscriptRepository) Delete(ctx context.Context, userID, id bson.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("mongo: delete transcript failed")
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TranscriptRepository) DeleteAllByUser(ctx context.Context, userID bson.ObjectID) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID})
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("mongo: delete all transcripts failed")
		return 0, err
	}
	return res.DeletedCount, nil
}
