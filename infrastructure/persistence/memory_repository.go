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

type MemoryRepository struct {
	collection *mongo.Collection
}

func NewMemoryRepository(db *mongo.Database) repository.IMemory {
	return &MemoryRepository{collection: db.Collection(memoriesCollection)}
}

func (r *MemoryRepository) Create(ctx context.Context, memory *model.Memory) error {
	if memory.ID.IsZero() {
		memory.ID = bson.NewObjectID()
	}
	if memory.CreatedAt.IsZero() {
		memory.CreatedAt = time.Now().UTC()
	}
	if _, err := r.collection.InsertOne(ctx, memory); err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{
			"error": err,
			"type":  memory.Type,
		}).Error("mongo: save memory failed")
		return mapError(err)
	}
	logger.GetLogger().WithFields(map[string]interface{}{
		"id":       memory.ID.Hex(),
		"type":     memory.Type,
		"messages": len(memory.Messages),
		"cards":    len(memory.Cards),
	}).Debug("memory saved")
	return nil
}

func (r *MemoryRepository) ListByUser(ctx context.Context, userID bson.ObjectID) ([]model.Memory, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, options.Find().SetSort(newestFirst))
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("mongo: list memories failed")
		return nil, err
	}
	return decodeAll[model.Memory](ctx, cursor)
}

func (r *MemoryRepository) Delete(ctx context.Context, userID, id bson.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("mongo: delete memory failed")
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
