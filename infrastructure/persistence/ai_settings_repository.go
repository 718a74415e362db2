package persistence

import (
	"context"
	"time"

	"transcript-app/domain/dto"
	"transcript-app/domain/model"
	"transcript-app/domain/repository"
	"transcript-app/infrastructure/logger"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type AISettingsRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

func NewAISettingsRepository(db *mongo.Database) repository.IAISettings {
	return &AISettingsRepository{collection: db.Collection(aiSettingsCollection), now: time.Now}
}

// GetOrCreate upserts a default document so concurrent first reads cannot create two.
func (r *AISettingsRepository) GetOrCreate(ctx context.Context, userID bson.ObjectID) (*model.AISettings, error) {
	update := bson.M{"$setOnInsert": bson.M{
		"groqUnlocked":   false,
		"geminiUnlocked": false,
		"updatedAt":      r.now().UTC(),
	}}
	return r.findOneAndUpdate(ctx, userID, update)
}

func (r *AISettingsRepository) Upsert(ctx context.Context, userID bson.ObjectID, req dto.AISettingsUpdateRequest) (*model.AISettings, error) {
	set := bson.M{"updatedAt": r.now().UTC()}
	if req.GroqAPIKey != nil {
		set["groqApiKey"] = *req.GroqAPIKey
	}
	if req.GeminiAPIKey != nil {
		set["geminiApiKey"] = *req.GeminiAPIKey
	}
	if req.GroqUnlocked != nil {
		set["groqUnlocked"] = *req.GroqUnlocked
	}
	if req.GeminiUnlocked != nil {
		set["geminiUnlocked"] = *req.GeminiUnlocked
	}
	// userId comes from the filter on insert
	onInsert := bson.M{}
	if req.GroqUnlocked == nil {
		onInsert["groqUnlocked"] = false
	}
	if req.GeminiUnlocked == nil {
		onInsert["geminiUnlocked"] = false
	}
	update := bson.M{"$set": set}
	if len(onInsert) > 0 {
		update["$setOnInsert"] = onInsert
	}
	return r.findOneAndUpdate(ctx, userID, update)
}

func (r *AISettingsRepository) findOneAndUpdate(ctx context.Context, userID bson.ObjectID, update bson.M) (*model.AISettings, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	var s model.AISettings
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"userId": userID}, update, opts).Decode(&s); err != nil {
		logger.GetLogger().WithField("error", err).WithField("userId", userID.Hex()).Error("mongo: ai settings upsert failed")
		return nil, mapError(err)
	}
	return &s, nil
}
