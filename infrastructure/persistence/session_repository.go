package persistence

import (
	"context"
	"time"

	"transcript-app/domain/model"
	"transcript-app/domain/repository"
	"transcript-app/infrastructure/logger"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// SessionRepository stores login sessions. A TTL index on expiresAt lets MongoDB purge them;
// Get also rejects expired sessions that the purge has not reached yet.
type SessionRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

func NewSessionRepository(db *mongo.Database) repository.ISession {
	return &SessionRepository{collection: db.Collection(sessionsCollection), now: time.Now}
}

func (r *SessionRepository) Create(ctx context.Context, session *model.Session) error {
	if _, err := r.collection.InsertOne(ctx, session); err != nil {
		logger.GetLogger().WithField("error", err).Error("mongo: create session failed")
		return mapError(err)
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, id string) (*model.Session, error) {
	var s model.Session
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		mapped := mapError(err)
		if mapped != repository.ErrNotFound {
			logger.GetLogger().WithField("error", err).Error("mongo: get session failed")
		}
		return nil, mapped
	}
	if s.IsExpired(r.now()) {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		logger.GetLogger().WithField("error", err).Error("mongo: delete session failed")
		return err
	}
	return nil
}
