package persistence

import (
	"context"
	"strings"
	"time"

	"transcript-app/domain/model"
	"transcript-app/domain/repository"
	"transcript-app/infrastructure/logger"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var withoutPassword = bson.D{{Key: "password", Value: 0}}

type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) repository.IUser {
	return &UserRepository{collection: db.Collection(usersCollection)}
}

// NormalizeEmail lowercases and trims an address the way it is stored.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	user.Email = NormalizeEmail(user.Email)
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{
			"error": err,
			"email": user.Email,
		}).Error("mongo: create user failed")
		return mapError(err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string, withPassword bool) (*model.User, error) {
	opts := options.FindOne()
	if !withPassword {
		opts.SetProjection(withoutPassword)
	}
	var u model.User
	if err := r.collection.FindOne(ctx, bson.M{"email": NormalizeEmail(email)}, opts).Decode(&u); err != nil {
		return nil, r.logLookup(err, "email", email)
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id bson.ObjectID) (*model.User, error) {
	var u model.User
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(withoutPassword)).Decode(&u); err != nil {
		return nil, r.logLookup(err, "id", id.Hex())
	}
	return &u, nil
}

// LinkGoogle attaches a Google account to an existing user. Empty name or photo keep the stored values.
func (r *UserRepository) LinkGoogle(ctx context.Context, id bson.ObjectID, googleID, name, photoURL string) (*model.User, error) {
	set := bson.M{"googleId": googleID}
	if name != "" {
		set["name"] = name
	}
	if photoURL != "" {
		set["photoURL"] = photoURL
	}
	return r.update(ctx, id, set)
}

// UpdateProfile sets the non-empty fields among name and photoURL.
func (r *UserRepository) UpdateProfile(ctx context.Context, id bson.ObjectID, name, photoURL string) (*model.User, error) {
	set := bson.M{}
	if name != "" {
		set["name"] = name
	}
	if photoURL != "" {
		set["photoURL"] = photoURL
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}
	return r.update(ctx, id, set)
}

func (r *UserRepository) update(ctx context.Context, id bson.ObjectID, set bson.M) (*model.User, error) {
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(withoutPassword)
	var u model.User
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&u); err != nil {
		return nil, r.logLookup(err, "id", id.Hex())
	}
	return &u, nil
}

func (r *UserRepository) logLookup(err error, field string, value interface{}) error {
	mapped := mapError(err)
	if mapped != repository.ErrNotFound {
		logger.GetLogger().WithField("error", err).WithField(field, value).Error("mongo: user lookup failed")
	}
	return mapped
}
