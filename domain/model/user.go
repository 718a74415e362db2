package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type User struct {
	ID        bson.ObjectID `json:"_id"                bson:"_id,omitempty"`
	Email     string        `json:"email"              bson:"email"`
	Password  string        `json:"-"                  bson:"password,omitempty"`
	Name      string        `json:"name"               bson:"name"`
	PhotoURL  string        `json:"photoURL"           bson:"photoURL"`
	GoogleID  string        `json:"googleId,omitempty" bson:"googleId,omitempty"`
	CreatedAt time.Time     `json:"createdAt"          bson:"createdAt"`
}

// Session is a server-side login session. The browser only holds a signed reference to ID.
type Session struct {
	ID        string        `bson:"_id"`
	UserID    bson.ObjectID `bson:"userId"`
	CreatedAt time.Time     `bson:"createdAt"`
	ExpiresAt time.Time     `bson:"expiresAt"`
}

func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
