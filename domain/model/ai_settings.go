package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// AISettings holds a user's LLM provider keys and which providers are unlocked.
type AISettings struct {
	ID             bson.ObjectID `json:"_id"                    bson:"_id,omitempty"`
	UserID         bson.ObjectID `json:"userId"                 bson:"userId"`
	GroqAPIKey     string        `json:"groqApiKey,omitempty"   bson:"groqApiKey,omitempty"`
	GeminiAPIKey   string        `json:"geminiApiKey,omitempty" bson:"geminiApiKey,omitempty"`
	GroqUnlocked   bool          `json:"groqUnlocked"           bson:"groqUnlocked"`
	GeminiUnlocked bool          `json:"geminiUnlocked"         bson:"geminiUnlocked"`
	UpdatedAt      time.Time     `json:"updatedAt"              bson:"updatedAt"`
}
