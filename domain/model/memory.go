package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	MemoryTypeChat       = "chat"
	MemoryTypeQuestions  = "questions"
	MemoryTypeFlashcards = "flashcards"
	MemoryTypeSummary    = "summary"
	MemoryTypeKeypoints  = "keypoints"
	MemoryTypeRewrite    = "rewrite"
	MemoryTypeTranslate  = "translate"
)

var memoryTypes = map[string]struct{}{
	MemoryTypeChat:       {},
	MemoryTypeQuestions:  {},
	MemoryTypeFlashcards: {},
	MemoryTypeSummary:    {},
	MemoryTypeKeypoints:  {},
	MemoryTypeRewrite:    {},
	MemoryTypeTranslate:  {},
}

// IsValidMemoryType reports whether t is one of the AI tool outputs a memory can hold.
func IsValidMemoryType(t string) bool {
	_, ok := memoryTypes[t]
	return ok
}

// Card is a flashcard or a question/answer pair
type Card struct {
	Question string `json:"question,omitempty" bson:"question,omitempty"`
	Answer   string `json:"answer,omitempty"   bson:"answer,omitempty"`
	Front    string `json:"front,omitempty"    bson:"front,omitempty"`
	Back     string `json:"back,omitempty"     bson:"back,omitempty"`
}

// Message is one turn of a saved chat
type Message struct {
	Role      string    `json:"role"      bson:"role"`
	Content   string    `json:"content"   bson:"content"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

type MemoryMetadata struct {
	Provider string                 `json:"provider,omitempty" bson:"provider,omitempty"`
	Model    string                 `json:"model,omitempty"    bson:"model,omitempty"`
	Options  map[string]interface{} `json:"options,omitempty"  bson:"options,omitempty"`
}

// Memory is a saved output of an AI tool run against a transcript
type Memory struct {
	ID           bson.ObjectID   `json:"_id"                    bson:"_id,omitempty"`
	UserID       bson.ObjectID   `json:"userId"                 bson:"userId"`
	TranscriptID *bson.ObjectID  `json:"transcriptId,omitempty" bson:"transcriptId,omitempty"`
	Type         string          `json:"type"                   bson:"type"`
	Title        string          `json:"title"                  bson:"title"`
	VideoTitle   string          `json:"videoTitle,omitempty"   bson:"videoTitle,omitempty"`
	ToolName     string          `json:"toolName,omitempty"     bson:"toolName,omitempty"`
	Result       string          `json:"result,omitempty"       bson:"result,omitempty"`
	Cards        []Card          `json:"cards,omitempty"        bson:"cards,omitempty"`
	Messages     []Message       `json:"messages,omitempty"     bson:"messages,omitempty"`
	Metadata     *MemoryMetadata `json:"metadata,omitempty"     bson:"metadata,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"              bson:"createdAt"`
}
