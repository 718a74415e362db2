package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Transcript is a transcript saved to a user's library
type Transcript struct {
	ID            bson.ObjectID `json:"_id"           bson:"_id,omitempty"`
	UserID        bson.ObjectID `json:"userId"        bson:"userId"`
	VideoID       string        `json:"videoId"       bson:"videoId"`
	Title         string        `json:"title"         bson:"title"`
	Author        string        `json:"author"        bson:"author"`
	LengthSeconds int64         `json:"lengthSeconds" bson:"lengthSeconds"`
	ViewCount     string        `json:"viewCount"     bson:"viewCount"`
	UploadDate    string        `json:"uploadDate"    bson:"uploadDate"`
	Description   string        `json:"description"   bson:"description"`
	Thumbnails    []Thumbnail   `json:"thumbnails"    bson:"thumbnails"`
	Transcript    []Segment     `json:"transcript"    bson:"transcript"`
	CreatedAt     time.Time     `json:"createdAt"     bson:"createdAt"`
}
