package model

// Thumbnail is a single rendition of a video or channel thumbnail.
type Thumbnail struct {
	URL    string `json:"url"              bson:"url"`
	Width  int    `json:"width,omitempty"  bson:"width,omitempty"`
	Height int    `json:"height,omitempty" bson:"height,omitempty"`
}

// VideoInfo is the metadata returned for a single YouTube video
type VideoInfo struct {
	VideoID       string      `json:"videoId"`
	Title         string      `json:"title"`
	Author        string      `json:"author"`
	LengthSeconds int64       `json:"lengthSeconds"`
	ViewCount     string      `json:"viewCount"`
	UploadDate    string      `json:"uploadDate"`
	Description   string      `json:"description"`
	Thumbnails    []Thumbnail `json:"thumbnails"`
}

// Segment is one caption line. Offset and Duration are milliseconds.
type Segment struct {
	Text     string `json:"text"     bson:"text"`
	Offset   int64  `json:"offset"   bson:"offset"`
	Duration int64  `json:"duration" bson:"duration"`
}

// ChannelVideo summarizes a video in a channel listing
type ChannelVideo struct {
	VideoID       string      `json:"videoId"`
	Title         string      `json:"title"`
	Author        string      `json:"author"`
	LengthSeconds int64       `json:"lengthSeconds"`
	ViewCount     string      `json:"viewCount"`
	UploadDate    string      `json:"uploadDate"`
	Thumbnails    []Thumbnail `json:"thumbnails"`
	Description   string      `json:"description"`
}

// ChannelData is a channel name plus its most recent uploads, newest first.
type ChannelData struct {
	ChannelName string         `json:"channelName"`
	Videos      []ChannelVideo `json:"videos"`
}
