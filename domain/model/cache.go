package model

// CachedVideoRecord is the client-side cache entry for one video, keyed by VideoID.
// Timestamp is the write time in epoch milliseconds.
type CachedVideoRecord struct {
	VideoID    string    `json:"videoId"`
	VideoInfo  VideoInfo `json:"videoInfo"`
	Transcript []Segment `json:"transcript"`
	Timestamp  int64     `json:"timestamp"`
	Version    string    `json:"version"`
}

// CachedChannelRecord is the client-side cache entry for one channel listing, keyed by ChannelURL.
type CachedChannelRecord struct {
	ChannelURL  string      `json:"channelUrl"`
	ChannelData ChannelData `json:"channelData"`
	Timestamp   int64       `json:"timestamp"`
	Version     string      `json:"version"`
}

// CacheInfo reports raw record counts, including entries that expired but were not read since.
type CacheInfo struct {
	VideoCount   int `json:"videoCount"`
	ChannelCount int `json:"channelCount"`
}
