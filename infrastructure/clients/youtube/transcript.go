package youtube

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"transcript-app/domain/model"
	"transcript-app/domain/repository"

	"github.com/goccy/go-json"
)

const (
	playerURL        = "https://www.youtube.com/youtubei/v1/player"
	androidVersion   = "20.10.38"
	androidUserAgent = "com.google.android.youtube/" + androidVersion + " (Linux; U; Android 11) gzip"

	maxPlayerBody    = 3 << 20
	maxTimedTextBody = 2 << 20
)

var preferredLanguages = []string{"en", "en-US", "en-GB"}

type playerRequest struct {
	VideoID        string        `json:"videoId"`
	Context        playerContext `json:"context"`
	RacyCheckOk    bool          `json:"racyCheckOk"`
	ContentCheckOk bool          `json:"contentCheckOk"`
}

type playerContext struct {
	Client playerClient `json:"client"`
}

type playerClient struct {
	ClientName        string `json:"clientName"`
	ClientVersion     string `json:"clientVersion"`
	AndroidSdkVersion int    `json:"androidSdkVersion,omitempty"`
	Hl                string `json:"hl,omitempty"`
	Gl                string `json:"gl,omitempty"`
}

type playerResponse struct {
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	VideoDetails *playerVideoDetails `json:"videoDetails"`
	Captions     *struct {
		Renderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

type playerVideoDetails struct {
	VideoID          string `json:"videoId"`
	Title            string `json:"title"`
	Author           string `json:"author"`
	LengthSeconds    string `json:"lengthSeconds"`
	ViewCount        string `json:"viewCount"`
	ShortDescription string `json:"shortDescription"`
	Thumbnail        struct {
		Thumbnails []model.Thumbnail `json:"thumbnails"`
	} `json:"thumbnail"`
}

func (d *playerVideoDetails) toVideoInfo() model.VideoInfo {
	length, _ := strconv.ParseInt(d.LengthSeconds, 10, 64)
	return model.VideoInfo{
		VideoID:       d.VideoID,
		Title:         d.Title,
		Author:        d.Author,
		LengthSeconds: length,
		ViewCount:     d.ViewCount,
		Description:   d.ShortDescription,
		Thumbnails:    d.Thumbnail.Thumbnails,
	}
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	// Kind is "asr" for auto-generated tracks.
	Kind string `json:"kind"`
}

// GetTranscript returns the caption segments of the best available track.
func (c *Client) GetTranscript(ctx context.Context, videoID string) ([]model.Segment, error) {
	player, err := c.player(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if player.Captions == nil || len(player.Captions.Renderer.CaptionTracks) == 0 {
		return nil, fmt.Errorf("video %s: %w", videoID, repository.ErrNoTranscript)
	}
	track, ok := pickTrack(player.Captions.Renderer.CaptionTracks, preferredLanguages)
	if !ok {
		return nil, fmt.Errorf("video %s: only browser-bound caption tracks: %w", videoID, repository.ErrNoTranscript)
	}

	body, err := c.fetch(ctx, http.MethodGet, track.BaseURL, nil, maxTimedTextBody)
	if err != nil {
		return nil, fmt.Errorf("fetch captions: %w", err)
	}
	segments, err := ParseTimedText(body)
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("video %s: empty caption track: %w", videoID, repository.ErrNoTranscript)
	}
	return segments, nil
}

func (c *Client) player(ctx context.Context, videoID string) (*playerResponse, error) {
	payload, err := json.Marshal(playerRequest{
		VideoID: videoID,
		Context: playerContext{Client: playerClient{
			ClientName:        "ANDROID",
			ClientVersion:     androidVersion,
			AndroidSdkVersion: 30,
			Hl:                "en",
			Gl:                "US",
		}},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	})
	if err != nil {
		return nil, err
	}
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	headers.Set("User-Agent", androidUserAgent)
	headers.Set("X-Youtube-Client-Name", "3")
	headers.Set("X-Youtube-Client-Version", androidVersion)

	body, err := c.fetch(ctx, http.MethodPost, c.innertubeURL+"?prettyPrint=false", bytes.NewReader(payload), maxPlayerBody, headers)
	if err != nil {
		return nil, fmt.Errorf("player request: %w", err)
	}
	var resp playerResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode player response: %w", err)
	}
	if resp.PlayabilityStatus != nil && resp.PlayabilityStatus.Status == "ERROR" {
		return nil, fmt.Errorf("video %s: %s: %w", videoID, resp.PlayabilityStatus.Reason, repository.ErrNotFound)
	}
	return &resp, nil
}

func (c *Client) fetch(ctx context.Context, method, url string, body io.Reader, limit int64, headers ...http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	for _, h := range headers {
		for k, v := range h {
			req.Header[k] = v
		}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, snippet)
	}
	return io.ReadAll(io.LimitReader(resp.Body, limit))
}

// pickTrack prefers a manual track in a preferred language, then an auto-generated one,
// then any English track, then the first usable one. Tracks needing a PoToken are skipped.
func pickTrack(tracks []captionTrack, langs []string) (captionTrack, bool) {
	usable := make([]captionTrack, 0, len(tracks))
	for _, t := range tracks {
		if t.BaseURL != "" && !strings.Contains(t.BaseURL, "&exp=xpe") {
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 {
		return captionTrack{}, false
	}
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return t, true
			}
		}
	}
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang {
				return t, true
			}
		}
	}
	for _, t := range usable {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t, true
		}
	}
	return usable[0], true
}

// timedText accepts both the classic <transcript><text start dur> layout (seconds)
// and the srv3 <timedtext><body><p t d> layout (milliseconds).
type timedText struct {
	Texts []struct {
		Start string `xml:"start,attr"`
		Dur   string `xml:"dur,attr"`
		Body  string `xml:",chardata"`
	} `xml:"text"`
	Paragraphs []struct {
		T     string `xml:"t,attr"`
		D     string `xml:"d,attr"`
		Body  string `xml:",chardata"`
		Spans []struct {
			Body string `xml:",chardata"`
		} `xml:"s"`
	} `xml:"body>p"`
}

// ParseTimedText converts a YouTube timedtext document into segments with millisecond offsets.
// Empty lines are dropped.
func ParseTimedText(data []byte) ([]model.Segment, error) {
	var doc timedText
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse timedtext: %w", err)
	}

	segments := make([]model.Segment, 0, len(doc.Texts)+len(doc.Paragraphs))
	for _, t := range doc.Texts {
		text := cleanCaption(t.Body)
		if text == "" {
			continue
		}
		segments = append(segments, model.Segment{
			Text:     text,
			Offset:   secondsToMillis(t.Start),
			Duration: secondsToMillis(t.Dur),
		})
	}
	for _, p := range doc.Paragraphs {
		raw := p.Body
		for _, s := range p.Spans {
			raw += s.Body
		}
		text := cleanCaption(raw)
		if text == "" {
			continue
		}
		offset, _ := strconv.ParseInt(p.T, 10, 64)
		duration, _ := strconv.ParseInt(p.D, 10, 64)
		segments = append(segments, model.Segment{Text: text, Offset: offset, Duration: duration})
	}
	return segments, nil
}

func secondsToMillis(s string) int64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int64(math.Round(f * 1000))
}

// cleanCaption undoes the second level of entity escaping YouTube applies and collapses whitespace.
func cleanCaption(s string) string {
	return strings.Join(strings.Fields(html.UnescapeString(s)), " ")
}
