package usecase

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"transcript-app/domain/model"

	"github.com/goccy/go-json"
)

// DefaultCueDuration is used for segments that carry no duration.
const DefaultCueDuration = 2000

const (
	FormatSRT  = "srt"
	FormatTXT  = "txt"
	FormatJSON = "json"
	FormatMD   = "md"
)

var unsafeFilenameChars = regexp.MustCompile(`(?i)[^a-z0-9]`)

// UnsupportedFormatError names a format an export helper does not produce.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported export format %q", e.Format)
}

// SanitizeFilename replaces every character outside [a-zA-Z0-9] with an underscore.
func SanitizeFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}

// ExportTranscript renders segments as srt, txt or json and returns the content with its file name.
func ExportTranscript(format string, info model.VideoInfo, segments []model.Segment, now time.Time) ([]byte, string, error) {
	base := "transcript"
	if info.Title != "" {
		base = SanitizeFilename(info.Title)
	}
	switch format {
	case FormatSRT:
		return []byte(TranscriptSRT(segments)), base + ".srt", nil
	case FormatTXT:
		return []byte(TranscriptTXT(segments)), base + ".txt", nil
	case FormatJSON:
		out, err := TranscriptJSON(info, segments, now)
		return out, base + ".json", err
	default:
		return nil, "", &UnsupportedFormatError{Format: format}
	}
}

// TranscriptSRT numbers cues from 1. A cue without duration lasts DefaultCueDuration.
func TranscriptSRT(segments []model.Segment) string {
	var b strings.Builder
	for i, s := range segments {
		duration := s.Duration
		if duration == 0 {
			duration = DefaultCueDuration
		}
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n", i+1, formatSRTTime(s.Offset), formatSRTTime(s.Offset+duration), s.Text)
	}
	return b.String()
}

func formatSRTTime(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	total := ms / 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", total/3600, (total%3600)/60, total%60, ms%1000)
}

func TranscriptTXT(segments []model.Segment) string {
	lines := make([]string, len(segments))
	for i, s := range segments {
		lines[i] = s.Text
	}
	return strings.Join(lines, "\n")
}

type transcriptExport struct {
	VideoInfo  model.VideoInfo `json:"videoInfo"`
	Transcript []model.Segment `json:"transcript"`
	ExportedAt string          `json:"exportedAt"`
}

func TranscriptJSON(info model.VideoInfo, segments []model.Segment, now time.Time) ([]byte, error) {
	if segments == nil {
		segments = []model.Segment{}
	}
	return json.MarshalIndent(transcriptExport{
		VideoInfo:  info,
		Transcript: segments,
		ExportedAt: now.UTC().Format("2006-01-02T15:04:05.000Z"),
	}, "", "  ")
}

// NormalizeMemory lifts cards stored as JSON in Result, either a bare array or an object
// with a cards array, into Cards. Other memories are returned unchanged.
func NormalizeMemory(m model.Memory) model.Memory {
	result := strings.TrimSpace(m.Result)
	if result == "" || len(m.Cards) > 0 {
		return m
	}
	var cards []model.Card
	if strings.HasPrefix(result, "[") {
		if err := json.Unmarshal([]byte(result), &cards); err != nil {
			return m
		}
	} else if strings.HasPrefix(result, "{") {
		var wrapped struct {
			Cards []model.Card `json:"cards"`
			Type  string       `json:"type"`
		}
		if err := json.Unmarshal([]byte(result), &wrapped); err != nil || wrapped.Cards == nil {
			return m
		}
		cards = wrapped.Cards
		if m.Type == "" {
			m.Type = wrapped.Type
		}
	} else {
		return m
	}
	m.Cards = cards
	return m
}

func isCardMemory(m model.Memory) bool {
	return m.Type == model.MemoryTypeFlashcards || m.Type == model.MemoryTypeQuestions
}

func cardText(c model.Card) (string, string) {
	q, a := c.Question, c.Answer
	if q == "" {
		q = c.Front
	}
	if a == "" {
		a = c.Back
	}
	return q, a
}

func speaker(role string) string {
	if role == "user" {
		return "You"
	}
	return "AI"
}

// ExportMemory renders a memory as txt, md or json and returns the content with its file name.
func ExportMemory(format string, m model.Memory) ([]byte, string, error) {
	m = NormalizeMemory(m)
	base := SanitizeFilename(m.Title) + "_memory"
	switch format {
	case FormatTXT:
		out, err := MemoryTXT(m)
		return []byte(out), base + ".txt", err
	case FormatMD:
		out, err := MemoryMD(m)
		return []byte(out), base + ".md", err
	case FormatJSON:
		out, err := json.MarshalIndent(m, "", "  ")
		return out, base + ".json", err
	default:
		return nil, "", &UnsupportedFormatError{Format: format}
	}
}

func MemoryTXT(m model.Memory) (string, error) {
	switch {
	case isCardMemory(m):
		var b strings.Builder
		for i, c := range m.Cards {
			q, a := cardText(c)
			fmt.Fprintf(&b, "%d. Q: %s\n   A: %s\n\n", i+1, q, a)
		}
		return b.String(), nil
	case m.Type == model.MemoryTypeChat && len(m.Messages) > 0:
		parts := make([]string, len(m.Messages))
		for i, msg := range m.Messages {
			parts[i] = fmt.Sprintf("%s: %s\n\n", speaker(msg.Role), msg.Content)
		}
		return strings.Join(parts, "---\n\n"), nil
	default:
		return memoryBody(m)
	}
}

func MemoryMD(m model.Memory) (string, error) {
	header := "# " + m.Title + "\n\n"
	switch {
	case isCardMemory(m):
		var b strings.Builder
		b.WriteString(header)
		for i, c := range m.Cards {
			q, a := cardText(c)
			fmt.Fprintf(&b, "## %d. %s\n\n%s\n\n", i+1, q, a)
		}
		return b.String(), nil
	case m.Type == model.MemoryTypeChat && len(m.Messages) > 0:
		parts := make([]string, len(m.Messages))
		for i, msg := range m.Messages {
			parts[i] = fmt.Sprintf("**%s:** %s\n\n", speaker(msg.Role), msg.Content)
		}
		return header + strings.Join(parts, "---\n\n"), nil
	default:
		body, err := memoryBody(m)
		return header + body, err
	}
}

// memoryBody is the free-text result, or the whole memory as JSON when there is none.
func memoryBody(m model.Memory) (string, error) {
	if m.Result != "" {
		return m.Result, nil
	}
	out, err := json.MarshalIndent(m, "", "  ")
	return string(out), err
}
