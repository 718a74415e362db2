package usecase

import (
	"regexp"
	"strings"

	"transcript-app/domain/repository"
)

var (
	regularVideoURL = regexp.MustCompile(`(?:youtube\.com/(?:[^/]+/.+/|(?:v|e(?:mbed)?)/|.*[?&]v=)|youtu\.be/)([^"&?/\s]{11})`)
	shortsVideoURL  = regexp.MustCompile(`youtube\.com/shorts/([^"&?/\s]{11})`)
)

// ExtractVideoID returns the 11-character video id of a watch, embed, youtu.be or Shorts URL.
func ExtractVideoID(url string) (string, bool) {
	if m := regularVideoURL.FindStringSubmatch(url); m != nil {
		return m[1], true
	}
	if m := shortsVideoURL.FindStringSubmatch(url); m != nil {
		return m[1], true
	}
	return "", false
}

// IsShortURL reports whether url points at the Shorts player.
func IsShortURL(url string) bool {
	return strings.Contains(url, "/shorts/")
}

// ParseChannelRef accepts https://www.youtube.com/@handle[/...] and https://www.youtube.com/channel/<id>[/...].
func ParseChannelRef(channelURL string) (repository.ChannelRef, bool) {
	if _, rest, ok := strings.Cut(channelURL, "/@"); ok {
		if handle := firstPathSegment(rest); handle != "" {
			return repository.ChannelRef{Handle: "@" + handle}, true
		}
		return repository.ChannelRef{}, false
	}
	if _, rest, ok := strings.Cut(channelURL, "/channel/"); ok {
		if id := firstPathSegment(rest); id != "" {
			return repository.ChannelRef{ID: id}, true
		}
	}
	return repository.ChannelRef{}, false
}

func firstPathSegment(s string) string {
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	return s
}
