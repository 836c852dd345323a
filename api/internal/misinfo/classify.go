package misinfo

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

// ErrUnclassified means the request matched no input form; callers turn it
// into a client error naming what is accepted.
var ErrUnclassified = errors.New("could not detect input type: provide text, an article URL, an image, audio, or video")

// Major video/social platforms. Checked before extension matching because
// platform URLs rarely carry a file extension.
var videoPlatformPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)youtube\.com`),
	regexp.MustCompile(`(?i)youtu\.be`),
	regexp.MustCompile(`(?i)vimeo\.com`),
	regexp.MustCompile(`(?i)dailymotion\.com`),
	regexp.MustCompile(`(?i)twitch\.tv`),
	regexp.MustCompile(`(?i)instagram\.com/(p|reel|tv)/`),
	regexp.MustCompile(`(?i)facebook\.com/.*/videos?/`),
	regexp.MustCompile(`(?i)fb\.watch`),
	regexp.MustCompile(`(?i)twitter\.com/.*/status/\d+`),
	regexp.MustCompile(`(?i)x\.com/.*/status/\d+`),
	regexp.MustCompile(`(?i)tiktok\.com/@[\w.-]+/video/\d+`),
}

var (
	imageExtPattern = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|bmp|webp|svg)$`)
	audioExtPattern = regexp.MustCompile(`(?i)\.(mp3|wav|ogg|aac|flac|m4a)$`)
	videoExtPattern = regexp.MustCompile(`(?i)\.(mp4|webm|ogg|mov|avi|mkv)$`)
)

// isValidURL reports whether s is a syntactically valid absolute HTTP(S) URL.
func isValidURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " \t\n") {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// IsVideoPlatformURL reports whether the URL looks like a page on a known
// video-sharing platform. Also used by the media analyzer to pick the
// transcript fast path.
func IsVideoPlatformURL(s string) bool {
	if !isValidURL(s) {
		return false
	}
	for _, p := range videoPlatformPatterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

func classifyURL(s string) Modality {
	switch {
	case IsVideoPlatformURL(s):
		return ModalityVideo
	case imageExtPattern.MatchString(s):
		return ModalityImage
	case audioExtPattern.MatchString(s):
		return ModalityAudio
	case videoExtPattern.MatchString(s):
		return ModalityVideo
	default:
		return ModalityArticle
	}
}

// Classify decides the single modality for a request. Decision order:
// URL field, then URL-shaped content, then uploaded MIME prefix, then raw
// text. First match wins.
func Classify(req Request) (Modality, error) {
	if req.URL != "" && isValidURL(req.URL) {
		return classifyURL(strings.TrimSpace(req.URL)), nil
	}

	if req.Content != "" && isValidURL(req.Content) {
		return classifyURL(strings.TrimSpace(req.Content)), nil
	}

	if req.File != nil {
		switch {
		case strings.HasPrefix(req.File.MimeType, "video/"):
			return ModalityVideo, nil
		case strings.HasPrefix(req.File.MimeType, "audio/"):
			return ModalityAudio, nil
		case strings.HasPrefix(req.File.MimeType, "image/"):
			return ModalityImage, nil
		}
	}

	if req.Content != "" {
		return ModalityText, nil
	}

	return "", ErrUnclassified
}
