package model

import "strings"

// urlMarkers are the literal substrings that identify a supported video or
// playlist URL. Matching is deliberately loose: no scheme or host parsing is
// performed, so a marker embedded anywhere in the string is accepted. This is
// an admission check, not a security control.
var urlMarkers = []string{
	"youtube.com/watch",
	"youtube.com/shorts",
	"youtu.be/",
	"youtube.com/playlist",
}

// SupportedURL reports whether the string looks like a supported video or
// playlist URL.
func SupportedURL(url string) bool {
	for _, marker := range urlMarkers {
		if strings.Contains(url, marker) {
			return true
		}
	}
	return false
}
