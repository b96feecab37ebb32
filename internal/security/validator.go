package security

import (
	"net/url"
	"regexp"
	"strings"
)

var hexColorPattern = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

// ValidateHexColor checks that color is a 6-digit hex value. Empty is
// allowed; the field is optional everywhere it appears.
func ValidateHexColor(color string) bool {
	if color == "" {
		return true
	}
	return hexColorPattern.MatchString(color)
}

// NormalizeHexColor lowercases the color and ensures a leading '#'
func NormalizeHexColor(color string) string {
	if color == "" {
		return ""
	}
	color = strings.ToLower(color)
	if !strings.HasPrefix(color, "#") {
		color = "#" + color
	}
	return color
}

// ValidateBookmarkURL checks that raw is an absolute http(s) URL with a host
func ValidateBookmarkURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

// NormalizeTagName trims and lowercases a tag name for case-insensitive
// matching. The original casing is what gets stored on first creation.
func NormalizeTagName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ValidateTagName checks tag name shape: non-empty after trimming, at
// most 50 characters, no commas (commas are the client-side separator).
func ValidateTagName(name string) bool {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || len(trimmed) > 50 {
		return false
	}
	return !strings.Contains(trimmed, ",")
}
