package domain

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ExtractID returns the numeric manga id of the /title/ID/slug/ form and the
// legacy /manga/ID/slug/ form, with or without slug, host or trailing slash.
func ExtractID(mangaURL string) (string, error) {
	path := mangaURL
	if u, err := url.Parse(mangaURL); err == nil && u.Path != "" {
		path = u.Path
	}

	segments := strings.Split(strings.Trim(path, "/"), "/")

	for i := 0; i+1 < len(segments); i++ {
		if (segments[i] == "title" || segments[i] == "manga") && isNumeric(segments[i+1]) {
			return segments[i+1], nil
		}
	}

	// bare id/slug paths: the last section, or the one before it
	for i := len(segments) - 1; i >= 0 && i >= len(segments)-2; i-- {
		if isNumeric(segments[i]) {
			return segments[i], nil
		}
	}

	return "", errors.Wrapf(ErrInvalidID, "no id in %q", mangaURL)
}

// MangaURL is the canonical relative url of a manga.
func MangaURL(id string) string {
	return "/title/" + id + "/"
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.ParseUint(s, 10, 64)
	return err == nil
}
