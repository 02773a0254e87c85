package parse

import (
	"strings"

	"mangadex/internal/domain"
)

// publication status codes of the manga api
const (
	rawOngoing   = 1
	rawCompleted = 2
	rawCancelled = 3
)

const oneshot = "Oneshot"

// deriveStatus does not trust a completed or cancelled status on its own: it
// needs the final chapter in the requested language, or a oneshot chapter.
// Without that evidence the status is unknown.
func deriveStatus(raw int, lastChapter string, chapters chapterMap, langCode string) domain.Status {
	if isEnded(raw) && hasFinalChapter(chapters, lastChapter, langCode) {
		return domain.StatusCompleted
	}

	if raw == rawCompleted && isOneshot(chapters, lastChapter) {
		return domain.StatusCompleted
	}

	if raw == rawOngoing {
		return domain.StatusOngoing
	}

	return domain.StatusUnknown
}

func isEnded(raw int) bool {
	return raw == rawCompleted || raw == rawCancelled
}

func hasFinalChapter(chapters chapterMap, lastChapter, langCode string) bool {
	for _, c := range chapters {
		if c.LangCode == langCode && isFinalChapter(c.chapterJSON, lastChapter) {
			return true
		}
	}
	return false
}

func isFinalChapter(c chapterJSON, lastChapter string) bool {
	return lastChapter != "" && lastChapter == strings.TrimSpace(c.Chapter)
}

// isOneshot looks at the first chapter in document order only.
func isOneshot(chapters chapterMap, lastChapter string) bool {
	if len(chapters) == 0 {
		return false
	}

	title := chapters[0].Title
	return title == oneshot || (title == "" && lastChapter == "0")
}
