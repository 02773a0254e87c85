package parse

import (
	"io"
	"strings"
	"time"

	"mangadex/internal/domain"
	"mangadex/internal/request"
	"mangadex/internal/sanitize"
)

const endMarker = "[END]"

// Chapters parses the chapters of the manga api payload in document order,
// skipping other languages and releases scheduled after now.
func Chapters(r io.Reader, locale domain.Locale, now time.Time) ([]domain.Chapter, error) {
	resp, err := decodeManga(r)
	if err != nil {
		return nil, err
	}

	if resp.Manga.Status == nil {
		return nil, missing("manga.status")
	}
	if resp.Manga.LastChapter == nil {
		return nil, missing("manga.last_chapter")
	}

	status := *resp.Manga.Status
	lastChapter := strings.TrimSpace(*resp.Manga.LastChapter)
	nowMs := now.UnixMilli()

	chapters := make([]domain.Chapter, 0, len(resp.Chapter))
	for _, c := range resp.Chapter {
		if c.LangCode != locale.Code {
			continue
		}

		if c.Timestamp == nil {
			return nil, missing("chapter." + c.ID + ".timestamp")
		}

		if *c.Timestamp*1000 > nowMs {
			continue
		}

		chapters = append(chapters, domain.Chapter{
			ID:         c.ID,
			URL:        request.ChapterURL(c.ID),
			Name:       chapterName(c.chapterJSON, lastChapter, status),
			DateUpload: *c.Timestamp * 1000,
			Scanlator:  scanlator(c.chapterJSON),
		})
	}

	return chapters, nil
}

// chapterName builds "Vol.1 Ch.2 - Title", "Oneshot" when all parts are blank,
// with an end marker on the final chapter of an ended work.
func chapterName(c chapterJSON, lastChapter string, status int) string {
	var parts []string

	if strings.TrimSpace(c.Volume) != "" {
		parts = append(parts, "Vol."+c.Volume)
	}
	if strings.TrimSpace(c.Chapter) != "" {
		parts = append(parts, "Ch."+c.Chapter)
	}
	if strings.TrimSpace(c.Title) != "" {
		if len(parts) > 0 {
			parts = append(parts, "-")
		}
		parts = append(parts, c.Title)
	}

	if len(parts) == 0 {
		parts = append(parts, oneshot)
	}

	if isEnded(status) && isFinalChapter(c, lastChapter) {
		parts = append(parts, endMarker)
	}

	return sanitize.Text(strings.Join(parts, " "))
}

func scanlator(c chapterJSON) string {
	var groups []string
	for _, g := range []*string{c.GroupName, c.GroupName2, c.GroupName3} {
		if g != nil && strings.TrimSpace(*g) != "" {
			groups = append(groups, *g)
		}
	}
	return sanitize.Text(strings.Join(groups, " & "))
}
