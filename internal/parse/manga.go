package parse

import (
	"io"
	"strings"

	"mangadex/internal/domain"
	"mangadex/internal/filter"
	"mangadex/internal/sanitize"
)

// MangaDetails parses the manga api payload into a full manga. The id and url
// are left to the caller.
func MangaDetails(r io.Reader, locale domain.Locale) (domain.Manga, error) {
	resp, err := decodeManga(r)
	if err != nil {
		return domain.Manga{}, err
	}

	m := resp.Manga
	if err := m.validate(); err != nil {
		return domain.Manga{}, err
	}

	lastChapter := strings.TrimSpace(*m.LastChapter)

	var genres []string
	if *m.Hentai == 1 {
		genres = append(genres, "Hentai")
	}
	for _, id := range m.Genres {
		if name, ok := filter.GenreName(id.String()); ok {
			genres = append(genres, name)
		}
	}

	return domain.Manga{
		Title:        sanitize.Text(*m.Title),
		ThumbnailURL: cdnURL + *m.CoverURL,
		Description:  sanitize.Text(*m.Description),
		Author:       sanitize.Text(*m.Author),
		Artist:       sanitize.Text(*m.Artist),
		Status:       deriveStatus(*m.Status, lastChapter, resp.Chapter, locale.Code),
		Genres:       genres,
		Initialized:  true,
	}, nil
}
