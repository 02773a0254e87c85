package parse

import (
	"bytes"
	"encoding/json"
	"io"

	"mangadex/internal/domain"

	"github.com/pkg/errors"
)

type mangaResponse struct {
	Manga   *mangaJSON `json:"manga"`
	Chapter chapterMap `json:"chapter"`
}

type mangaJSON struct {
	Title       *string       `json:"title"`
	CoverURL    *string       `json:"cover_url"`
	Description *string       `json:"description"`
	Author      *string       `json:"author"`
	Artist      *string       `json:"artist"`
	Status      *int          `json:"status"`
	Hentai      *int          `json:"hentai"`
	Genres      []json.Number `json:"genres"`
	LastChapter *string       `json:"last_chapter"`
}

type chapterJSON struct {
	Volume     string  `json:"volume"`
	Chapter    string  `json:"chapter"`
	Title      string  `json:"title"`
	Timestamp  *int64  `json:"timestamp"`
	LangCode   string  `json:"lang_code"`
	GroupName  *string `json:"group_name"`
	GroupName2 *string `json:"group_name_2"`
	GroupName3 *string `json:"group_name_3"`
}

type chapterEntry struct {
	ID string
	chapterJSON
}

// chapterMap keeps the chapter object's entries in document order.
type chapterMap []chapterEntry

func (m *chapterMap) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)

	// an empty chapter list is sometimes sent as []
	if bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("[]")) {
		*m = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.Errorf("chapter: expected object, got %v", tok)
	}

	var entries chapterMap
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}

		key, ok := tok.(string)
		if !ok {
			return errors.Errorf("chapter: expected key, got %v", tok)
		}

		var c chapterJSON
		if err := dec.Decode(&c); err != nil {
			return errors.Wrapf(err, "chapter %s", key)
		}

		entries = append(entries, chapterEntry{ID: key, chapterJSON: c})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*m = entries
	return nil
}

func decodeManga(r io.Reader) (mangaResponse, error) {
	var resp mangaResponse
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return mangaResponse{}, errors.Wrap(domain.ErrMalformedResponse, err.Error())
	}

	if resp.Manga == nil {
		return mangaResponse{}, errors.Wrap(domain.ErrMalformedResponse, "missing manga object")
	}

	return resp, nil
}

func missing(field string) error {
	return errors.Wrapf(domain.ErrMalformedResponse, "missing field %q", field)
}

// validate checks the manga fields every parser relies on.
func (m *mangaJSON) validate() error {
	switch {
	case m.Title == nil:
		return missing("manga.title")
	case m.CoverURL == nil:
		return missing("manga.cover_url")
	case m.Description == nil:
		return missing("manga.description")
	case m.Author == nil:
		return missing("manga.author")
	case m.Artist == nil:
		return missing("manga.artist")
	case m.Status == nil:
		return missing("manga.status")
	case m.Hentai == nil:
		return missing("manga.hentai")
	case m.Genres == nil:
		return missing("manga.genres")
	case m.LastChapter == nil:
		return missing("manga.last_chapter")
	}
	return nil
}
