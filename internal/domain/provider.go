package domain

import (
	"context"
	"strings"

	"mangadex/internal/filter"
)

// Source is the contract a reading application consumes.
type Source interface {
	String() string
	ValidateInput() error
	Filters() filter.List
	PopularManga(ctx context.Context, page int) (MangasPage, error)
	LatestUpdates(ctx context.Context, page int) (MangasPage, error)
	SearchManga(ctx context.Context, page int, query string, filters filter.List) (MangasPage, error)
	MangaDetails(ctx context.Context, manga *Manga) error
	ChapterList(ctx context.Context, manga Manga) ([]Chapter, error)
	PageList(ctx context.Context, chapter Chapter) ([]Page, error)
	ImageURL(ctx context.Context, page Page) (string, error)
}

type Status int

const (
	StatusUnknown Status = iota
	StatusOngoing
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusOngoing:
		return "Ongoing"
	case StatusCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

type Manga struct {
	ID           string
	URL          string
	Title        string
	ThumbnailURL string
	Description  string
	Author       string
	Artist       string
	Status       Status
	Genres       []string
	Initialized  bool
}

// Genre returns the genres as a single comma separated string.
func (m Manga) Genre() string {
	return strings.Join(m.Genres, ", ")
}

type MangasPage struct {
	Mangas      []Manga
	HasNextPage bool
}

type Chapter struct {
	ID         string
	URL        string
	Name       string
	DateUpload int64 // epoch milliseconds
	Scanlator  string
}

type Page struct {
	Index    int
	ImageURL string
}
