package parse

import (
	"io"
	"strings"

	"mangadex/internal/domain"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
)

const (
	cdnURL = "https://cdndex.com"

	// PopularSelector matches one entry of the popular and search listings.
	PopularSelector = "div.manga-entry"
	// TitleSelector matches the title anchor inside a listing entry.
	TitleSelector = "a.manga_title"
	// LatestSelector matches the title anchors of the latest updates table.
	LatestSelector = "tr a.manga_title"

	nextPageSelector = `.pagination li:not(.disabled) span[title*="last page"]`
)

// Listing parses a catalog page. Every node matched by itemSelector yields a
// partial manga from its title anchor, found with anchorSelector or the node
// itself when anchorSelector is empty. Entries without a numeric id are skipped.
func Listing(r io.Reader, itemSelector, anchorSelector string, prefs domain.Preferences) (domain.MangasPage, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return domain.MangasPage{}, errors.Wrap(domain.ErrMalformedResponse, err.Error())
	}

	var page domain.MangasPage

	doc.Find(itemSelector).Each(func(_ int, s *goquery.Selection) {
		anchor := s
		if anchorSelector != "" {
			anchor = s.Find(anchorSelector).First()
		}

		href, ok := anchor.Attr("href")
		if !ok {
			return
		}

		id, err := domain.ExtractID(href)
		if err != nil {
			return
		}

		page.Mangas = append(page.Mangas, domain.Manga{
			ID:           id,
			URL:          domain.MangaURL(id),
			Title:        strings.TrimSpace(anchor.Text()),
			ThumbnailURL: ThumbnailURL(id, prefs.Thumbnail),
		})
	})

	page.HasNextPage = doc.Find(nextPageSelector).Length() > 0

	return page, nil
}

// ThumbnailURL derives the cover thumbnail of a manga from its id.
func ThumbnailURL(id string, quality domain.ThumbnailQuality) string {
	ext := ".jpg"
	if quality == domain.ThumbnailLow {
		ext = ".thumb" + ext
	}
	return cdnURL + "/images/manga/" + id + ext
}
