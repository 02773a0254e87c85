package cmd

import (
	"bytes"
	"testing"

	"mangadex/internal/domain"
	"mangadex/internal/filter"
	"mangadex/internal/request"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetSearchFlags() {
	includeTags = nil
	excludeTags = nil
	author = ""
	artist = ""
	sortBy = "Rating"
	ascending = false
	r18 = "default"
	origLanguage = "All"
	inclusionMode = "all"
	exclusionMode = "any"
}

func TestSearchFiltersDefaults(t *testing.T) {
	resetSearchFlags()

	filters, err := searchFilters(filter.Default())
	require.NoError(t, err)

	b, err := request.New("https://mangadex.org", "")
	require.NoError(t, err)

	d, err := b.Search(1, "", filters, domain.Preferences{})
	require.NoError(t, err)

	assert.Contains(t, d.URL, "s=7")
	assert.Contains(t, d.URL, "tag_mode_inc=all")
	assert.Contains(t, d.URL, "tag_mode_exc=any")
	assert.NotContains(t, d.URL, "tags_inc")
	assert.NotContains(t, d.URL, "lang_id")
}

func TestSearchFiltersFromFlags(t *testing.T) {
	resetSearchFlags()
	defer resetSearchFlags()

	includeTags = []string{"action", " Romance"}
	excludeTags = []string{"Gore"}
	author = "Oda"
	sortBy = "views"
	ascending = true
	r18 = "only"
	origLanguage = "japanese"
	inclusionMode = "any"

	filters, err := searchFilters(filter.Default())
	require.NoError(t, err)

	b, err := request.New("https://mangadex.org", "")
	require.NoError(t, err)

	d, err := b.Search(2, "one piece", filters, domain.Preferences{})
	require.NoError(t, err)

	assert.Contains(t, d.URL, "author=Oda")
	assert.Contains(t, d.URL, "s=8")
	assert.Contains(t, d.URL, "lang_id=2")
	assert.Contains(t, d.URL, "tag_mode_inc=any")
	assert.Contains(t, d.URL, "&tags_inc=2,23")
	assert.Contains(t, d.URL, "&tags_exc=")
	assert.Equal(t, "mangadex_h_toggle=2; mangadex_filter_langs=0", d.CookieHeader())
}

func TestSearchFiltersInvalid(t *testing.T) {
	for name, set := range map[string]func(){
		"tag":            func() { includeTags = []string{"no such tag"} },
		"sort":           func() { sortBy = "random" },
		"r18":            func() { r18 = "maybe" },
		"language":       func() { origLanguage = "Klingon" },
		"inclusion mode": func() { inclusionMode = "some" },
	} {
		t.Run(name, func(t *testing.T) {
			resetSearchFlags()
			defer resetSearchFlags()

			set()
			_, err := searchFilters(filter.Default())
			assert.Error(t, err)
		})
	}
}

func TestMangaFromArg(t *testing.T) {
	assert.Equal(t, domain.Manga{ID: "123", URL: "/title/123/"}, mangaFromArg("123"))
	assert.Equal(t, domain.Manga{URL: "https://mangadex.org/title/5/one-piece"}, mangaFromArg("https://mangadex.org/title/5/one-piece"))
}

func TestFindChapter(t *testing.T) {
	chapters := []domain.Chapter{{ID: "1"}, {ID: "2", Scanlator: "MangaPlus"}}

	c, err := findChapter(chapters, "2")
	require.NoError(t, err)
	assert.Equal(t, "MangaPlus", c.Scanlator)

	_, err = findChapter(chapters, "3")
	assert.Error(t, err)
}

func TestPrinterOutput(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf, true)

	p.mangaPage("Popular", 1, domain.MangasPage{
		Mangas:      []domain.Manga{{ID: "123", Title: "One Piece", URL: "/title/123/"}},
		HasNextPage: true,
	})

	out := buf.String()
	assert.Contains(t, out, "Popular (page 1)")
	assert.Contains(t, out, "One Piece")
	assert.Contains(t, out, "/title/123/")
	assert.Contains(t, out, "more results on page 2")

	buf.Reset()
	p.filters(filter.Default())
	assert.Contains(t, buf.String(), "Tag inclusion mode")
	assert.Contains(t, buf.String(), "Rating (descending)")

	buf.Reset()
	p.failure(errors.Wrap(domain.ErrAccessDenied, "error 451"))
	assert.Contains(t, buf.String(), "Access denied")
}

func TestSettingArgs(t *testing.T) {
	key, value, err := settingArgs([]string{"imageServer", "eu"})
	require.NoError(t, err)
	assert.Equal(t, "imageServer", key)
	assert.Equal(t, "eu", value)

	_, _, err = settingArgs([]string{"downloadLocation", "/tmp"})
	assert.Error(t, err)
}
