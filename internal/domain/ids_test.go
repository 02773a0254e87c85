package domain

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractID(t *testing.T) {
	urls := []string{
		"/title/12345/some-slug/",
		"/title/12345/some-slug",
		"/title/12345/",
		"/manga/12345/some-slug/",
		"/manga/12345/",
		"/manga/12345",
		"https://mangadex.org/title/12345/some-slug",
		"https://mangadex.org/manga/12345/",
		"/title/12345/1984/",
	}

	for _, u := range urls {
		t.Run(u, func(t *testing.T) {
			id, err := ExtractID(u)
			require.NoError(t, err)
			assert.Equal(t, "12345", id)
		})
	}
}

func TestExtractIDInvalid(t *testing.T) {
	for _, u := range []string{"", "/title/", "/title/abc/def/", "not a url"} {
		_, err := ExtractID(u)
		assert.True(t, errors.Is(err, ErrInvalidID), u)
	}
}

func TestMangaURLRoundTrip(t *testing.T) {
	id, err := ExtractID(MangaURL("42"))
	require.NoError(t, err)
	assert.Equal(t, "42", id)
}

func TestLookupLocale(t *testing.T) {
	l, err := LookupLocale("en")
	require.NoError(t, err)
	assert.Equal(t, "gb", l.Code)
	assert.Equal(t, 1, l.FilterCode)

	_, err = LookupLocale("xx")
	assert.Error(t, err)
}

func TestPreferenceParsing(t *testing.T) {
	assert.Equal(t, ShowAll, ParseContentRating("all"))
	assert.Equal(t, ShowOnlyR18, ParseContentRating("only"))
	assert.Equal(t, ShowNoR18, ParseContentRating("bogus"))

	assert.Equal(t, ThumbnailLow, ParseThumbnailQuality("low"))
	assert.Equal(t, ThumbnailStandard, ParseThumbnailQuality(""))

	assert.Equal(t, "0", ServerParam("auto"))
	assert.Equal(t, "eu2", ServerParam("eu2"))
	assert.Equal(t, "0", ServerParam("mars"))
}
