package source

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"mangadex/internal/domain"
	"mangadex/internal/filter"
	"mangadex/internal/logger"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserAgent = "mangadex-test/1.0"

type staticPrefs struct {
	prefs domain.Preferences
}

func (s *staticPrefs) Preferences() domain.Preferences {
	return s.prefs
}

var englishPrefs = domain.Preferences{
	ContentRating: domain.ShowNoR18,
	Thumbnail:     domain.ThumbnailStandard,
	Server:        "eu",
	Locale:        domain.Locale{Lang: "en", Code: "gb", FilterCode: 1},
}

const listingHTML = `<html><body>
<div class="manga-entry"><a class="manga_title" href="/title/123/one-piece">One Piece</a></div>
<div class="manga-entry"><a class="manga_title" href="/title/456/berserk">Berserk</a></div>
<ul class="pagination"><li><span title="Jump to last page">»</span></li></ul>
</body></html>`

const latestHTML = `<html><body><table>
<tr><td><a class="manga_title" href="/title/789/kagurabachi">Kagurabachi</a></td></tr>
</table></body></html>`

const mangaJSON = `{
  "manga": {
    "title": "One Piece",
    "cover_url": "/images/manga/123.jpg",
    "description": "[b]Pirates[/b]",
    "author": "Oda",
    "artist": "Oda",
    "status": 1,
    "hentai": 0,
    "genres": [2, 3],
    "last_chapter": ""
  },
  "chapter": {
    "1002": {"volume": "1", "chapter": "2", "title": "Versus", "timestamp": 1400000000, "lang_code": "gb", "group_name": "Scans"},
    "1001": {"volume": "1", "chapter": "1", "title": "Romance Dawn", "timestamp": 1300000000, "lang_code": "gb", "group_name": "Scans"},
    "1000": {"volume": "1", "chapter": "1", "title": "Romance Dawn", "timestamp": 1300000000, "lang_code": "fr", "group_name": "FR"}
  }
}`

const chapterJSON = `{"hash": "abc", "server": "/data/", "page_array": ["1.png", "2.png"]}`

type recorded struct {
	userAgent string
	rating    string
	language  string
	server    string
}

func newTestServer(t *testing.T, hits *int32, last *atomic.Value) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)

		rec := recorded{
			userAgent: r.UserAgent(),
			server:    r.URL.Query().Get("server"),
		}
		if c, err := r.Cookie("mangadex_h_toggle"); err == nil {
			rec.rating = c.Value
		}
		if c, err := r.Cookie("mangadex_filter_langs"); err == nil {
			rec.language = c.Value
		}
		last.Store(rec)

		switch {
		case r.URL.Path == "/titles/7/1/":
			_, _ = io.WriteString(w, listingHTML)
		case r.URL.Path == "/updates/1":
			_, _ = io.WriteString(w, latestHTML)
		case r.URL.Path == "/" && r.URL.Query().Get("page") == "search":
			_, _ = io.WriteString(w, listingHTML)
		case r.URL.Path == "/api/manga/123":
			_, _ = io.WriteString(w, mangaJSON)
		case r.URL.Path == "/api/manga/999":
			_, _ = io.WriteString(w, `{"manga": {"title": "only a title"}}`)
		case r.URL.Path == "/api/chapter/1001":
			_, _ = io.WriteString(w, chapterJSON)
		case r.URL.Path == "/api/chapter/451":
			w.WriteHeader(http.StatusUnavailableForLegalReasons)
		case r.URL.Path == "/titles/7/451/":
			w.WriteHeader(http.StatusUnavailableForLegalReasons)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
}

func newTestSource(t *testing.T, baseURL string, prefs domain.Preferences) *Mangadex {
	t.Helper()

	m, err := NewMangadex(Options{
		BaseURL:         baseURL,
		UserAgent:       testUserAgent,
		Timeout:         5 * time.Second,
		RateLimit:       100,
		RateLimitPeriod: time.Second,
		RetryAttempts:   1,
		Transport:       http.DefaultTransport,
	}, &staticPrefs{prefs: prefs}, logger.Nop())
	require.NoError(t, err)

	// 2020-01-01T00:00:00Z
	m.now = func() time.Time { return time.Unix(1577836800, 0) }

	return m
}

func lastRequest(v *atomic.Value) recorded {
	rec, _ := v.Load().(recorded)
	return rec
}

func TestNewMangadexInvalidBaseURL(t *testing.T) {
	_, err := NewMangadex(Options{BaseURL: "not a url"}, &staticPrefs{}, logger.Nop())
	assert.Error(t, err)

	_, err = NewMangadex(Options{}, nil, logger.Nop())
	assert.Error(t, err)
}

func TestValidateInput(t *testing.T) {
	m := newTestSource(t, "https://mangadex.org", englishPrefs)
	assert.NoError(t, m.ValidateInput())

	m = newTestSource(t, "https://mangadex.org", domain.Preferences{})
	assert.Error(t, m.ValidateInput())

	prefs := englishPrefs
	prefs.Server = "moon"
	m = newTestSource(t, "https://mangadex.org", prefs)
	assert.Error(t, m.ValidateInput())
}

func TestPopularManga(t *testing.T) {
	var hits int32
	var last atomic.Value
	ts := newTestServer(t, &hits, &last)
	defer ts.Close()

	m := newTestSource(t, ts.URL, englishPrefs)

	page, err := m.PopularManga(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, page.Mangas, 2)
	assert.True(t, page.HasNextPage)
	assert.Equal(t, "123", page.Mangas[0].ID)
	assert.Equal(t, "/title/123/", page.Mangas[0].URL)
	assert.Equal(t, "One Piece", page.Mangas[0].Title)

	rec := lastRequest(&last)
	assert.Equal(t, testUserAgent, rec.userAgent)
	assert.Equal(t, "0", rec.rating)
	assert.Equal(t, "1", rec.language)
}

func TestPopularMangaAccessDenied(t *testing.T) {
	var hits int32
	var last atomic.Value
	ts := newTestServer(t, &hits, &last)
	defer ts.Close()

	m := newTestSource(t, ts.URL, englishPrefs)

	_, err := m.PopularManga(context.Background(), 451)
	assert.True(t, errors.Is(err, domain.ErrAccessDenied))
}

func TestLatestUpdates(t *testing.T) {
	var hits int32
	var last atomic.Value
	ts := newTestServer(t, &hits, &last)
	defer ts.Close()

	m := newTestSource(t, ts.URL, englishPrefs)

	page, err := m.LatestUpdates(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, page.Mangas, 1)
	assert.False(t, page.HasNextPage)
	assert.Equal(t, "Kagurabachi", page.Mangas[0].Title)
}

func TestSearchMangaRatingOverride(t *testing.T) {
	var hits int32
	var last atomic.Value
	ts := newTestServer(t, &hits, &last)
	defer ts.Close()

	m := newTestSource(t, ts.URL, englishPrefs)

	filters := m.Filters().Replace(filter.ContentRating{Selected: filter.RatingShowOnly})

	page, err := m.SearchManga(context.Background(), 1, "one  piece", filters)
	require.NoError(t, err)
	assert.Len(t, page.Mangas, 2)

	assert.Equal(t, "2", lastRequest(&last).rating)
}

func TestSearchMangaByID(t *testing.T) {
	var hits int32
	var last atomic.Value
	ts := newTestServer(t, &hits, &last)
	defer ts.Close()

	m := newTestSource(t, ts.URL, englishPrefs)

	page, err := m.SearchManga(context.Background(), 1, "id:123", m.Filters())
	require.NoError(t, err)

	require.Len(t, page.Mangas, 1)
	assert.False(t, page.HasNextPage)

	manga := page.Mangas[0]
	assert.Equal(t, "123", manga.ID)
	assert.Equal(t, "/title/123/", manga.URL)
	assert.Equal(t, "One Piece", manga.Title)
	assert.True(t, manga.Initialized)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestSearchMangaByInvalidID(t *testing.T) {
	m := newTestSource(t, "https://mangadex.org", englishPrefs)

	_, err := m.SearchManga(context.Background(), 1, "id:abc", m.Filters())
	assert.True(t, errors.Is(err, domain.ErrInvalidID))
}

func TestMangaDetailsKeepsIdentity(t *testing.T) {
	var hits int32
	var last atomic.Value
	ts := newTestServer(t, &hits, &last)
	defer ts.Close()

	m := newTestSource(t, ts.URL, englishPrefs)

	manga := domain.Manga{URL: "/title/123/one-piece", Title: "listing title"}
	require.NoError(t, m.MangaDetails(context.Background(), &manga))

	assert.Equal(t, "123", manga.ID)
	assert.Equal(t, "/title/123/one-piece", manga.URL)
	assert.Equal(t, "One Piece", manga.Title)
	assert.Equal(t, "Pirates", manga.Description)
	assert.Equal(t, "Oda", manga.Author)
	assert.Equal(t, domain.StatusOngoing, manga.Status)
	assert.Equal(t, []string{"Action", "Adventure"}, manga.Genres)
	assert.True(t, manga.Initialized)
}

func TestMangaDetailsMalformed(t *testing.T) {
	var hits int32
	var last atomic.Value
	ts := newTestServer(t, &hits, &last)
	defer ts.Close()

	m := newTestSource(t, ts.URL, englishPrefs)

	manga := domain.Manga{ID: "999", Title: "untouched"}
	err := m.MangaDetails(context.Background(), &manga)
	assert.True(t, errors.Is(err, domain.ErrMalformedResponse))
	assert.Equal(t, "untouched", manga.Title)
	assert.False(t, manga.Initialized)
}

func TestChapterList(t *testing.T) {
	var hits int32
	var last atomic.Value
	ts := newTestServer(t, &hits, &last)
	defer ts.Close()

	m := newTestSource(t, ts.URL, englishPrefs)

	chapters, err := m.ChapterList(context.Background(), domain.Manga{ID: "123"})
	require.NoError(t, err)

	require.Len(t, chapters, 2)
	assert.Equal(t, "1002", chapters[0].ID)
	assert.Equal(t, "Vol.1 Ch.2 - Versus", chapters[0].Name)
	assert.Equal(t, "/api/chapter/1001", chapters[1].URL)
	assert.Equal(t, int64(1300000000000), chapters[1].DateUpload)
}

func TestPageList(t *testing.T) {
	var hits int32
	var last atomic.Value
	ts := newTestServer(t, &hits, &last)
	defer ts.Close()

	m := newTestSource(t, ts.URL, englishPrefs)

	pages, err := m.PageList(context.Background(), domain.Chapter{ID: "1001", URL: "/api/chapter/1001"})
	require.NoError(t, err)

	require.Len(t, pages, 2)
	assert.Equal(t, ts.URL+"/data/abc/1.png", pages[0].ImageURL)
	assert.Equal(t, 1, pages[1].Index)
	assert.Equal(t, "eu", lastRequest(&last).server)
}

func TestPageListErrors(t *testing.T) {
	var hits int32
	var last atomic.Value
	ts := newTestServer(t, &hits, &last)
	defer ts.Close()

	m := newTestSource(t, ts.URL, englishPrefs)

	_, err := m.PageList(context.Background(), domain.Chapter{ID: "451"})
	assert.True(t, errors.Is(err, domain.ErrAccessDenied))
	assert.Contains(t, err.Error(), "log in to view manga")

	_, err = m.PageList(context.Background(), domain.Chapter{ID: "500"})
	assert.True(t, errors.Is(err, domain.ErrTransport))
	assert.Contains(t, err.Error(), "HTTP error 500")
}

func TestPageListLicensedChapterSendsNothing(t *testing.T) {
	var hits int32
	var last atomic.Value
	ts := newTestServer(t, &hits, &last)
	defer ts.Close()

	m := newTestSource(t, ts.URL, englishPrefs)

	_, err := m.PageList(context.Background(), domain.Chapter{ID: "1001", Scanlator: "MangaPlus"})
	assert.True(t, errors.Is(err, domain.ErrUnsupportedChapter))
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestImageURLNotUsed(t *testing.T) {
	m := newTestSource(t, "https://mangadex.org", englishPrefs)

	_, err := m.ImageURL(context.Background(), domain.Page{})
	assert.True(t, errors.Is(err, domain.ErrNotUsed))
}

func TestCancelledOperation(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer ts.Close()
	defer close(release)

	m := newTestSource(t, ts.URL, englishPrefs)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := m.PopularManga(ctx, 1)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	_, err = m.ChapterList(ctx, domain.Manga{ID: "1"})
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestPreferencesReadPerOperation(t *testing.T) {
	var hits int32
	var last atomic.Value
	ts := newTestServer(t, &hits, &last)
	defer ts.Close()

	prefs := &staticPrefs{prefs: englishPrefs}
	m, err := NewMangadex(Options{BaseURL: ts.URL, Transport: http.DefaultTransport, RateLimit: 100}, prefs, logger.Nop())
	require.NoError(t, err)

	_, err = m.PopularManga(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "0", lastRequest(&last).rating)

	prefs.prefs.ContentRating = domain.ShowAll
	_, err = m.PopularManga(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "1", lastRequest(&last).rating)
}

func TestCloudflareBypassTransport(t *testing.T) {
	var hits int32
	var last atomic.Value
	ts := newTestServer(t, &hits, &last)
	defer ts.Close()

	m, err := NewMangadex(Options{
		BaseURL:          ts.URL,
		RateLimit:        100,
		Transport:        &http.Transport{},
		CloudflareBypass: true,
	}, &staticPrefs{prefs: englishPrefs}, logger.Nop())
	require.NoError(t, err)

	page, err := m.PopularManga(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, page.Mangas, 2)
}
