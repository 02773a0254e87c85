package request

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"mangadex/internal/domain"
	"mangadex/internal/filter"

	"github.com/pkg/errors"
)

const (
	BaseURL = "https://mangadex.org"

	apiManga   = "/api/manga/"
	apiChapter = "/api/chapter/"

	// popular listing, sorted by rating descending like the default search
	popularSort = 7

	// IDPrefix marks a query as a direct manga id lookup, e.g. "id:12345".
	IDPrefix = "id:"

	licensedScanlator = "MangaPlus"

	contentRatingCookie = "mangadex_h_toggle"
	languageCookie      = "mangadex_filter_langs"
)

var whitespace = regexp.MustCompile(`\s+`)

// Descriptor is everything the transport needs to send a GET request.
type Descriptor struct {
	URL     string
	Header  http.Header
	Cookies []*http.Cookie
}

// NewRequest turns the descriptor into an *http.Request.
func (d Descriptor) NewRequest(ctx context.Context) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.URL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	for k, v := range d.Header {
		req.Header[k] = append([]string(nil), v...)
	}
	for _, c := range d.Cookies {
		req.AddCookie(c)
	}

	return req, nil
}

// CookieHeader renders the cookies as a single Cookie header value.
func (d Descriptor) CookieHeader() string {
	parts := make([]string, 0, len(d.Cookies))
	for _, c := range d.Cookies {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, "; ")
}

// Builder maps operations to request descriptors against one base URL.
type Builder struct {
	BaseURL   string
	UserAgent string
}

func New(baseURL, userAgent string) (*Builder, error) {
	if baseURL == "" {
		baseURL = BaseURL
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid base url %q", baseURL)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("invalid base url %q: scheme and host are required", baseURL)
	}

	return &Builder{
		BaseURL:   strings.TrimSuffix(baseURL, "/"),
		UserAgent: userAgent,
	}, nil
}

func (b *Builder) descriptor(rawURL string, rating domain.ContentRating, prefs domain.Preferences) Descriptor {
	header := http.Header{}
	if b.UserAgent != "" {
		header.Set("User-Agent", b.UserAgent)
	}

	return Descriptor{
		URL:     rawURL,
		Header:  header,
		Cookies: Cookies(rating, prefs.Locale),
	}
}

// Cookies derives the content rating and language filter cookies.
func Cookies(rating domain.ContentRating, locale domain.Locale) []*http.Cookie {
	return []*http.Cookie{
		{Name: contentRatingCookie, Value: strconv.Itoa(int(rating))},
		{Name: languageCookie, Value: strconv.Itoa(locale.FilterCode)},
	}
}

func (b *Builder) Popular(page int, prefs domain.Preferences) Descriptor {
	return b.descriptor(b.BaseURL+"/titles/"+strconv.Itoa(popularSort)+"/"+strconv.Itoa(page)+"/", prefs.ContentRating, prefs)
}

func (b *Builder) Latest(page int, prefs domain.Preferences) Descriptor {
	return b.descriptor(b.BaseURL+"/updates/"+strconv.Itoa(page), prefs.ContentRating, prefs)
}

// MangaAPI requests the json detail of a manga, which also carries its chapters.
func (b *Builder) MangaAPI(id string, prefs domain.Preferences) (Descriptor, error) {
	if _, err := strconv.Atoi(id); err != nil {
		return Descriptor{}, errors.Wrapf(domain.ErrInvalidID, "%q", id)
	}
	return b.descriptor(b.BaseURL+apiManga+id, prefs.ContentRating, prefs), nil
}

// Details requests the json detail for a manga built from a listing.
func (b *Builder) Details(manga domain.Manga, prefs domain.Preferences) (Descriptor, error) {
	id := manga.ID
	if id == "" {
		var err error
		if id, err = domain.ExtractID(manga.URL); err != nil {
			return Descriptor{}, err
		}
	}
	return b.MangaAPI(id, prefs)
}

// ChapterAPI requests the page list of a chapter from the preferred image
// server. Licensed chapters fail before anything is sent.
func (b *Builder) ChapterAPI(chapter domain.Chapter, prefs domain.Preferences) (Descriptor, error) {
	if chapter.Scanlator == licensedScanlator {
		return Descriptor{}, errors.Wrap(domain.ErrUnsupportedChapter, "chapter is licensed; read it on MangaPlus")
	}

	path := chapter.URL
	if path == "" {
		path = apiChapter + chapter.ID
	}

	return b.descriptor(b.BaseURL+path+"?server="+url.QueryEscape(domain.ServerParam(prefs.Server)), prefs.ContentRating, prefs), nil
}

// ChapterURL is the relative api path stored on a chapter.
func ChapterURL(id string) string {
	return apiChapter + id
}

// IDFromQuery reports whether the query is an id lookup and returns the id.
func IDFromQuery(query string) (string, bool) {
	if !strings.HasPrefix(query, IDPrefix) {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(query, IDPrefix)), true
}

// Search compiles the query and filters into a search page request.
func (b *Builder) Search(page int, query string, filters filter.List, prefs domain.Preferences) (Descriptor, error) {
	u, err := url.Parse(b.BaseURL + "/")
	if err != nil {
		return Descriptor{}, errors.Wrapf(err, "invalid base url %q", b.BaseURL)
	}

	c := newCompiler()
	c.params.Set("page", "search")
	c.params.Set("p", strconv.Itoa(page))
	c.params.Set("title", whitespace.ReplaceAllString(query, " "))

	filters.Accept(c)

	u.RawQuery = c.params.Encode()
	rawURL := u.String()

	// appended by hand, the endpoint rejects percent-encoded commas in tag lists
	if ids := sortedIDs(c.include); len(ids) > 0 {
		rawURL += "&tags_inc=" + strings.Join(ids, ",")
	}
	if ids := sortedIDs(c.exclude); len(ids) > 0 {
		rawURL += "&tags_exc=" + strings.Join(ids, ",")
	}

	rating := prefs.ContentRating
	if c.rating != nil {
		rating = *c.rating
	}

	return b.descriptor(rawURL, rating, prefs), nil
}

// compiler collects every filter's contribution. No contribution depends on
// another, so the visiting order does not matter.
type compiler struct {
	params  url.Values
	include map[string]struct{}
	exclude map[string]struct{}
	rating  *domain.ContentRating
}

var _ filter.Visitor = (*compiler)(nil)

func newCompiler() *compiler {
	return &compiler{
		params:  url.Values{},
		include: make(map[string]struct{}),
		exclude: make(map[string]struct{}),
	}
}

func (c *compiler) VisitText(t filter.Text) {
	c.params.Set(t.Key, t.Value)
}

func (c *compiler) VisitContentRating(r filter.ContentRating) {
	var rating domain.ContentRating
	switch r.Selected {
	case filter.RatingShowAll:
		rating = domain.ShowAll
	case filter.RatingShowOnly:
		rating = domain.ShowOnlyR18
	case filter.RatingShowNone:
		rating = domain.ShowNoR18
	default:
		return
	}
	c.rating = &rating
}

func (c *compiler) VisitSort(s filter.Sort) {
	if code, ok := s.Code(); ok {
		c.params.Set("s", strconv.Itoa(code))
	}
}

func (c *compiler) VisitTagGroup(g filter.TagGroup) {
	switch g.Kind {
	case filter.Demographic:
		if ids := g.Included(); len(ids) > 0 {
			c.params.Set("demos", strings.Join(ids, ","))
		}
	case filter.PublicationStatus:
		if ids := g.Included(); len(ids) > 0 {
			c.params.Set("statuses", strings.Join(ids, ","))
		}
	default:
		for _, id := range g.Included() {
			c.include[id] = struct{}{}
		}
		for _, id := range g.Excluded() {
			c.exclude[id] = struct{}{}
		}
	}
}

func (c *compiler) VisitOriginalLanguage(o filter.OriginalLanguage) {
	if o.Selected <= 0 || o.Selected >= len(filter.SourceLanguages) {
		return
	}
	c.params.Set("lang_id", filter.SourceLanguages[o.Selected].ID)
}

func (c *compiler) VisitTagMode(t filter.TagMode) {
	if t.Exclusion {
		c.params.Set("tag_mode_exc", t.Token())
		return
	}
	c.params.Set("tag_mode_inc", t.Token())
}

func sortedIDs(set map[string]struct{}) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool {
		a, errA := strconv.Atoi(ids[i])
		b, errB := strconv.Atoi(ids[j])
		if errA != nil || errB != nil {
			return ids[i] < ids[j]
		}
		return a < b
	})

	return ids
}
