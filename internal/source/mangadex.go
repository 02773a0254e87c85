package source

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"mangadex/internal/buildinfo"
	"mangadex/internal/domain"
	"mangadex/internal/filter"
	"mangadex/internal/logger"
	"mangadex/internal/parse"
	"mangadex/internal/request"
	"mangadex/internal/sharedhttp"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/gocolly/colly"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const defaultTimeout = 30 * time.Second

// PreferenceProvider hands out a fresh preference snapshot per operation.
type PreferenceProvider interface {
	Preferences() domain.Preferences
}

type Options struct {
	BaseURL         string
	UserAgent       string
	Timeout         time.Duration
	RateLimit       int
	RateLimitPeriod time.Duration
	RetryAttempts   int

	// CloudflareBypass wraps the transport with browser-like headers and TLS settings.
	CloudflareBypass bool

	// Transport is wrapped by the rate limiter, sharedhttp.Transport when nil.
	Transport http.RoundTripper
}

// OptionsFromConfig maps the config file settings to source options.
func OptionsFromConfig(cfg *domain.Config) Options {
	return Options{
		UserAgent:       cfg.UserAgent,
		Timeout:         time.Duration(cfg.RequestTimeout) * time.Second,
		RateLimit:       cfg.RateLimit,
		RateLimitPeriod: time.Duration(cfg.RateLimitPeriod) * time.Second,
		RetryAttempts:   cfg.RetryAttempts,

		CloudflareBypass: cfg.CloudflareBypass,
	}
}

// Mangadex fetches catalog pages with colly and api documents with a plain
// http client. Both go through the same rate limited transport.
type Mangadex struct {
	builder       *request.Builder
	client        *http.Client
	collector     *colly.Collector
	prefs         PreferenceProvider
	log           logger.Logger
	retryAttempts int
	now           func() time.Time
}

var _ domain.Source = (*Mangadex)(nil)

func NewMangadex(opts Options, prefs PreferenceProvider, log logger.Logger) (*Mangadex, error) {
	if prefs == nil {
		return nil, errors.New("mangadex: preference provider is required")
	}

	if opts.UserAgent == "" {
		opts.UserAgent = buildinfo.UserAgent()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	builder, err := request.New(opts.BaseURL, opts.UserAgent)
	if err != nil {
		return nil, err
	}

	base := opts.Transport
	if base == nil {
		base = sharedhttp.Transport
	}
	if opts.CloudflareBypass {
		base = cloudflarebp.AddCloudFlareByPass(base)
	}

	transport := sharedhttp.RateLimit(base, opts.RateLimit, opts.RateLimitPeriod)

	collector := colly.NewCollector(
		colly.AllowURLRevisit(),
		colly.UserAgent(opts.UserAgent),
	)
	collector.WithTransport(transport)
	// cookies are derived from preferences on every request
	collector.DisableCookies()
	collector.SetRequestTimeout(opts.Timeout)

	return &Mangadex{
		builder:       builder,
		client:        sharedhttp.NewClient(opts.Timeout, transport),
		collector:     collector,
		prefs:         prefs,
		log:           log,
		retryAttempts: opts.RetryAttempts,
		now:           time.Now,
	}, nil
}

func (m *Mangadex) String() string {
	return "MangaDex"
}

func (m *Mangadex) ValidateInput() error {
	prefs := m.prefs.Preferences()
	if prefs.Locale.Code == "" {
		return errors.New("mangadex: no language configured")
	}

	if _, err := domain.LookupLocale(prefs.Locale.Lang); err != nil {
		return err
	}

	if prefs.Server != "" && !domain.ValidOption(domain.ImageServers, prefs.Server) {
		return errors.Errorf("mangadex: unknown image server %q", prefs.Server)
	}

	return nil
}

// Filters returns the default search filters.
func (m *Mangadex) Filters() filter.List {
	return filter.Default()
}

func (m *Mangadex) PopularManga(ctx context.Context, page int) (domain.MangasPage, error) {
	prefs := m.prefs.Preferences()
	log := m.operation("popular")

	body, err := m.fetchHTML(ctx, log, m.builder.Popular(page, prefs))
	if err != nil {
		return domain.MangasPage{}, err
	}

	return parse.Listing(bytes.NewReader(body), parse.PopularSelector, parse.TitleSelector, prefs)
}

func (m *Mangadex) LatestUpdates(ctx context.Context, page int) (domain.MangasPage, error) {
	prefs := m.prefs.Preferences()
	log := m.operation("latest")

	body, err := m.fetchHTML(ctx, log, m.builder.Latest(page, prefs))
	if err != nil {
		return domain.MangasPage{}, err
	}

	return parse.Listing(bytes.NewReader(body), parse.LatestSelector, "", prefs)
}

// SearchManga runs a title search. A query of the form "id:<id>" skips the
// search and returns the single manga with that id.
func (m *Mangadex) SearchManga(ctx context.Context, page int, query string, filters filter.List) (domain.MangasPage, error) {
	prefs := m.prefs.Preferences()
	log := m.operation("search")

	if id, ok := request.IDFromQuery(query); ok {
		manga, err := m.mangaByID(ctx, log, id, prefs)
		if err != nil {
			return domain.MangasPage{}, err
		}
		return domain.MangasPage{Mangas: []domain.Manga{manga}}, nil
	}

	d, err := m.builder.Search(page, query, filters, prefs)
	if err != nil {
		return domain.MangasPage{}, err
	}

	body, err := m.fetchHTML(ctx, log, d)
	if err != nil {
		return domain.MangasPage{}, err
	}

	return parse.Listing(bytes.NewReader(body), parse.PopularSelector, parse.TitleSelector, prefs)
}

func (m *Mangadex) mangaByID(ctx context.Context, log zerolog.Logger, id string, prefs domain.Preferences) (domain.Manga, error) {
	d, err := m.builder.MangaAPI(id, prefs)
	if err != nil {
		return domain.Manga{}, err
	}

	var manga domain.Manga
	err = m.fetchJSON(ctx, log, d, func(r io.Reader) error {
		var perr error
		manga, perr = parse.MangaDetails(r, prefs.Locale)
		return perr
	})
	if err != nil {
		return domain.Manga{}, err
	}

	manga.ID = id
	manga.URL = domain.MangaURL(id)

	return manga, nil
}

// MangaDetails fills in a manga from a listing. ID and URL are kept.
func (m *Mangadex) MangaDetails(ctx context.Context, manga *domain.Manga) error {
	prefs := m.prefs.Preferences()
	log := m.operation("details")

	id := manga.ID
	if id == "" {
		var err error
		if id, err = domain.ExtractID(manga.URL); err != nil {
			return err
		}
	}

	details, err := m.mangaByID(ctx, log, id, prefs)
	if err != nil {
		return err
	}

	if manga.URL != "" {
		details.URL = manga.URL
	}
	*manga = details

	return nil
}

func (m *Mangadex) ChapterList(ctx context.Context, manga domain.Manga) ([]domain.Chapter, error) {
	prefs := m.prefs.Preferences()
	log := m.operation("chapters")

	d, err := m.builder.Details(manga, prefs)
	if err != nil {
		return nil, err
	}

	var chapters []domain.Chapter
	err = m.fetchJSON(ctx, log, d, func(r io.Reader) error {
		var perr error
		chapters, perr = parse.Chapters(r, prefs.Locale, m.now())
		return perr
	})
	if err != nil {
		return nil, err
	}

	log.Debug().Msgf("found %d chapters in %s", len(chapters), prefs.Locale.Lang)

	return chapters, nil
}

func (m *Mangadex) PageList(ctx context.Context, chapter domain.Chapter) ([]domain.Page, error) {
	prefs := m.prefs.Preferences()
	log := m.operation("pages")

	d, err := m.builder.ChapterAPI(chapter, prefs)
	if err != nil {
		return nil, err
	}

	var pages []domain.Page
	err = m.fetchJSON(ctx, log, d, func(r io.Reader) error {
		var perr error
		pages, perr = parse.Pages(r, m.builder.BaseURL)
		return perr
	})
	if err != nil {
		return nil, err
	}

	return pages, nil
}

// ImageURL is not used, pages already carry their image url.
func (m *Mangadex) ImageURL(_ context.Context, _ domain.Page) (string, error) {
	return "", errors.Wrap(domain.ErrNotUsed, "image url is part of the page list")
}

func (m *Mangadex) operation(name string) zerolog.Logger {
	return m.log.With().Str("op", uuid.NewString()).Str("operation", name).Logger()
}

// fetchHTML runs the request on a cloned collector. colly does not take a
// context, so a cancelled ctx abandons the request instead of aborting it.
func (m *Mangadex) fetchHTML(ctx context.Context, log zerolog.Logger, d request.Descriptor) ([]byte, error) {
	var body []byte

	err := sharedhttp.Do(m.retryAttempts, func() error {
		b, err := m.visit(ctx, d)
		if err != nil {
			log.Debug().Err(err).Msgf("request failed: %s", d.URL)
			return err
		}
		body = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Trace().Msgf("fetched %s (%d bytes)", d.URL, len(body))

	return body, nil
}

type visitResult struct {
	body   []byte
	status int
	err    error
}

func (m *Mangadex) visit(ctx context.Context, d request.Descriptor) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := m.collector.Clone()

	hdr := d.Header.Clone()
	if hdr == nil {
		hdr = http.Header{}
	}
	if cookies := d.CookieHeader(); cookies != "" {
		hdr.Set("Cookie", cookies)
	}

	done := make(chan visitResult, 1)

	go func() {
		var res visitResult

		c.OnResponse(func(r *colly.Response) {
			res.body = r.Body
		})
		c.OnError(func(r *colly.Response, _ error) {
			if r != nil {
				res.status = r.StatusCode
			}
		})

		res.err = c.Request(http.MethodGet, d.URL, nil, nil, hdr)
		done <- res
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		if res.status != 0 {
			if err := sharedhttp.CheckStatusCode(res.status); err != nil {
				return nil, err
			}
		}
		if res.err != nil {
			return nil, sharedhttp.TransportError(res.err)
		}
		return res.body, nil
	}
}

// fetchJSON sends the request and hands the body to decode. The body is
// closed as soon as decode returns.
func (m *Mangadex) fetchJSON(ctx context.Context, log zerolog.Logger, d request.Descriptor, decode func(io.Reader) error) error {
	return sharedhttp.Do(m.retryAttempts, func() error {
		req, err := d.NewRequest(ctx)
		if err != nil {
			return err
		}

		resp, err := sharedhttp.ExecRequest(m.client, req)
		if err != nil {
			log.Debug().Err(err).Msgf("request failed: %s", d.URL)
			return err
		}
		defer resp.Body.Close()

		log.Trace().Msgf("fetched %s", d.URL)

		return decode(bufio.NewReader(resp.Body))
	})
}
