package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"mangadex/internal/domain"
	"mangadex/internal/filter"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/pkg/errors"
)

const descriptionLimit = 300

type printer struct {
	w io.Writer

	header    *color.Color
	title     *color.Color
	label     *color.Color
	secondary *color.Color
	success   *color.Color
	warning   *color.Color
	errStyle  *color.Color
}

func newPrinter(w io.Writer, disableColor bool) *printer {
	if disableColor {
		color.NoColor = true
	}

	return &printer{
		w:         w,
		header:    color.New(color.Bold, color.FgCyan),
		title:     color.New(color.Bold, color.FgWhite),
		label:     color.New(color.FgHiBlue),
		secondary: color.New(color.FgHiBlack),
		success:   color.New(color.FgGreen),
		warning:   color.New(color.FgYellow),
		errStyle:  color.New(color.FgRed),
	}
}

func (p *printer) table(headers []string, rows [][]string) {
	table := tablewriter.NewTable(p.w)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Header.Alignment.Global = tw.AlignLeft
		cfg.Row.Alignment.Global = tw.AlignLeft
		cfg.Header.Padding.Global = tw.Padding{Left: " ", Right: " "}
		cfg.Row.Padding.Global = tw.Padding{Left: " ", Right: " "}
	})

	table.Header(headers)
	if err := table.Bulk(rows); err != nil {
		return
	}
	_ = table.Render()
}

func (p *printer) heading(text string) {
	_, _ = p.header.Fprintln(p.w, text)
}

func (p *printer) detail(label, value string) {
	if value == "" {
		return
	}
	_, _ = p.label.Fprintf(p.w, "%s: ", label)
	_, _ = fmt.Fprintln(p.w, value)
}

func (p *printer) mangaPage(title string, page int, result domain.MangasPage) {
	p.heading(fmt.Sprintf("%s (page %d)", title, page))

	if len(result.Mangas) == 0 {
		_, _ = p.warning.Fprintln(p.w, "No manga found")
		return
	}

	rows := make([][]string, 0, len(result.Mangas))
	for _, m := range result.Mangas {
		rows = append(rows, []string{m.ID, m.Title, m.URL})
	}
	p.table([]string{"ID", "Title", "URL"}, rows)

	if result.HasNextPage {
		_, _ = p.secondary.Fprintf(p.w, "more results on page %d\n", page+1)
	}
}

func (p *printer) manga(m domain.Manga) {
	_, _ = p.title.Fprintln(p.w, m.Title)
	p.detail("ID", m.ID)
	p.detail("URL", m.URL)
	p.detail("Author", m.Author)
	p.detail("Artist", m.Artist)
	p.detail("Status", m.Status.String())
	p.detail("Genres", m.Genre())
	p.detail("Thumbnail", m.ThumbnailURL)

	if m.Description != "" {
		desc := strings.ReplaceAll(m.Description, "\n", " ")
		if len(desc) > descriptionLimit {
			desc = desc[:descriptionLimit] + "..."
		}
		p.detail("Description", desc)
	}
}

func (p *printer) chapters(chapters []domain.Chapter) {
	if len(chapters) == 0 {
		_, _ = p.warning.Fprintln(p.w, "No chapters found")
		return
	}

	rows := make([][]string, 0, len(chapters))
	for _, c := range chapters {
		rows = append(rows, []string{c.ID, c.Name, c.Scanlator, formatUpload(c.DateUpload)})
	}
	p.table([]string{"ID", "Name", "Scanlator", "Uploaded"}, rows)
}

func formatUpload(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(time.DateOnly)
}

func (p *printer) pages(pages []domain.Page) {
	rows := make([][]string, 0, len(pages))
	for _, pg := range pages {
		rows = append(rows, []string{strconv.Itoa(pg.Index + 1), pg.ImageURL})
	}
	p.table([]string{"Page", "Image"}, rows)
}

func (p *printer) filters(list filter.List) {
	d := &describer{}
	list.Accept(d)
	p.table([]string{"Filter", "Value"}, d.rows)
}

func (p *printer) preferences(prefs domain.Preferences) {
	p.table([]string{"Setting", "Value"}, [][]string{
		{"language", prefs.Locale.Lang},
		{"showR18", prefs.ContentRating.String()},
		{"thumbnailQuality", prefs.Thumbnail.String()},
		{"imageServer", prefs.Server},
	})
}

func (p *printer) ok(text string) {
	_, _ = p.success.Fprintln(p.w, text)
}

// failure explains the errors a user can act on and prints the rest as is.
func (p *printer) failure(err error) {
	switch {
	case errors.Is(err, domain.ErrAccessDenied):
		_, _ = p.errStyle.Fprintln(p.w, "Access denied:", err)
	case errors.Is(err, domain.ErrUnsupportedChapter):
		_, _ = p.warning.Fprintln(p.w, "Unsupported chapter:", err)
	case errors.Is(err, domain.ErrInvalidID):
		_, _ = p.errStyle.Fprintln(p.w, "Invalid id:", err)
	case errors.Is(err, domain.ErrMalformedResponse):
		_, _ = p.errStyle.Fprintln(p.w, "Unexpected response:", err)
	default:
		_, _ = p.errStyle.Fprintln(p.w, "Error:", err)
	}
}

// describer renders every filter as table rows.
type describer struct {
	rows [][]string
}

var _ filter.Visitor = (*describer)(nil)

func (d *describer) add(name, value string) {
	d.rows = append(d.rows, []string{name, value})
}

func (d *describer) VisitText(t filter.Text) {
	d.add(t.Title, t.Value)
}

func (d *describer) VisitContentRating(r filter.ContentRating) {
	if r.Selected >= 0 && r.Selected < len(filter.ContentRatingOptions) {
		d.add(r.Name(), filter.ContentRatingOptions[r.Selected])
	}
}

func (d *describer) VisitSort(s filter.Sort) {
	if s.Selection == nil || s.Selection.Index < 0 || s.Selection.Index >= len(filter.Sortables) {
		d.add(s.Name(), "")
		return
	}
	dir := "descending"
	if s.Selection.Ascending {
		dir = "ascending"
	}
	d.add(s.Name(), filter.Sortables[s.Selection.Index].Name+" ("+dir+")")
}

func (d *describer) VisitTagGroup(g filter.TagGroup) {
	names := make([]string, 0, len(g.Tags))
	for _, t := range g.Tags {
		switch t.State {
		case filter.Included:
			names = append(names, "+"+t.Name)
		case filter.Excluded:
			names = append(names, "-"+t.Name)
		default:
			names = append(names, t.Name)
		}
	}
	d.add(g.Name(), strings.Join(names, ", "))
}

func (d *describer) VisitOriginalLanguage(o filter.OriginalLanguage) {
	if o.Selected >= 0 && o.Selected < len(filter.SourceLanguages) {
		d.add(o.Name(), filter.SourceLanguages[o.Selected].Name)
	}
}

func (d *describer) VisitTagMode(t filter.TagMode) {
	d.add(t.Name(), t.Token())
}
