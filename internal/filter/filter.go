package filter

import "strings"

// State is the tri-state of a tag filter.
type State int

const (
	Neutral State = iota
	Included
	Excluded
)

type Tag struct {
	ID    string
	Name  string
	State State
}

func (t Tag) IsIncluded() bool { return t.State == Included }
func (t Tag) IsExcluded() bool { return t.State == Excluded }
func (t Tag) IsNeutral() bool  { return t.State == Neutral }

// Visitor has one method per filter variant. A new variant needs a new
// method here, so every Visitor stops compiling until it handles it.
type Visitor interface {
	VisitText(Text)
	VisitContentRating(ContentRating)
	VisitSort(Sort)
	VisitTagGroup(TagGroup)
	VisitOriginalLanguage(OriginalLanguage)
	VisitTagMode(TagMode)
}

type Filter interface {
	Name() string
	Accept(Visitor)
}

// List is an unordered bag of filters.
type List []Filter

func (l List) Accept(v Visitor) {
	for _, f := range l {
		f.Accept(v)
	}
}

// Text is a free text field sent under its own query key.
type Text struct {
	Title string
	Key   string
	Value string
}

func (t Text) Name() string     { return t.Title }
func (t Text) Accept(v Visitor) { v.VisitText(t) }

// ContentRating overrides the stored adult content preference for one search.
type ContentRating struct {
	Selected int
}

const (
	RatingDefault = iota
	RatingShowAll
	RatingShowOnly
	RatingShowNone
)

var ContentRatingOptions = []string{"Default", "Show all", "Show only", "Show none"}

func (c ContentRating) Name() string     { return "R18+" }
func (c ContentRating) Accept(v Visitor) { v.VisitContentRating(c) }

type Sortable struct {
	Name       string
	Ascending  int
	Descending int
}

var Sortables = []Sortable{
	{Name: "Update date", Ascending: 0, Descending: 1},
	{Name: "Alphabetically", Ascending: 2, Descending: 3},
	{Name: "Number of comments", Ascending: 4, Descending: 5},
	{Name: "Rating", Ascending: 6, Descending: 7},
	{Name: "Views", Ascending: 8, Descending: 9},
	{Name: "Follows", Ascending: 10, Descending: 11},
}

type SortSelection struct {
	Index     int
	Ascending bool
}

// Sort with a nil Selection leaves the ordering to the site.
type Sort struct {
	Selection *SortSelection
}

func (s Sort) Name() string     { return "Sort" }
func (s Sort) Accept(v Visitor) { v.VisitSort(s) }

// Code returns the numeric sort parameter, false when unset or out of range.
func (s Sort) Code() (int, bool) {
	if s.Selection == nil || s.Selection.Index < 0 || s.Selection.Index >= len(Sortables) {
		return 0, false
	}
	if s.Selection.Ascending {
		return Sortables[s.Selection.Index].Ascending, true
	}
	return Sortables[s.Selection.Index].Descending, true
}

type GroupKind int

const (
	Demographic GroupKind = iota
	PublicationStatus
	Content
	Format
	Genre
	Theme
)

func (k GroupKind) String() string {
	switch k {
	case Demographic:
		return "Demographic"
	case PublicationStatus:
		return "Publication"
	case Content:
		return "Content"
	case Format:
		return "Format"
	case Genre:
		return "Genres"
	case Theme:
		return "Themes"
	}
	return "Unknown"
}

type TagGroup struct {
	Kind GroupKind
	Tags []Tag
}

func (g TagGroup) Name() string     { return g.Kind.String() }
func (g TagGroup) Accept(v Visitor) { v.VisitTagGroup(g) }

func (g TagGroup) Included() []string {
	var ids []string
	for _, t := range g.Tags {
		if t.IsIncluded() {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

func (g TagGroup) Excluded() []string {
	var ids []string
	for _, t := range g.Tags {
		if t.IsExcluded() {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

type SourceLanguage struct {
	Name string
	ID   string
}

// SourceLanguages starts with the "All" entry, which adds no parameter.
var SourceLanguages = []SourceLanguage{
	{Name: "All", ID: "0"},
	{Name: "Japanese", ID: "2"},
	{Name: "English", ID: "1"},
	{Name: "Polish", ID: "3"},
	{Name: "German", ID: "8"},
	{Name: "French", ID: "10"},
	{Name: "Vietnamese", ID: "12"},
	{Name: "Chinese", ID: "21"},
	{Name: "Indonesian", ID: "27"},
	{Name: "Korean", ID: "28"},
	{Name: "Spanish (LATAM)", ID: "29"},
	{Name: "Thai", ID: "32"},
	{Name: "Filipino", ID: "34"},
}

type OriginalLanguage struct {
	Selected int
}

func (o OriginalLanguage) Name() string     { return "Original Language" }
func (o OriginalLanguage) Accept(v Visitor) { v.VisitOriginalLanguage(o) }

const (
	TagModeAll = iota
	TagModeAny
)

var TagModeTokens = []string{"all", "any"}

// TagMode selects AND or OR semantics for the included (or excluded) tags.
type TagMode struct {
	Exclusion bool
	Selected  int
}

func (t TagMode) Name() string {
	if t.Exclusion {
		return "Tag exclusion mode"
	}
	return "Tag inclusion mode"
}
func (t TagMode) Accept(v Visitor) { v.VisitTagMode(t) }

func (t TagMode) Token() string {
	if t.Selected < 0 || t.Selected >= len(TagModeTokens) {
		return TagModeTokens[TagModeAll]
	}
	return TagModeTokens[t.Selected]
}

// Default returns the filter list offered for searches. The sort selection
// matches the ordering of the popular listing.
func Default() List {
	return List{
		Text{Title: "Author", Key: "author"},
		Text{Title: "Artist", Key: "artist"},
		ContentRating{},
		Sort{Selection: &SortSelection{Index: 3, Ascending: false}},
		TagGroup{Kind: Demographic, Tags: Tags(Demographic)},
		TagGroup{Kind: PublicationStatus, Tags: Tags(PublicationStatus)},
		OriginalLanguage{},
		TagGroup{Kind: Content, Tags: Tags(Content)},
		TagGroup{Kind: Format, Tags: Tags(Format)},
		TagGroup{Kind: Genre, Tags: Tags(Genre)},
		TagGroup{Kind: Theme, Tags: Tags(Theme)},
		TagMode{Selected: TagModeAll},
		TagMode{Exclusion: true, Selected: TagModeAny},
	}
}

// Replace returns a copy of the list with the filter of the same name swapped
// for f. f is appended when no filter has that name.
func (l List) Replace(f Filter) List {
	out := make(List, 0, len(l)+1)
	replaced := false
	for _, existing := range l {
		if !replaced && existing.Name() == f.Name() {
			out = append(out, f)
			replaced = true
			continue
		}
		out = append(out, existing)
	}
	if !replaced {
		out = append(out, f)
	}
	return out
}

// WithTag returns a copy of the list with the named tag set to state. The
// lookup is case insensitive and spans every tag group.
func (l List) WithTag(name string, state State) (List, bool) {
	out := make(List, len(l))
	found := false
	for i, f := range l {
		g, ok := f.(TagGroup)
		if !ok {
			out[i] = f
			continue
		}
		tags := make([]Tag, len(g.Tags))
		copy(tags, g.Tags)
		for j := range tags {
			if strings.EqualFold(tags[j].Name, name) {
				tags[j].State = state
				found = true
			}
		}
		out[i] = TagGroup{Kind: g.Kind, Tags: tags}
	}
	return out, found
}

// LanguageIndex returns the position of a source language by name.
func LanguageIndex(name string) (int, bool) {
	for i, l := range SourceLanguages {
		if strings.EqualFold(l.Name, name) {
			return i, true
		}
	}
	return 0, false
}

// SortIndex returns the position of a sortable field by name.
func SortIndex(name string) (int, bool) {
	for i, s := range Sortables {
		if strings.EqualFold(s.Name, name) {
			return i, true
		}
	}
	return 0, false
}
