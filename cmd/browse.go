package cmd

import (
	"strings"

	"mangadex/internal/filter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var popularCmd = &cobra.Command{
	Use:   "popular",
	Short: "List the most popular manga",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		a := newApp()

		result, err := a.source.PopularManga(cmd.Context(), page)
		if err != nil {
			a.fail(err)
		}

		a.out.mangaPage("Popular", page, result)
	},
}

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "List the latest updated manga",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		a := newApp()

		result, err := a.source.LatestUpdates(cmd.Context(), page)
		if err != nil {
			a.fail(err)
		}

		a.out.mangaPage("Latest updates", page, result)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search manga by title and filters",
	Long: `Search manga by title and filters.

Use "id:<id>" as the query to look up a single manga by its id.
Run the filters command to list every tag, sort option and language.`,
	Run: func(cmd *cobra.Command, args []string) {
		a := newApp()

		filters, err := searchFilters(a.source.Filters())
		if err != nil {
			a.fail(err)
		}

		query := strings.Join(args, " ")

		result, err := a.source.SearchManga(cmd.Context(), page, query, filters)
		if err != nil {
			a.fail(err)
		}

		a.out.mangaPage("Search results for \""+query+"\"", page, result)
	},
}

var ratingOverrides = map[string]int{
	"default": filter.RatingDefault,
	"all":     filter.RatingShowAll,
	"only":    filter.RatingShowOnly,
	"none":    filter.RatingShowNone,
}

var tagModes = map[string]int{
	"all": filter.TagModeAll,
	"any": filter.TagModeAny,
}

// searchFilters applies the search flags to the default filter list.
func searchFilters(filters filter.List) (filter.List, error) {
	var ok bool

	for _, name := range includeTags {
		if filters, ok = filters.WithTag(strings.TrimSpace(name), filter.Included); !ok {
			return nil, errors.Errorf("unknown tag %q", name)
		}
	}
	for _, name := range excludeTags {
		if filters, ok = filters.WithTag(strings.TrimSpace(name), filter.Excluded); !ok {
			return nil, errors.Errorf("unknown tag %q", name)
		}
	}

	filters = filters.Replace(filter.Text{Title: "Author", Key: "author", Value: author})
	filters = filters.Replace(filter.Text{Title: "Artist", Key: "artist", Value: artist})

	sortIndex, ok := filter.SortIndex(sortBy)
	if !ok {
		return nil, errors.Errorf("unknown sort %q", sortBy)
	}
	filters = filters.Replace(filter.Sort{Selection: &filter.SortSelection{Index: sortIndex, Ascending: ascending}})

	rating, ok := ratingOverrides[strings.ToLower(r18)]
	if !ok {
		return nil, errors.Errorf("unknown r18 option %q", r18)
	}
	filters = filters.Replace(filter.ContentRating{Selected: rating})

	langIndex, ok := filter.LanguageIndex(origLanguage)
	if !ok {
		return nil, errors.Errorf("unknown original language %q", origLanguage)
	}
	filters = filters.Replace(filter.OriginalLanguage{Selected: langIndex})

	inc, ok := tagModes[strings.ToLower(inclusionMode)]
	if !ok {
		return nil, errors.Errorf("unknown inclusion mode %q", inclusionMode)
	}
	filters = filters.Replace(filter.TagMode{Selected: inc})

	exc, ok := tagModes[strings.ToLower(exclusionMode)]
	if !ok {
		return nil, errors.Errorf("unknown exclusion mode %q", exclusionMode)
	}
	filters = filters.Replace(filter.TagMode{Exclusion: true, Selected: exc})

	return filters, nil
}
