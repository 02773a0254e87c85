package cmd

import "github.com/spf13/cobra"

var (
	configPath string
	noColor    bool

	page int

	includeTags   []string
	excludeTags   []string
	author        string
	artist        string
	sortBy        string
	ascending     bool
	r18           string
	origLanguage  string
	inclusionMode string
	exclusionMode string

	chapterManga string
)

func initRootFlags() {
	rootCmd.PersistentFlags().StringVarP(
		&configPath,
		"config",
		"c",
		"",
		"specifies the path to your config file",
	)
	rootCmd.PersistentFlags().BoolVar(
		&noColor,
		"no-color",
		false,
		"disables colored output",
	)
}

func initListingFlags() {
	for _, c := range []*cobra.Command{popularCmd, latestCmd, searchCmd} {
		c.Flags().IntVarP(
			&page,
			"page",
			"p",
			1,
			"specifies the result page",
		)
	}
}

func initSearchFlags() {
	searchCmd.Flags().StringSliceVarP(
		&includeTags,
		"include",
		"i",
		nil,
		"tags, demographics or publication statuses to include, e.g. -i Action,Shounen",
	)
	searchCmd.Flags().StringSliceVarP(
		&excludeTags,
		"exclude",
		"e",
		nil,
		"tags to exclude",
	)
	searchCmd.Flags().StringVar(
		&author,
		"author",
		"",
		"filters by author",
	)
	searchCmd.Flags().StringVar(
		&artist,
		"artist",
		"",
		"filters by artist",
	)
	searchCmd.Flags().StringVarP(
		&sortBy,
		"sort",
		"s",
		"Rating",
		"sorts by one of: Update date, Alphabetically, Number of comments, Rating, Views, Follows",
	)
	searchCmd.Flags().BoolVar(
		&ascending,
		"asc",
		false,
		"sorts ascending instead of descending",
	)
	searchCmd.Flags().StringVar(
		&r18,
		"r18",
		"default",
		"overrides the adult content setting for this search. options: default, all, only, none",
	)
	searchCmd.Flags().StringVarP(
		&origLanguage,
		"original-language",
		"o",
		"All",
		"filters by original language, e.g. Japanese",
	)
	searchCmd.Flags().StringVar(
		&inclusionMode,
		"inclusion-mode",
		"all",
		"matches all or any of the included tags",
	)
	searchCmd.Flags().StringVar(
		&exclusionMode,
		"exclusion-mode",
		"any",
		"excludes manga with all or any of the excluded tags",
	)
}

func initPagesFlags() {
	pagesCmd.Flags().StringVarP(
		&chapterManga,
		"manga",
		"m",
		"",
		"specifies the manga of the chapter, used to look up its scanlator",
	)
}
