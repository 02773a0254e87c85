package cmd

import (
	"fmt"
	"os"
	"strings"

	"mangadex/internal/buildinfo"
	"mangadex/internal/config"
	"mangadex/internal/domain"
	"mangadex/internal/filter"

	"github.com/manifoldco/promptui"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "List the search filters with their tags and defaults",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		newPrinter(os.Stdout, noColor).filters(filter.Default())
	},
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the current preferences",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		cfg := config.New(configPath, buildinfo.Version)
		out := newPrinter(os.Stdout, noColor)

		out.preferences(cfg.Preferences())
		fmt.Println()
		out.table([]string{"Setting", "Options"}, [][]string{
			{"language", localeOptions()},
			{"showR18", optionValues(domain.ContentRatings)},
			{"thumbnailQuality", optionValues(domain.ThumbnailQualities)},
			{"imageServer", optionValues(domain.ImageServers)},
		})
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [setting] [value]",
	Short: "Change a preference and save it to the config file",
	Long: `Change a preference and save it to the config file.

Missing arguments are asked for interactively.`,
	Args: cobra.MaximumNArgs(2),
	Run: func(_ *cobra.Command, args []string) {
		cfg := config.New(configPath, buildinfo.Version)
		out := newPrinter(os.Stdout, noColor)

		key, value, err := settingArgs(args)
		if err != nil {
			out.failure(err)
			os.Exit(1)
		}

		if err := cfg.SetPreference(key, value); err != nil {
			out.failure(err)
			os.Exit(1)
		}

		out.ok(fmt.Sprintf("%s set to %q", key, value))
	},
}

type setting struct {
	key     string
	options []domain.Option
}

func settingsList() []setting {
	locales := make([]domain.Option, 0, len(domain.Locales))
	for _, l := range domain.Locales {
		locales = append(locales, domain.Option{Value: l.Lang, Label: l.Lang})
	}

	return []setting{
		{key: "language", options: locales},
		{key: "showR18", options: domain.ContentRatings},
		{key: "thumbnailQuality", options: domain.ThumbnailQualities},
		{key: "imageServer", options: domain.ImageServers},
	}
}

// settingArgs fills in the setting and value that were not passed as args.
func settingArgs(args []string) (string, string, error) {
	settings := settingsList()

	var s setting
	if len(args) > 0 {
		found := false
		for _, candidate := range settings {
			if candidate.key == args[0] {
				s, found = candidate, true
				break
			}
		}
		if !found {
			return "", "", errors.Errorf("unknown setting %q", args[0])
		}
	} else {
		keys := make([]string, 0, len(settings))
		for _, candidate := range settings {
			keys = append(keys, candidate.key)
		}

		prompt := promptui.Select{
			Label: "Select setting",
			Items: keys,
		}

		idx, _, err := prompt.Run()
		if err != nil {
			return "", "", errors.New("selection cancelled")
		}
		s = settings[idx]
	}

	if len(args) > 1 {
		return s.key, args[1], nil
	}

	items := make([]string, 0, len(s.options))
	for _, o := range s.options {
		items = append(items, o.Value+"  ("+o.Label+")")
	}

	prompt := promptui.Select{
		Label: "Select " + s.key,
		Items: items,
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return "", "", errors.New("selection cancelled")
	}

	return s.key, s.options[idx].Value, nil
}

func optionValues(options []domain.Option) string {
	values := make([]string, 0, len(options))
	for _, o := range options {
		values = append(values, o.Value)
	}
	return strings.Join(values, ", ")
}

func localeOptions() string {
	langs := make([]string, 0, len(domain.Locales))
	for _, l := range domain.Locales {
		langs = append(langs, l.Lang)
	}
	return strings.Join(langs, ", ")
}
