package cmd

import (
	"strconv"

	"mangadex/internal/domain"
	"mangadex/internal/request"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var detailsCmd = &cobra.Command{
	Use:   "details <manga id or url>",
	Short: "Show the details of a manga",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a := newApp()

		manga := mangaFromArg(args[0])
		if err := a.source.MangaDetails(cmd.Context(), &manga); err != nil {
			a.fail(err)
		}

		a.out.manga(manga)
	},
}

var chaptersCmd = &cobra.Command{
	Use:   "chapters <manga id or url>",
	Short: "List the chapters of a manga in the configured language",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a := newApp()

		chapters, err := a.source.ChapterList(cmd.Context(), mangaFromArg(args[0]))
		if err != nil {
			a.fail(err)
		}

		a.out.chapters(chapters)
	},
}

var pagesCmd = &cobra.Command{
	Use:   "pages <chapter id>",
	Short: "List the page images of a chapter",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		a := newApp()

		chapter := domain.Chapter{ID: args[0], URL: request.ChapterURL(args[0])}

		if chapterManga != "" {
			chapters, err := a.source.ChapterList(ctx, mangaFromArg(chapterManga))
			if err != nil {
				a.fail(err)
			}

			found, err := findChapter(chapters, args[0])
			if err != nil {
				a.fail(err)
			}
			chapter = found
		}

		pages, err := a.source.PageList(ctx, chapter)
		if err != nil {
			a.fail(err)
		}

		a.out.pages(pages)
	},
}

// mangaFromArg accepts a bare id or any manga url.
func mangaFromArg(arg string) domain.Manga {
	if _, err := strconv.Atoi(arg); err == nil {
		return domain.Manga{ID: arg, URL: domain.MangaURL(arg)}
	}
	return domain.Manga{URL: arg}
}

func findChapter(chapters []domain.Chapter, id string) (domain.Chapter, error) {
	for _, c := range chapters {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Chapter{}, errors.Errorf("chapter %s not found", id)
}
