package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"mangadex/internal/domain"
	"mangadex/internal/logger"

	"github.com/spf13/cobra"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Monitor the configured manga for new chapters",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		a := newApp()
		log := a.log

		if err := a.cfg.UpdateConfig(); err != nil {
			log.Error().Err(err).Msgf("error updating config")
		}

		// init dynamic config
		a.cfg.DynamicReload(log)

		if len(a.cfg.Config.MonitoredManga) == 0 {
			log.Fatal().Msg("no manga configured in monitoredManga")
		}

		tracker := newChapterTracker(a.source, log)

		log.Info().Msg("starting to monitor configured manga")

		interval := time.Duration(a.cfg.Config.CheckInterval) * time.Minute
		if interval <= 0 {
			interval = 15 * time.Minute
		}

		done := make(chan struct{})
		go func() {
			defer close(done)
			monitorLoop(ctx, interval, func() {
				tracker.checkAll(ctx, a.cfg.Config.MonitoredManga)
			})
		}()

		// set up a channel to catch signals for graceful shutdown
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)

		fmt.Printf("received signal: %s, stopping monitoring.\n", <-sigCh)
		cancel()
		<-done
	},
}

// monitorLoop runs check right away and then on every tick until ctx is done.
// It returns only after the running check has finished.
func monitorLoop(ctx context.Context, interval time.Duration, check func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// the first pass records what is already released
	check()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		}
	}
}

type chapterLister interface {
	ChapterList(ctx context.Context, manga domain.Manga) ([]domain.Chapter, error)
}

// chapterTracker remembers the chapter ids seen per manga and logs the ones
// that show up later.
type chapterTracker struct {
	source chapterLister
	log    logger.Logger

	mu   sync.Mutex
	seen map[string]map[string]struct{}
}

func newChapterTracker(source chapterLister, log logger.Logger) *chapterTracker {
	return &chapterTracker{
		source: source,
		log:    log,
		seen:   make(map[string]map[string]struct{}),
	}
}

// checkAll checks every monitored manga concurrently and waits for all of them.
func (t *chapterTracker) checkAll(ctx context.Context, manga map[string]string) {
	var wg sync.WaitGroup
	for name, id := range manga {
		wg.Add(1)

		go func() {
			defer wg.Done()
			t.check(ctx, name, id)
		}()
	}

	wg.Wait()
}

// check fetches the chapter list and returns the chapters that are new since
// the previous check. The first check of a manga only records its chapters.
func (t *chapterTracker) check(ctx context.Context, name, id string) []domain.Chapter {
	mLog := t.log.With().Str("manga", name).Str("id", id).Logger()

	chapters, err := t.source.ChapterList(ctx, domain.Manga{ID: id, URL: domain.MangaURL(id)})
	if err != nil {
		mLog.Error().Err(err).Msg("error getting manga chapters")
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	known, ok := t.seen[id]
	if !ok {
		known = make(map[string]struct{}, len(chapters))
		for _, c := range chapters {
			known[c.ID] = struct{}{}
		}
		t.seen[id] = known

		mLog.Debug().Msgf("tracking %d chapters", len(chapters))
		return nil
	}

	var fresh []domain.Chapter
	for _, c := range chapters {
		if _, ok := known[c.ID]; ok {
			continue
		}
		known[c.ID] = struct{}{}
		fresh = append(fresh, c)

		mLog.Info().Str("scanlator", c.Scanlator).Msgf("new chapter %q (%s)", c.Name, c.ID)
	}

	return fresh
}
