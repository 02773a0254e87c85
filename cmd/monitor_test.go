package cmd

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"mangadex/internal/domain"
	"mangadex/internal/logger"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type fakeLister struct {
	chapters map[string][]domain.Chapter
	err      error
}

func (f *fakeLister) ChapterList(_ context.Context, manga domain.Manga) ([]domain.Chapter, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.chapters[manga.ID], nil
}

func TestChapterTracker(t *testing.T) {
	lister := &fakeLister{chapters: map[string][]domain.Chapter{
		"5": {{ID: "1", Name: "Ch.1"}, {ID: "2", Name: "Ch.2"}},
	}}
	tracker := newChapterTracker(lister, logger.Nop())

	ctx := context.Background()

	assert.Empty(t, tracker.check(ctx, "One Piece", "5"))
	assert.Empty(t, tracker.check(ctx, "One Piece", "5"))

	lister.chapters["5"] = append([]domain.Chapter{{ID: "3", Name: "Ch.3"}}, lister.chapters["5"]...)

	fresh := tracker.check(ctx, "One Piece", "5")
	assert.Equal(t, []domain.Chapter{{ID: "3", Name: "Ch.3"}}, fresh)

	assert.Empty(t, tracker.check(ctx, "One Piece", "5"))
}

func TestChapterTrackerError(t *testing.T) {
	lister := &fakeLister{err: errors.Wrap(domain.ErrTransport, "down")}
	tracker := newChapterTracker(lister, logger.Nop())

	assert.Empty(t, tracker.check(context.Background(), "One Piece", "5"))

	// a failed check records nothing, so the next success is the baseline
	lister.err = nil
	lister.chapters = map[string][]domain.Chapter{"5": {{ID: "1"}}}
	assert.Empty(t, tracker.check(context.Background(), "One Piece", "5"))
}

func TestChapterTrackerCheckAll(t *testing.T) {
	lister := &fakeLister{chapters: map[string][]domain.Chapter{
		"5":  {{ID: "1"}},
		"42": {{ID: "7"}},
	}}
	tracker := newChapterTracker(lister, logger.Nop())

	tracker.checkAll(context.Background(), map[string]string{"One Piece": "5", "Berserk": "42"})

	assert.Len(t, tracker.seen, 2)
	assert.Contains(t, tracker.seen["42"], "7")
}

func TestMonitorLoopWaitsForRunningCheck(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls int32
	var finished atomic.Bool

	monitorLoop(ctx, time.Hour, func() {
		atomic.AddInt32(&calls, 1)
		cancel()
		time.Sleep(20 * time.Millisecond)
		finished.Store(true)
	})

	assert.True(t, finished.Load())
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
