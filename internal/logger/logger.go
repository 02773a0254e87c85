package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"mangadex/internal/domain"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger interface {
	Log() *zerolog.Event
	Fatal() *zerolog.Event
	Err(err error) *zerolog.Event
	Error() *zerolog.Event
	Warn() *zerolog.Event
	Info() *zerolog.Event
	Trace() *zerolog.Event
	Debug() *zerolog.Event
	With() zerolog.Context
	SetLogLevel(level string)
}

// DefaultLogger is safe for concurrent use. The level can change at runtime
// from the config watcher while other goroutines are logging.
type DefaultLogger struct {
	mu      sync.RWMutex
	log     zerolog.Logger
	level   zerolog.Level
	writers []io.Writer
}

// New logs to stderr, keeping stdout free for command output, and to a
// rotating file when logPath is set.
func New(cfg *domain.Config) Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	writers := []io.Writer{zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime}}

	if cfg.LogPath != "" {
		writers = append(writers,
			&lumberjack.Logger{
				Filename:   cfg.LogPath,
				MaxSize:    cfg.LogMaxSize, // megabytes
				MaxBackups: cfg.LogMaxBackups,
			},
		)
	}

	return newLogger(cfg.LogLevel, writers...)
}

func newLogger(level string, writers ...io.Writer) *DefaultLogger {
	l := &DefaultLogger{
		writers: writers,
		level:   zerolog.InfoLevel,
		log:     zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger(),
	}
	l.SetLogLevel(level)

	return l
}

// Nop discards everything.
func Nop() Logger {
	return disabled(io.Discard)
}

func disabled(w io.Writer) *DefaultLogger {
	return &DefaultLogger{
		log:     zerolog.New(w).Level(zerolog.Disabled),
		level:   zerolog.Disabled,
		writers: []io.Writer{w},
	}
}

func (l *DefaultLogger) SetLogLevel(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.level = lvl
	l.log = l.log.Level(lvl)
}

// Level reports the current minimum level.
func (l *DefaultLogger) Level() zerolog.Level {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.level
}

func (l *DefaultLogger) current() *zerolog.Logger {
	l.mu.RLock()
	log := l.log
	l.mu.RUnlock()

	return &log
}

func (l *DefaultLogger) Log() *zerolog.Event {
	return l.current().Log()
}

func (l *DefaultLogger) Fatal() *zerolog.Event {
	return l.current().Fatal()
}

func (l *DefaultLogger) Err(err error) *zerolog.Event {
	if err != nil {
		return l.current().Error().Err(err)
	}

	return l.current().Info()
}

func (l *DefaultLogger) Error() *zerolog.Event {
	return l.current().Error()
}

func (l *DefaultLogger) Warn() *zerolog.Event {
	return l.current().Warn()
}

func (l *DefaultLogger) Info() *zerolog.Event {
	return l.current().Info()
}

func (l *DefaultLogger) Trace() *zerolog.Event {
	return l.current().Trace()
}

func (l *DefaultLogger) Debug() *zerolog.Event {
	return l.current().Debug()
}

func (l *DefaultLogger) With() zerolog.Context {
	return l.current().With()
}
