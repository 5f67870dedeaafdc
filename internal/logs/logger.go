package logs

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	slogmulti "github.com/samber/slog-multi"
)

// Options configures New.
type Options struct {
	// FilePath receives JSON records. Empty disables the file handler.
	FilePath string
	// Terminal receives human readable records, usually os.Stderr.
	Terminal io.Writer
	// Debug lowers both handlers to debug level.
	Debug bool
}

// New builds the process logger: a JSON handler appending to the log file and
// a text handler on the terminal, fanned out with slog-multi. Every record
// carries the session id. The returned close func releases the log file.
//
// A log file that cannot be opened is reported on the terminal handler and
// skipped; logging never stops the CLI.
func New(opts Options) (*slog.Logger, func() error) {
	terminalLevel := slog.LevelWarn
	fileLevel := slog.LevelInfo
	if opts.Debug {
		terminalLevel = slog.LevelDebug
		fileLevel = slog.LevelDebug
	}

	var handlers []slog.Handler

	// local
	var terminalHandler slog.Handler
	if opts.Terminal != nil {
		terminalHandler = slog.NewTextHandler(opts.Terminal, &slog.HandlerOptions{Level: terminalLevel})
		handlers = append(handlers, terminalHandler)
	}

	closeFn := func() error { return nil }
	if opts.FilePath != "" {
		f, err := openLogFile(opts.FilePath)
		if err != nil {
			if terminalHandler != nil {
				record := slog.NewRecord(time.Now(), slog.LevelWarn, "open log file", 0)
				record.Add("path", opts.FilePath, "error", err)
				_ = terminalHandler.Handle(context.Background(), record)
			}
		} else {
			handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: fileLevel}))
			closeFn = f.Close
		}
	}

	if len(handlers) == 0 {
		return slog.New(slog.DiscardHandler), closeFn
	}

	logger := slog.New(slogmulti.Fanout(handlers...)).With("session", uuid.NewString())
	return logger, closeFn
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
}
