package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where and how verbosely the client logs.
type Options struct {
	// Debug lowers the level to debug and switches to the console writer.
	Debug bool
	// File, when set, sends output to a rotating log file instead of
	// stderr. The TUI sets this so log lines don't tear the alt screen.
	File string
	// MaxSizeMB caps the log file size before rotation. Zero means 10.
	MaxSizeMB int
}

// Setup builds the root logger and installs it as the global zerolog
// logger used throughout the client.
func Setup(opts Options) zerolog.Logger {
	level := zerolog.InfoLevel
	if opts.Debug {
		level = zerolog.DebugLevel
	}

	var out io.Writer = os.Stderr
	if opts.File != "" {
		maxSize := opts.MaxSizeMB
		if maxSize == 0 {
			maxSize = 10
		}
		out = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    maxSize,
			MaxBackups: 3,
		}
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Caller().Logger()

	if opts.Debug && opts.File == "" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, FormatTimestamp: func(i any) string {
			return time.Now().Format(time.RFC3339)
		}}).Level(level).With().Stack().Logger()
	}

	log.Logger = logger

	return logger
}
