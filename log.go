package drapery

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// LogOptions describes logger configuration supplied at creation time.
type LogOptions struct {
	Level         string
	HumanReadable bool
	Writer        io.Writer
}

// NewLogger creates a timestamped zerolog logger. An empty Level means info.
func NewLogger(opts LogOptions) (zerolog.Logger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}

	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return zerolog.Nop(), err
		}
		level = parsed
	}

	var output io.Writer = writer
	if opts.HumanReadable {
		console := zerolog.NewConsoleWriter()
		console.Out = writer
		console.TimeFormat = time.RFC3339
		output = console
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger(), nil
}

var pkgLogger = zerolog.Nop()

// SetLogger installs the package-wide logger. The default discards everything.
func SetLogger(l zerolog.Logger) {
	pkgLogger = l
}

// Logger returns the package-wide logger.
func Logger() *zerolog.Logger {
	return &pkgLogger
}
