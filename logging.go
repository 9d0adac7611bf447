package landing

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// NewLogger returns the process logger. format "json" writes one JSON object
// per line; anything else uses the console writer, colored only on a TTY.
func NewLogger(level, format string, f *os.File) (zerolog.Logger, error) {
	lvl := zerolog.InfoLevel
	if level != "" {
		var err error
		lvl, err = zerolog.ParseLevel(level)
		if err != nil {
			return zerolog.Logger{}, fmt.Errorf("log level %q: %w", level, err)
		}
	}
	var w io.Writer = f
	if format != "json" {
		w = consoleWriter(f)
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

func consoleWriter(f *os.File) io.Writer {
	noColor := !isatty.IsTerminal(f.Fd())
	w := zerolog.ConsoleWriter{Out: f, NoColor: noColor, TimeFormat: time.DateTime}
	if !noColor {
		w.FormatPrepare = func(m map[string]any) error {
			// request lines read better as one compact message
			if sys, ok := m["sys"]; ok && sys == "http" {
				m["message"] = fmt.Sprintf("%v %-5v %v (%vms)", m["status"], m["method"], m["uri"], m["latency_ms"])
				for _, k := range []string{"sys", "status", "method", "uri", "latency_ms", "request_id"} {
					delete(m, k)
				}
			}
			return nil
		}
	}
	return w
}
