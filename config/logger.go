package config

import (
	"io"
	"log/slog"
	"os"
)

// NewLogger builds the process logger; format is "json" or "text".
func NewLogger(format string, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var h slog.Handler
	if format == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h).With(slog.String("service", "guate-servicios"))
}

func SetupLogger(cfg *Config) {
	slog.SetDefault(NewLogger(cfg.LogFormat, nil))
}
