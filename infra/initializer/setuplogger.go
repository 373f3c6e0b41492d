package initializer

import (
	"io"
	"log/slog"
	"os"

	"github.com/amirasaad/finance-tracker/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// SetupLogger builds the process logger on stdout and installs it as the
// slog default.
func SetupLogger(cfg *config.Log) *slog.Logger {
	slogger := newLogger(os.Stdout, cfg)
	slog.SetDefault(slogger)
	return slogger
}

type levelStyle struct {
	level log.Level
	key   string
	icon  string
	color lipgloss.AdaptiveColor
}

var (
	infoColor  = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	warnColor  = lipgloss.AdaptiveColor{Light: "#EE6FF8", Dark: "#EE6FF8"}
	errorColor = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF6B6B"}
	debugColor = lipgloss.AdaptiveColor{Light: "#7E57C2", Dark: "#7E57C2"}

	levelStyles = []levelStyle{
		{log.ErrorLevel, "error", "❌", errorColor},
		{log.WarnLevel, "warn", "⚠️", warnColor},
		{log.InfoLevel, "info", "ℹ️", infoColor},
		{log.DebugLevel, "debug", "🐛", debugColor},
	}

	// Attribute keys printed in the debug color.
	mutedKeys = []string{"prefix", "caller", "time", "currency", "from", "to"}
)

func styles() *log.Styles {
	s := log.DefaultStyles()
	bold := lipgloss.NewStyle().Bold(true)
	for _, ls := range levelStyles {
		s.Levels[ls.level] = lipgloss.NewStyle().
			SetString(ls.icon).
			Bold(true).
			Padding(0, 1).
			Foreground(ls.color)
		s.Keys[ls.key] = lipgloss.NewStyle().Foreground(ls.color)
		s.Values[ls.key] = bold
	}
	for _, key := range mutedKeys {
		s.Keys[key] = lipgloss.NewStyle().Foreground(debugColor)
		s.Values[key] = bold
	}
	return s
}

func newLogger(w io.Writer, cfg *config.Log) *slog.Logger {
	if cfg == nil {
		cfg = &config.Log{Format: "text", TimeFormat: "2006-01-02 15:04:05"}
	}

	formatter := log.TextFormatter
	switch cfg.Format {
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	logger.SetStyles(styles())
	return slog.New(logger)
}
