package config

import (
	"os"

	"github.com/charmbracelet/log"
)

// Logger is the structured logger the pipeline reports decisions
// through (modulation pick, stage skips, field emission). It
// generalizes the teacher's single global color-coded severity level
// (log.go / textcolor.go's text_color_set) into an injectable value:
// there is no package-level logger here, callers supply one via
// urh.WithLogger or get Discard()'s silent default.
type Logger = *log.Logger

// NewLogger returns a charmbracelet/log logger writing to stderr at
// warn level, matching the teacher's default of only surfacing
// DW_COLOR_ERROR-equivalent output unless a caller asks for more.
func NewLogger() Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           log.WarnLevel,
		ReportTimestamp: false,
	})
}

// Discard returns a logger that drops everything, for callers (and
// tests) that want the pipeline's diagnostics silenced entirely.
func Discard() Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{})
	l.SetLevel(log.FatalLevel + 1)
	return l
}
