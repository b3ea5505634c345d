package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyPath       = "path"
	KeySlug       = "slug"
	KeyStage      = "stage"
	KeyTab        = "tab"
	KeyFiles      = "files"
	KeyWarnings   = "warnings"
	KeyDurationMS = "duration_ms"
	KeyURL        = "url"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Slug(s string) slog.Attr         { return slog.String(KeySlug, s) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Tab(label string) slog.Attr      { return slog.String(KeyTab, label) }
func Files(n int) slog.Attr           { return slog.Int(KeyFiles, n) }
func Warnings(n int) slog.Attr        { return slog.Int(KeyWarnings, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
