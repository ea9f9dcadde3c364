package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPath        = "path"
	KeyField       = "field"
	KeyReason      = "reason"
	KeyWarning     = "warning"
	KeyEnvKey      = "env_key"
	KeyFingerprint = "fingerprint"
	KeyCommand     = "command"
	KeyEvent       = "event"
	KeyReloadID    = "reload_id"
	KeyDurationMS  = "duration_ms"
	KeyError       = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Field(f string) slog.Attr        { return slog.String(KeyField, f) }
func Reason(r string) slog.Attr       { return slog.String(KeyReason, r) }
func Warning(w string) slog.Attr      { return slog.String(KeyWarning, w) }
func EnvKey(k string) slog.Attr       { return slog.String(KeyEnvKey, k) }
func Fingerprint(fp string) slog.Attr { return slog.String(KeyFingerprint, fp) }
func Command(c string) slog.Attr      { return slog.String(KeyCommand, c) }
func Event(e string) slog.Attr        { return slog.String(KeyEvent, e) }
func ReloadID(id string) slog.Attr    { return slog.String(KeyReloadID, id) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
