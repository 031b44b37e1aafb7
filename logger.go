// logger for the package.

package mirror

import "log/slog"

var logger = slog.Default()

// SetLogger replaces the logger used by this package, [slog.Default] until
// then. A nil logger is ignored.
func SetLogger(l *slog.Logger) {
	if l == nil {
		return
	}

	logger = l
}
