package displaylist

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler drops every record. It reports itself disabled so callers
// never build the attributes.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var (
	silent    = slog.New(nopHandler{})
	activeLog atomic.Pointer[slog.Logger]
)

func init() {
	activeLog.Store(silent)
}

// SetLogger installs the logger shared by displaylist, layer and text.
// Nothing is logged until it is called; nil restores the silent logger.
//
// Debug records describe bounds decisions: partial bounds returned for an
// unbounded list, save layers that flood their parent clip, raster cache
// admission and eviction, per-frame damage. Warn records report misuse the
// package recovered from, such as a Restore with no open scope.
//
//	displaylist.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	activeLog.Store(l)
}

// Logger returns the installed logger. It is safe for concurrent use.
func Logger() *slog.Logger {
	return activeLog.Load()
}
