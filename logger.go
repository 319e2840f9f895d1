package echosim

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/gg"
)

// nopHandler discards every record. Enabled reports false so callers skip
// attribute formatting on the per-frame path.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for echosim, its sub-packages and the
// gg rasterizer underneath. By default nothing is logged.
//
// Pass nil to restore silent behaviour. SetLogger may be called while
// engines are ticking on other goroutines.
//
// Levels:
//   - [slog.LevelDebug]: per-tick diagnostics (skipped ticks, resizes)
//   - [slog.LevelInfo]: lifecycle (engine created, snapshot written)
//   - [slog.LevelWarn]: non-fatal problems (missing font, rasterizer errors)
//
// Example:
//
//	echosim.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	gg.SetLogger(l)
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the logger shared by echosim and its sub-packages.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
