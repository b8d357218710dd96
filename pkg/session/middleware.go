package session

import (
	"context"
	"log/slog"
	"net/http"
)

// Middleware wires the coordinator's request phases into net/http: prepare
// before the handler runs, after immediately before the first header flush
// (so the token cookie can still be written), done once the handler has
// returned. The group is available to the handler through FromContext.
func (c *Coordinator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		g, err := c.Prepare(r.Context(), r)
		if err != nil {
			c.logger.Error("session: prepare failed", slog.String("error", err.Error()))
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}

		pw := &phasedWriter{
			ResponseWriter: w,
			coordinator:    c,
			group:          g,
			ctx:            r.Context(),
		}

		next.ServeHTTP(pw, r.WithContext(WithGroup(r.Context(), g)))

		// The handler may have sent nothing; the cookie decision still runs.
		pw.compose()

		if err := c.Done(r.Context(), g); err != nil {
			c.logger.Error("session: done phase failed", slog.String("error", err.Error()))
		}
	})
}

// phasedWriter defers the after phase until headers are about to flush.
// net/http freezes headers on the first Write or WriteHeader, and the after
// phase is the last safe moment to set the session cookie.
type phasedWriter struct {
	http.ResponseWriter

	coordinator *Coordinator
	group       *Group
	ctx         context.Context
	composed    bool
}

func (w *phasedWriter) compose() {
	if w.composed {
		return
	}
	w.composed = true

	if err := w.coordinator.After(w.ctx, w.ResponseWriter, w.group); err != nil {
		w.coordinator.logger.Error("session: after phase failed", slog.String("error", err.Error()))
	}
}

func (w *phasedWriter) WriteHeader(statusCode int) {
	w.compose()
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *phasedWriter) Write(b []byte) (int, error) {
	w.compose()
	return w.ResponseWriter.Write(b)
}

// Unwrap supports http.ResponseController.
func (w *phasedWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
