package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/yanqian/belaycheck/internal/infra/config"
)

const retryBodyLimit = 1 << 20

var errBodyTooLarge = errors.New("request body exceeds retry limit")

type replayKey struct{}

// isReplay reports whether r is a retry of a request that already passed
// admission once.
func isReplay(r *http.Request) bool {
	_, ok := r.Context().Value(replayKey{}).(int)
	return ok
}

// withRetry replays POST requests that failed with 503, which is how storage
// outages surface. Every other response is passed through on the first try.
func withRetry(handler http.Handler, cfg config.RetryConfig, logger *slog.Logger) http.Handler {
	if !cfg.Enabled || cfg.MaxAttempts <= 1 {
		return handler
	}
	excluded := make(map[string]struct{}, len(cfg.Exclude))
	for _, path := range cfg.Exclude {
		excluded[path] = struct{}{}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, skip := excluded[r.URL.Path]; skip || r.Method != http.MethodPost {
			handler.ServeHTTP(w, r)
			return
		}
		body, err := bufferBody(r)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, errBodyTooLarge) {
				status = http.StatusRequestEntityTooLarge
			}
			http.Error(w, err.Error(), status)
			return
		}

		var buffered *bufferedResponse
		for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
			if attempt > 1 && !sleepContext(r, backoff(cfg.BaseBackoff, attempt)) {
				break
			}
			buffered = newBufferedResponse()
			ctx := r.Context()
			if attempt > 1 {
				ctx = context.WithValue(ctx, replayKey{}, attempt)
			}
			replay := r.Clone(ctx)
			replay.Body = io.NopCloser(bytes.NewReader(body))
			replay.ContentLength = int64(len(body))

			handler.ServeHTTP(buffered, replay)
			if buffered.status != http.StatusServiceUnavailable {
				break
			}
			if attempt < cfg.MaxAttempts {
				logger.Warn("storage unavailable, retrying request", "path", r.URL.Path, "attempt", attempt)
			}
		}
		buffered.flushTo(w)
	})
}

func backoff(base time.Duration, attempt int) time.Duration {
	return base * time.Duration(1<<(attempt-2))
}

// sleepContext waits for d and reports false when the client went away first.
func sleepContext(r *http.Request, d time.Duration) bool {
	if d <= 0 {
		return r.Context().Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-r.Context().Done():
		return false
	}
}

func bufferBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()
	data, err := io.ReadAll(io.LimitReader(r.Body, retryBodyLimit+1))
	if err != nil {
		return nil, err
	}
	if len(data) > retryBodyLimit {
		return nil, errBodyTooLarge
	}
	return data, nil
}

type bufferedResponse struct {
	header http.Header
	body   bytes.Buffer
	status int
	sent   bool
}

func newBufferedResponse() *bufferedResponse {
	return &bufferedResponse{header: make(http.Header), status: http.StatusOK}
}

func (b *bufferedResponse) Header() http.Header { return b.header }

func (b *bufferedResponse) WriteHeader(status int) {
	if b.sent {
		return
	}
	b.status = status
	b.sent = true
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	b.sent = true
	return b.body.Write(p)
}

func (b *bufferedResponse) flushTo(w http.ResponseWriter) {
	dst := w.Header()
	for k, values := range b.header {
		dst[k] = append([]string(nil), values...)
	}
	w.WriteHeader(b.status)
	if b.body.Len() > 0 {
		_, _ = w.Write(b.body.Bytes())
	}
}
