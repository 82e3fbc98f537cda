package disco

import (
	"context"
	"log/slog"
	"net/http"
)

// WithHeader returns an editor that sets a header on the outbound request.
func WithHeader(key, value string) RequestEditorFn {
	return func(ctx context.Context, req *http.Request) error {
		req.Header.Set(key, value)
		return nil
	}
}

// WithUserAgent returns an editor that sets the User-Agent header.
func WithUserAgent(ua string) RequestEditorFn {
	return WithHeader("User-Agent", ua)
}

// WithLogging returns an editor that logs the outbound request after all
// preceding editors have run, so the logged method and URL are what
// actually goes on the wire.
func WithLogging(logger *slog.Logger) RequestEditorFn {
	return func(ctx context.Context, req *http.Request) error {
		logger.DebugContext(ctx, "outbound request",
			slog.String("method", req.Method),
			slog.String("url", req.URL.String()),
		)
		return nil
	}
}
