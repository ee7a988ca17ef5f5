package sprite

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"gsnake-editor-api/internal/shared/errors"
)

const maxSpriteBytes = 1 << 20

// Loader fetches the editor's sprite sheet from its configured URL and
// sanitizes the markup before it is ever handed to a browser. The URL is
// treated as trusted but still defended: either the whole document passes
// sanitization or nothing is served.
type Loader struct {
	url    string
	client *http.Client
	logger *slog.Logger

	mu        sync.Mutex
	sanitized []byte
}

func NewLoader(url string, logger *slog.Logger) *Loader {
	return &Loader{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Fetch returns the sanitized sprite markup, fetching it on first use and
// caching the result for the life of the process.
func (l *Loader) Fetch(ctx context.Context) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.sanitized != nil {
		return l.sanitized, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, errors.WrapInternal("build sprite request", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, errors.WrapExternal("Sprite source unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Externalf("Sprite source returned status %d", resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "image/svg+xml") {
		return nil, errors.Externalf("Sprite source returned unexpected content type %q", ct)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSpriteBytes))
	if err != nil {
		return nil, errors.WrapExternal("Sprite download failed", err)
	}

	sanitized, err := Sanitize(body)
	if err != nil {
		return nil, err
	}

	l.sanitized = sanitized
	l.logger.Debug("Sprite sheet fetched and sanitized",
		"url", l.url,
		"raw_bytes", len(body),
		"sanitized_bytes", len(sanitized),
	)
	return sanitized, nil
}
