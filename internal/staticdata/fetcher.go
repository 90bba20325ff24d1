package staticdata

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Fetcher downloads the document. Each call is a single GET with no retry
// and no caching.
type Fetcher struct {
	httpClient *resty.Client
	url        string
	logger     *zap.Logger
}

func NewFetcher(url string, timeout time.Duration, logger *zap.Logger) *Fetcher {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Fetcher{httpClient: client, url: url, logger: logger}
}

// Fetch returns the validated document.
func (f *Fetcher) Fetch(ctx context.Context) (*Document, error) {
	resp, err := f.httpClient.R().
		SetContext(ctx).
		Get(f.url)
	if err != nil {
		f.logger.Error("document request failed", zap.String("url", f.url), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrDocumentUnavailable, err)
	}
	if !resp.IsSuccess() {
		f.logger.Warn("document request returned error status",
			zap.String("url", f.url),
			zap.Int("status_code", resp.StatusCode()),
		)
		return nil, fmt.Errorf("%w: status %d", ErrDocumentUnavailable, resp.StatusCode())
	}

	doc, err := Decode(resp.Body())
	if err != nil {
		f.logger.Error("document is malformed", zap.String("url", f.url), zap.Error(err))
		return nil, err
	}
	return doc, nil
}
