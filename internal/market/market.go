// Package market fetches best-effort live market data for prompt enrichment.
// Every lookup is allowed to fail; the caller always receives a usable string.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Quote is a fetched market data point tagged with the source that produced it.
type Quote struct {
	Source string `json:"source"`
	Text   string `json:"text"`
}

// Source is a single best-effort market data lookup.
type Source interface {
	Name() string
	Fetch(ctx context.Context) (Quote, error)
}

// Service composes quotes from multiple sources into a prompt-ready summary.
type Service struct {
	sources []Source
	log     *logrus.Logger
}

// NewService initializes a market data service over the given sources.
func NewService(log *logrus.Logger, sources ...Source) *Service {
	return &Service{sources: sources, log: log}
}

// Summary fetches every source and renders the available quotes. Failed
// sources are skipped; when nothing is available the summary says so instead
// of raising. This call never fails.
func (s *Service) Summary(ctx context.Context) string {
	lines := []string{fmt.Sprintf("Data fetched at: %s", time.Now().Format("2006-01-02 15:04"))}

	for _, src := range s.sources {
		quote, err := src.Fetch(ctx)
		if err != nil {
			s.log.Debugf("market source %s unavailable: %v", src.Name(), err)
			continue
		}
		lines = append(lines, fmt.Sprintf("%s [source: %s]", quote.Text, quote.Source))
	}

	if len(lines) == 1 {
		lines = append(lines, "[Live market data unavailable right now]")
	}
	return strings.Join(lines, "\n")
}

// fetchJSON performs a GET with a browser user agent and decodes the JSON body.
func fetchJSON(ctx context.Context, client *http.Client, url string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// fetchBody performs a GET and returns the raw body.
func fetchBody(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}
