package market

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// yahooChartResponse mirrors the Yahoo Finance chart endpoint payload.
type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				PreviousClose      float64 `json:"previousClose"`
			} `json:"meta"`
		} `json:"result"`
		Error interface{} `json:"error"`
	} `json:"chart"`
}

// StockIndexSource fetches US index levels from the Yahoo Finance chart API.
type StockIndexSource struct {
	client *http.Client
}

// NewStockIndexSource initializes the stock index source.
func NewStockIndexSource() *StockIndexSource {
	return &StockIndexSource{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Name implements Source.
func (s *StockIndexSource) Name() string { return "yahoo-finance" }

// Fetch returns a one-line summary of the S&P 500 and NASDAQ. An index whose
// lookup fails is left out; the fetch only errors when neither is available.
func (s *StockIndexSource) Fetch(ctx context.Context) (Quote, error) {
	indices := []struct {
		label  string
		symbol string
	}{
		{"S&P 500", "%5EGSPC"},
		{"NASDAQ", "%5EIXIC"},
	}

	var parts []string
	for _, idx := range indices {
		url := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&range=1d", idx.symbol)
		var data yahooChartResponse
		if err := fetchJSON(ctx, s.client, url, &data); err != nil {
			continue
		}
		if len(data.Chart.Result) == 0 {
			continue
		}
		meta := data.Chart.Result[0].Meta
		change := 0.0
		if meta.PreviousClose != 0 {
			change = (meta.RegularMarketPrice - meta.PreviousClose) / meta.PreviousClose * 100
		}
		parts = append(parts, fmt.Sprintf("%s: %.2f (%+.2f%%)", idx.label, meta.RegularMarketPrice, change))
	}

	if len(parts) == 0 {
		return Quote{}, fmt.Errorf("no index data available")
	}
	return Quote{
		Source: s.Name(),
		Text:   fmt.Sprintf("US Markets (%s): %s", time.Now().Format("2006-01-02"), strings.Join(parts, " | ")),
	}, nil
}
