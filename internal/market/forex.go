package market

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"
)

// ForexSource fetches the USD/INR rate from the floatrates daily XML feed.
type ForexSource struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewForexSource initializes the forex source against the given feed URL.
func NewForexSource(url string, log *logrus.Logger) *ForexSource {
	return &ForexSource{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// Name implements Source.
func (f *ForexSource) Name() string { return "floatrates" }

// USDINR returns the current USD to INR exchange rate.
func (f *ForexSource) USDINR(ctx context.Context) (float64, error) {
	body, err := fetchBody(ctx, f.client, f.url)
	if err != nil {
		return 0, err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return 0, fmt.Errorf("failed to parse XML: %w", err)
	}

	for _, item := range doc.FindElements("//item") {
		target := item.FindElement("./targetCurrency")
		if target == nil || target.Text() != "INR" {
			continue
		}
		rateEl := item.FindElement("./exchangeRate")
		if rateEl == nil {
			return 0, fmt.Errorf("exchangeRate element not found for INR")
		}
		rate, err := strconv.ParseFloat(rateEl.Text(), 64)
		if err != nil {
			return 0, fmt.Errorf("failed to parse rate: %w", err)
		}
		return rate, nil
	}
	return 0, fmt.Errorf("no INR rate in feed")
}

// Fetch implements Source with a one-line USD/INR summary.
func (f *ForexSource) Fetch(ctx context.Context) (Quote, error) {
	rate, err := f.USDINR(ctx)
	if err != nil {
		return Quote{}, err
	}
	f.log.Debugf("fetched USD/INR rate: %.2f", rate)
	return Quote{Source: f.Name(), Text: fmt.Sprintf("Forex: 1 USD = ₹%.2f", rate)}, nil
}
