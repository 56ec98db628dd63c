package market

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const coingeckoURL = "https://api.coingecko.com/api/v3/simple/price?ids=bitcoin,ethereum&vs_currencies=usd&include_24hr_change=true"

type coinPrice struct {
	USD       float64 `json:"usd"`
	USDChange float64 `json:"usd_24h_change"`
}

// CryptoSource fetches BTC and ETH prices from the CoinGecko public API.
type CryptoSource struct {
	client *http.Client
}

// NewCryptoSource initializes the crypto price source.
func NewCryptoSource() *CryptoSource {
	return &CryptoSource{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Name implements Source.
func (s *CryptoSource) Name() string { return "coingecko" }

// Fetch returns a one-line BTC/ETH price summary with 24h change.
func (s *CryptoSource) Fetch(ctx context.Context) (Quote, error) {
	var data map[string]coinPrice
	if err := fetchJSON(ctx, s.client, coingeckoURL, &data); err != nil {
		return Quote{}, err
	}

	var parts []string
	if btc, ok := data["bitcoin"]; ok {
		parts = append(parts, fmt.Sprintf("BTC: $%.0f (%+.1f%%)", btc.USD, btc.USDChange))
	}
	if eth, ok := data["ethereum"]; ok {
		parts = append(parts, fmt.Sprintf("ETH: $%.0f (%+.1f%%)", eth.USD, eth.USDChange))
	}
	if len(parts) == 0 {
		return Quote{}, fmt.Errorf("no crypto data in response")
	}

	return Quote{Source: s.Name(), Text: "Crypto: " + strings.Join(parts, " | ")}, nil
}
