package market

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	goodReturnsGoldURL = "https://www.goodreturns.in/gold-rates.html"
	metalsSpotURL      = "https://api.metals.live/v1/spot"
	gramsPerTroyOunce  = 31.1
)

// Plausible range for the Indian 24K gold price per 10 grams; scraped numbers
// outside it are page noise, not prices.
const (
	goldPriceFloor   = 60000
	goldPriceCeiling = 250000
)

var goldPriceRe = regexp.MustCompile(`(?:Rs\.?|₹)\s*([\d,]{4,10})`)

type metalSpot struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// GoldSource fetches the Indian gold price by scraping goodreturns.in, with a
// fallback that converts the international spot price using the USD/INR rate.
type GoldSource struct {
	client *http.Client
	forex  *ForexSource
	log    *logrus.Logger
}

// NewGoldSource initializes the gold price source.
func NewGoldSource(forex *ForexSource, log *logrus.Logger) *GoldSource {
	return &GoldSource{
		client: &http.Client{Timeout: 15 * time.Second},
		forex:  forex,
		log:    log,
	}
}

// Name implements Source.
func (g *GoldSource) Name() string { return "goodreturns" }

// Fetch tries the goodreturns page first, then the international spot price.
func (g *GoldSource) Fetch(ctx context.Context) (Quote, error) {
	if text, err := g.scrapeGoodReturns(ctx); err == nil {
		return Quote{Source: g.Name(), Text: text}, nil
	} else {
		g.log.Debugf("goodreturns scrape failed: %v", err)
	}

	text, err := g.internationalEstimate(ctx)
	if err != nil {
		return Quote{}, fmt.Errorf("gold price unavailable: %w", err)
	}
	return Quote{Source: "metals-spot", Text: text}, nil
}

// scrapeGoodReturns pulls the 24K per-10g price out of the page text.
func (g *GoldSource) scrapeGoodReturns(ctx context.Context) (string, error) {
	body, err := fetchBody(ctx, g.client, goodReturnsGoldURL)
	if err != nil {
		return "", err
	}

	for _, match := range goldPriceRe.FindAllStringSubmatch(string(body), -1) {
		raw := strings.ReplaceAll(match[1], ",", "")
		price, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		if price >= goldPriceFloor && price <= goldPriceCeiling {
			return fmt.Sprintf("Gold 24K: ₹%s/10g", match[1]), nil
		}
	}
	return "", fmt.Errorf("no price matched on page")
}

// internationalEstimate converts the USD spot price to an INR per-10g figure.
func (g *GoldSource) internationalEstimate(ctx context.Context) (string, error) {
	var spots []metalSpot
	if err := fetchJSON(ctx, g.client, metalsSpotURL, &spots); err != nil {
		return "", err
	}

	var usdPerOunce float64
	for _, spot := range spots {
		if strings.EqualFold(spot.Name, "gold") {
			usdPerOunce = spot.Price
			break
		}
	}
	if usdPerOunce == 0 {
		return "", fmt.Errorf("no gold entry in spot data")
	}

	usdinr, err := g.forex.USDINR(ctx)
	if err != nil {
		return "", fmt.Errorf("usd/inr rate unavailable: %w", err)
	}

	perTenGrams := usdPerOunce / gramsPerTroyOunce * 10 * usdinr
	return fmt.Sprintf("Gold 24K (est.): ₹%.0f/10g, converted from $%.0f/oz", perTenGrams, usdPerOunce), nil
}
