// Package recurring detects recurring charges (subscriptions, bills) from an
// expense list by pure aggregation; no model call is involved.
package recurring

import (
	"fmt"
	"sort"
	"strings"

	"github.com/HitanshGithub/agentic-finance-ai/internal/models"
)

// Categories matching these substrings are treated as recurring even with a
// single occurrence.
var subscriptionKeywords = []string{
	"netflix", "spotify", "amazon", "prime", "hulu", "disney",
	"subscription", "membership", "gym", "insurance", "phone",
	"internet", "electricity", "water", "gas", "rent", "mortgage",
	"youtube", "apple", "google", "microsoft", "adobe", "cloud",
}

var entertainmentKeywords = []string{
	"netflix", "spotify", "hulu", "disney", "youtube", "gaming",
}

// Recurring items above this monthly amount trigger a review suggestion.
const highCostThreshold = 100

// Item is a detected recurring expense. The monthly amount is the group
// amount as-is; occurrences are reported but do not scale the annual cost.
type Item struct {
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Frequency   string  `json:"frequency"`
	AnnualCost  float64 `json:"annual_cost"`
	Occurrences int     `json:"occurrences"`
}

// Summary is the full recurring-expense report. Derived per request, never
// persisted.
type Summary struct {
	Recurring    []Item   `json:"recurring"`
	TotalMonthly float64  `json:"total_monthly"`
	TotalAnnual  float64  `json:"total_annual"`
	Suggestions  []string `json:"suggestions"`
}

type group struct {
	category string
	amount   float64
	count    int
}

// Detect finds recurring patterns in the expense list. Expenses are grouped
// by (lower-cased trimmed category, exact amount); a group is recurring when
// it occurs more than once or its category matches a subscription keyword.
// The input is not mutated.
func Detect(expenses []models.Expense) Summary {
	groups := make(map[string]*group)
	var order []string

	for _, exp := range expenses {
		category := exp.Category
		if category == "" {
			category = "Unknown"
		}
		key := fmt.Sprintf("%s_%v", strings.ToLower(strings.TrimSpace(category)), exp.Amount)
		g, ok := groups[key]
		if !ok {
			g = &group{category: category, amount: exp.Amount}
			groups[key] = g
			order = append(order, key)
		}
		g.count++
	}

	var recurring []Item
	for _, key := range order {
		g := groups[key]
		if g.count > 1 || matchesAny(g.category, subscriptionKeywords) {
			recurring = append(recurring, Item{
				Category:    g.category,
				Amount:      g.amount,
				Frequency:   "monthly",
				AnnualCost:  g.amount * 12,
				Occurrences: g.count,
			})
		}
	}

	sort.SliceStable(recurring, func(i, j int) bool {
		return recurring[i].AnnualCost > recurring[j].AnnualCost
	})

	var totalMonthly float64
	for _, item := range recurring {
		totalMonthly += item.Amount
	}
	totalAnnual := totalMonthly * 12

	return Summary{
		Recurring:    recurring,
		TotalMonthly: totalMonthly,
		TotalAnnual:  totalAnnual,
		Suggestions:  buildSuggestions(recurring, totalMonthly, totalAnnual),
	}
}

func buildSuggestions(recurring []Item, totalMonthly, totalAnnual float64) []string {
	var suggestions []string

	if totalMonthly > 0 {
		suggestions = append(suggestions, fmt.Sprintf(
			"You have ₹%.2f/month in recurring expenses (₹%.2f/year)", totalMonthly, totalAnnual))
	}

	var entertainmentCount int
	var entertainmentTotal float64
	for _, item := range recurring {
		if matchesAny(item.Category, entertainmentKeywords) {
			entertainmentCount++
			entertainmentTotal += item.Amount
		}
	}
	if entertainmentCount > 2 {
		suggestions = append(suggestions, fmt.Sprintf(
			"You have %d entertainment subscriptions totaling ₹%.2f/month. Consider consolidating.",
			entertainmentCount, entertainmentTotal))
	}

	var highCost int
	for _, item := range recurring {
		if item.Amount > highCostThreshold {
			highCost++
		}
	}
	if highCost > 0 {
		suggestions = append(suggestions, fmt.Sprintf(
			"Review your %d high-cost recurring expense(s) for potential savings.", highCost))
	}

	return suggestions
}

func matchesAny(category string, keywords []string) bool {
	lower := strings.ToLower(category)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
