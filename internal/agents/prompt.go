// Package agents implements the prompt-building analysis agents and the
// pipeline that chains them into a combined financial report.
package agents

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/HitanshGithub/agentic-finance-ai/internal/models"
)

// formatINR renders an amount with thousands separators and the ₹ symbol,
// e.g. 10000 -> "₹10,000".
func formatINR(amount float64) string {
	return "₹" + groupDigits(amount)
}

// groupDigits formats a number with comma-grouped thousands. Whole values get
// no decimals, fractional values keep two.
func groupDigits(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	whole := strconv.FormatFloat(amount, 'f', 0, 64)
	frac := ""
	if amount != float64(int64(amount)) {
		s := strconv.FormatFloat(amount, 'f', 2, 64)
		whole = s[:strings.IndexByte(s, '.')]
		frac = s[strings.IndexByte(s, '.'):]
	}

	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	pre := len(whole) % 3
	if pre == 0 {
		pre = 3
	}
	sb.WriteString(whole[:pre])
	for i := pre; i < len(whole); i += 3 {
		sb.WriteByte(',')
		sb.WriteString(whole[i : i+3])
	}
	sb.WriteString(frac)
	return sb.String()
}

// formatExpenseLines renders expenses as bullet lines for a prompt.
func formatExpenseLines(expenses []models.Expense) string {
	lines := make([]string, 0, len(expenses))
	for _, exp := range expenses {
		category := exp.Category
		if category == "" {
			category = "Unknown"
		}
		lines = append(lines, fmt.Sprintf("• %s: %s", category, formatINR(exp.Amount)))
	}
	return strings.Join(lines, "\n")
}

// totalAmount sums expense amounts.
func totalAmount(expenses []models.Expense) float64 {
	var total float64
	for _, exp := range expenses {
		total += exp.Amount
	}
	return total
}
