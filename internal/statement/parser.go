// Package statement extracts expense records from bank statement text.
// Byte-level PDF text extraction is an external collaborator hidden behind
// the TextExtractor interface.
package statement

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/HitanshGithub/agentic-finance-ai/internal/models"
)

// TextExtractor turns an uploaded document into plain text.
type TextExtractor interface {
	Extract(r io.Reader) (string, error)
}

// PlainTextExtractor treats the upload as already-extracted text.
type PlainTextExtractor struct{}

// Extract implements TextExtractor.
func (PlainTextExtractor) Extract(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}
	return string(data), nil
}

// Matches lines like "Rent Payment 15,000": a description followed by a
// comma-grouped integer amount at the end of the line.
var expenseLineRe = regexp.MustCompile(`([A-Za-z ].+?)\s+(\d{1,3}(?:,\d{3})*)$`)

// ParseExpenses extracts expense records from statement text. Lines whose
// description mentions a salary are treated as income credits and skipped.
func ParseExpenses(text string) []models.Expense {
	var expenses []models.Expense

	for _, line := range strings.Split(text, "\n") {
		match := expenseLineRe.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if match == nil {
			continue
		}

		description := strings.TrimSpace(match[1])
		if strings.Contains(strings.ToLower(description), "salary") {
			continue
		}

		amount, err := strconv.Atoi(strings.ReplaceAll(match[2], ",", ""))
		if err != nil {
			continue
		}

		expenses = append(expenses, models.Expense{
			Category: description,
			Amount:   float64(amount),
		})
	}

	return expenses
}
