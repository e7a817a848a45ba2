// Package models defines the transaction record shared by the parser,
// the matching engine and the reporter.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Source identifies which side of the reconciliation a transaction
// belongs to. IDs are only unique within one source collection.
type Source int

const (
	// SourceBank marks transactions parsed from the bank statement file.
	SourceBank Source = iota
	// SourceAccounting marks transactions parsed from the accounting ledger file.
	SourceAccounting
)

// String returns the string representation of Source.
func (s Source) String() string {
	switch s {
	case SourceBank:
		return "Bank"
	case SourceAccounting:
		return "Accounting"
	default:
		return "Unknown"
	}
}

// Transaction is one parsed entry. It is a value type and is never
// mutated after construction. Date carries no time component; Amount
// uses exact decimal semantics because the matching rules compare
// amounts for strict equality.
type Transaction struct {
	ID          int
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Source      Source
}

// NewTransaction creates a Transaction with the date truncated to a
// calendar day.
func NewTransaction(id int, date time.Time, description string, amount decimal.Decimal, source Source) Transaction {
	return Transaction{
		ID:          id,
		Date:        TruncateToDay(date),
		Description: description,
		Amount:      amount,
		Source:      source,
	}
}

// String returns a debug representation of the transaction.
func (t Transaction) String() string {
	return fmt.Sprintf("%s#%d %s %s %q",
		t.Source, t.ID, t.Date.Format(DateLayout), t.Amount.String(), t.Description)
}

// DateLayout is the only accepted date format for input files.
const DateLayout = "2006-01-02"

// TruncateToDay discards any time-of-day component, normalizing to
// midnight UTC so day differences are exact multiples of 24h.
func TruncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a strict YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected format %s", s, DateLayout)
	}
	return TruncateToDay(t), nil
}

// ParseAmount parses a signed decimal amount. No currency symbols or
// thousand separators are accepted; exact decimal equality downstream
// depends on the input being a plain decimal literal.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("amount cannot be empty")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}
