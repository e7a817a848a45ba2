// Package matcher implements the reconciliation engine.
//
// The engine pairs bank transactions with accounting transactions using a
// four-rule cascade over date and amount differences. Processing order is
// fixed: both inputs are sorted by ascending id, bank transactions are
// handled one at a time, and a claimed accounting id is removed from
// candidacy for all later bank transactions. Ties on (score, date diff,
// amount diff) break on the smallest accounting id and are reported as
// ambiguities, so the result is fully deterministic for any input ordering.
//
// Example usage:
//
//	engine := matcher.NewRapprocher(matcher.DefaultMatchingConfig())
//	result := engine.Match(bankTxs, accountingTxs)
package matcher

import (
	"sort"
	"time"

	"go-bank-reconciler/internal/models"

	"github.com/shopspring/decimal"
)

// Rapprocher is the matching engine. It holds the tolerance configuration
// and nothing else; Match is a pure function of its inputs, safe to call
// repeatedly and from multiple goroutines on independent input pairs.
type Rapprocher struct {
	config *MatchingConfig
}

// NewRapprocher creates an engine with the given configuration.
// A nil config falls back to the defaults.
func NewRapprocher(config *MatchingConfig) *Rapprocher {
	if config == nil {
		config = DefaultMatchingConfig()
	}
	return &Rapprocher{config: config}
}

// candidate is an engine-internal scored pairing for one bank transaction.
type candidate struct {
	accountingID int
	score        int
	rule         string
	dateDiffDays int
	amountDiff   decimal.Decimal
}

// Match reconciles the two collections and returns the match list, the
// ambiguity list and the set of consumed accounting ids. It never fails:
// empty inputs yield an empty result. Inputs are not mutated.
func (r *Rapprocher) Match(bank, accounting []models.Transaction) *RapprocheResult {
	bankOrdered := sortedByID(bank)
	accountingOrdered := sortedByID(accounting)

	used := make(map[int]bool)
	matches := make([]LigneMatch, 0, len(bankOrdered))
	ambiguities := make([]Ambiguity, 0)

	for _, b := range bankOrdered {
		var candidates []candidate
		for _, a := range accountingOrdered {
			if used[a.ID] {
				continue
			}
			if c, ok := r.evaluateRules(b, a); ok {
				candidates = append(candidates, c)
			}
		}

		if len(candidates) == 0 {
			continue
		}

		sort.Slice(candidates, func(i, j int) bool {
			return lessCandidate(candidates[i], candidates[j])
		})
		best := candidates[0]

		// Ambiguous if several candidates are still tied after comparing
		// score, date diff and amount diff. The tied set is already in
		// ascending id order because the comparator ends on id.
		tied := []int{best.accountingID}
		for _, c := range candidates[1:] {
			if c.score == best.score && c.dateDiffDays == best.dateDiffDays && c.amountDiff.Equal(best.amountDiff) {
				tied = append(tied, c.accountingID)
			}
		}

		isAmbiguous := len(tied) > 1
		if isAmbiguous {
			ambiguities = append(ambiguities, Ambiguity{
				BankID:                 b.ID,
				CandidateAccountingIDs: tied,
			})
		}

		used[best.accountingID] = true
		matches = append(matches, LigneMatch{
			BankID:       b.ID,
			AccountingID: best.accountingID,
			Score:        best.score,
			RuleApplied:  best.rule,
			IsAmbiguous:  isAmbiguous,
		})
	}

	return &RapprocheResult{
		Matches:           matches,
		Ambiguities:       ambiguities,
		UsedAccountingIDs: used,
	}
}

// evaluateRules runs the cascade for one pair. The first rule that fires
// wins; the rules overlap in predicate but are mutually exclusive in
// priority, so evaluation order is load-bearing.
func (r *Rapprocher) evaluateRules(b, a models.Transaction) (candidate, bool) {
	days := dateDiffDays(b.Date, a.Date)
	amountDiff := b.Amount.Sub(a.Amount).Abs()

	c := candidate{
		accountingID: a.ID,
		dateDiffDays: days,
		amountDiff:   amountDiff,
	}

	switch {
	case days == 0 && amountDiff.IsZero():
		c.score, c.rule = 100, RuleExact
	case amountDiff.IsZero() && days <= r.config.Rule2DateToleranceDays:
		c.score, c.rule = 85, RuleAmountDate
	case days == 0 && amountDiff.LessThanOrEqual(r.config.Rule3AmountTolerance):
		c.score, c.rule = 70, RuleDateAmount
	case days <= r.config.Rule4DateToleranceDays && amountDiff.LessThanOrEqual(r.config.Rule4AmountTolerance):
		c.score, c.rule = 55, RuleDateAmountWindow
	default:
		return candidate{}, false
	}

	return c, true
}

// lessCandidate is the strict total order over candidates: higher score
// first, then smaller date diff, then smaller amount diff, then smaller
// accounting id.
func lessCandidate(x, y candidate) bool {
	if x.score != y.score {
		return x.score > y.score
	}
	if x.dateDiffDays != y.dateDiffDays {
		return x.dateDiffDays < y.dateDiffDays
	}
	if cmp := x.amountDiff.Cmp(y.amountDiff); cmp != 0 {
		return cmp < 0
	}
	return x.accountingID < y.accountingID
}

// dateDiffDays returns the absolute whole-day distance between two
// date-only values. Both are midnight UTC, so the division is exact.
func dateDiffDays(a, b time.Time) int {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return int(d / (24 * time.Hour))
}

func sortedByID(txs []models.Transaction) []models.Transaction {
	ordered := make([]models.Transaction, len(txs))
	copy(ordered, txs)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].ID < ordered[j].ID
	})
	return ordered
}
