// Package reporter renders reconciliation results to the two flat output
// files: a matches table in CSV and a plain-text summary report.
package reporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"go-bank-reconciler/internal/matcher"
	"go-bank-reconciler/internal/models"
	"go-bank-reconciler/pkg/errors"
)

// WeakScoreThreshold is the score below which a match counts as weak in
// the summary report.
const WeakScoreThreshold = 85

// WriteMatchesCSV writes the matches table in ascending bank id order.
func WriteMatchesCSV(w io.Writer, matches []matcher.LigneMatch) error {
	ordered := make([]matcher.LigneMatch, len(matches))
	copy(ordered, matches)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].BankID < ordered[j].BankID
	})

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"BankId", "AccountingId", "Score", "RuleApplied"}); err != nil {
		return err
	}
	for _, m := range ordered {
		record := []string{
			strconv.Itoa(m.BankID),
			strconv.Itoa(m.AccountingID),
			strconv.Itoa(m.Score),
			m.RuleApplied,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteReport writes the plain-text summary: counts per side, weak match
// count, parse errors, the ambiguity list and the unmatched id lists.
func WriteReport(w io.Writer, bank, accounting []models.Transaction, result *matcher.RapprocheResult, parseErrors []string) error {
	matchedBankIDs := make(map[int]bool, len(result.Matches))
	weak := 0
	for _, m := range result.Matches {
		matchedBankIDs[m.BankID] = true
		if m.Score < WeakScoreThreshold {
			weak++
		}
	}

	unmatchedBank := unmatchedIDs(bank, matchedBankIDs)
	unmatchedAcc := unmatchedIDs(accounting, result.UsedAccountingIDs)

	var b strings.Builder
	fmt.Fprintf(&b, "Total bank transactions: %d\n", len(bank))
	fmt.Fprintf(&b, "Total accounting transactions: %d\n", len(accounting))
	fmt.Fprintf(&b, "Matched: %d\n", len(result.Matches))
	fmt.Fprintf(&b, "Unmatched bank: %d\n", len(unmatchedBank))
	fmt.Fprintf(&b, "Unmatched accounting: %d\n", len(unmatchedAcc))
	fmt.Fprintf(&b, "Weak matches (score < %d): %d\n", WeakScoreThreshold, weak)
	b.WriteString("\n")

	if len(parseErrors) > 0 {
		b.WriteString("Parse errors:\n")
		for _, e := range parseErrors {
			fmt.Fprintf(&b, " - %s\n", e)
		}
		b.WriteString("\n")
	}

	b.WriteString("Ambiguous cases (BankId -> accounting candidates):\n")
	if len(result.Ambiguities) == 0 {
		b.WriteString("(none)\n")
	} else {
		ambiguities := make([]matcher.Ambiguity, len(result.Ambiguities))
		copy(ambiguities, result.Ambiguities)
		sort.Slice(ambiguities, func(i, j int) bool {
			return ambiguities[i].BankID < ambiguities[j].BankID
		})
		for _, a := range ambiguities {
			fmt.Fprintf(&b, "- %d: %s\n", a.BankID, joinIDs(a.CandidateAccountingIDs))
		}
	}

	b.WriteString("\n")
	b.WriteString("Unmatched bank transactions:\n")
	b.WriteString(idListOrNone(unmatchedBank))
	b.WriteString("\n\n")
	b.WriteString("Unmatched accounting transactions:\n")
	b.WriteString(idListOrNone(unmatchedAcc))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteMatchesFile renders the matches table into a file.
func WriteMatchesFile(path string, matches []matcher.LigneMatch) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteMatchesCSV(w, matches)
	})
}

// WriteReportFile renders the summary report into a file.
func WriteReportFile(path string, bank, accounting []models.Transaction, result *matcher.RapprocheResult, parseErrors []string) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteReport(w, bank, accounting, result, parseErrors)
	})
}

func writeFile(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.FileError(errors.CodeOutputError, path, err)
	}
	defer f.Close()

	if err := render(f); err != nil {
		return errors.FileError(errors.CodeOutputError, path, err)
	}
	return nil
}

func unmatchedIDs(txs []models.Transaction, matched map[int]bool) []int {
	ids := make([]int, 0)
	for _, t := range txs {
		if !matched[t.ID] {
			ids = append(ids, t.ID)
		}
	}
	sort.Ints(ids)
	return ids
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}

func idListOrNone(ids []int) string {
	if len(ids) == 0 {
		return "(none)"
	}
	return joinIDs(ids)
}
