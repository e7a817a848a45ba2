// Package parsers provides CSV ingestion for transaction files.
//
// Input files carry a `Date,Description,Amount` header followed by one
// transaction per line. Parsing is tolerant: malformed rows are skipped and
// reported as human-readable error strings, never as failures. The only
// fatal condition is an unreadable file. Ids are assigned sequentially from
// 1 per file, in row order, skipping blank lines.
package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"go-bank-reconciler/internal/models"
	"go-bank-reconciler/pkg/errors"
	"go-bank-reconciler/pkg/logger"
)

// expectedHeader is the required first row. A missing or different header
// is reported as a warning, not a hard failure.
var expectedHeader = []string{"Date", "Description", "Amount"}

// TransactionReader parses transaction CSV files.
type TransactionReader struct {
	logger logger.Logger
}

// NewTransactionReader creates a reader using the global logger.
func NewTransactionReader() *TransactionReader {
	return &TransactionReader{
		logger: logger.WithComponent("parser"),
	}
}

// ReadFile parses one file into transactions tagged with the given source.
// It returns the valid transactions, the accumulated per-row error strings,
// and a fatal error only when the file cannot be read at all.
func (r *TransactionReader) ReadFile(path string, source models.Source) ([]models.Transaction, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.FileError(errors.CodeFileNotFound, path, err)
		}
		return nil, nil, errors.FileError(errors.CodeFileUnreadable, path, err)
	}

	transactions, parseErrors := r.parse(path, string(data), source)

	r.logger.WithFields(logger.Fields{
		"file":   path,
		"source": source.String(),
		"rows":   len(transactions),
		"errors": len(parseErrors),
	}).Info("Parsed transaction file")

	return transactions, parseErrors, nil
}

func (r *TransactionReader) parse(path, content string, source models.Source) ([]models.Transaction, []string) {
	transactions := make([]models.Transaction, 0)
	parseErrors := make([]string, 0)

	if len(content) == 0 {
		parseErrors = append(parseErrors, fmt.Sprintf("%s: empty file", path))
		return transactions, parseErrors
	}

	lines := splitLines(content)

	header, err := splitRow(lines[0])
	if err != nil || !isExpectedHeader(header) {
		parseErrors = append(parseErrors,
			fmt.Sprintf("%s: missing or invalid header (expected: %s)", path, strings.Join(expectedHeader, ",")))
	}

	id := 1
	for i := 1; i < len(lines); i++ {
		raw := lines[i]
		lineNo := i + 1

		if strings.TrimSpace(raw) == "" {
			continue
		}

		cols, err := splitRow(raw)
		if err != nil {
			parseErrors = append(parseErrors, fmt.Sprintf("%s:%d: invalid row: %q", path, lineNo, raw))
			continue
		}
		if len(cols) < 3 {
			parseErrors = append(parseErrors, fmt.Sprintf("%s:%d: invalid row (missing columns): %q", path, lineNo, raw))
			continue
		}

		date, err := models.ParseDate(cols[0])
		if err != nil {
			parseErrors = append(parseErrors, fmt.Sprintf("%s:%d: invalid date: %q", path, lineNo, cols[0]))
			continue
		}

		amount, err := models.ParseAmount(cols[2])
		if err != nil {
			parseErrors = append(parseErrors, fmt.Sprintf("%s:%d: invalid amount: %q", path, lineNo, cols[2]))
			continue
		}

		transactions = append(transactions, models.NewTransaction(id, date, cols[1], amount, source))
		id++
	}

	return transactions, parseErrors
}

// splitRow parses a single CSV line, honoring quoted fields with embedded
// commas and doubled-quote escaping. Parsing per line keeps one malformed
// row from poisoning the rest of the file and keeps line numbers exact.
func splitRow(line string) ([]string, error) {
	reader := csv.NewReader(strings.NewReader(line))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	record, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return []string{}, nil
		}
		return nil, err
	}
	return record, nil
}

func splitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	lines := strings.Split(content, "\n")
	// A trailing newline produces one final empty element; drop it so the
	// line count matches the file.
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func isExpectedHeader(header []string) bool {
	if len(header) < len(expectedHeader) {
		return false
	}
	for i, want := range expectedHeader {
		if strings.TrimSpace(header[i]) != want {
			return false
		}
	}
	return true
}
