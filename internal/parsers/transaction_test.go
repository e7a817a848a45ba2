package parsers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go-bank-reconciler/internal/models"
	"go-bank-reconciler/pkg/errors"

	"github.com/shopspring/decimal"
)

func writeTestFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transactions.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing test file: %v", err)
	}
	return path
}

func TestReadFile_ValidFile(t *testing.T) {
	path := writeTestFile(t, "Date,Description,Amount\n"+
		"2023-10-01,Coffee,-3.50\n"+
		"2023-10-02,Salary,2500.00\n")

	reader := NewTransactionReader()
	transactions, parseErrors, err := reader.ReadFile(path, models.SourceBank)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(parseErrors) != 0 {
		t.Fatalf("expected no parse errors, got %v", parseErrors)
	}
	if len(transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(transactions))
	}

	first := transactions[0]
	if first.ID != 1 {
		t.Errorf("expected id 1, got %d", first.ID)
	}
	if first.Date.Format(models.DateLayout) != "2023-10-01" {
		t.Errorf("expected date 2023-10-01, got %s", first.Date.Format(models.DateLayout))
	}
	if first.Description != "Coffee" {
		t.Errorf("expected description Coffee, got %q", first.Description)
	}
	if !first.Amount.Equal(decimal.RequireFromString("-3.50")) {
		t.Errorf("expected amount -3.50, got %s", first.Amount)
	}
	if first.Source != models.SourceBank {
		t.Errorf("expected bank source, got %v", first.Source)
	}
	if transactions[1].ID != 2 {
		t.Errorf("expected id 2, got %d", transactions[1].ID)
	}
}

func TestReadFile_QuotedDescriptionWithComma(t *testing.T) {
	path := writeTestFile(t, "Date,Description,Amount\n"+
		`2023-10-01,"Refund, partial ""credit""",-12.00`+"\n")

	reader := NewTransactionReader()
	transactions, parseErrors, err := reader.ReadFile(path, models.SourceAccounting)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(parseErrors) != 0 {
		t.Fatalf("expected no parse errors, got %v", parseErrors)
	}
	if len(transactions) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(transactions))
	}
	if transactions[0].Description != `Refund, partial "credit"` {
		t.Errorf("quoted description mangled: %q", transactions[0].Description)
	}
	if !transactions[0].Amount.Equal(decimal.RequireFromString("-12.00")) {
		t.Errorf("expected amount -12.00, got %s", transactions[0].Amount)
	}
}

func TestReadFile_MalformedRowsAreSkippedAndReported(t *testing.T) {
	path := writeTestFile(t, "Date,Description,Amount\n"+
		"2023-10-01,Valid,-10.00\n"+
		"not-a-date,Bad date,5.00\n"+
		"2023-10-03,Bad amount,abc\n"+
		"2023-10-04,Too few columns\n")

	reader := NewTransactionReader()
	transactions, parseErrors, err := reader.ReadFile(path, models.SourceBank)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(transactions) != 1 {
		t.Fatalf("expected 1 valid transaction, got %d", len(transactions))
	}
	if len(parseErrors) != 3 {
		t.Fatalf("expected 3 parse errors, got %d: %v", len(parseErrors), parseErrors)
	}

	wantSubstrings := []string{"invalid date", "invalid amount", "missing columns"}
	for i, want := range wantSubstrings {
		if !strings.Contains(parseErrors[i], want) {
			t.Errorf("error %d: expected to contain %q, got %q", i, want, parseErrors[i])
		}
	}

	// Errors identify the file and the 1-based line number.
	if !strings.Contains(parseErrors[0], path+":3:") {
		t.Errorf("expected file:line prefix %q, got %q", path+":3:", parseErrors[0])
	}
}

func TestReadFile_IDsSkipMalformedRows(t *testing.T) {
	// Ids are sequential over valid rows only: the malformed middle row does
	// not consume an id.
	path := writeTestFile(t, "Date,Description,Amount\n"+
		"2023-10-01,First,-10.00\n"+
		"garbage\n"+
		"2023-10-03,Second,20.00\n")

	reader := NewTransactionReader()
	transactions, parseErrors, err := reader.ReadFile(path, models.SourceBank)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(parseErrors) != 1 {
		t.Fatalf("expected 1 parse error, got %v", parseErrors)
	}
	if len(transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(transactions))
	}
	if transactions[0].ID != 1 || transactions[1].ID != 2 {
		t.Errorf("expected ids 1 and 2, got %d and %d", transactions[0].ID, transactions[1].ID)
	}
}

func TestReadFile_BlankLinesAreSkipped(t *testing.T) {
	path := writeTestFile(t, "Date,Description,Amount\n"+
		"2023-10-01,First,-10.00\n"+
		"\n"+
		"   \n"+
		"2023-10-02,Second,20.00\n")

	reader := NewTransactionReader()
	transactions, parseErrors, err := reader.ReadFile(path, models.SourceBank)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(parseErrors) != 0 {
		t.Fatalf("expected no parse errors, got %v", parseErrors)
	}
	if len(transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(transactions))
	}
	if transactions[1].ID != 2 {
		t.Errorf("blank lines must not consume ids; expected id 2, got %d", transactions[1].ID)
	}
}

func TestReadFile_InvalidHeaderIsWarningNotFailure(t *testing.T) {
	path := writeTestFile(t, "date,description,amount\n"+
		"2023-10-01,Coffee,-3.50\n")

	reader := NewTransactionReader()
	transactions, parseErrors, err := reader.ReadFile(path, models.SourceBank)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(parseErrors) != 1 {
		t.Fatalf("expected 1 header warning, got %v", parseErrors)
	}
	if !strings.Contains(parseErrors[0], "missing or invalid header") {
		t.Errorf("expected header warning, got %q", parseErrors[0])
	}
	// Rows after the bad header still parse.
	if len(transactions) != 1 {
		t.Fatalf("expected 1 transaction despite header warning, got %d", len(transactions))
	}
}

func TestReadFile_EmptyFile(t *testing.T) {
	path := writeTestFile(t, "")

	reader := NewTransactionReader()
	transactions, parseErrors, err := reader.ReadFile(path, models.SourceBank)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(transactions) != 0 {
		t.Errorf("expected no transactions, got %d", len(transactions))
	}
	if len(parseErrors) != 1 || !strings.Contains(parseErrors[0], "empty file") {
		t.Errorf("expected a single empty-file error, got %v", parseErrors)
	}
}

func TestReadFile_MissingFileIsFatal(t *testing.T) {
	reader := NewTransactionReader()
	_, _, err := reader.ReadFile(filepath.Join(t.TempDir(), "nope.csv"), models.SourceBank)
	if err == nil {
		t.Fatal("expected fatal error for missing file")
	}

	reconcilerErr, ok := errors.AsReconcilerError(err)
	if !ok {
		t.Fatalf("expected ReconcilerError, got %T", err)
	}
	if reconcilerErr.Category != errors.CategoryFile {
		t.Errorf("expected file category, got %s", reconcilerErr.Category)
	}
	if reconcilerErr.Code != errors.CodeFileNotFound {
		t.Errorf("expected file_not_found code, got %s", reconcilerErr.Code)
	}
	if reconcilerErr.GetExitCode() != 2 {
		t.Errorf("expected exit code 2, got %d", reconcilerErr.GetExitCode())
	}
}

func TestReadFile_CRLFLineEndings(t *testing.T) {
	path := writeTestFile(t, "Date,Description,Amount\r\n"+
		"2023-10-01,Coffee,-3.50\r\n"+
		"2023-10-02,Salary,2500.00\r\n")

	reader := NewTransactionReader()
	transactions, parseErrors, err := reader.ReadFile(path, models.SourceBank)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(parseErrors) != 0 {
		t.Fatalf("expected no parse errors, got %v", parseErrors)
	}
	if len(transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(transactions))
	}
}
