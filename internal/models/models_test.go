package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid date", "2023-10-01", "2023-10-01", false},
		{"valid date with surrounding spaces", " 2023-10-01 ", "2023-10-01", false},
		{"wrong order", "01-10-2023", "", true},
		{"slash separators", "2023/10/01", "", true},
		{"not a date", "yesterday", "", true},
		{"empty", "", "", true},
		{"month out of range", "2023-13-01", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Format(DateLayout) != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got.Format(DateLayout))
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"positive", "10.00", "10", false},
		{"negative", "-10.00", "-10", false},
		{"integer", "42", "42", false},
		{"with spaces", " -3.50 ", "-3.5", false},
		{"empty", "", "", true},
		{"blank", "   ", "", true},
		{"currency symbol", "$10.00", "", true},
		{"thousands separator", "1,000.00", "", true},
		{"not a number", "ten", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %s", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestTruncateToDay(t *testing.T) {
	in := time.Date(2023, 10, 1, 15, 42, 30, 999, time.FixedZone("CET", 3600))
	got := TruncateToDay(in)

	want := time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if got.Location() != time.UTC {
		t.Errorf("expected UTC location, got %v", got.Location())
	}
}

func TestNewTransactionTruncatesDate(t *testing.T) {
	date := time.Date(2023, 10, 1, 23, 59, 59, 0, time.UTC)
	tx := NewTransaction(1, date, "Coffee", decimal.RequireFromString("-3.50"), SourceBank)

	if tx.Date.Hour() != 0 || tx.Date.Minute() != 0 {
		t.Errorf("expected date truncated to midnight, got %v", tx.Date)
	}
}

func TestSourceString(t *testing.T) {
	if SourceBank.String() != "Bank" {
		t.Errorf("expected Bank, got %s", SourceBank.String())
	}
	if SourceAccounting.String() != "Accounting" {
		t.Errorf("expected Accounting, got %s", SourceAccounting.String())
	}
	if Source(99).String() != "Unknown" {
		t.Errorf("expected Unknown, got %s", Source(99).String())
	}
}
