// Package reconciler orchestrates a full reconciliation run:
// parse both input files, match, and render the output files.
package reconciler

import (
	"os"
	"path/filepath"

	"go-bank-reconciler/internal/matcher"
	"go-bank-reconciler/internal/models"
	"go-bank-reconciler/internal/parsers"
	"go-bank-reconciler/internal/reporter"
	"go-bank-reconciler/pkg/errors"
	"go-bank-reconciler/pkg/logger"
)

// Request identifies the inputs and output location of one run.
type Request struct {
	BankFile       string
	AccountingFile string
	OutputDir      string
}

// Summary is what the CLI layer needs to report the run and pick an exit
// code: counts, the accumulated parse errors of both files, and where the
// outputs were written.
type Summary struct {
	BankCount       int
	AccountingCount int
	MatchCount      int
	AmbiguityCount  int
	WeakCount       int
	ParseErrors     []string
	MatchesPath     string
	ReportPath      string
}

// Service wires the parser, the engine and the reporter together.
type Service struct {
	config *matcher.MatchingConfig
	reader *parsers.TransactionReader
	logger logger.Logger
}

// NewService creates a reconciliation service with the given tolerances.
// A nil config falls back to the engine defaults.
func NewService(config *matcher.MatchingConfig) *Service {
	if config == nil {
		config = matcher.DefaultMatchingConfig()
	}
	return &Service{
		config: config,
		reader: parsers.NewTransactionReader(),
		logger: logger.WithComponent("reconciler"),
	}
}

// Run executes one reconciliation. Row-level parse errors accumulate into
// the summary; the returned error is only non-nil for fatal conditions
// (unreadable input, unwritable output).
func (s *Service) Run(req Request) (*Summary, error) {
	s.logger.WithFields(logger.Fields{
		"bank_file":       req.BankFile,
		"accounting_file": req.AccountingFile,
		"output_dir":      req.OutputDir,
		"config":          s.config.String(),
	}).Debug("Starting reconciliation run")

	bank, bankErrors, err := s.reader.ReadFile(req.BankFile, models.SourceBank)
	if err != nil {
		return nil, err
	}

	accounting, accountingErrors, err := s.reader.ReadFile(req.AccountingFile, models.SourceAccounting)
	if err != nil {
		return nil, err
	}

	parseErrors := append(append([]string{}, bankErrors...), accountingErrors...)

	engine := matcher.NewRapprocher(s.config)
	result := engine.Match(bank, accounting)

	if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
		return nil, errors.FileError(errors.CodeOutputError, req.OutputDir, err)
	}

	matchesPath := filepath.Join(req.OutputDir, "matches.csv")
	reportPath := filepath.Join(req.OutputDir, "report.txt")

	if err := reporter.WriteMatchesFile(matchesPath, result.Matches); err != nil {
		return nil, err
	}
	if err := reporter.WriteReportFile(reportPath, bank, accounting, result, parseErrors); err != nil {
		return nil, err
	}

	weak := 0
	for _, m := range result.Matches {
		if m.Score < reporter.WeakScoreThreshold {
			weak++
		}
	}

	summary := &Summary{
		BankCount:       len(bank),
		AccountingCount: len(accounting),
		MatchCount:      len(result.Matches),
		AmbiguityCount:  len(result.Ambiguities),
		WeakCount:       weak,
		ParseErrors:     parseErrors,
		MatchesPath:     matchesPath,
		ReportPath:      reportPath,
	}

	s.logger.WithFields(logger.Fields{
		"bank":        summary.BankCount,
		"accounting":  summary.AccountingCount,
		"matched":     summary.MatchCount,
		"ambiguities": summary.AmbiguityCount,
		"weak":        summary.WeakCount,
		"errors":      len(summary.ParseErrors),
	}).Info("Reconciliation completed")

	return summary, nil
}
