package cmd

import (
	"fmt"
	"os"

	"go-bank-reconciler/cmd/reconciler/config"
	"go-bank-reconciler/internal/reconciler"
	"go-bank-reconciler/pkg/errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flags for the reconcile command
var (
	bankFile       string
	accountingFile string
	outputDir      string
	toleranceFile  string
)

// reconcileCmd represents the reconcile command
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile a bank statement CSV with an accounting ledger CSV",
	Long: `Reconcile pairs bank transactions with accounting transactions using a
four-rule cascade over date and amount differences, and writes two files
into the output directory:

  matches.csv  the matches table (BankId,AccountingId,Score,RuleApplied)
  report.txt   summary counts, parse errors, ambiguous cases, unmatched ids

Malformed input rows are skipped and reported; the run still completes.
Exit codes: 0 clean, 1 completed with parse errors, 2 usage or missing
file, 3 unexpected fatal error.

Examples:
  reconciler reconcile --bank-file bank.csv --accounting-file accounting.csv
  reconciler reconcile -b bank.csv -a accounting.csv -o out --tolerance-file config.txt`,

	PreRunE: validateReconcileFlags,
	RunE:    runReconcile,
}

func init() {
	rootCmd.AddCommand(reconcileCmd)

	reconcileCmd.Flags().StringVarP(&bankFile, "bank-file", "b", "", "path to bank statement CSV file (required)")
	reconcileCmd.Flags().StringVarP(&accountingFile, "accounting-file", "a", "", "path to accounting ledger CSV file (required)")
	reconcileCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "out", "directory for matches.csv and report.txt")
	reconcileCmd.Flags().StringVarP(&toleranceFile, "tolerance-file", "t", "", "optional key=value tolerance file")

	reconcileCmd.MarkFlagRequired("bank-file")
	reconcileCmd.MarkFlagRequired("accounting-file")

	viper.BindPFlag("bank-file", reconcileCmd.Flags().Lookup("bank-file"))
	viper.BindPFlag("accounting-file", reconcileCmd.Flags().Lookup("accounting-file"))
	viper.BindPFlag("output-dir", reconcileCmd.Flags().Lookup("output-dir"))
	viper.BindPFlag("tolerance-file", reconcileCmd.Flags().Lookup("tolerance-file"))
}

func validateReconcileFlags(cmd *cobra.Command, args []string) error {
	// Viper values allow overrides from the config file and environment.
	bankFile = viper.GetString("bank-file")
	accountingFile = viper.GetString("accounting-file")
	outputDir = viper.GetString("output-dir")
	toleranceFile = viper.GetString("tolerance-file")

	if bankFile == "" {
		return errors.New(errors.CategoryUsage, errors.CodeMissingArgument, "bank-file is required")
	}
	if accountingFile == "" {
		return errors.New(errors.CategoryUsage, errors.CodeMissingArgument, "accounting-file is required")
	}
	if outputDir == "" {
		return errors.New(errors.CategoryUsage, errors.CodeMissingArgument, "output-dir cannot be empty")
	}

	if err := validateFileExists(bankFile); err != nil {
		return err
	}
	if err := validateFileExists(accountingFile); err != nil {
		return err
	}

	return nil
}

func validateFileExists(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return errors.FileError(errors.CodeFileNotFound, path, err)
	}
	if err != nil {
		return errors.FileError(errors.CodeFileUnreadable, path, err)
	}
	if info.IsDir() {
		return errors.FileError(errors.CodeFileUnreadable, path, nil).
			WithSuggestion("expected a file, got a directory")
	}
	return nil
}

func runReconcile(cmd *cobra.Command, args []string) error {
	matchingConfig := config.LoadTolerances(toleranceFile)

	service := reconciler.NewService(matchingConfig)
	summary, err := service.Run(reconciler.Request{
		BankFile:       bankFile,
		AccountingFile: accountingFile,
		OutputDir:      outputDir,
	})
	if err != nil {
		if errors.IsReconcilerError(err) {
			return err
		}
		return errors.InternalError("reconciliation", err)
	}

	if len(summary.ParseErrors) > 0 {
		fmt.Fprintln(os.Stderr, "Parsing completed with errors:")
		for _, e := range summary.ParseErrors {
			fmt.Fprintln(os.Stderr, " - "+e)
		}
	}

	fmt.Println("Done.")
	fmt.Println("Matches: " + summary.MatchesPath)
	fmt.Println("Report : " + summary.ReportPath)

	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "Processed %d bank and %d accounting transactions.\n",
			summary.BankCount, summary.AccountingCount)
		fmt.Fprintf(os.Stderr, "Found %d matches (%d weak, %d ambiguous).\n",
			summary.MatchCount, summary.WeakCount, summary.AmbiguityCount)
	}

	if len(summary.ParseErrors) > 0 {
		return errors.ParseCompleted(len(summary.ParseErrors))
	}
	return nil
}
