package cmd

import (
	"fmt"
	"os"

	"go-bank-reconciler/pkg/errors"
	"go-bank-reconciler/pkg/logger"

	"github.com/spf13/viper"
)

// CLIErrorHandler maps errors from Execute onto stderr messages and the
// process exit-code contract.
type CLIErrorHandler struct {
	logger  logger.Logger
	verbose bool
}

// NewCLIErrorHandler creates a new CLI error handler
func NewCLIErrorHandler() *CLIErrorHandler {
	return &CLIErrorHandler{
		logger:  logger.WithComponent("cli"),
		verbose: viper.GetBool("verbose"),
	}
}

// HandleError prints the error and returns the exit code to use.
func (h *CLIErrorHandler) HandleError(err error) int {
	if err == nil {
		return 0
	}

	if reconcilerErr, ok := errors.AsReconcilerError(err); ok {
		return h.handleReconcilerError(reconcilerErr)
	}

	// Anything else came out of cobra's own flag/argument handling before a
	// command ran, which makes it a usage error.
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 2
}

func (h *CLIErrorHandler) handleReconcilerError(err *errors.ReconcilerError) int {
	// The parse sentinel means the run finished and already reported its
	// row errors; no scary message, just the non-zero status.
	if err.Category == errors.CategoryParse {
		h.logger.WithField("code", err.Code).Debug(err.Message)
		return err.GetExitCode()
	}

	fmt.Fprintf(os.Stderr, "Error: %s\n", err.Message)

	if err.Suggestion != "" {
		fmt.Fprintf(os.Stderr, "Suggestion: %s\n", err.Suggestion)
	}

	if h.verbose {
		for key, value := range err.Context {
			fmt.Fprintf(os.Stderr, "  %s: %v\n", key, value)
		}
		if err.Cause != nil {
			fmt.Fprintf(os.Stderr, "Underlying error: %v\n", err.Cause)
		}
	}

	return err.GetExitCode()
}
