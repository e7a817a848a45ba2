package main

import (
	"os"

	"go-bank-reconciler/cmd/reconciler/cmd"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, commit, date)

	err := cmd.Execute()
	os.Exit(cmd.NewCLIErrorHandler().HandleError(err))
}
