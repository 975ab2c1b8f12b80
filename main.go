package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/TrustWeave/proofdao/cmd/validator"
)

var rootCmd = &cobra.Command{
	Use:          "proofdao",
	Short:        "ProofDAO submission validation service",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(validator.StartCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
