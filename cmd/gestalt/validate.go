package main

import (
	"fmt"

	"github.com/aretw0/gestalt/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <bindings-file>",
	Short: "Check a binding file for errors",
	Long:  `Loads a binding file and reports every invalid field, unknown gesture or blend shape and duplicate action.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := cli.Validate(args[0])
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d binding(s) valid! ✅\n", len(list))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
