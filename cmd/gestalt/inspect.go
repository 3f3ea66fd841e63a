package main

import (
	"github.com/aretw0/gestalt/internal/cli"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <bindings-file>",
	Short: "Summarize a binding file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetBool("raw")
		withGraph, _ := cmd.Flags().GetBool("graph")
		return cli.Inspect(args[0], cmd.OutOrStdout(), cli.InspectOptions{Raw: raw, Graph: withGraph})
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Bool("raw", false, "Print the Markdown source instead of rendering it")
	inspectCmd.Flags().Bool("graph", false, "Append a Mermaid state diagram per binding")
}
