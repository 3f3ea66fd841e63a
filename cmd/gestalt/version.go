package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/gestalt"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gestalt",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "gestalt version %s\n", strings.TrimSpace(gestalt.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
