package main

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/gestalt/internal/cli"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay [frames.jsonl]",
	Short: "Replay a recorded tracking session through a binding file",
	Long: `Reads face and hand frames as JSON lines (from a file or stdin) and prints the
action events they produce. Output is colored text on a terminal and JSON lines otherwise.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bindingsPath, _ := cmd.Flags().GetString("bindings")
		format, _ := cmd.Flags().GetString("output")
		debug, _ := cmd.Flags().GetBool("debug")
		quiet, _ := cmd.Flags().GetBool("quiet")

		var in io.Reader = cmd.InOrStdin()
		if len(args) > 0 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open frames: %w", err)
			}
			defer f.Close()
			in = f
		}

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		res, err := cli.Replay(sigCtx, cli.ReplayOptions{
			BindingsPath: bindingsPath,
			Input:        in,
			Output:       os.Stdout,
			Format:       cli.OutputFormat(format),
			Debug:        debug,
		})
		if err != nil {
			return err
		}
		if !quiet {
			fmt.Fprintf(os.Stderr, ">>> %d frames, %d events\n", res.Frames, res.Events)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().StringP("bindings", "b", "bindings.yaml", "Binding file (YAML or JSON)")
	replayCmd.Flags().StringP("output", "o", "", "Output format: json or text (default depends on the terminal)")
	replayCmd.Flags().BoolP("quiet", "q", false, "Do not print the summary line")
}
