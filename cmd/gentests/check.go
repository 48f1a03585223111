package main

import (
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.rs|directory>",
	Short: "Validate generic test definitions without writing files",
	Long:  `Run the full expansion pipeline and report diagnostics, but never touch the filesystem`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format for diagnostics (pretty|json)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Bool("disk-cache", false, "enable persistent disk cache for clean expansions")
}

func runCheck(cmd *cobra.Command, args []string) error {
	opts, err := readPipelineOptions(cmd, false)
	if err != nil {
		return err
	}
	return runPipeline(cmd, args[0], opts)
}
