package main

import (
	"github.com/spf13/cobra"
)

var expandCmd = &cobra.Command{
	Use:   "expand [flags] <file.rs|directory>",
	Short: "Expand generic test definitions into generated source files",
	Long:  `Expand generic test definitions in a Rust source file or all *.rs files within a directory, writing one generated file next to each input that contains expansion units`,
	Args:  cobra.ExactArgs(1),
	RunE:  runExpand,
}

func init() {
	expandCmd.Flags().String("format", "pretty", "output format for diagnostics (pretty|json)")
	expandCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	expandCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	expandCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	expandCmd.Flags().Bool("disk-cache", false, "enable persistent disk cache for clean expansions")
}

func runExpand(cmd *cobra.Command, args []string) error {
	opts, err := readPipelineOptions(cmd, true)
	if err != nil {
		return err
	}
	return runPipeline(cmd, args[0], opts)
}
