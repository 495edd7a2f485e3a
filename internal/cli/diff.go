package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
)

type diffOptions struct {
	sourcePath string
	targetPath string
	context    int
}

func newDiffCommand() *cobra.Command {
	opts := &diffOptions{}

	cmd := &cobra.Command{
		Use:   "diff <log-file>",
		Short: "Show what pruning removed from a log file",
		Long: `Diff renders a unified diff of one named log file between the source
export and the pruned destination, showing exactly which records the
pipeline dropped.

Exit codes:
  0  No differences
  2  Invalid arguments
  4  Differences found`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.sourcePath, "source-path", "", "folder containing the original export")
	f.StringVar(&opts.targetPath, "target-path", "", "folder containing the pruned export")
	f.IntVar(&opts.context, "context", 3, "lines of context around each hunk")

	_ = cmd.MarkFlagRequired("source-path")
	_ = cmd.MarkFlagRequired("target-path")

	return cmd
}

func runDiff(cmd *cobra.Command, name string, opts *diffOptions) error {
	srcFile := filepath.Join(opts.sourcePath, name)
	dstFile := filepath.Join(opts.targetPath, name)

	srcData, err := os.ReadFile(srcFile)
	if err != nil {
		return &ExitError{Code: 2, Err: fmt.Errorf("reading %s: %w", srcFile, err)}
	}

	dstData, err := os.ReadFile(dstFile)
	if err != nil {
		return &ExitError{Code: 2, Err: fmt.Errorf("reading %s: %w", dstFile, err)}
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(srcData)),
		B:        difflib.SplitLines(string(dstData)),
		FromFile: srcFile,
		ToFile:   dstFile,
		Context:  opts.context,
	}

	unified, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return &ExitError{Code: 1, Err: fmt.Errorf("computing diff: %w", err)}
	}

	if unified == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "No differences.")

		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), unified)

	return &ExitError{Code: 4}
}
