package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gregwood-db/prune-exports/internal/logging"
	"github.com/gregwood-db/prune-exports/internal/prune"
)

type pruneOptions struct {
	sourcePath    string
	targetPath    string
	tags          []string
	overwrite     bool
	skipMetastore bool
	skipArtifacts bool
	specs         string
	report        string
}

func newPruneCommand() *cobra.Command {
	opts := &pruneOptions{}

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Filter an export tree down to the given team tags",
		Long: `Prune runs the full filter pipeline against a source export tree and
writes the pruned tree to the target path.

Stages run in fixed dependency order: clusters, jobs, instance profiles,
groups, users, directories, workspace objects, ACLs, libraries,
artifacts, and finally a verbatim copy of unfiltered resources.

Without --overwrite, a stage whose destination file already exists is
skipped and the existing file determines the keep-sets used by later
stages.

Exit codes:
  0  Completed (individual missing files are warnings)
  2  Invalid arguments
  3  Source path does not exist`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPrune(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.sourcePath, "source-path", "", "folder containing the exported resources to be pruned")
	f.StringVar(&opts.targetPath, "target-path", "", "folder to write the pruned export")
	f.StringSliceVar(&opts.tags, "tags", nil, "team tag(s) defining which resources to keep")
	f.BoolVar(&opts.overwrite, "overwrite", false, "overwrite existing files in the target folder")
	f.BoolVar(&opts.skipMetastore, "skip-metastore", false, "do not copy metastore exports")
	f.BoolVar(&opts.skipArtifacts, "skip-artifacts", false, "do not copy artifact subtrees")
	f.StringVar(&opts.specs, "specs", "", "tab-delimited file naming additional resources to copy verbatim")
	f.StringVar(&opts.report, "report", "", "write a YAML run report to this path")

	_ = cmd.MarkFlagRequired("source-path")
	_ = cmd.MarkFlagRequired("target-path")
	_ = cmd.MarkFlagRequired("tags")

	return cmd
}

func runPrune(cmd *cobra.Command, opts *pruneOptions) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	pipeline := prune.New(opts.sourcePath, opts.targetPath, opts.tags, prune.Options{
		Overwrite:     opts.overwrite,
		SkipMetastore: opts.skipMetastore,
		SkipArtifacts: opts.skipArtifacts,
		SpecsFile:     opts.specs,
	}, logger)

	report, err := pipeline.Run(ctx)
	if err != nil {
		if errors.Is(err, prune.ErrSourceNotFound) {
			return &ExitError{Code: 3, Err: fmt.Errorf("could not find source path %q", opts.sourcePath)}
		}

		return &ExitError{Code: 1, Err: err}
	}

	if opts.report != "" {
		data, err := report.YAML()
		if err != nil {
			return &ExitError{Code: 1, Err: err}
		}

		if err := os.WriteFile(opts.report, data, 0o644); err != nil {
			return &ExitError{Code: 1, Err: fmt.Errorf("writing report: %w", err)}
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", opts.report)
	}

	return nil
}
