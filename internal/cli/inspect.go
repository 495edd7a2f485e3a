package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gregwood-db/prune-exports/internal/logging"
	"github.com/gregwood-db/prune-exports/internal/prune"
)

type inspectOptions struct {
	sourcePath    string
	tags          []string
	skipMetastore bool
	skipArtifacts bool
	specs         string
	format        string
}

func newInspectCommand() *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show what pruning would keep, without writing anything",
		Long: `Inspect runs the full filter pipeline in dry-run mode and prints the
per-stage counts and keep-set sizes. No destination files are written
and existing destination state is ignored: results always reflect the
source tree and the given tags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.sourcePath, "source-path", "", "folder containing the exported resources")
	f.StringSliceVar(&opts.tags, "tags", nil, "team tag(s) defining which resources to keep")
	f.BoolVar(&opts.skipMetastore, "skip-metastore", false, "exclude metastore exports from the summary")
	f.BoolVar(&opts.skipArtifacts, "skip-artifacts", false, "exclude artifact subtrees from the summary")
	f.StringVar(&opts.specs, "specs", "", "tab-delimited file naming additional resources to copy verbatim")
	f.StringVar(&opts.format, "format", "text", "output format: text, yaml")

	_ = cmd.MarkFlagRequired("source-path")
	_ = cmd.MarkFlagRequired("tags")

	return cmd
}

func runInspect(cmd *cobra.Command, opts *inspectOptions) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	pipeline := prune.New(opts.sourcePath, "", opts.tags, prune.Options{
		SkipMetastore: opts.skipMetastore,
		SkipArtifacts: opts.skipArtifacts,
		SpecsFile:     opts.specs,
		DryRun:        true,
	}, logger)

	report, err := pipeline.Run(ctx)
	if err != nil {
		if errors.Is(err, prune.ErrSourceNotFound) {
			return &ExitError{Code: 3, Err: fmt.Errorf("could not find source path %q", opts.sourcePath)}
		}

		return &ExitError{Code: 1, Err: err}
	}

	switch opts.format {
	case "text":
		return report.WriteText(cmd.OutOrStdout())
	case "yaml":
		data, err := report.YAML()
		if err != nil {
			return &ExitError{Code: 1, Err: err}
		}

		_, err = cmd.OutOrStdout().Write(data)

		return err
	default:
		return &ExitError{Code: 2, Err: fmt.Errorf("unsupported format: %s (supported: text, yaml)", opts.format)}
	}
}
