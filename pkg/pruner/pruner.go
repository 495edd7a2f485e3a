// Package pruner exposes the export-pruning pipeline as a library,
// allowing programmatic use without the CLI.
//
// Basic usage:
//
//	result, err := pruner.Run(ctx, "/exports/full", "/exports/team-a",
//	    []string{"team_alpha"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, stage := range result.Stages {
//	    fmt.Printf("%s: kept %d\n", stage.Name, stage.Kept)
//	}
package pruner

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gregwood-db/prune-exports/internal/prune"
)

// ErrSourceNotFound is returned when the source export root does not
// exist.
var ErrSourceNotFound = errors.New("source path does not exist")

// StageResult summarizes one pipeline stage.
type StageResult struct {
	// Name is the stage's output file or directory name.
	Name string
	// Kept and Dropped count records or subtrees seen in the source.
	Kept    int
	Dropped int
	// Malformed counts undecodable records, which are dropped with a
	// warning.
	Malformed int
	// Skipped is true when the stage did not run, either because its
	// input was missing or its destination already existed.
	Skipped bool
}

// Result holds the outcome of a pruning run.
type Result struct {
	Stages []StageResult
	// KeepSets maps keep-set names (clusters, jobs, users, dirs,
	// dirIDs, objectIDs) to their sizes.
	KeepSets map[string]int
}

// Option configures a pruning run.
type Option func(*options)

type options struct {
	prune  prune.Options
	logger *slog.Logger
}

// WithOverwrite replaces existing destination files instead of skipping
// the stages that would produce them.
func WithOverwrite() Option {
	return func(o *options) { o.prune.Overwrite = true }
}

// WithSkipMetastore drops metastore exports from the verbatim copy.
func WithSkipMetastore() Option {
	return func(o *options) { o.prune.SkipMetastore = true }
}

// WithSkipArtifacts disables the artifact subtree copy.
func WithSkipArtifacts() Option {
	return func(o *options) { o.prune.SkipArtifacts = true }
}

// WithSpecsFile names a tab-delimited file listing additional resources
// to copy verbatim.
func WithSpecsFile(path string) Option {
	return func(o *options) { o.prune.SpecsFile = path }
}

// WithDryRun computes every stage without writing anything.
func WithDryRun() Option {
	return func(o *options) { o.prune.DryRun = true }
}

// WithLogger sets the logger for the run. By default all log output is
// discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Run executes the pruning pipeline from src to dst for the given team
// tags.
func Run(ctx context.Context, src, dst string, tags []string, opts ...Option) (*Result, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	pipeline := prune.New(src, dst, tags, o.prune, o.logger)

	report, err := pipeline.Run(ctx)
	if err != nil {
		if errors.Is(err, prune.ErrSourceNotFound) {
			return nil, ErrSourceNotFound
		}

		return nil, err
	}

	result := &Result{KeepSets: report.KeepSets}

	for _, s := range report.Stages {
		result.Stages = append(result.Stages, StageResult{
			Name:      s.Name,
			Kept:      s.Kept,
			Dropped:   s.Dropped,
			Malformed: s.Malformed,
			Skipped:   s.Skipped,
		})
	}

	return result, nil
}
