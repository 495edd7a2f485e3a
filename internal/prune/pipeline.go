package prune

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gregwood-db/prune-exports/internal/export"
	"github.com/gregwood-db/prune-exports/internal/match"
)

// ErrSourceNotFound is returned when the source export root does not
// exist. It is the only condition that aborts a run before any stage.
var ErrSourceNotFound = errors.New("source path does not exist")

// Options control a pipeline run.
type Options struct {
	// Overwrite replaces existing destination files instead of
	// skipping the stages that would produce them.
	Overwrite bool
	// SkipMetastore drops the metastore-related entries from the
	// verbatim pass-through.
	SkipMetastore bool
	// SkipArtifacts disables the artifact subtree copy.
	SkipArtifacts bool
	// DryRun computes every stage and keep-set without writing
	// anything. Skip-existing semantics are disabled so results always
	// reflect the source.
	DryRun bool
	// SpecsFile names an optional tab-delimited file listing extra
	// resources to pass through verbatim.
	SpecsFile string
}

// Pipeline runs the filter stages in fixed topological order against a
// source export tree, writing the pruned tree to the destination. A
// Pipeline is single-use and not safe for concurrent invocation against
// a shared destination.
type Pipeline struct {
	src, dst export.Tree
	tags     match.Tags
	opts     Options
	logger   *slog.Logger
	report   *Report
}

// New constructs a pipeline. A nil logger discards all output.
func New(src, dst string, tags []string, opts Options, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Pipeline{
		src:    export.Tree{Root: src},
		dst:    export.Tree{Root: dst},
		tags:   match.Tags(tags),
		opts:   opts,
		logger: logger,
		report: &Report{
			Source: src,
			Target: dst,
			Tags:   append([]string(nil), tags...),
			DryRun: opts.DryRun,
		},
	}
}

// Run executes every stage in dependency order and returns the run
// report. Stage ordering is load-bearing: each keep-set must exist
// before the stages that consume it.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	if !p.src.Exists() {
		return nil, ErrSourceNotFound
	}

	if err := p.prepareDestination(); err != nil {
		return nil, err
	}

	p.logger.Info("pruning clusters")

	clusters, err := p.pruneClusters()
	if err != nil {
		return nil, err
	}

	if err := ctxErr(ctx); err != nil {
		return nil, err
	}

	p.logger.Info("pruning jobs")

	jobs, err := p.pruneJobs(clusters)
	if err != nil {
		return nil, err
	}

	stats, err := p.pruneACLs(export.JobACLsLog, export.JobObjectPrefix, jobs)
	if err := p.recordStage(ctx, stats, err); err != nil {
		return nil, err
	}

	p.logger.Info("pruning instance profiles")

	stats, err = p.pruneInstanceProfiles()
	if err := p.recordStage(ctx, stats, err); err != nil {
		return nil, err
	}

	p.logger.Info("pruning groups")

	users, err := p.pruneGroups()
	if err != nil {
		return nil, err
	}

	if err := ctxErr(ctx); err != nil {
		return nil, err
	}

	p.logger.Info("pruning users")

	stats, err = p.pruneUsers(users)
	if err := p.recordStage(ctx, stats, err); err != nil {
		return nil, err
	}

	p.logger.Info("pruning workspace metadata, this may take several minutes")

	dirs, dirIDs, err := p.pruneDirectories(users)
	if err != nil {
		return nil, err
	}

	objectIDs, err := p.pruneWorkspaceObjects(dirs)
	if err != nil {
		return nil, err
	}

	stats, err = p.pruneACLs(export.DirectoryACLsLog, export.DirectoryObjectPrefix, dirIDs)
	if err := p.recordStage(ctx, stats, err); err != nil {
		return nil, err
	}

	stats, err = p.pruneACLs(export.NotebookACLsLog, export.NotebookObjectPrefix, objectIDs)
	if err := p.recordStage(ctx, stats, err); err != nil {
		return nil, err
	}

	stats, err = p.pruneLibraries(dirs)
	if err := p.recordStage(ctx, stats, err); err != nil {
		return nil, err
	}

	if p.opts.SkipArtifacts {
		p.logger.Info("skipping artifact copy")
	} else {
		p.logger.Info("copying artifacts")

		stats, err = p.pruneArtifacts(users)
		if err := p.recordStage(ctx, stats, err); err != nil {
			return nil, err
		}
	}

	p.logger.Info("copying additional resources to new export path")

	if err := p.copyPassThrough(); err != nil {
		return nil, err
	}

	p.logger.Info("finished pruning resources")

	return p.report, nil
}

// recordStage folds a stage result into the report, interleaving a
// cancellation check between stages.
func (p *Pipeline) recordStage(ctx context.Context, stats StageStats, err error) error {
	if err != nil {
		return err
	}

	p.report.record(stats)

	return ctxErr(ctx)
}

func (p *Pipeline) prepareDestination() error {
	if p.opts.DryRun {
		return nil
	}

	if p.dst.Exists() {
		if p.opts.Overwrite {
			p.logger.Info("existing destination path found, overwriting existing files")
		} else {
			p.logger.Info("existing destination path found, will skip existing files")
		}
	} else {
		p.logger.Info("destination path not found, creating", slog.String("path", p.dst.Root))
	}

	if err := os.MkdirAll(p.dst.Path(export.GroupsDir), 0o750); err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}

	return nil
}

func ctxErr(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
