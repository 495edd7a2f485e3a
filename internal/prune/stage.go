package prune

import (
	"fmt"
	"log/slog"

	"github.com/gregwood-db/prune-exports/internal/export"
)

// Skip reasons recorded in StageStats.
const (
	skipDestExists    = "destination exists"
	skipSourceMissing = "source missing"
)

// logStage drives one log-file filtering stage over records of type T.
// Each line is decoded exactly once; keep and collect both see the same
// decoded record.
//
// keep judges a record; false drops the line, a non-nil error marks it
// malformed: logged, counted, and dropped, never fatal. collect, when
// non-nil, observes every surviving record: the freshly kept ones on a
// normal run, or every record of the existing destination file when the
// stage is skipped. Keep-sets for downstream stages are built
// exclusively through collect, which is what makes an existing
// destination authoritative on a skipped stage.
type logStage[T any] struct {
	name    string
	keep    func(rec *T) (bool, error)
	collect func(rec *T)
}

func runLogStage[T any](p *Pipeline, st logStage[T]) (StageStats, error) {
	stats := StageStats{Name: st.name}

	if p.skipExisting(st.name) {
		p.logger.Info("found existing destination, skipping pruning", slog.String("file", st.name))

		stats.Skipped = true
		stats.SkipReason = skipDestExists

		if st.collect == nil {
			return stats, nil
		}

		lines, err := export.ReadLines(p.dst.Path(st.name))
		if err != nil {
			return stats, err
		}

		for _, line := range lines {
			var rec T
			if err := line.Decode(&rec); err != nil {
				stats.Malformed++

				p.warnMalformed(st.name, lineErr(line, err))

				continue
			}

			st.collect(&rec)
		}

		return stats, nil
	}

	if !p.src.HasFile(st.name) {
		p.logger.Warn("source file missing, skipping stage", slog.String("file", st.name))

		stats.Skipped = true
		stats.SkipReason = skipSourceMissing

		return stats, nil
	}

	lines, err := export.ReadLines(p.src.Path(st.name))
	if err != nil {
		return stats, err
	}

	var out *export.LogWriter
	if !p.opts.DryRun {
		out, err = export.CreateLog(p.dst.Path(st.name))
		if err != nil {
			return stats, err
		}
	}

	for _, line := range lines {
		var rec T
		if err := line.Decode(&rec); err != nil {
			stats.Malformed++

			p.warnMalformed(st.name, lineErr(line, err))

			continue
		}

		kept, err := st.keep(&rec)
		if err != nil {
			stats.Malformed++

			p.warnMalformed(st.name, lineErr(line, err))

			continue
		}

		if !kept {
			stats.Dropped++

			continue
		}

		stats.Kept++

		if out != nil {
			if err := out.WriteLine(line); err != nil {
				out.Close()

				return stats, err
			}
		}

		if st.collect != nil {
			st.collect(&rec)
		}
	}

	if out != nil {
		if err := out.Close(); err != nil {
			return stats, err
		}
	}

	return stats, nil
}

// skipExisting reports whether a stage must be skipped because its
// destination already exists. Dry runs never skip: they always derive
// results from the source.
func (p *Pipeline) skipExisting(name string) bool {
	return !p.opts.DryRun && !p.opts.Overwrite && p.dst.HasFile(name)
}

func (p *Pipeline) warnMalformed(name string, err error) {
	p.logger.Warn("malformed record dropped",
		slog.String("file", name),
		slog.String("error", err.Error()),
	)
}

func lineErr(line export.Line, err error) error {
	return fmt.Errorf("line %d: %w", line.Num, err)
}

// pruneACLs filters an ACL log, keeping entries whose object_id suffix
// after prefix is present in kept.
func (p *Pipeline) pruneACLs(name, prefix string, kept KeepSet) (StageStats, error) {
	return runLogStage(p, logStage[export.ACLEntry]{
		name: name,
		keep: func(entry *export.ACLEntry) (bool, error) {
			id, err := export.ParseObjectID(entry.ObjectID, prefix)
			if err != nil {
				return false, err
			}

			return kept.Has(id), nil
		},
	})
}
