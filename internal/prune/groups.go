package prune

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gregwood-db/prune-exports/internal/export"
	"github.com/gregwood-db/prune-exports/internal/fsutil"
)

// pruneGroups copies group files whose name contains a hyphenated form
// of a requested tag, and collects every member username of every
// matching group into the users keep-set. Group files are copied
// verbatim, not rewritten record-by-record.
//
// When the destination groups directory is already populated and
// overwrite is off, the stage is skipped and the keep-set is derived
// from the destination's group files instead.
func (p *Pipeline) pruneGroups() (KeepSet, error) {
	users := NewKeepSet()
	stats := StageStats{Name: export.GroupsDir}

	srcDir := p.src.Path(export.GroupsDir)
	dstDir := p.dst.Path(export.GroupsDir)

	listDir := srcDir
	copyFiles := !p.opts.DryRun

	switch {
	case !p.opts.DryRun && !p.opts.Overwrite && hasEntries(dstDir):
		p.logger.Info("groups directory exists, skipping pruning")

		stats.Skipped = true
		stats.SkipReason = skipDestExists
		listDir = dstDir
		copyFiles = false
	case !p.src.HasDir(export.GroupsDir):
		p.logger.Warn("source groups directory missing, skipping stage", slog.String("path", srcDir))

		stats.Skipped = true
		stats.SkipReason = skipSourceMissing

		p.report.record(stats)
		p.report.recordKeepSet("users", users)

		return users, nil
	}

	entries, err := os.ReadDir(listDir)
	if err != nil {
		return nil, fmt.Errorf("listing groups in %s: %w", listDir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()

		if !p.tags.Name(name) {
			stats.Dropped++

			continue
		}

		group, err := export.ReadGroupFile(filepath.Join(listDir, name))
		if err != nil {
			stats.Malformed++

			p.warnMalformed(export.GroupsDir, err)

			continue
		}

		if copyFiles {
			if err := fsutil.CopyFile(filepath.Join(srcDir, name), filepath.Join(dstDir, name)); err != nil {
				return nil, err
			}
		}

		stats.Kept++

		for _, member := range group.Members {
			users.Add(member.UserName)
		}
	}

	p.report.record(stats)
	p.report.recordKeepSet("users", users)

	return users, nil
}

// pruneUsers keeps users listed in any surviving group. There is no
// independent tag check for users.
func (p *Pipeline) pruneUsers(users KeepSet) (StageStats, error) {
	return runLogStage(p, logStage[export.User]{
		name: export.UsersLog,
		keep: func(u *export.User) (bool, error) {
			return users.Has(u.UserName), nil
		},
	})
}

// hasEntries reports whether dir exists and contains at least one entry.
// A groups directory pre-created by destination setup does not count as
// prior output.
func hasEntries(dir string) bool {
	entries, err := os.ReadDir(dir)

	return err == nil && len(entries) > 0
}
