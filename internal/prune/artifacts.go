package prune

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gregwood-db/prune-exports/internal/export"
	"github.com/gregwood-db/prune-exports/internal/fsutil"
)

// pruneArtifacts copies whole artifact subtrees for matching teams and
// surviving users. This is a structural copy: nothing inside a kept
// subtree is examined or filtered.
func (p *Pipeline) pruneArtifacts(users KeepSet) (StageStats, error) {
	stats := StageStats{Name: "artifacts"}

	teamStats, err := p.copyArtifactRoot(export.TeamArtifactsDir, p.tags.TeamDir)
	if err != nil {
		return stats, err
	}

	userStats, err := p.copyArtifactRoot(export.UserArtifactsDir, users.Has)
	if err != nil {
		return stats, err
	}

	stats.Kept = teamStats.Kept + userStats.Kept
	stats.Dropped = teamStats.Dropped + userStats.Dropped
	stats.Skipped = teamStats.Skipped && userStats.Skipped

	if stats.Skipped {
		stats.SkipReason = skipSourceMissing
	}

	return stats, nil
}

// copyArtifactRoot copies the subdirectories of one artifact root whose
// names pass the keep predicate.
func (p *Pipeline) copyArtifactRoot(root string, keep func(string) bool) (StageStats, error) {
	stats := StageStats{Name: root}

	if !p.src.HasDir(root) {
		p.logger.Warn("artifact root missing, skipping", slog.String("path", p.src.Path(root)))

		stats.Skipped = true
		stats.SkipReason = skipSourceMissing

		return stats, nil
	}

	entries, err := os.ReadDir(p.src.Path(root))
	if err != nil {
		return stats, fmt.Errorf("listing %s: %w", p.src.Path(root), err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		name := entry.Name()

		if !keep(name) {
			stats.Dropped++

			continue
		}

		stats.Kept++

		if p.opts.DryRun {
			continue
		}

		src := filepath.Join(p.src.Path(root), name)
		dst := filepath.Join(p.dst.Path(root), name)

		if err := fsutil.SafeCopy(p.logger, src, dst, p.opts.Overwrite); err != nil {
			return stats, err
		}
	}

	return stats, nil
}
