package prune

import (
	"strings"

	"github.com/gregwood-db/prune-exports/internal/export"
)

// dirKind classifies a directory record by its second path segment.
type dirKind int

const (
	dirUnknown dirKind = iota
	dirTopLevel
	dirUser
	dirTeam
)

// classifyDir inspects a directory path and returns its kind plus the
// owner segment (the username for user directories, the team name for
// team directories).
func classifyDir(path string) (dirKind, string) {
	segments := strings.Split(path, "/")

	if len(segments) == 2 {
		return dirTopLevel, ""
	}

	if len(segments) < 3 {
		return dirUnknown, ""
	}

	switch segments[1] {
	case "Users":
		return dirUser, segments[2]
	case "teams":
		return dirTeam, segments[2]
	default:
		return dirUnknown, ""
	}
}

// parentPath strips the final path segment. Paths without a separator
// have no parent.
func parentPath(path string) string {
	idx := strings.LastIndex(path, "/")
	if idx <= 0 {
		return ""
	}

	return path[:idx]
}

// pruneDirectories classifies each directory record and keeps it when it
// is top-level, owned by a surviving user, or owned by a requested team.
// It returns the kept directory paths (user/team directories only;
// nothing references a top-level directory as a parent) and their object
// ids for the directory-ACL stage. Directories under any other second
// path segment are dropped silently.
func (p *Pipeline) pruneDirectories(users KeepSet) (KeepSet, KeepSet, error) {
	dirs := NewKeepSet()
	dirIDs := NewKeepSet()

	stats, err := runLogStage(p, logStage[export.DirEntry]{
		name: export.UserDirsLog,
		keep: func(d *export.DirEntry) (bool, error) {
			switch kind, owner := classifyDir(d.Path); kind {
			case dirTopLevel:
				return true, nil
			case dirUser:
				return users.Has(owner), nil
			case dirTeam:
				return p.tags.TeamDir(owner), nil
			default:
				return false, nil
			}
		},
		// collect sees only kept records on a normal run, and every
		// record of the existing destination on a skipped run. Either
		// way a surviving user/team directory enters the keep-sets
		// without re-applying the predicate.
		collect: func(d *export.DirEntry) {
			if kind, _ := classifyDir(d.Path); kind == dirUser || kind == dirTeam {
				dirs.Add(d.Path)
				dirIDs.AddNumber(d.ObjectID)
			}
		},
	})
	if err != nil {
		return nil, nil, err
	}

	p.report.record(stats)
	p.report.recordKeepSet("dirs", dirs)
	p.report.recordKeepSet("dirIDs", dirIDs)

	return dirs, dirIDs, nil
}

// pruneWorkspaceObjects keeps objects whose containing directory
// survived, and returns their object ids for the notebook-ACL stage.
func (p *Pipeline) pruneWorkspaceObjects(dirs KeepSet) (KeepSet, error) {
	objectIDs := NewKeepSet()

	stats, err := runLogStage(p, logStage[export.WorkspaceObject]{
		name: export.UserWorkspaceLog,
		keep: func(obj *export.WorkspaceObject) (bool, error) {
			return dirs.Has(parentPath(obj.Path)), nil
		},
		collect: func(obj *export.WorkspaceObject) {
			objectIDs.AddNumber(obj.ObjectID)
		},
	})
	if err != nil {
		return nil, err
	}

	p.report.record(stats)
	p.report.recordKeepSet("objectIDs", objectIDs)

	return objectIDs, nil
}

// pruneLibraries applies the same containing-directory rule to library
// records.
func (p *Pipeline) pruneLibraries(dirs KeepSet) (StageStats, error) {
	return runLogStage(p, logStage[export.Library]{
		name: export.LibrariesLog,
		keep: func(lib *export.Library) (bool, error) {
			return dirs.Has(parentPath(lib.Path)), nil
		},
	})
}
