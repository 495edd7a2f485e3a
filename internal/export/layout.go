package export

import (
	"os"
	"path/filepath"
)

// Log file and directory names inside an export tree. The pruned output
// tree mirrors these names exactly.
const (
	ClustersLog         = "clusters.log"
	ClusterACLsLog      = "acl_clusters.log"
	JobsLog             = "jobs.log"
	JobACLsLog          = "acl_jobs.log"
	InstanceProfilesLog = "instance_profiles.log"
	UsersLog            = "users.log"
	UserDirsLog         = "user_dirs.log"
	UserWorkspaceLog    = "user_workspace.log"
	DirectoryACLsLog    = "acl_directories.log"
	NotebookACLsLog     = "acl_notebooks.log"
	LibrariesLog        = "libraries.log"

	GroupsDir = "groups"
)

// Artifact roots, relative to the tree root.
var (
	TeamArtifactsDir = filepath.Join("artifacts", "teams")
	UserArtifactsDir = filepath.Join("artifacts", "Users")
)

// Object-id path prefixes used by the ACL logs.
const (
	ClusterObjectPrefix   = "/clusters/"
	JobObjectPrefix       = "/jobs/"
	DirectoryObjectPrefix = "/directories/"
	NotebookObjectPrefix  = "/notebooks/"
)

// Tree is a source or destination export tree rooted at a directory.
type Tree struct {
	Root string
}

// Path returns the absolute path of a named entry inside the tree.
func (t Tree) Path(elem ...string) string {
	return filepath.Join(append([]string{t.Root}, elem...)...)
}

// Exists reports whether the tree root exists and is a directory.
func (t Tree) Exists() bool {
	info, err := os.Stat(t.Root)

	return err == nil && info.IsDir()
}

// HasFile reports whether a named regular file exists inside the tree.
func (t Tree) HasFile(name string) bool {
	info, err := os.Stat(t.Path(name))

	return err == nil && info.Mode().IsRegular()
}

// HasDir reports whether a named directory exists inside the tree.
func (t Tree) HasDir(name string) bool {
	info, err := os.Stat(t.Path(name))

	return err == nil && info.IsDir()
}
