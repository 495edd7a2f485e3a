// Package export models the on-disk layout and record types of a workspace
// export tree: line-delimited JSON logs, one JSON document per group file,
// and opaque artifact subtrees.
//
// Record fields are optional where the export is irregular: a cluster
// without custom tags or a job without an inline cluster spec is a valid
// record that simply never matches a tag.
package export

import "encoding/json"

// TeamTagKey is the custom-tag key carrying team ownership.
const TeamTagKey = "z_team"

// Cluster is a single record from clusters.log. Custom tags are decoded
// loosely: exports carry non-string tag values (numeric cost centers and
// the like) next to z_team, and those must not fail the whole record.
type Cluster struct {
	ClusterID  string         `json:"cluster_id"`
	CustomTags map[string]any `json:"custom_tags,omitempty"`
}

// TeamTag returns the cluster's z_team tag value. The second return is
// false when the cluster has no custom tags, no z_team entry, or a
// z_team value that is not a string.
func (c *Cluster) TeamTag() (string, bool) {
	return teamTag(c.CustomTags)
}

// ClusterSpec is an inline new-cluster specification embedded in a job.
type ClusterSpec struct {
	CustomTags map[string]any `json:"custom_tags,omitempty"`
}

func teamTag(tags map[string]any) (string, bool) {
	tag, ok := tags[TeamTagKey].(string)

	return tag, ok
}

// JobSettings holds the cluster binding of a job: either a reference to an
// existing cluster or an inline new-cluster spec. Both may be absent.
type JobSettings struct {
	ExistingClusterID string       `json:"existing_cluster_id,omitempty"`
	NewCluster        *ClusterSpec `json:"new_cluster,omitempty"`
}

// Job is a single record from jobs.log.
type Job struct {
	JobID    json.Number `json:"job_id"`
	Settings JobSettings `json:"settings"`
}

// TeamTag returns the z_team tag of the job's inline new-cluster spec, if
// the job has one. Jobs referencing an existing cluster or a pool carry no
// tag of their own.
func (j *Job) TeamTag() (string, bool) {
	if j.Settings.NewCluster == nil {
		return "", false
	}

	return teamTag(j.Settings.NewCluster.CustomTags)
}

// ACLEntry is a single access-control record. The object_id encodes the
// parent resource as a path, e.g. "/clusters/0101-abc" or "/jobs/42".
type ACLEntry struct {
	ObjectID string `json:"object_id"`
}

// InstanceProfile is a single record from instance_profiles.log.
type InstanceProfile struct {
	ARN string `json:"instance_profile_arn"`
}

// GroupMember is one entry of a group's members list.
type GroupMember struct {
	UserName string `json:"userName"`
}

// Group is the whole-document content of a single group file.
type Group struct {
	Members []GroupMember `json:"members"`
}

// User is a single record from users.log.
type User struct {
	UserName string `json:"userName"`
}

// DirEntry is a single record from user_dirs.log.
type DirEntry struct {
	Path     string      `json:"path"`
	ObjectID json.Number `json:"object_id"`
}

// WorkspaceObject is a single record from user_workspace.log.
type WorkspaceObject struct {
	Path     string      `json:"path"`
	ObjectID json.Number `json:"object_id"`
}

// Library is a single record from libraries.log.
type Library struct {
	Path string `json:"path"`
}
