package prune

import (
	"github.com/gregwood-db/prune-exports/internal/export"
)

// pruneJobs keeps a job when its inline new-cluster spec carries a
// matching z_team tag, or when its existing_cluster_id references a
// surviving cluster. Jobs bound to a cluster pool or defined without an
// inline spec have no tag of their own and survive only through the
// cluster reference.
func (p *Pipeline) pruneJobs(clusters KeepSet) (KeepSet, error) {
	jobs := NewKeepSet()

	stats, err := runLogStage(p, logStage[export.Job]{
		name: export.JobsLog,
		keep: func(j *export.Job) (bool, error) {
			if tag, ok := j.TeamTag(); ok && p.tags.Team(tag) {
				return true, nil
			}

			return j.Settings.ExistingClusterID != "" && clusters.Has(j.Settings.ExistingClusterID), nil
		},
		collect: func(j *export.Job) {
			jobs.AddNumber(j.JobID)
		},
	})
	if err != nil {
		return nil, err
	}

	p.report.record(stats)
	p.report.recordKeepSet("jobs", jobs)

	return jobs, nil
}

// pruneInstanceProfiles keeps profiles whose ARN contains a hyphenated
// form of any requested tag.
func (p *Pipeline) pruneInstanceProfiles() (StageStats, error) {
	return runLogStage(p, logStage[export.InstanceProfile]{
		name: export.InstanceProfilesLog,
		keep: func(ip *export.InstanceProfile) (bool, error) {
			return p.tags.Name(ip.ARN), nil
		},
	})
}
