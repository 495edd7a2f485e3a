package prune

import (
	"github.com/gregwood-db/prune-exports/internal/export"
)

// pruneClusters keeps clusters whose z_team tag is one of the requested
// tags, then filters the cluster ACL log against the surviving cluster
// ids. Clusters without custom tags or without a z_team entry never
// match; that is a normal record shape, not an error.
func (p *Pipeline) pruneClusters() (KeepSet, error) {
	clusters := NewKeepSet()

	stats, err := runLogStage(p, logStage[export.Cluster]{
		name: export.ClustersLog,
		keep: func(c *export.Cluster) (bool, error) {
			tag, ok := c.TeamTag()

			return ok && p.tags.Team(tag), nil
		},
		collect: func(c *export.Cluster) {
			clusters.Add(c.ClusterID)
		},
	})
	if err != nil {
		return nil, err
	}

	p.report.record(stats)
	p.report.recordKeepSet("clusters", clusters)

	aclStats, err := p.pruneACLs(export.ClusterACLsLog, export.ClusterObjectPrefix, clusters)
	if err != nil {
		return nil, err
	}

	p.report.record(aclStats)

	return clusters, nil
}
