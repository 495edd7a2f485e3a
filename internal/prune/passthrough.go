package prune

import (
	"github.com/gregwood-db/prune-exports/internal/fsutil"
)

// passThroughResource names a source entry copied without filtering.
type passThroughResource struct {
	// Name is the entry's path relative to the tree root.
	Name string
	// Metastore marks entries elided by the skip-metastore toggle.
	Metastore bool
}

// passThroughResources lists the resources with no tag relationship.
// They are copied unchanged, files and directories alike.
var passThroughResources = []passThroughResource{
	{Name: "instance_pools.log"},
	{Name: "cluster_policies.log"},
	{Name: "acl_cluster_policies.log"},
	{Name: "secret_scopes.log"},
	{Name: "secret_scopes_acls.log"},
	{Name: "user_name_to_user_id.log"},
	{Name: "table_acls", Metastore: true},
	{Name: "metastore", Metastore: true},
	{Name: "metastore_views", Metastore: true},
	{Name: "database_details.log", Metastore: true},
}

// copyPassThrough copies the fixed pass-through list, plus any extra
// resources named in the specs file, into the destination tree. Missing
// sources and existing destinations are warnings, never fatal.
func (p *Pipeline) copyPassThrough() error {
	resources := passThroughResources

	if p.opts.SpecsFile != "" {
		extra, err := ParseSpecsFile(p.opts.SpecsFile)
		if err != nil {
			return err
		}

		resources = append(append([]passThroughResource(nil), resources...), extra...)
	}

	stats := StageStats{Name: "pass-through"}

	for _, res := range resources {
		if p.opts.SkipMetastore && res.Metastore {
			continue
		}

		if !p.src.HasFile(res.Name) && !p.src.HasDir(res.Name) {
			stats.Dropped++
		} else {
			stats.Kept++
		}

		if p.opts.DryRun {
			continue
		}

		if err := fsutil.SafeCopy(p.logger, p.src.Path(res.Name), p.dst.Path(res.Name), p.opts.Overwrite); err != nil {
			return err
		}
	}

	p.report.record(stats)

	return nil
}
