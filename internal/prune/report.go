package prune

import (
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// StageStats summarizes one stage of a run.
type StageStats struct {
	// Name is the stage's output file or directory name.
	Name string `yaml:"name"`
	// Kept and Dropped count records (or subtrees) seen in the source.
	Kept    int `yaml:"kept"`
	Dropped int `yaml:"dropped"`
	// Malformed counts records that could not be decoded or whose
	// object id did not carry the expected prefix.
	Malformed int `yaml:"malformed,omitempty"`
	// Skipped is true when the stage did not run: either its source
	// input was missing, or its destination already existed and
	// overwrite was off. A skipped stage with an existing destination
	// still contributes keep-sets derived from that destination.
	Skipped bool `yaml:"skipped,omitempty"`
	// SkipReason explains a skip ("destination exists", "source missing").
	SkipReason string `yaml:"skipReason,omitempty"`
}

// Report is the full outcome of a pipeline run.
type Report struct {
	Source   string         `yaml:"source"`
	Target   string         `yaml:"target"`
	Tags     []string       `yaml:"tags"`
	DryRun   bool           `yaml:"dryRun,omitempty"`
	Stages   []StageStats   `yaml:"stages"`
	KeepSets map[string]int `yaml:"keepSets"`
}

// YAML serializes the report.
func (r *Report) YAML() ([]byte, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshaling report: %w", err)
	}

	return data, nil
}

// WriteText renders the report as an aligned table.
func (r *Report) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "STAGE\tKEPT\tDROPPED\tMALFORMED\tSTATUS\n")

	for _, s := range r.Stages {
		status := "pruned"
		if s.Skipped {
			status = "skipped (" + s.SkipReason + ")"
		}

		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\n", s.Name, s.Kept, s.Dropped, s.Malformed, status)
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}

	return nil
}

func (r *Report) record(s StageStats) {
	r.Stages = append(r.Stages, s)
}

func (r *Report) recordKeepSet(name string, s KeepSet) {
	if r.KeepSets == nil {
		r.KeepSets = make(map[string]int)
	}

	r.KeepSets[name] = s.Len()
}
