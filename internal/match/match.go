// Package match implements the tag predicate deciding whether an export
// record belongs to one of the requested teams.
//
// Three matching modes exist because team identity is encoded
// inconsistently across the export: clusters and jobs carry an exact
// z_team tag, ARNs and group names embed a hyphenated form of the tag,
// and team directory names sometimes drop the "team_" namespace prefix.
package match

import "strings"

// teamPrefix is the conventional namespace prefix of team tags.
const teamPrefix = "team_"

// Tags is the caller-supplied set of team tags. Matching is
// case-sensitive throughout.
type Tags []string

// Team reports whether a record's z_team tag value is one of the
// requested tags (exact mode; clusters and jobs).
func (t Tags) Team(team string) bool {
	for _, tag := range t {
		if tag == team {
			return true
		}
	}

	return false
}

// Name reports whether any requested tag, hyphenated, occurs inside an
// identifying string (substring mode; instance profile ARNs and group
// file names). Tags may contain underscores but ARN-style names cannot,
// so the tag is hyphenated before the containment check.
func (t Tags) Name(name string) bool {
	for _, tag := range t {
		if strings.Contains(name, hyphenate(tag)) {
			return true
		}
	}

	return false
}

// TeamDir reports whether a team directory or artifact name belongs to a
// requested tag (directory mode). Team directories are inconsistently
// namespaced, so three forms are tried: the tag itself, the hyphenated
// tag, and the tag with its "team_" prefix stripped.
func (t Tags) TeamDir(name string) bool {
	for _, tag := range t {
		if name == tag {
			return true
		}

		if strings.Contains(name, hyphenate(tag)) {
			return true
		}

		if bare := strings.TrimPrefix(tag, teamPrefix); bare != tag && strings.Contains(name, bare) {
			return true
		}
	}

	return false
}

func hyphenate(tag string) string {
	return strings.ReplaceAll(tag, "_", "-")
}
