// Package prune implements the dependency-driven filter pipeline that
// reduces a workspace export tree to the resources owned by a set of
// teams.
//
// Each stage consumes the source tree plus zero or more keep-sets
// produced by earlier stages, writes at most one pruned output, and may
// return a new keep-set for downstream stages. Keep-sets are plain
// values passed between stage calls; no stage mutates another stage's
// set.
package prune

import "encoding/json"

// KeepSet is a set of identifiers (or paths) produced by one stage and
// consumed by downstream stages to decide child-record retention.
type KeepSet map[string]struct{}

// NewKeepSet returns an empty keep-set.
func NewKeepSet() KeepSet {
	return make(KeepSet)
}

// Add records an identifier.
func (s KeepSet) Add(id string) {
	s[id] = struct{}{}
}

// AddNumber records a numeric identifier in its canonical decimal form,
// so that it compares equal to the string suffix of an ACL object_id.
func (s KeepSet) AddNumber(n json.Number) {
	s[n.String()] = struct{}{}
}

// Has reports membership.
func (s KeepSet) Has(id string) bool {
	_, ok := s[id]

	return ok
}

// Len returns the number of identifiers in the set.
func (s KeepSet) Len() int {
	return len(s)
}
