// Package domain contains the core types of the explorer cache/compute layer.
package domain

import (
	"encoding/json"
	"slices"
	"strings"
)

// RepoSet is a normalized collection of repository identifiers.
// Identifiers are trimmed, de-duplicated and sorted so that logically equal
// selections compare equal regardless of input order.
type RepoSet struct {
	ids []string
}

// NewRepoSet builds a RepoSet from the given identifiers.
func NewRepoSet(ids ...string) RepoSet {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		out = append(out, id)
	}
	slices.Sort(out)
	return RepoSet{ids: slices.Compact(out)}
}

// IDs returns a copy of the normalized identifiers.
func (r RepoSet) IDs() []string {
	return slices.Clone(r.ids)
}

// Len returns the number of repositories in the set.
func (r RepoSet) Len() int {
	return len(r.ids)
}

// Empty reports whether the set holds no repositories.
func (r RepoSet) Empty() bool {
	return len(r.ids) == 0
}

// Equal reports whether two sets hold the same repositories.
func (r RepoSet) Equal(other RepoSet) bool {
	return slices.Equal(r.ids, other.ids)
}

// String joins the identifiers with commas.
func (r RepoSet) String() string {
	return strings.Join(r.ids, ",")
}

// MarshalJSON encodes the set as a JSON array of identifiers.
func (r RepoSet) MarshalJSON() ([]byte, error) {
	if r.ids == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.ids)
}

// UnmarshalJSON decodes a JSON array of identifiers and normalizes it.
func (r *RepoSet) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*r = NewRepoSet(ids...)
	return nil
}
