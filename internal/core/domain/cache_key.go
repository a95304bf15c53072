package domain

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// QueryID names a kind of computation over a repository set.
type QueryID string

// QueryCompanyActivity yields one row per commit with its timestamp and the
// author and committer emails of the commit.
const QueryCompanyActivity QueryID = "company-associated-activity"

// String returns the query identity as a string.
func (q QueryID) String() string {
	return string(q)
}

// CacheKey addresses one cache entry: a query identity applied to a repository set.
type CacheKey struct {
	Query QueryID
	Repos RepoSet
}

// NewCacheKey builds a cache key for the given query and repositories.
func NewCacheKey(query QueryID, repos RepoSet) CacheKey {
	return CacheKey{Query: query, Repos: repos}
}

// String renders the storage key as "<query>:<xxhash64 of the normalized ids>".
func (k CacheKey) String() string {
	d := xxhash.New()
	for i, id := range k.Repos.ids {
		if i > 0 {
			_, _ = d.WriteString(",")
		}
		_, _ = d.WriteString(id)
	}
	return string(k.Query) + ":" + strconv.FormatUint(d.Sum64(), 16)
}
