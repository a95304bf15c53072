// Package transform derives chart-ready tables from cached query tables.
package transform

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/cdolfi/explorer/internal/core/domain"
	"go.trai.ch/zerr"
)

// Output columns of DomainActivity.
const (
	ColDomains     = "domains"
	ColOccurrences = "occurrences"
)

const (
	// OtherLabel collects every domain at or below the threshold.
	OtherLabel = "Other"
	// GmailDomain is removed by the gmail exclusion.
	GmailDomain = "gmail.com"
)

// DomainColumns returns the schema of the DomainActivity output.
func DomainColumns() []domain.Column {
	return []domain.Column{
		{Name: ColDomains, Kind: domain.KindString},
		{Name: ColOccurrences, Kind: domain.KindInt},
	}
}

// FilterByDate returns the rows whose created timestamp lies in r, sorted ascending by
// that timestamp. Created values are normalized to UTC. Rows without a timestamp are
// kept only when r is unbounded.
func FilterByDate(t *domain.Table, r domain.DateRange) (*domain.Table, error) {
	idx, err := t.ColumnIndex(domain.ColCreated)
	if err != nil {
		return nil, err
	}

	type dated struct {
		ts      time.Time
		missing bool
		row     []any
	}

	bounded := r.Start != nil || r.End != nil
	rows := make([]dated, 0, t.Len())
	for _, row := range t.Rows {
		if row[idx] == nil {
			if !bounded {
				rows = append(rows, dated{missing: true, row: row})
			}
			continue
		}
		ts, err := domain.ParseTimestamp(row[idx])
		if err != nil {
			return nil, zerr.With(err, "column", domain.ColCreated)
		}
		if r.Contains(ts) {
			rows = append(rows, dated{ts: ts, row: row})
		}
	}

	slices.SortStableFunc(rows, func(a, b dated) int {
		switch {
		case a.missing && b.missing:
			return 0
		case a.missing:
			return 1
		case b.missing:
			return -1
		}
		return a.ts.Compare(b.ts)
	})

	out := domain.NewTable(t.Columns...)
	out.Columns[idx].Kind = domain.KindTime
	out.Rows = make([][]any, len(rows))
	for i, d := range rows {
		row := slices.Clone(d.row)
		if !d.missing {
			row[idx] = d.ts
		}
		out.Rows[i] = row
	}
	return out, nil
}

// DomainActivity counts contributions per email domain.
//
// Each row's email list is split into emails; entries without "@" or with nothing after
// it are dropped and the domain is the text after the last "@". Domains counted at or below the threshold are
// merged into OtherLabel. The result is sorted by count descending, then by label.
func DomainActivity(t *domain.Table, params domain.VizParams) (*domain.Table, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	filtered, err := FilterByDate(t, params.Dates)
	if err != nil {
		return nil, err
	}

	emailIdx, err := filtered.ColumnIndex(domain.ColEmailList)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64)
	for _, row := range filtered.Rows {
		list, ok := row[emailIdx].(string)
		if !ok {
			continue
		}
		for _, email := range strings.Split(list, domain.EmailListSeparator) {
			at := strings.LastIndex(email, "@")
			if at < 0 || at == len(email)-1 {
				continue
			}
			counts[email[at+1:]]++
		}
	}

	grouped := make(map[string]int64, len(counts))
	for d, n := range counts {
		if n <= int64(params.Threshold) {
			d = OtherLabel
		}
		grouped[d] += n
	}

	if params.Excludes(domain.ExcludeGmail) {
		delete(grouped, GmailDomain)
	}
	if params.Excludes(domain.ExcludeOther) {
		delete(grouped, OtherLabel)
	}

	labels := make([]string, 0, len(grouped))
	for d := range grouped {
		labels = append(labels, d)
	}
	slices.SortFunc(labels, func(a, b string) int {
		if c := cmp.Compare(grouped[b], grouped[a]); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})

	out := domain.NewTable(DomainColumns()...)
	for _, d := range labels {
		if err := out.Append(d, grouped[d]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Earliest returns the smallest created timestamp of t. The boolean is false when t
// has no timestamps.
func Earliest(t *domain.Table) (time.Time, bool, error) {
	idx, err := t.ColumnIndex(domain.ColCreated)
	if err != nil {
		return time.Time{}, false, err
	}

	var (
		earliest time.Time
		found    bool
	)
	for _, row := range t.Rows {
		if row[idx] == nil {
			continue
		}
		ts, err := domain.ParseTimestamp(row[idx])
		if err != nil {
			return time.Time{}, false, zerr.With(err, "column", domain.ColCreated)
		}
		if !found || ts.Before(earliest) {
			earliest, found = ts, true
		}
	}
	return earliest, found, nil
}
