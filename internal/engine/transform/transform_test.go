package transform_test

import (
	"strings"
	"testing"
	"time"

	"github.com/cdolfi/explorer/internal/core/domain"
	"github.com/cdolfi/explorer/internal/engine/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commit struct {
	created any
	emails  string
}

func activity(t *testing.T, commits ...commit) *domain.Table {
	t.Helper()
	tbl := domain.NewTable(domain.ActivityColumns()...)
	for i, c := range commits {
		require.NoError(t, tbl.Append(1, "sha"+string(rune('a'+i)), c.created, c.emails))
	}
	return tbl
}

// repeat builds n commits by a single author on the same day.
func repeat(n int, email string) []commit {
	out := make([]commit, n)
	for i := range out {
		out[i] = commit{created: "2023-01-01", emails: email}
	}
	return out
}

type row struct {
	label string
	count int64
}

func rows(t *testing.T, tbl *domain.Table) []row {
	t.Helper()
	require.Equal(t, transform.DomainColumns(), tbl.Columns)
	out := make([]row, tbl.Len())
	for i, r := range tbl.Rows {
		out[i] = row{label: r[0].(string), count: r[1].(int64)}
	}
	return out
}

func params(threshold int, excl ...domain.Exclusion) domain.VizParams {
	return domain.VizParams{Threshold: threshold, Exclusions: excl}
}

func TestDomainActivity_Bucketing(t *testing.T) {
	var commits []commit
	commits = append(commits, repeat(15, "dev@a.com")...)
	commits = append(commits, repeat(8, "dev@b.com")...)
	commits = append(commits, repeat(3, "dev@c.com")...)

	got, err := transform.DomainActivity(activity(t, commits...), params(10))
	require.NoError(t, err)

	assert.Equal(t, []row{{"a.com", 15}, {transform.OtherLabel, 11}}, rows(t, got))
}

func TestDomainActivity_ThresholdIsInclusive(t *testing.T) {
	var commits []commit
	commits = append(commits, repeat(10, "x@ten.org")...)
	commits = append(commits, repeat(11, "x@eleven.org")...)

	got, err := transform.DomainActivity(activity(t, commits...), params(10))
	require.NoError(t, err)

	assert.Equal(t, []row{{"eleven.org", 11}, {transform.OtherLabel, 10}}, rows(t, got))
}

func TestDomainActivity_SplitsEmailLists(t *testing.T) {
	tbl := activity(t,
		commit{"2023-01-01", "a@redhat.com , b@redhat.com"},
		commit{"2023-01-02", "noreply , c@mail.user@ibm.com"},
		commit{"2023-01-03", "d@ , e@gmail.com"},
	)

	got, err := transform.DomainActivity(tbl, params(1))
	require.NoError(t, err)

	assert.Equal(t, []row{{transform.OtherLabel, 2}, {"redhat.com", 2}}, rows(t, got))

	got, err = transform.DomainActivity(tbl, params(1, domain.ExcludeOther))
	require.NoError(t, err)
	assert.Equal(t, []row{{"redhat.com", 2}}, rows(t, got))
}

func TestDomainActivity_TiesSortByLabel(t *testing.T) {
	var commits []commit
	commits = append(commits, repeat(2, "x@zeta.io")...)
	commits = append(commits, repeat(2, "x@alpha.io")...)
	commits = append(commits, repeat(3, "x@mid.io")...)

	got, err := transform.DomainActivity(activity(t, commits...), params(1))
	require.NoError(t, err)

	assert.Equal(t, []row{{"mid.io", 3}, {"alpha.io", 2}, {"zeta.io", 2}}, rows(t, got))
}

func TestDomainActivity_Exclusions(t *testing.T) {
	var commits []commit
	commits = append(commits, repeat(20, "x@gmail.com")...)
	commits = append(commits, repeat(12, "x@redhat.com")...)
	commits = append(commits, repeat(2, "x@tiny.net")...)
	tbl := activity(t, commits...)

	tests := []struct {
		name string
		excl []domain.Exclusion
		want []row
	}{
		{name: "none", want: []row{{"gmail.com", 20}, {"redhat.com", 12}, {transform.OtherLabel, 2}}},
		{name: "gmail", excl: []domain.Exclusion{domain.ExcludeGmail}, want: []row{{"redhat.com", 12}, {transform.OtherLabel, 2}}},
		{name: "other", excl: []domain.Exclusion{domain.ExcludeOther}, want: []row{{"gmail.com", 20}, {"redhat.com", 12}}},
		{
			name: "both",
			excl: []domain.Exclusion{domain.ExcludeGmail, domain.ExcludeOther},
			want: []row{{"redhat.com", 12}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := transform.DomainActivity(tbl, params(10, tt.excl...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, rows(t, got))
		})
	}
}

func TestDomainActivity_DateBoundsAreInclusive(t *testing.T) {
	tbl := activity(t,
		commit{"2022-12-31 23:59:59", "x@before.com"},
		commit{"2023-01-01 00:00:00", "x@start.com"},
		commit{"2023-01-15T12:00:00+02:00", "x@middle.com"},
		commit{"2023-01-31 00:00:00", "x@end.com"},
		commit{"2023-01-31 00:00:01", "x@after.com"},
	)
	start, err := domain.ParseDate("2023-01-01")
	require.NoError(t, err)
	end, err := domain.ParseDate("2023-01-31")
	require.NoError(t, err)

	p := params(1)
	p.Dates = domain.DateRange{Start: start, End: end}

	got, err := transform.DomainActivity(tbl, p)
	require.NoError(t, err)
	assert.Equal(t, []row{{transform.OtherLabel, 3}}, rows(t, got))

	filtered, err := transform.FilterByDate(tbl, p.Dates)
	require.NoError(t, err)
	require.Equal(t, 3, filtered.Len())
	assert.Equal(t, "x@start.com", filtered.Rows[0][3])
	assert.Equal(t, "x@end.com", filtered.Rows[2][3])
}

func TestFilterByDate_SortsAndNormalizes(t *testing.T) {
	tbl := domain.NewTable(
		domain.Column{Name: domain.ColCreated, Kind: domain.KindString},
		domain.Column{Name: domain.ColEmailList, Kind: domain.KindString},
	)
	require.NoError(t, tbl.Append("2023-03-01T10:00:00+01:00", "late"))
	require.NoError(t, tbl.Append(nil, "unknown"))
	require.NoError(t, tbl.Append("2023-01-01", "early"))

	got, err := transform.FilterByDate(tbl, domain.DateRange{})
	require.NoError(t, err)

	require.Equal(t, 3, got.Len())
	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), got.Rows[0][0])
	assert.Equal(t, time.Date(2023, 3, 1, 9, 0, 0, 0, time.UTC), got.Rows[1][0])
	assert.Nil(t, got.Rows[2][0])
	assert.Equal(t, "2023-03-01T10:00:00+01:00", tbl.Rows[0][0], "input must not change")

	start, _ := domain.ParseDate("2022-01-01")
	got, err = transform.FilterByDate(tbl, domain.DateRange{Start: start})
	require.NoError(t, err)
	assert.Equal(t, 2, got.Len())
}

func TestDomainActivity_EmptyInputs(t *testing.T) {
	got, err := transform.DomainActivity(activity(t), params(10))
	require.NoError(t, err)
	assert.True(t, got.Empty())
	assert.Equal(t, transform.DomainColumns(), got.Columns)

	got, err = transform.DomainActivity(activity(t, commit{"2023-01-01", "no-email-here"}), params(10))
	require.NoError(t, err)
	assert.True(t, got.Empty())

	start, _ := domain.ParseDate("2030-01-01")
	p := params(10)
	p.Dates.Start = start
	got, err = transform.DomainActivity(activity(t, repeat(3, "x@a.com")...), p)
	require.NoError(t, err)
	assert.True(t, got.Empty())
}

func TestDomainActivity_Errors(t *testing.T) {
	_, err := transform.DomainActivity(activity(t), params(0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrInvalidThreshold.Error())

	noEmails := domain.NewTable(domain.Column{Name: domain.ColCreated, Kind: domain.KindTime})
	_, err = transform.DomainActivity(noEmails, params(10))
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrColumnNotFound.Error())

	badTimes := domain.NewTable(
		domain.Column{Name: domain.ColCreated, Kind: domain.KindString},
		domain.Column{Name: domain.ColEmailList, Kind: domain.KindString},
	)
	require.NoError(t, badTimes.Append("last tuesday", "x@a.com"))
	_, err = transform.DomainActivity(badTimes, params(10))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), domain.ErrTimestampParse.Error()))
}

func TestEarliest(t *testing.T) {
	tbl := activity(t,
		commit{"2023-02-01", "x@a.com"},
		commit{nil, "x@a.com"},
		commit{"2021-06-15 08:00:00", "x@a.com"},
	)

	got, ok, err := transform.Earliest(tbl)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2021, 6, 15, 8, 0, 0, 0, time.UTC), got)

	_, ok, err = transform.Earliest(activity(t))
	require.NoError(t, err)
	assert.False(t, ok)
}
