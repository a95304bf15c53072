package warehouse

import "github.com/cdolfi/explorer/internal/core/domain"

// Statement is the SQL text and result schema of one query identity.
// The SQL takes the repository ids through a single "IN (?)" placeholder
// that is expanded per call.
type Statement struct {
	SQL     string
	Columns []domain.Column
}

// Statements holds the warehouse SQL for every query identity it can serve.
// The text is valid for both Postgres and SQLite.
var Statements = map[domain.QueryID]Statement{
	domain.QueryCompanyActivity: {
		SQL: `SELECT
	c.repo_id AS id,
	c.cmt_commit_hash AS commits,
	c.cmt_author_timestamp AS created,
	c.cmt_author_email || ' , ' || c.cmt_committer_email AS email_list
FROM commits c
WHERE c.repo_id IN (?)
ORDER BY c.cmt_author_timestamp`,
		Columns: domain.ActivityColumns(),
	},
}
