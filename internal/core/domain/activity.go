package domain

// Columns of the commit activity table produced for QueryCompanyActivity.
const (
	ColRepoID    = "id"
	ColCommit    = "commits"
	ColCreated   = "created"
	ColEmailList = "email_list"
)

// EmailListSeparator joins the emails of one commit in ColEmailList.
const EmailListSeparator = " , "

// ActivityColumns returns the schema of the commit activity table.
func ActivityColumns() []Column {
	return []Column{
		{Name: ColRepoID, Kind: KindInt},
		{Name: ColCommit, Kind: KindString},
		{Name: ColCreated, Kind: KindTime},
		{Name: ColEmailList, Kind: KindString},
	}
}
