package github_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/cdolfi/explorer/internal/adapters/github"
	"github.com/cdolfi/explorer/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commitFixture struct {
	SHA    string `json:"sha"`
	Commit struct {
		Author    person `json:"author"`
		Committer person `json:"committer"`
	} `json:"commit"`
}

type person struct {
	Email string    `json:"email"`
	Date  time.Time `json:"date"`
}

func commit(sha, author, committer string, at time.Time) commitFixture {
	var c commitFixture
	c.SHA = sha
	c.Commit.Author = person{Email: author, Date: at}
	c.Commit.Committer = person{Email: committer, Date: at}
	return c
}

func newServer(t *testing.T, pages [][]commitFixture) (*httptest.Server, *[]string) {
	t.Helper()
	var auth []string

	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/chaoss/augur", func(w http.ResponseWriter, r *http.Request) {
		auth = append(auth, r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 78134122, "full_name": "chaoss/augur"})
	})
	mux.HandleFunc("GET /repos/chaoss/augur/commits", func(w http.ResponseWriter, r *http.Request) {
		page := 1
		if p := r.URL.Query().Get("page"); p != "" {
			page, _ = strconv.Atoi(p)
		}
		if page < len(pages) {
			w.Header().Set("Link", `<`+"http://"+r.Host+r.URL.Path+`?page=`+strconv.Itoa(page+1)+`>; rel="next"`)
		}
		_ = json.NewEncoder(w).Encode(pages[page-1])
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &auth
}

func TestExecutor_Execute(t *testing.T) {
	at := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
	server, auth := newServer(t, [][]commitFixture{
		{commit("a1", "dev@redhat.com", "noreply@github.com", at)},
		{commit("a2", "me@gmail.com", "me@gmail.com", at.Add(time.Hour))},
	})

	exec, err := github.New("token-123", 10, github.WithBaseURL(server.URL))
	require.NoError(t, err)

	table, err := exec.Execute(t.Context(), domain.NewRepoSet("chaoss/augur"))
	require.NoError(t, err)

	require.Equal(t, 2, table.Len())
	assert.Equal(t, domain.ActivityColumns(), table.Columns)
	assert.Equal(t, int64(78134122), table.Rows[0][0])
	assert.Equal(t, "a1", table.Rows[0][1])
	assert.Equal(t, at, table.Rows[0][2])
	assert.Equal(t, "dev@redhat.com , noreply@github.com", table.Rows[0][3])
	assert.Equal(t, "a2", table.Rows[1][1])

	require.NotEmpty(t, *auth)
	assert.Equal(t, "Bearer token-123", (*auth)[0])
}

func TestExecutor_MaxCommits(t *testing.T) {
	at := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
	server, _ := newServer(t, [][]commitFixture{
		{commit("a1", "a@x.com", "a@x.com", at), commit("a2", "b@x.com", "b@x.com", at)},
		{commit("a3", "c@x.com", "c@x.com", at)},
	})

	exec, err := github.New("", 1, github.WithBaseURL(server.URL))
	require.NoError(t, err)

	table, err := exec.Execute(t.Context(), domain.NewRepoSet("chaoss/augur"))
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
}

func TestExecutor_Errors(t *testing.T) {
	server, _ := newServer(t, [][]commitFixture{{}})
	exec, err := github.New("", 10, github.WithBaseURL(server.URL))
	require.NoError(t, err)

	_, err = exec.Execute(t.Context(), domain.NewRepoSet())
	require.ErrorIs(t, err, domain.ErrEmptyRepoSet)

	_, err = exec.Execute(t.Context(), domain.NewRepoSet("not-a-repo"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrInvalidRepoName.Error())

	_, err = exec.Execute(t.Context(), domain.NewRepoSet("chaoss/missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrGitHubRequestFailed.Error())
}

func TestExecutor_NoCommits(t *testing.T) {
	server, _ := newServer(t, [][]commitFixture{{}})
	exec, err := github.New("", 10, github.WithBaseURL(server.URL))
	require.NoError(t, err)

	table, err := exec.Execute(t.Context(), domain.NewRepoSet("chaoss/augur"))
	require.NoError(t, err)
	assert.True(t, table.Empty())
}
