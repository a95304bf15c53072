// Package github computes activity tables from the GitHub REST API, for deployments
// without a reachable warehouse. Repository identifiers are OWNER/NAME.
package github

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/cdolfi/explorer/internal/core/domain"
	gh "github.com/google/go-github/v81/github"
	"go.trai.ch/zerr"
	"golang.org/x/oauth2"
)

const perPage = 100

// Executor implements ports.QueryExecutor for domain.QueryCompanyActivity.
type Executor struct {
	client     *gh.Client
	maxCommits int
}

// Option configures an Executor.
type Option func(*Executor) error

// WithBaseURL points the client at a GitHub Enterprise or test server.
func WithBaseURL(raw string) Option {
	return func(e *Executor) error {
		if !strings.HasSuffix(raw, "/") {
			raw += "/"
		}
		u, err := url.Parse(raw)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrConfigInvalid.Error()), "field", "warehouse.githubURL")
		}
		e.client.BaseURL = u
		return nil
	}
}

// New creates an executor reading at most maxCommits commits per repository.
// An empty token makes unauthenticated requests.
func New(token string, maxCommits int, opts ...Option) (*Executor, error) {
	httpClient := &http.Client{}
	if token != "" {
		httpClient.Transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
			Base:   http.DefaultTransport,
		}
	}

	e := &Executor{client: gh.NewClient(httpClient), maxCommits: maxCommits}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Execute lists the commits of every repository and returns one row per commit.
func (e *Executor) Execute(ctx context.Context, repos domain.RepoSet) (*domain.Table, error) {
	if repos.Empty() {
		return nil, domain.ErrEmptyRepoSet
	}

	table := domain.NewTable(domain.ActivityColumns()...)
	for _, id := range repos.IDs() {
		if err := e.appendRepo(ctx, table, id); err != nil {
			return nil, err
		}
	}
	return table, nil
}

func (e *Executor) appendRepo(ctx context.Context, table *domain.Table, id string) error {
	owner, name, ok := strings.Cut(id, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return zerr.With(domain.ErrInvalidRepoName, "repo", id)
	}

	repo, _, err := e.client.Repositories.Get(ctx, owner, name)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrGitHubRequestFailed.Error()), "repo", id)
	}

	opts := &gh.CommitsListOptions{ListOptions: gh.ListOptions{PerPage: perPage}}
	seen := 0
	for seen < e.maxCommits {
		commits, resp, err := e.client.Repositories.ListCommits(ctx, owner, name, opts)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrGitHubRequestFailed.Error()), "repo", id)
		}

		for _, c := range commits {
			if seen == e.maxCommits {
				break
			}
			seen++

			commit := c.GetCommit()
			emails := []string{commit.GetAuthor().GetEmail(), commit.GetCommitter().GetEmail()}
			err := table.Append(
				repo.GetID(),
				c.GetSHA(),
				commit.GetAuthor().GetDate().Time,
				strings.Join(emails, domain.EmailListSeparator),
			)
			if err != nil {
				return err
			}
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return nil
}
