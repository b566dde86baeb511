package forge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v66/github"

	apperr "guidedit/internal/errors"
	"guidedit/internal/logger"
	"guidedit/internal/model"
)

const perPage = 100

// GitHub implements Forge on top of go-github. go-github sends the
// X-GitHub-Api-Version: 2022-11-28 header on every request.
type GitHub struct {
	client *github.Client
	log    *slog.Logger
}

var _ Forge = (*GitHub)(nil)

// NewGitHub wraps an authenticated http.Client. baseURL overrides the API
// root (GitHub Enterprise, tests); empty means api.github.com.
func NewGitHub(httpClient *http.Client, baseURL string) (*GitHub, error) {
	client := github.NewClient(httpClient)
	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("parse api url: %w", err)
		}
		client.BaseURL = u
	}
	return &GitHub{client: client, log: logger.Component("forge")}, nil
}

func (g *GitHub) CurrentUser(ctx context.Context) (model.Session, error) {
	user, _, err := g.client.Users.Get(ctx, "")
	if err != nil {
		return model.Session{}, apperr.RequestFailed("forge.CurrentUser", "get user", err)
	}
	return model.Session{
		Login: user.GetLogin(),
		ID:    user.GetID(),
		Name:  user.GetName(),
	}, nil
}

func (g *GitHub) InstallationAccountIDs(ctx context.Context) ([]int64, error) {
	installs, _, err := g.client.Apps.ListUserInstallations(ctx, &github.ListOptions{PerPage: perPage})
	if err != nil {
		return nil, apperr.RequestFailed("forge.InstallationAccountIDs", "list installations", err)
	}
	ids := make([]int64, 0, len(installs))
	for _, in := range installs {
		if in.GetAccount() == nil {
			continue
		}
		ids = append(ids, in.GetAccount().GetID())
	}
	g.log.Debug("listed installations", "count", len(ids))
	return ids, nil
}

func (g *GitHub) FindPullRequest(ctx context.Context, repo model.Repo, head string) (string, error) {
	prs, _, err := g.client.PullRequests.List(ctx, repo.Owner, repo.Name, &github.PullRequestListOptions{
		State: "open",
		Head:  head,
	})
	if err != nil {
		return "", apperr.RequestFailed("forge.FindPullRequest", "list pulls for "+head, err)
	}
	if len(prs) == 0 {
		return "", nil
	}
	return prs[0].GetHTMLURL(), nil
}

func (g *GitHub) OwnedRepos(ctx context.Context) ([]model.Repo, error) {
	opts := &github.RepositoryListByAuthenticatedUserOptions{
		Affiliation: "owner",
		ListOptions: github.ListOptions{PerPage: perPage},
	}
	var repos []model.Repo
	for {
		page, resp, err := g.client.Repositories.ListByAuthenticatedUser(ctx, opts)
		if err != nil {
			return nil, apperr.RequestFailed("forge.OwnedRepos", "list repos", err)
		}
		for _, r := range page {
			repos = append(repos, model.Repo{
				Owner: r.GetOwner().GetLogin(),
				Name:  r.GetName(),
				URL:   r.GetHTMLURL(),
			})
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	g.log.Debug("listed owned repos", "count", len(repos))
	return repos, nil
}

func (g *GitHub) RefSHA(ctx context.Context, repo model.Repo, ref string) (string, error) {
	refs, _, err := g.client.Git.ListMatchingRefs(ctx, repo.Owner, repo.Name, &github.ReferenceListOptions{Ref: ref})
	if err != nil {
		return "", apperr.RequestFailed("forge.RefSHA", "match ref "+ref, err)
	}
	if len(refs) == 0 {
		return "", apperr.E(apperr.Op("forge.RefSHA"), apperr.KindNotFound, fmt.Sprintf("no ref matching %s in %s", ref, repo.FullName()))
	}
	return refs[0].GetObject().GetSHA(), nil
}

func (g *GitHub) CreateBranch(ctx context.Context, repo model.Repo, name, sha string) error {
	_, _, err := g.client.Git.CreateRef(ctx, repo.Owner, repo.Name, &github.Reference{
		Ref:    github.String("refs/heads/" + name),
		Object: &github.GitObject{SHA: github.String(sha)},
	})
	if err != nil {
		return apperr.RequestFailed("forge.CreateBranch", "create ref "+name, err)
	}
	return nil
}

func (g *GitHub) CreatePR(ctx context.Context, repo model.Repo, opts CreateOpts) (string, error) {
	pr, _, err := g.client.PullRequests.Create(ctx, repo.Owner, repo.Name, &github.NewPullRequest{
		Title: github.String(opts.Title),
		Head:  github.String(opts.Head),
		Base:  github.String(opts.BaseBranch),
		Draft: github.Bool(opts.Draft),
	})
	if err != nil {
		return "", apperr.RequestFailed("forge.CreatePR", "create pull request", err)
	}
	return pr.GetHTMLURL(), nil
}

func (g *GitHub) CreateFork(ctx context.Context, repo model.Repo) (string, error) {
	fork, _, err := g.client.Repositories.CreateFork(ctx, repo.Owner, repo.Name, &github.RepositoryCreateForkOptions{})
	if err != nil {
		// 202 Accepted: GitHub is still copying, but the repo already exists.
		var accepted *github.AcceptedError
		if !errors.As(err, &accepted) || fork == nil {
			return "", apperr.RequestFailed("forge.CreateFork", "fork "+repo.FullName(), err)
		}
	}
	return fork.GetHTMLURL(), nil
}
