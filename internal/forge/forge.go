package forge

import (
	"context"

	"guidedit/internal/model"
)

// Forge is the subset of the GitHub REST API the sidebar needs.
type Forge interface {
	// CurrentUser returns the identity behind the token.
	CurrentUser(ctx context.Context) (model.Session, error)
	// InstallationAccountIDs lists the account ids of the app
	// installations visible to the user.
	InstallationAccountIDs(ctx context.Context) ([]int64, error)
	// FindPullRequest returns the URL of the first open PR on repo whose
	// head is "<login>:<branch>", or "" if there is none.
	FindPullRequest(ctx context.Context, repo model.Repo, head string) (string, error)
	// OwnedRepos lists every repository owned by the user.
	OwnedRepos(ctx context.Context) ([]model.Repo, error)
	// RefSHA resolves a ref such as "heads/master" to a commit SHA.
	RefSHA(ctx context.Context, repo model.Repo, ref string) (string, error)
	// CreateBranch creates refs/heads/<name> at sha.
	CreateBranch(ctx context.Context, repo model.Repo, name, sha string) error
	// CreatePR opens a pull request and returns its URL.
	CreatePR(ctx context.Context, repo model.Repo, opts CreateOpts) (string, error)
	// CreateFork forks repo into the user's account and returns its URL.
	CreateFork(ctx context.Context, repo model.Repo) (string, error)
}

// CreateOpts are the parameters for creating a PR.
type CreateOpts struct {
	Title      string
	Head       string // "<login>:<branch>"
	BaseBranch string
	Draft      bool
}
