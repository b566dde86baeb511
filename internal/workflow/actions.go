// Package workflow drives the fork, branch and pull-request steps of a
// contribution to the upstream repository.
//
// Every method may be called from a tea command goroutine. Results are
// applied only while the panel that started them is still active: Activate
// and Deactivate bump a generation counter and late results from an older
// generation are dropped.
package workflow

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	apperr "guidedit/internal/errors"
	"guidedit/internal/forge"
	"guidedit/internal/logger"
	"guidedit/internal/model"
	"guidedit/internal/state"
)

// Button labels.
const (
	LabelCreateFork   = "Create Fork"
	LabelCreatingFork = "Creating Fork..."
	LabelOpenPR       = "Open Pull Request"
	LabelOpeningPR    = "Opening Pull Request..."
	LabelPROpened     = "PR Opened!"
)

// DefaultPRTitle is used when the user gives no title.
const DefaultPRTitle = "Updates from editor"

// Settings name the repository contributions go to.
type Settings struct {
	Upstream   model.Repo
	BaseBranch string
}

// Actions is the state machine behind the GitHub panel.
type Actions struct {
	store *state.Store
	cfg   Settings
	log   *slog.Logger

	mu        sync.Mutex
	gen       uint64
	active    bool
	loaded    bool
	installed bool
	forkLabel string
	pullLabel string
}

func New(store *state.Store, cfg Settings) *Actions {
	return &Actions{
		store:     store,
		cfg:       cfg,
		log:       logger.Component("workflow"),
		forkLabel: LabelCreateFork,
		pullLabel: LabelOpenPR,
	}
}

// Activate starts a new generation. Call it when the panel is shown for a
// session.
func (a *Actions) Activate() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.gen++
	a.active = true
	a.loaded = false
	a.log.Debug("activated", "generation", a.gen)
}

// Deactivate drops every in-flight result and resets panel state.
func (a *Actions) Deactivate() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.gen++
	a.active = false
	a.loaded = false
	a.installed = false
	a.forkLabel = LabelCreateFork
	a.pullLabel = LabelOpenPR
	a.log.Debug("deactivated", "generation", a.gen)
}

func (a *Actions) begin() (uint64, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.gen, a.active
}

// apply runs fn if gen is still the live generation. fn runs under a.mu and
// must not call other Actions methods.
func (a *Actions) apply(gen uint64, fn func()) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.active || a.gen != gen {
		a.log.Debug("dropping stale result", "generation", gen, "current", a.gen)
		return false
	}
	fn()
	return true
}

// Active reports whether the panel is shown.
func (a *Actions) Active() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active
}

// Loaded reports whether the first refresh of this generation finished.
func (a *Actions) Loaded() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loaded
}

// Installed reports whether the GitHub App is installed for the user.
func (a *Actions) Installed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.installed
}

// ForkLabel is the text of the create-fork button.
func (a *Actions) ForkLabel() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.forkLabel
}

// PullLabel is the text of the pull-request button.
func (a *Actions) PullLabel() string {
	if a.store.PullRequest() != "" {
		return LabelPROpened
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pullLabel
}

// Settings returns the repository settings Actions was built with.
func (a *Actions) Settings() Settings { return a.cfg }

// ForkRepo is the user's copy of the upstream repository.
func (a *Actions) ForkRepo(login string) model.Repo {
	return model.Repo{Owner: login, Name: a.cfg.Upstream.Name}
}

// PRTitle returns title, or DefaultPRTitle when it is blank.
func PRTitle(title string) string {
	if t := strings.TrimSpace(title); t != "" {
		return t
	}
	return DefaultPRTitle
}

// Refresh re-reads installation status, the fork and the current branch's
// pull request. The three lookups run concurrently and each applies its own
// result; a failed lookup is logged and leaves its field untouched.
func (a *Actions) Refresh(ctx context.Context) error {
	const op = apperr.Op("workflow.Refresh")

	client, sess := a.store.Client(), a.store.Session()
	if client == nil || sess == nil {
		return apperr.NotReady(op, "session")
	}
	gen, active := a.begin()
	if !active {
		return apperr.NotReady(op, "panel")
	}
	branch := a.store.Branch()

	var g errgroup.Group
	g.Go(func() error {
		ids, err := client.InstallationAccountIDs(ctx)
		if err != nil {
			a.log.Warn("installation lookup failed, keeping previous state", "error", err)
			return nil
		}
		installed := slices.Contains(ids, sess.ID)
		a.apply(gen, func() { a.installed = installed })
		return nil
	})
	if branch != "" {
		g.Go(func() error {
			url, err := client.FindPullRequest(ctx, a.cfg.Upstream, model.Head(sess.Login, branch))
			if err != nil {
				a.log.Warn("pull request lookup failed", "branch", branch, "error", err)
				return nil
			}
			a.apply(gen, func() {
				// the branch may have moved while the request was in flight
				if a.store.Branch() == branch {
					a.store.SetPullRequest(url)
				}
			})
			return nil
		})
	}
	g.Go(func() error {
		repos, err := client.OwnedRepos(ctx)
		if err != nil {
			a.log.Warn("repository lookup failed", "error", err)
			return nil
		}
		fork := ""
		for _, r := range repos {
			if r.Name == a.cfg.Upstream.Name {
				fork = r.URL
				break
			}
		}
		a.apply(gen, func() { a.store.SetFork(fork) })
		return nil
	})
	_ = g.Wait()

	a.apply(gen, func() { a.loaded = true })
	a.log.Info("refreshed", "login", sess.Login, "branch", branch)
	return nil
}

// CreateFork forks the upstream repository into the user's account.
func (a *Actions) CreateFork(ctx context.Context) error {
	const op = apperr.Op("workflow.CreateFork")

	client := a.store.Client()
	if client == nil {
		return apperr.NotReady(op, "client")
	}
	gen, active := a.begin()
	if !active {
		return apperr.NotReady(op, "panel")
	}

	a.apply(gen, func() { a.forkLabel = LabelCreatingFork })
	url, err := client.CreateFork(ctx, a.cfg.Upstream)
	if err != nil {
		a.log.Error("create fork failed", "upstream", a.cfg.Upstream.FullName(), "error", err)
		a.apply(gen, func() { a.forkLabel = LabelCreateFork })
		return err
	}
	a.apply(gen, func() {
		a.store.SetFork(url)
		a.forkLabel = LabelCreateFork
	})
	a.log.Info("fork created", "url", url)
	return nil
}

// CreateBranch creates name in the fork at the upstream base branch's head
// and selects it. The branch is selected even if creation fails, so an
// existing branch can be picked the same way.
func (a *Actions) CreateBranch(ctx context.Context, name string) error {
	const op = apperr.Op("workflow.CreateBranch")

	client, sess, fork := a.store.Client(), a.store.Session(), a.store.Fork()
	switch {
	case client == nil || sess == nil:
		return apperr.NotReady(op, "session")
	case fork == "":
		return apperr.NotReady(op, "fork")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return apperr.E(op, apperr.KindInvalid, "branch name is empty")
	}
	gen, active := a.begin()
	if !active {
		return apperr.NotReady(op, "panel")
	}

	sha, err := client.RefSHA(ctx, a.cfg.Upstream, "heads/"+a.cfg.BaseBranch)
	if err != nil {
		a.log.Warn("base branch lookup failed, selecting branch anyway", "base", a.cfg.BaseBranch, "error", err)
	} else if err := client.CreateBranch(ctx, a.ForkRepo(sess.Login), name, sha); err != nil {
		a.log.Info("create branch failed, assuming it exists", "branch", name, "error", err)
	}

	a.apply(gen, func() {
		if a.store.SetBranch(name) {
			a.log.Info("branch selected", "branch", name)
		}
	})
	return nil
}

// OpenPR opens a draft pull request from the current branch onto the
// upstream base branch. The returned error is meant for the user.
func (a *Actions) OpenPR(ctx context.Context, title string) error {
	const op = apperr.Op("workflow.OpenPR")

	client, sess, fork, branch := a.store.Client(), a.store.Session(), a.store.Fork(), a.store.Branch()
	switch {
	case client == nil || sess == nil:
		return apperr.NotReady(op, "session")
	case fork == "":
		return apperr.NotReady(op, "fork")
	case branch == "":
		return apperr.NotReady(op, "branch")
	}
	if a.store.PullRequest() != "" {
		a.log.Debug("pull request already open", "url", a.store.PullRequest())
		return nil
	}
	gen, active := a.begin()
	if !active {
		return apperr.NotReady(op, "panel")
	}

	a.apply(gen, func() { a.pullLabel = LabelOpeningPR })
	url, err := client.CreatePR(ctx, a.cfg.Upstream, forge.CreateOpts{
		Title:      PRTitle(title),
		Head:       model.Head(sess.Login, branch),
		BaseBranch: a.cfg.BaseBranch,
		Draft:      true,
	})
	a.apply(gen, func() {
		if err == nil && a.store.Branch() == branch {
			a.store.SetPullRequest(url)
		}
		a.pullLabel = LabelOpenPR
	})
	if err != nil {
		a.log.Error("create pull request failed", "branch", branch, "error", err)
		return err
	}
	a.log.Info("pull request opened", "url", url)
	return nil
}
