package tui

import (
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"path"
	"runtime"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"guidedit/internal/editor"
	apperr "guidedit/internal/errors"
	"guidedit/internal/forge"
	"guidedit/internal/git"
	"guidedit/internal/logger"
	"guidedit/internal/model"
	"guidedit/internal/state"
	"guidedit/internal/workflow"
)

// — state ———————————————————————————————————————————————————————————————————

type appState int

const (
	stateNormal appState = iota
	stateConfirm
	stateNewFile
	stateBranch
	statePRTitle
	stateAlert
)

// — messages ————————————————————————————————————————————————————————————————

type loginResultMsg struct {
	client forge.Forge
	sess   model.Session
	err    error
}

type refreshedMsg struct {
	err error
}

type forkCreatedMsg struct {
	err error
}

type branchCreatedMsg struct {
	name string
	err  error
}

type prOpenedMsg struct {
	err error
}

// — collaborators ———————————————————————————————————————————————————————————

// Authenticator logs the user in to GitHub.
type Authenticator interface {
	AuthorizeURL() string
	Login(ctx context.Context) (forge.Forge, model.Session, error)
	Resume(ctx context.Context, token string) (forge.Forge, model.Session, error)
}

// Options configure New.
type Options struct {
	Store   *state.Store
	Files   state.FileActions
	Actions *workflow.Actions
	Auth    Authenticator

	AppURL string // GitHub App installation page
	Token  string // resume with this token instead of the browser flow
}

// — list item ———————————————————————————————————————————————————————————————

type fileItem struct {
	id     string
	active bool
}

func (i fileItem) Title() string {
	indicator := " "
	if i.active {
		indicator = "●"
	}
	return indicator + " " + path.Base(i.id)
}

func (i fileItem) Description() string { return path.Dir(i.id) }
func (i fileItem) FilterValue() string { return i.id }

// — model ———————————————————————————————————————————————————————————————————

type Model struct {
	ctx     context.Context
	store   *state.Store
	sidebar *editor.Sidebar
	actions *workflow.Actions
	auth    Authenticator
	appURL  string
	token   string
	log     *slog.Logger

	keys    KeyMap
	list    list.Model
	spinner spinner.Model
	input   textinput.Model
	width   int
	height  int

	state    appState
	inputErr string
	confirm  editor.Confirmation
	alert    string

	loggingIn   bool
	cancelLogin context.CancelFunc

	openURL func(url string) tea.Cmd
}

// New builds the sidebar. ctx bounds every network call the program makes.
func New(ctx context.Context, opts Options) Model {
	delegate := list.NewDefaultDelegate()

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Files"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Styles.Title = titleStyle

	ti := textinput.New()
	ti.CharLimit = 100

	sp := spinner.New(spinner.WithSpinner(spinner.Line))

	m := Model{
		ctx:       ctx,
		store:     opts.Store,
		sidebar:   editor.New(opts.Store, opts.Files),
		actions:   opts.Actions,
		auth:      opts.Auth,
		appURL:    opts.AppURL,
		token:     opts.Token,
		log:       logger.Component("tui"),
		keys:      DefaultKeyMap(),
		list:      l,
		spinner:   sp,
		input:     ti,
		loggingIn: opts.Token != "",
		openURL:   openURLCmd,
	}
	m.syncFiles()
	return m
}

// — commands ————————————————————————————————————————————————————————————————

func loginCmd(ctx context.Context, auth Authenticator) tea.Cmd {
	return func() tea.Msg {
		client, sess, err := auth.Login(ctx)
		return loginResultMsg{client: client, sess: sess, err: err}
	}
}

func resumeCmd(ctx context.Context, auth Authenticator, token string) tea.Cmd {
	return func() tea.Msg {
		client, sess, err := auth.Resume(ctx, token)
		return loginResultMsg{client: client, sess: sess, err: err}
	}
}

func openURLCmd(url string) tea.Cmd {
	return func() tea.Msg {
		var cmd *exec.Cmd
		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", url)
		case "windows":
			cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
		default:
			cmd = exec.Command("xdg-open", url)
		}
		if err := cmd.Run(); err != nil {
			logger.Component("tui").Warn("open url failed", "url", url, "error", err)
		}
		return nil
	}
}

// syncFiles rebuilds the list items from the store.
func (m *Model) syncFiles() {
	files := m.sidebar.Files()
	active := m.sidebar.ActiveFile()
	items := make([]list.Item, len(files))
	for i, f := range files {
		items[i] = fileItem{id: f, active: f == active}
	}
	m.list.SetItems(items)
}

func (m Model) selectedFile() string {
	it, ok := m.list.SelectedItem().(fileItem)
	if !ok {
		return ""
	}
	return it.id
}

// openModal switches to a text-input state.
func (m *Model) openModal(s appState, placeholder string) tea.Cmd {
	m.state = s
	m.inputErr = ""
	m.input.Placeholder = placeholder
	m.input.Reset()
	m.input.Focus()
	return textinput.Blink
}

func (m *Model) closeModal() {
	m.state = stateNormal
	m.inputErr = ""
	m.input.Blur()
}

func (m *Model) showAlert(msg string) {
	m.state = stateAlert
	m.alert = msg
}

// — tea.Model ———————————————————————————————————————————————————————————————

func (m Model) Init() tea.Cmd {
	if m.token != "" {
		return tea.Batch(resumeCmd(m.ctx, m.auth, m.token), m.spinner.Tick)
	}
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		lw, lh := m.listDimensions()
		m.list.SetSize(lw, lh)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loginResultMsg:
		m.loggingIn = false
		m.cancelLogin = nil
		if msg.err != nil {
			if errors.Is(msg.err, context.Canceled) {
				m.log.Info("login cancelled")
				return m, nil
			}
			m.log.Error("login failed", "error", msg.err)
			m.showAlert(msg.err.Error())
			return m, nil
		}
		m.store.Login(msg.sess, msg.client)
		m.actions.Activate()
		return m, m.refreshCmd()

	case refreshedMsg:
		m.logActionErr("refresh", msg.err)
		return m, nil

	case forkCreatedMsg:
		m.logActionErr("create fork", msg.err)
		return m, nil

	case branchCreatedMsg:
		if msg.err != nil {
			if apperr.Is(msg.err, apperr.KindInvalid) {
				m.showAlert(msg.err.Error())
				return m, nil
			}
			m.logActionErr("create branch", msg.err)
			return m, nil
		}
		m.log.Debug("branch set", "branch", msg.name)
		// the branch changed, so the pull request lookup must run again
		return m, m.refreshCmd()

	case prOpenedMsg:
		if msg.err != nil {
			if apperr.Is(msg.err, apperr.KindPrecondition) {
				m.logActionErr("open pull request", msg.err)
				return m, nil
			}
			m.showAlert(msg.err.Error())
		}
		return m, nil
	}

	switch m.state {
	case stateConfirm:
		return m.updateConfirm(msg)
	case stateNewFile:
		return m.updateNewFile(msg)
	case stateBranch:
		return m.updateBranch(msg)
	case statePRTitle:
		return m.updatePRTitle(msg)
	case stateAlert:
		return m.updateAlert(msg)
	default:
		return m.updateNormal(msg)
	}
}

// logActionErr records an action error the user is not alerted about.
func (m Model) logActionErr(action string, err error) {
	switch {
	case err == nil:
	case apperr.Is(err, apperr.KindPrecondition):
		m.log.Debug(action+" skipped", "reason", err)
	default:
		m.log.Warn(action+" failed", "error", err)
	}
}

func (m Model) updateNormal(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		if m.cancelLogin != nil {
			m.cancelLogin()
		}
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Escape):
		if m.cancelLogin != nil {
			m.cancelLogin()
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Open):
		if id := m.selectedFile(); id != "" {
			m.sidebar.OpenFile(id)
			m.syncFiles()
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Close):
		if id := m.selectedFile(); id != "" {
			m.state = stateConfirm
			m.confirm = m.sidebar.CloseFile(id)
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.CloseAll):
		if len(m.sidebar.Files()) > 0 {
			m.state = stateConfirm
			m.confirm = m.sidebar.CloseAllFiles()
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.New):
		return m, m.openModal(stateNewFile, "e.g. content/1_General/Intro.mdx or usaco:bovine-shuffle")

	case key.Matches(keyMsg, m.keys.Login):
		if m.store.Session() != nil || m.loggingIn {
			return m, nil
		}
		ctx, cancel := context.WithCancel(m.ctx)
		m.loggingIn = true
		m.cancelLogin = cancel
		return m, tea.Batch(m.openURL(m.auth.AuthorizeURL()), loginCmd(ctx, m.auth))

	case key.Matches(keyMsg, m.keys.Logout):
		if m.store.Session() == nil {
			return m, nil
		}
		m.log.Info("logging out")
		m.actions.Deactivate()
		m.store.Logout()
		return m, nil

	case key.Matches(keyMsg, m.keys.Refresh):
		if m.store.Session() == nil {
			return m, nil
		}
		return m, m.refreshCmd()

	case key.Matches(keyMsg, m.keys.Install):
		if m.store.Session() != nil && m.actions.Loaded() && !m.actions.Installed() {
			return m, m.openURL(m.appURL)
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Fork):
		if m.panelReady() && m.store.Fork() == "" && m.actions.ForkLabel() == workflow.LabelCreateFork {
			return m, m.forkCmd()
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Branch):
		if m.panelReady() && m.store.Fork() != "" {
			return m, m.openModal(stateBranch, "e.g. "+git.SuggestBranch(m.sidebar.ActiveFile()))
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.PR):
		if !m.panelReady() || m.store.Fork() == "" || m.store.Branch() == "" {
			return m, nil
		}
		if pr := m.store.PullRequest(); pr != "" {
			return m, m.openURL(pr)
		}
		if m.actions.PullLabel() != workflow.LabelOpenPR {
			return m, nil
		}
		return m, m.openModal(statePRTitle, workflow.DefaultPRTitle)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		m.confirm.Resolve(true)
	case key.Matches(keyMsg, m.keys.Deny):
		m.confirm.Resolve(false)
	default:
		return m, nil
	}
	m.confirm = editor.Confirmation{}
	m.state = stateNormal
	m.syncFiles()
	return m, nil
}

func (m Model) updateNewFile(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Escape):
			m.closeModal()
			return m, nil
		case key.Matches(keyMsg, m.keys.Submit):
			v := strings.TrimSpace(m.input.Value())
			if v == "" {
				m.inputErr = "file cannot be empty"
				return m, nil
			}
			m.closeModal()
			m.sidebar.NewFile(parseFile(v))
			m.syncFiles()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// parseFile turns modal input into a descriptor. Anything that looks like a
// path is an existing file; "source:id" or a bare id is a new solution.
func parseFile(v string) model.File {
	if strings.Contains(v, "/") || path.Ext(v) != "" {
		return model.File{ID: strings.TrimSuffix(path.Base(v), path.Ext(v)), Path: v}
	}
	if source, id, ok := strings.Cut(v, ":"); ok {
		return model.File{ID: id, Title: id, Source: source}
	}
	return model.File{ID: v, Title: v}
}

func (m Model) updateBranch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Escape):
			m.closeModal()
			return m, nil
		case key.Matches(keyMsg, m.keys.Submit):
			name := strings.TrimSpace(m.input.Value())
			if name == "" {
				m.inputErr = "branch name cannot be empty"
				return m, nil
			}
			m.closeModal()
			return m, m.branchCmd(name)
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updatePRTitle(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Escape):
			// a dismissed prompt still opens the PR with the default title
			m.closeModal()
			return m, m.openPRCmd("")
		case key.Matches(keyMsg, m.keys.Submit):
			title := m.input.Value()
			m.closeModal()
			return m, m.openPRCmd(title)
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateAlert(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.Matches(keyMsg, m.keys.Submit, m.keys.Escape) {
		m.state = stateNormal
		m.alert = ""
	}
	return m, nil
}
