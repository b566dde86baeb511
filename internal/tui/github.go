package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// — workflow commands ———————————————————————————————————————————————————————

func (m Model) refreshCmd() tea.Cmd {
	ctx, actions := m.ctx, m.actions
	return func() tea.Msg {
		return refreshedMsg{err: actions.Refresh(ctx)}
	}
}

func (m Model) forkCmd() tea.Cmd {
	ctx, actions := m.ctx, m.actions
	return func() tea.Msg {
		return forkCreatedMsg{err: actions.CreateFork(ctx)}
	}
}

func (m Model) branchCmd(name string) tea.Cmd {
	ctx, actions := m.ctx, m.actions
	return func() tea.Msg {
		return branchCreatedMsg{name: name, err: actions.CreateBranch(ctx, name)}
	}
}

func (m Model) openPRCmd(title string) tea.Cmd {
	ctx, actions := m.ctx, m.actions
	return func() tea.Msg {
		return prOpenedMsg{err: actions.OpenPR(ctx, title)}
	}
}

// panelReady reports whether the fork, branch and PR controls are shown.
func (m Model) panelReady() bool {
	return m.store.Session() != nil && m.actions.Loaded() && m.actions.Installed()
}

// — panel ———————————————————————————————————————————————————————————————————

func button(k, label string) string {
	return buttonKeyStyle.Render("["+k+"]") + " " + buttonStyle.Render(label)
}

// renderGitHub draws the GitHub half of the sidebar.
func (m Model) renderGitHub(width int) string {
	var b strings.Builder
	b.WriteString(detailHeadStyle.Render("GitHub") + "\n\n")

	sess := m.store.Session()
	if sess == nil {
		if m.loggingIn {
			b.WriteString(m.spinner.View() + " Logging in...\n")
			b.WriteString("\n" + dimStyle.Render("Esc cancels") + "\n")
			return b.String()
		}
		b.WriteString(button("l", "Login with GitHub →") + "\n")
		if m.auth != nil {
			b.WriteString("\n" + linkStyle.Width(width).Render(m.auth.AuthorizeURL()) + "\n")
		}
		return b.String()
	}

	b.WriteString(fmt.Sprintf("Welcome, %s!\n\n", sess.Login))

	if !m.actions.Loaded() {
		b.WriteString(m.spinner.View() + " Loading...\n")
		return b.String()
	}
	if !m.actions.Installed() {
		b.WriteString(button("i", "Install GitHub App") + "\n")
		b.WriteString("\n" + linkStyle.Width(width).Render(m.appURL) + "\n")
		return b.String()
	}

	fork := m.store.Fork()
	if fork == "" {
		b.WriteString("No fork detected.\n\n")
		b.WriteString(button("f", m.actions.ForkLabel()) + "\n")
		return b.String()
	}

	b.WriteString(okStyle.Render("Fork detected!") + "\n")
	b.WriteString(linkStyle.Width(width).Render(fork) + "\n\n")

	branch := m.store.Branch()
	if branch != "" {
		b.WriteString("Current branch: " + boldStyle.Render(branch) + "\n")
		tree := fmt.Sprintf("https://github.com/%s/tree/%s", m.actions.ForkRepo(sess.Login).FullName(), branch)
		b.WriteString(linkStyle.Width(width).Render(tree) + "\n\n")
	} else {
		b.WriteString(dimStyle.Render("Branch not set") + "\n\n")
	}
	b.WriteString(button("b", "Create/Set Branch") + "\n")

	if branch != "" {
		b.WriteString("\n" + button("p", m.actions.PullLabel()) + "\n")
		if pr := m.store.PullRequest(); pr != "" {
			b.WriteString(linkStyle.Width(width).Render(pr) + "\n")
		}
	}
	return b.String()
}
