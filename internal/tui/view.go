package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// — styles ——————————————————————————————————————————————————————————————————

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginLeft(2)

	dimStyle  = lipgloss.NewStyle().Faint(true)
	boldStyle = lipgloss.NewStyle().Bold(true)
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	linkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Underline(true)

	buttonKeyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	buttonStyle    = lipgloss.NewStyle().Bold(true)

	helpStyle = lipgloss.NewStyle().
			Faint(true).
			PaddingLeft(2)

	detailHeadStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("205")).
			Padding(1, 3).
			Width(58)

	warnModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(1, 3).
			Width(58)
)

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderFiles(), m.renderPanel())
	base := lipgloss.JoinVertical(lipgloss.Left, body, m.renderHelp())

	switch m.state {
	case stateConfirm:
		return m.place(warnModalStyle, m.renderConfirm())
	case stateNewFile:
		return m.place(modalStyle, m.renderInput("New File", "Path or source:id",
			"A path opens an existing file · anything else creates a solution"))
	case stateBranch:
		return m.place(modalStyle, m.renderInput("Create/Set Branch", "Branch name?",
			"Creates the branch in your fork from "+m.baseHint()))
	case statePRTitle:
		return m.place(modalStyle, m.renderInput("Open Pull Request", "PR Title?",
			"Opens a draft pull request · empty uses the default title"))
	case stateAlert:
		return m.place(warnModalStyle, m.renderAlert())
	}
	return base
}

// — layout helpers ——————————————————————————————————————————————————————————

func (m Model) listDimensions() (width, height int) {
	return m.width / 3, m.height - 2
}

func (m Model) renderFiles() string {
	if len(m.list.Items()) == 0 {
		lw, lh := m.listDimensions()
		return lipgloss.NewStyle().Width(lw).Height(lh).Render(
			titleStyle.Render("Files") + "\n\n  " + dimStyle.Render("No open files"))
	}
	return m.list.View()
}

func (m Model) renderPanel() string {
	lw, _ := m.listDimensions()
	dw := m.width - lw
	dh := m.height - 2

	style := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		PaddingLeft(3).
		PaddingRight(2).
		Width(dw - 1).
		Height(dh)

	// box width minus padding
	contentWidth := (dw - 1) - 3 - 2

	var b strings.Builder
	if active := m.sidebar.ActiveFile(); active != "" {
		b.WriteString(dimStyle.Render("Editing ") + active + "\n")
		b.WriteString(dimStyle.Render(strings.Repeat("─", max(contentWidth, 0))) + "\n\n")
	}
	b.WriteString(m.renderGitHub(max(contentWidth, 1)))
	return style.Render(b.String())
}

func (m Model) renderHelp() string {
	var text string
	switch m.state {
	case stateConfirm:
		text = helpLine(m.keys.Confirm, m.keys.Deny)
	case stateNewFile, stateBranch, statePRTitle:
		text = helpLine(m.keys.Submit, m.keys.Escape)
	case stateAlert:
		text = "Enter dismiss"
	default:
		text = "↑/↓ navigate   " + helpLine(m.keys.Open, m.keys.Close, m.keys.CloseAll, m.keys.New) +
			"   " + m.githubHelp() + "   " + helpLine(m.keys.Quit)
	}
	sep := dimStyle.Render(strings.Repeat("─", m.width))
	return sep + "\n" + helpStyle.Render(text)
}

func (m Model) githubHelp() string {
	if m.store.Session() == nil {
		return helpLine(m.keys.Login)
	}
	return helpLine(m.keys.Refresh, m.keys.Logout)
}

func (m Model) baseHint() string {
	cfg := m.actions.Settings()
	return cfg.Upstream.FullName() + "@" + cfg.BaseBranch
}

func (m Model) place(style lipgloss.Style, content string) string {
	modal := style.Render(content)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal,
		lipgloss.WithWhitespaceBackground(lipgloss.Color("0")),
	)
}

func (m Model) renderInput(title, label, hint string) string {
	var b strings.Builder
	b.WriteString(boldStyle.Render(title) + "\n\n")
	b.WriteString(label + "\n")
	b.WriteString(m.input.View() + "\n")
	if m.inputErr != "" {
		b.WriteString("\n" + errStyle.Render(m.inputErr) + "\n")
	}
	b.WriteString("\n" + dimStyle.Render(hint))
	return b.String()
}

func (m Model) renderConfirm() string {
	var b strings.Builder
	b.WriteString(errStyle.Render("Confirm") + "\n\n")
	b.WriteString(m.confirm.Prompt + "\n")
	b.WriteString("\n" + dimStyle.Render("y/Enter to confirm · Esc/n to cancel"))
	return b.String()
}

func (m Model) renderAlert() string {
	var b strings.Builder
	b.WriteString(errStyle.Render("Error") + "\n\n")
	b.WriteString(m.alert + "\n")
	b.WriteString("\n" + dimStyle.Render("Enter to dismiss"))
	return b.String()
}
