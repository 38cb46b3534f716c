package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jonkmatsumo/interview-agent/internal/types"
)

// Style definitions.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))

	userLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("69"))

	assistantLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("141"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("226"))

	artifactStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46"))

	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// refreshMsg signals that a controller changed its message list.
type refreshMsg struct{}

// sendFinishedMsg reports a completed (or failed) send.
type sendFinishedMsg struct{ err error }

// saveFinishedMsg reports the outcome of a save-all-ready pass.
type saveFinishedMsg struct{ err error }

// Model is the chat UI state. It owns no conversation data itself; all of
// that lives in the session's controllers, and the model re-reads it on every
// View.
type Model struct {
	session *Session

	input   string
	width   int
	height  int
	status  string
	spinner int
}

// NewModel creates the chat UI over a wired session.
func NewModel(session *Session) Model {
	return Model{session: session}
}

// Run starts the interactive chat UI and blocks until the user quits.
func Run(session *Session) error {
	p := tea.NewProgram(NewModel(session), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.waitForUpdate()
}

// waitForUpdate re-arms the listener for mid-stream renders. Each refreshMsg
// consumes one poke; the handler re-arms.
func (m Model) waitForUpdate() tea.Cmd {
	updates := m.session.Updates()
	return func() tea.Msg {
		<-updates
		return refreshMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case refreshMsg:
		m.spinner++
		return m, m.waitForUpdate()

	case sendFinishedMsg:
		// The controller already recorded the user-visible error; nothing to
		// surface beyond a re-render.
		return m, nil

	case saveFinishedMsg:
		if msg.err != nil {
			m.status = "Some records failed to save; they are kept for retry."
		} else {
			m.status = "Saved all ready records."
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "tab":
		_, _ = m.session.Manager.Activate(m.session.NextMode())
		m.status = ""
		return m, nil

	case "shift+tab":
		_, _ = m.session.Manager.Activate(m.session.PrevMode())
		m.status = ""
		return m, nil

	case "ctrl+l":
		m.session.Manager.Active().ClearChat()
		m.status = ""
		return m, nil

	case "ctrl+s":
		if m.session.Manager.ActiveID() != types.ModeContentBuilder {
			return m, nil
		}
		return m, func() tea.Msg {
			return saveFinishedMsg{err: m.session.SaveAllReady(context.Background())}
		}

	case "enter":
		text := strings.TrimSpace(m.input)
		if text == "" || m.session.Manager.Active().Loading() {
			return m, nil
		}
		m.input = ""
		m.status = ""
		controller := m.session.Manager.Active()
		return m, func() tea.Msg {
			return sendFinishedMsg{err: controller.SendMessage(context.Background(), text)}
		}

	case "backspace":
		if len(m.input) > 0 {
			runes := []rune(m.input)
			m.input = string(runes[:len(runes)-1])
		}
		return m, nil

	case " ":
		m.input += " "
		return m, nil
	}

	if msg.Type == tea.KeyRunes {
		m.input += string(msg.Runes)
	}
	return m, nil
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(" Interview Assistant "))
	b.WriteString("  ")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	b.WriteString(m.renderConversation())
	b.WriteString("\n")

	if panel := m.renderArtifact(); panel != "" {
		b.WriteString(panel)
		b.WriteString("\n")
	}

	if errMsg := m.session.Manager.Active().Err(); errMsg != "" {
		b.WriteString(errorStyle.Render(errMsg))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	b.WriteString(promptStyle.Render("> "))
	b.WriteString(m.input)
	if m.session.Manager.Active().Loading() {
		b.WriteString("  " + spinnerFrames[m.spinner%len(spinnerFrames)])
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter: send | tab: switch mode | ctrl+l: clear | ctrl+s: save ready | esc: quit"))

	return b.String()
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (m Model) renderTabs() string {
	active := m.session.Manager.ActiveID()
	var tabs []string
	for _, id := range m.session.modeOrder {
		mode, ok := m.session.Manager.Controller(id)
		if !ok {
			continue
		}
		label := mode.Mode().Icon + " " + mode.Mode().Name
		if id == active {
			tabs = append(tabs, activeTabStyle.Render("["+label+"]"))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}
	return strings.Join(tabs, "  ")
}

// renderConversation shows the tail of the active conversation that fits the
// window.
func (m Model) renderConversation() string {
	messages := m.session.Manager.Active().Messages()
	if len(messages) == 0 {
		mode := m.session.Manager.Active().Mode()
		return helpStyle.Render("  " + mode.Description)
	}

	budget := m.height - 10
	if budget < 4 {
		budget = 4
	}

	var lines []string
	for _, msg := range messages {
		lines = append(lines, m.renderMessage(msg)...)
	}
	if len(lines) > budget {
		lines = lines[len(lines)-budget:]
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderMessage(msg types.Message) []string {
	label := userLabelStyle.Render("You")
	if msg.Role == types.RoleAssistant {
		label = assistantLabelStyle.Render("Assistant")
	}

	content := msg.Content
	if content == "" && msg.Role == types.RoleAssistant {
		content = "…"
	}

	width := m.width - 4
	if width < 20 {
		width = 20
	}

	lines := []string{label}
	for _, line := range strings.Split(content, "\n") {
		lines = append(lines, wrap(line, width)...)
	}
	lines = append(lines, "")
	return lines
}

// renderArtifact summarizes the active mode's derived artifact in one or two
// lines; the conversation stays the focus.
func (m Model) renderArtifact() string {
	switch m.session.Manager.ActiveID() {
	case types.ModePractice:
		fb := m.session.Feedback()
		if fb == nil {
			return ""
		}
		return artifactStyle.Render(fmt.Sprintf("Last answer: %.1f/10 (%s) · structure %.1f · relevance %.1f · clarity %.1f",
			fb.OverallScore, fb.Grade(), fb.Structure, fb.Relevance, fb.Clarity))

	case types.ModeResumeGen:
		doc, warnings := m.session.Resume()
		if doc == nil {
			return ""
		}
		line := artifactStyle.Render(fmt.Sprintf("Resume ready for %s · %d roles · %d projects",
			doc.ContactInfo.Name, len(doc.Experience), len(doc.Projects)))
		if len(warnings) > 0 {
			line += "\n" + warnStyle.Render(fmt.Sprintf("%d schema warning(s), first: %s", len(warnings), warnings[0]))
		}
		return line

	case types.ModeCopilot:
		outline := m.session.Outline()
		if !outline.HasContent() {
			return ""
		}
		header := outline.Title
		if outline.Company != "" {
			header += " @ " + outline.Company
		}
		return artifactStyle.Render(fmt.Sprintf("Outline: %s · S%d T%d A%d R%d",
			header, len(outline.Situation), len(outline.Task), len(outline.Action), len(outline.Result)))

	case types.ModeContentBuilder:
		pending := m.session.Content.Pending()
		if len(pending) == 0 {
			return ""
		}
		ready := 0
		for _, rec := range pending {
			if rec.Status == types.StatusReady {
				ready++
			}
		}
		return artifactStyle.Render(fmt.Sprintf("Pending records: %d (%d ready) · %d saved",
			len(pending), ready, len(m.session.Content.Saved())))
	}
	return ""
}

// wrap breaks a line on word boundaries to fit width.
func wrap(line string, width int) []string {
	if len(line) <= width {
		return []string{"  " + line}
	}

	var out []string
	words := strings.Fields(line)
	current := ""
	for _, word := range words {
		if current == "" {
			current = word
			continue
		}
		if len(current)+1+len(word) > width {
			out = append(out, "  "+current)
			current = word
			continue
		}
		current += " " + word
	}
	if current != "" {
		out = append(out, "  "+current)
	}
	if len(out) == 0 {
		out = []string{"  "}
	}
	return out
}
