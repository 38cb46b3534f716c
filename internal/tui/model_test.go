package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonkmatsumo/interview-agent/internal/types"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func updated(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestModel_TypingBuildsInput(t *testing.T) {
	m := NewModel(NewSession(newFakeBackend(), nil))

	m, _ = updated(t, m, keyMsg("hi"))
	m, _ = updated(t, m, keyMsg(" "))
	m, _ = updated(t, m, keyMsg("there"))
	assert.Equal(t, "hi there", m.input)

	m, _ = updated(t, m, keyMsg("backspace"))
	assert.Equal(t, "hi ther", m.input)
}

func TestModel_EnterOnBlankInputIsNoOp(t *testing.T) {
	m := NewModel(NewSession(newFakeBackend(), nil))

	m, cmd := updated(t, m, keyMsg("enter"))
	assert.Nil(t, cmd)
	assert.Empty(t, m.input)
}

func TestModel_EnterSendsAndClearsInput(t *testing.T) {
	backend := newFakeBackend()
	backend.replies["/api/interview/chat"] = "hello!"
	session := NewSession(backend, nil)
	m := NewModel(session)

	m, _ = updated(t, m, keyMsg("hi"))
	m, cmd := updated(t, m, keyMsg("enter"))
	require.NotNil(t, cmd)
	assert.Empty(t, m.input)

	// The returned command runs the whole turn.
	msg := cmd()
	done, ok := msg.(sendFinishedMsg)
	require.True(t, ok)
	assert.NoError(t, done.err)

	messages := session.Manager.Active().Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, "hi", messages[0].Content)
	assert.Equal(t, "hello!", messages[1].Content)
}

func TestModel_TabSwitchesMode(t *testing.T) {
	session := NewSession(newFakeBackend(), nil)
	m := NewModel(session)

	m, _ = updated(t, m, keyMsg("tab"))
	assert.Equal(t, types.ModePractice, session.Manager.ActiveID())

	m, _ = updated(t, m, keyMsg("shift+tab"))
	assert.Equal(t, types.ModeChat, session.Manager.ActiveID())

	_, _ = updated(t, m, keyMsg("shift+tab"))
	assert.Equal(t, types.ModeCopilot, session.Manager.ActiveID())
}

func TestModel_EscQuits(t *testing.T) {
	m := NewModel(NewSession(newFakeBackend(), nil))

	_, cmd := updated(t, m, keyMsg("esc"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_ViewShowsConversationAndHelp(t *testing.T) {
	backend := newFakeBackend()
	backend.replies["/api/interview/chat"] = "I have ten years of Go experience."
	session := NewSession(backend, nil)
	sendIn(t, session, types.ModeChat, "tell me about yourself")

	m := NewModel(session)
	m, _ = updated(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	view := m.View()
	assert.Contains(t, view, "Interview Assistant")
	assert.Contains(t, view, "tell me about yourself")
	assert.Contains(t, view, "ten years of Go experience")
	assert.Contains(t, view, "tab: switch mode")
}

func TestModel_ViewShowsFeedbackArtifact(t *testing.T) {
	backend := newFakeBackend()
	backend.replies["/api/interview/practice"] = `{"overall_score":8.2,"structure":8,"relevance":9,"clarity":8,"strengths":[],"improvements":[],"suggestions":[],"used_star_method":true}`
	session := NewSession(backend, nil)
	sendIn(t, session, types.ModePractice, "my answer")

	m := NewModel(session)
	m, _ = updated(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	view := m.View()
	assert.Contains(t, view, "8.2/10")
	assert.Contains(t, view, "(A)")
}
