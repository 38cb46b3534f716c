// Package export renders a conversation snapshot as a standalone HTML
// transcript. Assistant replies are markdown and go through goldmark; user
// messages are plain text and are escaped verbatim.
package export

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/jonkmatsumo/interview-agent/internal/types"
)

// Transcript is one exportable conversation.
type Transcript struct {
	Mode     types.ChatMode
	Messages []types.Message
	// Exported is stamped into the document footer; zero means now.
	Exported time.Time
}

var pageTemplate = template.Must(template.New("transcript").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; color: #1a1a1a; }
h1 { font-size: 1.4rem; border-bottom: 1px solid #ddd; padding-bottom: 0.5rem; }
.message { margin: 1.25rem 0; padding: 0.75rem 1rem; border-radius: 8px; }
.user { background: #eef3fb; }
.assistant { background: #f6f6f6; }
.meta { font-size: 0.8rem; color: #777; margin-bottom: 0.4rem; }
.content pre { background: #2b2b2b; color: #eee; padding: 0.75rem; border-radius: 6px; overflow-x: auto; }
footer { margin-top: 2rem; font-size: 0.8rem; color: #999; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{range .Messages}}<div class="message {{.Class}}">
<div class="meta">{{.Author}} · {{.When}}</div>
<div class="content">{{.Body}}</div>
</div>
{{end}}<footer>Exported {{.Exported}}</footer>
</body>
</html>
`))

type pageData struct {
	Title    string
	Messages []renderedMessage
	Exported string
}

type renderedMessage struct {
	Class  string
	Author string
	When   string
	Body   template.HTML
}

// HTML renders the transcript as a complete HTML document.
func HTML(t Transcript) ([]byte, error) {
	exported := t.Exported
	if exported.IsZero() {
		exported = time.Now().UTC()
	}

	data := pageData{
		Title:    transcriptTitle(t.Mode),
		Exported: exported.Format("2006-01-02 15:04 UTC"),
	}

	for _, msg := range t.Messages {
		rendered, err := renderMessage(msg)
		if err != nil {
			return nil, err
		}
		data.Messages = append(data.Messages, rendered)
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render transcript: %w", err)
	}
	return buf.Bytes(), nil
}

func transcriptTitle(mode types.ChatMode) string {
	if mode.Name != "" {
		return mode.Name + " Transcript"
	}
	return "Conversation Transcript"
}

func renderMessage(msg types.Message) (renderedMessage, error) {
	rendered := renderedMessage{
		When: msg.Timestamp.UTC().Format("2006-01-02 15:04"),
	}

	switch msg.Role {
	case types.RoleAssistant:
		rendered.Class = "assistant"
		rendered.Author = "Assistant"
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(msg.Content), &buf); err != nil {
			return renderedMessage{}, fmt.Errorf("failed to render message %s: %w", msg.ID, err)
		}
		rendered.Body = template.HTML(buf.String())
	default:
		rendered.Class = "user"
		rendered.Author = "You"
		escaped := html.EscapeString(msg.Content)
		escaped = strings.ReplaceAll(escaped, "\n", "<br>")
		rendered.Body = template.HTML("<p>" + escaped + "</p>")
	}

	return rendered, nil
}
