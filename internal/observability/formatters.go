// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonkmatsumo/interview-agent/internal/cms"
	"github.com/jonkmatsumo/interview-agent/internal/ingestion"
	"github.com/jonkmatsumo/interview-agent/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintPosting outputs a human-readable summary of an ingested job posting.
func (p *Printer) PrintPosting(posting *ingestion.Posting) {
	if posting == nil {
		return
	}

	var sb strings.Builder

	if posting.Title != "" {
		sb.WriteString(fmt.Sprintf("Role:     %s\n", posting.Title))
	}
	if posting.Company != "" {
		sb.WriteString(fmt.Sprintf("Company:  %s\n", posting.Company))
	}
	if posting.URL != "" {
		sb.WriteString(fmt.Sprintf("Source:   %s\n", posting.URL))
	}
	sb.WriteString(fmt.Sprintf("Text:     %d characters\n", len(posting.Text)))

	if len(posting.Requirements) > 0 {
		sb.WriteString("\nRequirements:\n")
		count := min(len(posting.Requirements), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", posting.Requirements[i]))
		}
		if len(posting.Requirements) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(posting.Requirements)-maxItemsToShow))
		}
	}

	if len(posting.NiceToHave) > 0 {
		sb.WriteString("\nNice-to-haves:\n")
		count := min(len(posting.NiceToHave), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", posting.NiceToHave[i]))
		}
		if len(posting.NiceToHave) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(posting.NiceToHave)-3))
		}
	}

	p.printBox("INGESTED JOB POSTING", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProfile outputs a summary of the CMS context snapshot.
func (p *Printer) PrintProfile(snap *cms.ContextSnapshot) {
	if snap == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:     %s\n", snap.Identity.Name))
	if snap.Identity.Title != "" {
		sb.WriteString(fmt.Sprintf("Title:    %s\n", snap.Identity.Title))
	}
	if snap.Identity.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", snap.Identity.Location))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Positions:       %d\n", len(snap.Positions)))
	sb.WriteString(fmt.Sprintf("Accomplishments: %d\n", len(snap.Accomplishments)))
	sb.WriteString(fmt.Sprintf("Skills:          %d\n", len(snap.Skills)))
	sb.WriteString(fmt.Sprintf("Technologies:    %d\n", len(snap.Technologies)))
	sb.WriteString(fmt.Sprintf("Projects:        %d\n", len(snap.Projects)))
	sb.WriteString(fmt.Sprintf("Education:       %d\n", len(snap.Education)))
	sb.WriteString(fmt.Sprintf("Certifications:  %d", len(snap.Certifications)))

	p.printBox("CMS PROFILE SNAPSHOT", sb.String())
}

// PrintPending outputs the pending content records awaiting confirmation.
func (p *Printer) PrintPending(records []types.PendingContent) {
	if len(records) == 0 {
		p.printBox("PENDING CONTENT", "No records awaiting confirmation")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d record(s) awaiting confirmation:\n\n", len(records)))

	count := min(len(records), maxItemsToShow)
	for i := 0; i < count; i++ {
		rec := records[i]
		name := recordLabel(rec)
		sb.WriteString(fmt.Sprintf("• [%s] %s: %s\n", rec.Status, rec.Type, name))
		if len(rec.ClarificationNeeded) > 0 {
			sb.WriteString(fmt.Sprintf("  ? %s\n", rec.ClarificationNeeded[0]))
		}
		if rec.DuplicateWarning != "" {
			sb.WriteString(fmt.Sprintf("  ⚠ %s\n", rec.DuplicateWarning))
		}
	}
	if len(records) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(records)-maxItemsToShow))
	}

	p.printBox("PENDING CONTENT", strings.TrimSuffix(sb.String(), "\n"))
}

// recordLabel picks a display name for a pending record.
func recordLabel(rec types.PendingContent) string {
	for _, key := range []string{"name", "title", "degree", "description"} {
		if v, ok := rec.Data[key].(string); ok && v != "" {
			if len(v) > 30 {
				return v[:27] + "..."
			}
			return v
		}
	}
	return "(unnamed)"
}
