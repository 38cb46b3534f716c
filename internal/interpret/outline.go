package interpret

import (
	"strings"

	"github.com/jonkmatsumo/interview-agent/internal/types"
)

// minOutlineInput is the shortest text worth scanning for STAR structure.
// Anything shorter cannot hold a marker line plus content.
const minOutlineInput = 20

// Sentinel glyphs the copilot prompt instructs the model to emit.
const (
	titleGlyph    = "📌"
	relatedGlyph  = "🔗"
	keywordsGlyph = "💡"
)

// ParseOutline extracts a STAR outline from copilot-mode assistant text.
//
// Expected shape: a title line ("Title @ Company", optionally led by 📌),
// four sections keyed by single-letter markers S:, T:, A:, R:, each holding
// bullet lines, plus optional trailers for related experiences (🔗) and
// keywords (💡). Returns nil when neither a title nor any STAR content is
// found, so callers never display a meaningless empty outline.
func ParseOutline(text string) *types.CopilotOutline {
	if len(strings.TrimSpace(text)) < minOutlineInput {
		return nil
	}

	outline := &types.CopilotOutline{
		Situation:          []string{},
		Task:               []string{},
		Action:             []string{},
		Result:             []string{},
		RelatedExperiences: []string{},
		Keywords:           []string{},
	}

	var section *[]string
	titleExplicit := false

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, relatedGlyph):
			outline.RelatedExperiences = splitTrailer(line)
			section = nil
			continue
		case strings.HasPrefix(line, keywordsGlyph):
			outline.Keywords = splitTrailer(line)
			section = nil
			continue
		}

		if marker, rest, ok := sectionMarker(line); ok {
			switch marker {
			case 'S':
				section = &outline.Situation
			case 'T':
				section = &outline.Task
			case 'A':
				section = &outline.Action
			case 'R':
				section = &outline.Result
			}
			// Content on the marker line itself is the first bullet; the bare
			// marker must never be recorded as content.
			if bullet := cleanBullet(rest); bullet != "" {
				*section = append(*section, bullet)
			}
			continue
		}

		if section != nil {
			if bullet := cleanBullet(line); bullet != "" {
				*section = append(*section, bullet)
			}
			continue
		}

		if outline.Title == "" {
			outline.Title, outline.Company = parseTitleLine(line)
			titleExplicit = isExplicitTitle(line)
		}
	}

	// A plain prose line only counts as a title when STAR content backs it
	// up; an explicitly marked title stands on its own.
	starBullets := len(outline.Situation) + len(outline.Task) + len(outline.Action) + len(outline.Result)
	if starBullets == 0 && !titleExplicit {
		return nil
	}
	if !outline.HasContent() {
		return nil
	}
	return outline
}

// isExplicitTitle reports whether a line is unambiguously a title: marked
// with the title glyph, bolded, or written as "Title @ Company".
func isExplicitTitle(line string) bool {
	return strings.HasPrefix(line, titleGlyph) ||
		strings.HasPrefix(line, "**") ||
		strings.Contains(line, "@")
}

// sectionMarker recognizes lines of the form "S: ...", "T: ...", "A: ..." or
// "R: ...", tolerating leading bullet punctuation.
func sectionMarker(line string) (byte, string, bool) {
	trimmed := strings.TrimLeft(line, "-*• \t")
	if len(trimmed) < 2 || trimmed[1] != ':' {
		return 0, "", false
	}
	switch trimmed[0] {
	case 'S', 'T', 'A', 'R':
		return trimmed[0], trimmed[2:], true
	}
	return 0, "", false
}

// parseTitleLine splits "Title @ Company" and strips glyphs and bold markers.
func parseTitleLine(line string) (title, company string) {
	line = strings.TrimSpace(strings.TrimPrefix(line, titleGlyph))
	if at := strings.Index(line, "@"); at >= 0 {
		company = strings.TrimSpace(line[at+1:])
		line = line[:at]
	}
	title = strings.Trim(strings.TrimSpace(line), "*")
	company = strings.Trim(company, "*")
	return title, company
}

// splitTrailer parses "<glyph> Label: a, b, c" into its comma-separated items.
func splitTrailer(line string) []string {
	if idx := strings.Index(line, ":"); idx >= 0 {
		line = line[idx+1:]
	}
	var items []string
	for _, part := range strings.Split(line, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	if items == nil {
		return []string{}
	}
	return items
}

// cleanBullet strips leading bullet punctuation and surrounding whitespace.
// "*" doubles as markdown's bold marker, so it only counts as a bullet when
// it stands alone before the text; "- **40%** faster" must keep its bold
// pair intact.
func cleanBullet(line string) string {
	line = strings.TrimLeft(strings.TrimSpace(line), "-• \t")
	if rest, ok := strings.CutPrefix(line, "* "); ok {
		line = strings.TrimLeft(rest, " \t")
	} else if line == "*" {
		line = ""
	}
	return strings.TrimSpace(line)
}
