// Package interpret extracts typed artifacts from raw assistant text.
//
// Every interpreter is a pure function over its input: re-running one on the
// same text yields the same artifact, and malformed or partial text degrades
// to a nil result rather than an error. The raw conversation text is always
// shown to the user regardless, so failed extraction is never fatal.
package interpret

import "strings"

// ExtractJSONObject returns the first complete JSON object embedded in text,
// or "" if none is found. It scans bracket depth explicitly, tracking both
// {} and [] nesting and skipping string literals with escape handling, since
// model output routinely wraps JSON in prose and nests objects too deeply for
// any regex to match correctly.
func ExtractJSONObject(text string) string {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}

	// Unbalanced: the stream was likely truncated mid-object.
	return ""
}

// CleanFences strips markdown code fences so fenced JSON parses the same as
// bare JSON. Models wrap output in ```json blocks even when told not to.
func CleanFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	// Drop a language identifier on the opening fence line.
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		first := text[:idx]
		if len(first) < 20 && !strings.ContainsAny(first, " {") {
			text = text[idx+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
