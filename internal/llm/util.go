package llm

import "github.com/jonkmatsumo/interview-agent/internal/interpret"

// CleanJSONBlock strips markdown code fences from a model response before
// unmarshalling. The fence handling lives with the other response-text
// parsing in the interpret package; this alias keeps the provider-facing
// name at the call sites that deal in raw completions.
func CleanJSONBlock(text string) string {
	return interpret.CleanFences(text)
}
