package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonkmatsumo/interview-agent/internal/llm"
	"github.com/jonkmatsumo/interview-agent/internal/types"
)

// Posting is the structured form of an ingested job posting.
type Posting struct {
	URL              string   `json:"url,omitempty"`
	Title            string   `json:"title"`
	Company          string   `json:"company,omitempty"`
	Requirements     []string `json:"requirements"`
	Responsibilities []string `json:"responsibilities"`
	NiceToHave       []string `json:"nice_to_have,omitempty"`

	// Text is the cleaned posting text, kept as the fallback job
	// description when structured extraction is unavailable.
	Text string `json:"-"`
}

// IngestURL fetches a posting URL, extracts its readable text with
// platform-aware selectors, and, when a model is provided, structures it
// into title, company, and requirement lists. A nil model yields a Posting
// with only the cleaned text filled in.
func IngestURL(ctx context.Context, urlStr string, model llm.Client) (*Posting, error) {
	platform := DetectPlatform(urlStr)

	html, err := FetchHTML(ctx, urlStr, nil)
	if err != nil {
		return nil, err
	}

	text, err := ExtractMainText(html, platform.ContentSelectors(), platform.NoiseSelectors()...)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, &FetchError{URL: urlStr, Message: "no readable content found"}
	}

	posting := &Posting{URL: urlStr, Text: text}
	if model == nil {
		return posting, nil
	}

	structured, err := Structure(ctx, model, text)
	if err != nil {
		// The cleaned text is still usable as a plain job description.
		return posting, nil
	}
	structured.URL = urlStr
	structured.Text = text
	return structured, nil
}

// Structure asks the model to pull title, company, and requirement lists out
// of cleaned posting text.
func Structure(ctx context.Context, model llm.Client, text string) (*Posting, error) {
	prompt := llm.BuildExtractionPrompt(llm.JobPostingSchema(), text)

	raw, err := model.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, fmt.Errorf("posting extraction failed: %w", err)
	}
	raw = llm.CleanJSONBlock(raw)

	var posting Posting
	if err := json.Unmarshal([]byte(raw), &posting); err != nil {
		return nil, fmt.Errorf("posting extraction returned invalid JSON: %w", err)
	}
	if posting.Title == "" {
		return nil, fmt.Errorf("posting extraction returned no title")
	}
	return &posting, nil
}

// ApplyTo fills a chat request's job context from the posting. Fields the
// caller already set are left alone.
func (p *Posting) ApplyTo(req *types.ChatRequest) {
	if req.JobTitle == "" {
		req.JobTitle = p.Title
	}
	if req.Company == "" {
		req.Company = p.Company
	}
	if req.JobDescription == "" {
		req.JobDescription = p.Description()
	}
}

// Description renders the posting as prompt-ready text, preferring the
// structured sections over the raw page text.
func (p *Posting) Description() string {
	if len(p.Requirements) == 0 && len(p.Responsibilities) == 0 {
		return p.Text
	}

	var sb strings.Builder
	writeSection := func(heading string, items []string) {
		if len(items) == 0 {
			return
		}
		sb.WriteString(heading)
		sb.WriteString(":\n")
		for _, item := range items {
			sb.WriteString("- ")
			sb.WriteString(item)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	writeSection("Requirements", p.Requirements)
	writeSection("Responsibilities", p.Responsibilities)
	writeSection("Nice to Have", p.NiceToHave)

	return strings.TrimSpace(sb.String())
}
