package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client reads portfolio records from the headless CMS REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAPIKey sets the bearer token sent with every request.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) { c.apiKey = key }
}

// WithClientHTTP overrides the underlying HTTP client.
func WithClientHTTP(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a CMS client for the given base URL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get fetches one resource and decodes the response body into out.
func (c *Client) get(ctx context.Context, resource string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/"+resource, nil)
	if err != nil {
		return &RequestError{Resource: resource, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RequestError{Resource: resource, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RequestError{Resource: resource, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RequestError{Resource: resource, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// getValidated fetches a list resource and validates every record.
func getValidated[T interface{ validate() error }](ctx context.Context, c *Client, resource string) ([]T, error) {
	var records []T
	if err := c.get(ctx, resource, &records); err != nil {
		return nil, err
	}
	for _, r := range records {
		if err := r.validate(); err != nil {
			return nil, err
		}
	}
	return records, nil
}

// GetIdentity fetches the portfolio owner's contact card.
func (c *Client) GetIdentity(ctx context.Context) (Identity, error) {
	var identity Identity
	if err := c.get(ctx, "identity", &identity); err != nil {
		return Identity{}, err
	}
	if err := identity.validate(); err != nil {
		return Identity{}, err
	}
	return identity, nil
}

// GetPositions fetches the work history.
func (c *Client) GetPositions(ctx context.Context) ([]Position, error) {
	return getValidated[Position](ctx, c, "positions")
}

// GetAccomplishments fetches standalone achievements.
func (c *Client) GetAccomplishments(ctx context.Context) ([]Accomplishment, error) {
	return getValidated[Accomplishment](ctx, c, "accomplishments")
}

// GetSkills fetches the skill list.
func (c *Client) GetSkills(ctx context.Context) ([]Skill, error) {
	return getValidated[Skill](ctx, c, "skills")
}

// GetTechnologies fetches the technology list.
func (c *Client) GetTechnologies(ctx context.Context) ([]Technology, error) {
	return getValidated[Technology](ctx, c, "technologies")
}

// GetProjects fetches portfolio projects.
func (c *Client) GetProjects(ctx context.Context) ([]Project, error) {
	return getValidated[Project](ctx, c, "projects")
}

// GetEducation fetches degrees and programs.
func (c *Client) GetEducation(ctx context.Context) ([]Education, error) {
	return getValidated[Education](ctx, c, "education")
}

// GetCertifications fetches professional certifications.
func (c *Client) GetCertifications(ctx context.Context) ([]Certification, error) {
	return getValidated[Certification](ctx, c, "certifications")
}

// GetProfessionalSummaries fetches prose summary variants.
func (c *Client) GetProfessionalSummaries(ctx context.Context) ([]ProfessionalSummary, error) {
	return getValidated[ProfessionalSummary](ctx, c, "professional-summaries")
}

// GetCompanies fetches employer records.
func (c *Client) GetCompanies(ctx context.Context) ([]Company, error) {
	return getValidated[Company](ctx, c, "companies")
}
