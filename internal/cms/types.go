// Package cms provides a typed read client for the headless CMS that stores
// the portfolio's professional history. Records are validated at the boundary
// so the rest of the system never handles untyped maps.
package cms

import "strings"

// Identity is the portfolio owner's contact card.
type Identity struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
}

func (i Identity) validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return &MalformedRecordError{Resource: "identity", Reason: "missing name"}
	}
	return nil
}

// Position is one role in the owner's work history.
type Position struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Company   string   `json:"company"`
	Location  string   `json:"location,omitempty"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate,omitempty"`
	Current   bool     `json:"current,omitempty"`
	Summary   string   `json:"summary,omitempty"`
	Bullets   []string `json:"bullets,omitempty"`
}

func (p Position) validate() error {
	if strings.TrimSpace(p.Title) == "" || strings.TrimSpace(p.Company) == "" {
		return &MalformedRecordError{Resource: "positions", ID: p.ID, Reason: "missing title or company"}
	}
	return nil
}

// Accomplishment is a standalone achievement, optionally tied to a position.
type Accomplishment struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	PositionID  string `json:"positionId,omitempty"`
	Impact      string `json:"impact,omitempty"`
}

func (a Accomplishment) validate() error {
	if strings.TrimSpace(a.Description) == "" {
		return &MalformedRecordError{Resource: "accomplishments", ID: a.ID, Reason: "missing description"}
	}
	return nil
}

// Skill is a named capability with an optional grouping category.
type Skill struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Level    string `json:"level,omitempty"`
}

func (s Skill) validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return &MalformedRecordError{Resource: "skills", ID: s.ID, Reason: "missing name"}
	}
	return nil
}

// Technology is a tool or platform the owner has used.
type Technology struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (t Technology) validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return &MalformedRecordError{Resource: "technologies", ID: t.ID, Reason: "missing name"}
	}
	return nil
}

// Project is a portfolio project.
type Project struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies,omitempty"`
	URL          string   `json:"url,omitempty"`
}

func (p Project) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return &MalformedRecordError{Resource: "projects", ID: p.ID, Reason: "missing name"}
	}
	return nil
}

// Education is one degree or program.
type Education struct {
	ID             string `json:"id"`
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	GraduationDate string `json:"graduationDate,omitempty"`
	Details        string `json:"details,omitempty"`
}

func (e Education) validate() error {
	if strings.TrimSpace(e.Degree) == "" || strings.TrimSpace(e.Institution) == "" {
		return &MalformedRecordError{Resource: "education", ID: e.ID, Reason: "missing degree or institution"}
	}
	return nil
}

// Certification is a professional certification.
type Certification struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
}

func (c Certification) validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return &MalformedRecordError{Resource: "certifications", ID: c.ID, Reason: "missing name"}
	}
	return nil
}

// ProfessionalSummary is a prose summary variant, keyed by audience.
type ProfessionalSummary struct {
	ID       string `json:"id"`
	Audience string `json:"audience,omitempty"`
	Text     string `json:"text"`
}

func (p ProfessionalSummary) validate() error {
	if strings.TrimSpace(p.Text) == "" {
		return &MalformedRecordError{Resource: "professional-summaries", ID: p.ID, Reason: "missing text"}
	}
	return nil
}

// Company is an employer record referenced by positions.
type Company struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Industry string `json:"industry,omitempty"`
	Website  string `json:"website,omitempty"`
}

func (c Company) validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return &MalformedRecordError{Resource: "companies", ID: c.ID, Reason: "missing name"}
	}
	return nil
}
