// Package types provides type definitions for structured data used throughout the interview-agent system.
package types

// ResumeDocument is the structured resume produced by the resume-generation
// mode. The JSON field names are the contract with the model prompt, so they
// stay camelCase rather than following the snake_case used elsewhere.
//
// A document is a value: each successful generation replaces the prior one
// wholesale, never merged field by field.
type ResumeDocument struct {
	ContactInfo    ContactInfo     `json:"contactInfo"`
	Summary        string          `json:"summary,omitempty"`
	Experience     []Experience    `json:"experience"`
	Skills         SkillGroups     `json:"skills"`
	Education      []Education     `json:"education"`
	Certifications []Certification `json:"certifications,omitempty"`
	Projects       []ResumeProject `json:"projects,omitempty"`
}

// ContactInfo holds the resume header fields. Name is the only field the
// interpreter requires before accepting a generated document.
type ContactInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
}

// Experience is one work-history entry.
type Experience struct {
	Title     string   `json:"title"`
	Company   string   `json:"company"`
	Location  string   `json:"location,omitempty"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate,omitempty"`
	Current   bool     `json:"current,omitempty"`
	Bullets   []string `json:"bullets"`
}

// SkillGroups buckets skills the way the generated resume presents them.
type SkillGroups struct {
	Technical []string `json:"technical,omitempty"`
	Soft      []string `json:"soft,omitempty"`
	Tools     []string `json:"tools,omitempty"`
}

// Education is one degree entry.
type Education struct {
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	GraduationDate string `json:"graduationDate,omitempty"`
	Details        string `json:"details,omitempty"`
}

// Certification is one certification entry.
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
}

// ResumeProject is one project entry on a generated resume.
type ResumeProject struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies,omitempty"`
	URL          string   `json:"url,omitempty"`
}
