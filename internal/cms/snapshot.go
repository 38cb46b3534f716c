package cms

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

// ContextSnapshot is a point-in-time view of the portfolio, fetched once per
// conversation and handed to the system-prompt builders.
type ContextSnapshot struct {
	Identity        Identity
	Positions       []Position
	Accomplishments []Accomplishment
	Skills          []Skill
	Technologies    []Technology
	Projects        []Project
	Education       []Education
	Certifications  []Certification
	Summaries       []ProfessionalSummary
	Companies       []Company
}

// FetchSnapshot pulls every resource concurrently. Any single failure aborts
// the whole fetch; a conversation should not start on partial context.
func (c *Client) FetchSnapshot(ctx context.Context) (*ContextSnapshot, error) {
	snap := &ContextSnapshot{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		snap.Identity, err = c.GetIdentity(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Positions, err = c.GetPositions(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Accomplishments, err = c.GetAccomplishments(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Skills, err = c.GetSkills(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Technologies, err = c.GetTechnologies(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Projects, err = c.GetProjects(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Education, err = c.GetEducation(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Certifications, err = c.GetCertifications(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Summaries, err = c.GetProfessionalSummaries(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Companies, err = c.GetCompanies(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

// ProfileText renders the snapshot as plain text suitable for embedding in a
// system prompt. Sections with no records are omitted.
func (s *ContextSnapshot) ProfileText() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Name: %s\n", s.Identity.Name)
	if s.Identity.Title != "" {
		fmt.Fprintf(&b, "Title: %s\n", s.Identity.Title)
	}
	if s.Identity.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", s.Identity.Location)
	}

	if len(s.Summaries) > 0 {
		b.WriteString("\nSummary:\n")
		b.WriteString(s.Summaries[0].Text)
		b.WriteString("\n")
	}

	if len(s.Positions) > 0 {
		b.WriteString("\nWork History:\n")
		for _, p := range s.Positions {
			end := p.EndDate
			if p.Current {
				end = "present"
			}
			fmt.Fprintf(&b, "- %s at %s (%s to %s)\n", p.Title, p.Company, p.StartDate, end)
			for _, bullet := range p.Bullets {
				fmt.Fprintf(&b, "  * %s\n", bullet)
			}
		}
	}

	if len(s.Accomplishments) > 0 {
		b.WriteString("\nKey Accomplishments:\n")
		for _, a := range s.Accomplishments {
			fmt.Fprintf(&b, "- %s\n", a.Description)
		}
	}

	if len(s.Skills) > 0 {
		b.WriteString("\nSkills: ")
		names := make([]string, 0, len(s.Skills))
		for _, sk := range s.Skills {
			names = append(names, sk.Name)
		}
		b.WriteString(strings.Join(names, ", "))
		b.WriteString("\n")
	}

	if len(s.Technologies) > 0 {
		b.WriteString("Technologies: ")
		names := make([]string, 0, len(s.Technologies))
		for _, t := range s.Technologies {
			names = append(names, t.Name)
		}
		b.WriteString(strings.Join(names, ", "))
		b.WriteString("\n")
	}

	if len(s.Projects) > 0 {
		b.WriteString("\nProjects:\n")
		for _, p := range s.Projects {
			fmt.Fprintf(&b, "- %s: %s\n", p.Name, p.Description)
		}
	}

	if len(s.Education) > 0 {
		b.WriteString("\nEducation:\n")
		for _, e := range s.Education {
			fmt.Fprintf(&b, "- %s, %s\n", e.Degree, e.Institution)
		}
	}

	if len(s.Certifications) > 0 {
		b.WriteString("\nCertifications:\n")
		for _, c := range s.Certifications {
			fmt.Fprintf(&b, "- %s\n", c.Name)
		}
	}

	return b.String()
}
