package headhunter

import (
	"fmt"
	"strings"

	"github.com/spigell/transferability/internal/ai"
	"github.com/spigell/transferability/internal/utils"
)

type Vacancies struct {
	Items []*Vacancy
}

type Named struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

type Vacancy struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name,omitempty"`
	Area       Named  `json:"area,omitempty"`
	Experience Named  `json:"experience,omitempty"`
	Schedule   Named  `json:"schedule,omitempty"`
	Employment Named  `json:"employment,omitempty"`
	Employer   struct {
		ID   string `json:"id,omitempty"`
		Name string `json:"name,omitempty"`
	} `json:"employer,omitempty"`
	AlternateURL string `json:"alternate_url,omitempty"`
	Description  string `json:"description,omitempty"`
	KeySkills    []struct {
		Name string `json:"name,omitempty"`
	} `json:"key_skills,omitempty"`
	Snippet struct {
		Requirement    string `json:"requirement,omitempty"`
		Responsibility string `json:"responsibility,omitempty"`
	} `json:"snippet,omitempty"`
	ProfessionalRoles []Named `json:"professional_roles,omitempty"`
	PublishedAt       string  `json:"published_at,omitempty"`
}

// GetVacancy returns the full vacancy including its HTML description.
func (c *Client) GetVacancy(id string) (*Vacancy, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("vacancy id is required")
	}

	var vacancy Vacancy
	if err := c.getJSON(fmt.Sprintf("%s/vacancies/%s", c.APIURL, id), nil, &vacancy); err != nil {
		return nil, fmt.Errorf("get vacancy %s: %w", id, err)
	}

	return &vacancy, nil
}

// Posting renders the vacancy as plain text for the labeling model.
// Search results carry only a snippet, full vacancies carry the description.
func (va *Vacancy) Posting() *ai.Posting {
	var b strings.Builder

	line := func(label, value string) {
		if value = strings.TrimSpace(value); value != "" {
			fmt.Fprintf(&b, "%s: %s\n", label, value)
		}
	}

	line("Employer", va.Employer.Name)
	line("Area", va.Area.Name)
	line("Experience", va.Experience.Name)
	line("Schedule", va.Schedule.Name)
	line("Employment", va.Employment.Name)

	roles := make([]string, 0, len(va.ProfessionalRoles))
	for _, role := range va.ProfessionalRoles {
		roles = append(roles, role.Name)
	}
	line("Professional roles", strings.Join(roles, ", "))

	skills := make([]string, 0, len(va.KeySkills))
	for _, skill := range va.KeySkills {
		skills = append(skills, skill.Name)
	}
	line("Key skills", strings.Join(skills, ", "))

	description := utils.HTMLToText(va.Description)
	if description == "" {
		description = strings.TrimSpace(utils.HTMLToText(va.Snippet.Responsibility) + "\n" + utils.HTMLToText(va.Snippet.Requirement))
	}
	if description != "" {
		b.WriteString("\n")
		b.WriteString(description)
	}

	source := va.AlternateURL
	if source == "" {
		source = "hh.ru/vacancy/" + va.ID
	}

	return &ai.Posting{
		Title:  va.Name,
		Source: source,
		Text:   strings.TrimSpace(b.String()),
	}
}

// Label is a single-line description used in interactive selection.
func (va *Vacancy) Label() string {
	return fmt.Sprintf("%s %s / %s / %s", va.ID, va.Name, va.Employer.Name, va.Area.Name)
}

func (v *Vacancies) Len() int {
	if v == nil {
		return 0
	}
	return len(v.Items)
}

func (v *Vacancies) FindByID(id string) *Vacancy {
	for _, vacancy := range v.Items {
		if vacancy.ID == id {
			return vacancy
		}
	}
	return nil
}
