package jobmatcher

import (
	"fmt"
	"time"
)

type Candidates struct {
	Items []*Candidate
}

type Candidate struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Skills          []string  `json:"skills"`
	ExperienceYears float64   `json:"experience_years"`
	Education       string    `json:"education"`
	CreatedAt       time.Time `json:"created_at"`
}

// Label renders the candidate the way the selection prompt shows it. The id
// leads so a chosen label can be mapped back to the record.
func (c *Candidate) Label() string {
	return fmt.Sprintf("%d %s - %.0f years exp", c.ID, c.Name, c.ExperienceYears)
}

func (c *Candidates) Len() int {
	return len(c.Items)
}

func (c *Candidates) FindByID(id int) *Candidate {
	for _, candidate := range c.Items {
		if candidate.ID == id {
			return candidate
		}
	}
	return nil
}

func (c *Candidates) Labels() []string {
	labels := make([]string, 0, len(c.Items))
	for _, candidate := range c.Items {
		labels = append(labels, candidate.Label())
	}
	return labels
}
