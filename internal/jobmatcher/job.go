package jobmatcher

import (
	"fmt"
	"time"
)

type Jobs struct {
	Items []*Job
}

type Job struct {
	ID                 int       `json:"id"`
	Title              string    `json:"title"`
	Company            string    `json:"company"`
	Description        string    `json:"description"`
	RequiredSkills     []string  `json:"required_skills"`
	ExperienceRequired float64   `json:"experience_required"`
	Location           string    `json:"location"`
	JobType            string    `json:"job_type"`
	SeniorityLevel     string    `json:"seniority_level"`
	Domain             string    `json:"domain"`
	CreatedAt          time.Time `json:"created_at"`
}

// JobSubmission is the payload for posting a new job. Title, company and
// description are enforced before any request goes out; the backend derives
// skills and seniority from the description.
type JobSubmission struct {
	Title              string   `json:"title" validate:"required"`
	Company            string   `json:"company" validate:"required"`
	Description        string   `json:"description" validate:"required"`
	RequiredSkills     []string `json:"required_skills"`
	ExperienceRequired float64  `json:"experience_required"`
	Location           string   `json:"location"`
	JobType            string   `json:"job_type"`
	SeniorityLevel     string   `json:"seniority_level,omitempty"`
	Domain             string   `json:"domain,omitempty"`
}

func (j *Job) Label() string {
	return fmt.Sprintf("%d %s at %s", j.ID, j.Title, j.Company)
}

func (j *Jobs) Len() int {
	return len(j.Items)
}

func (j *Jobs) FindByID(id int) *Job {
	for _, job := range j.Items {
		if job.ID == id {
			return job
		}
	}
	return nil
}

func (j *Jobs) Labels() []string {
	labels := make([]string, 0, len(j.Items))
	for _, job := range j.Items {
		labels = append(labels, job.Label())
	}
	return labels
}
