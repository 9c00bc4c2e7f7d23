package jobmatcher

import (
	"fmt"
	"net/url"
	"reflect"
)

const (
	searchCandidatesPath = "/search/candidates"
	searchJobsPath       = "/search/jobs"
)

// CandidateFilters narrows a candidate search. Empty or zero fields are
// omitted from the query and mean "unconstrained"; the backend owns the
// filter semantics.
type CandidateFilters struct {
	Name          string  `param:"name"`
	Skills        string  `param:"skills"`
	MinExperience float64 `param:"min_experience"`
	MaxExperience float64 `param:"max_experience"`
	Limit         int     `param:"limit"`
}

// JobFilters narrows a job search, same omission rules as CandidateFilters.
type JobFilters struct {
	Title          string  `param:"title"`
	Company        string  `param:"company"`
	Skills         string  `param:"skills"`
	Location       string  `param:"location"`
	JobType        string  `param:"job_type"`
	SeniorityLevel string  `param:"seniority_level"`
	Domain         string  `param:"domain"`
	MinExperience  float64 `param:"min_experience"`
	MaxExperience  float64 `param:"max_experience"`
	Limit          int     `param:"limit"`
}

func (c *Client) SearchCandidates(filters *CandidateFilters) (*Candidates, error) {
	if filters == nil {
		filters = &CandidateFilters{}
	}

	var items []*Candidate
	if err := c.getJSON(searchCandidatesPath, buildParams(*filters), &items, ""); err != nil {
		return nil, err
	}

	return &Candidates{Items: items}, nil
}

func (c *Client) SearchJobs(filters *JobFilters) (*Jobs, error) {
	if filters == nil {
		filters = &JobFilters{}
	}

	var items []*Job
	if err := c.getJSON(searchJobsPath, buildParams(*filters), &items, ""); err != nil {
		return nil, err
	}

	return &Jobs{Items: items}, nil
}

// buildParams turns a filter struct into query values using the param tag.
// Empty strings and zero numbers are dropped so that untouched fields put no
// constraint on the search.
func buildParams(filters any) url.Values {
	q := url.Values{}

	val := reflect.ValueOf(filters)
	fields := reflect.VisibleFields(val.Type())
	for _, field := range fields {
		key := field.Tag.Get("param")
		if key == "" {
			continue
		}

		value := fmt.Sprintf("%v", val.FieldByIndex(field.Index).Interface())
		if value != "" && value != "0" {
			q.Set(key, value)
		}
	}

	return q
}
