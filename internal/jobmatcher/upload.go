package jobmatcher

import (
	"io"
	"path/filepath"
)

const (
	uploadResumePath = "/upload/resume"
	uploadJobPath    = "/upload/job"
)

// UploadResume sends a resume file for ingestion. The backend extracts the
// candidate's name, skills and experience and returns the created record.
func (c *Client) UploadResume(filename string, file io.Reader) (*Candidate, error) {
	part := &FilePart{
		Field:  "file",
		Name:   filepath.Base(filename),
		Reader: file,
	}

	var candidate Candidate
	if err := c.postMultipart(uploadResumePath, nil, part, &candidate); err != nil {
		return nil, err
	}

	return &candidate, nil
}

// CreateJob posts a new job record.
func (c *Client) CreateJob(submission JobSubmission) (*Job, error) {
	var job Job
	if err := c.postJSON(uploadJobPath, submission, &job); err != nil {
		return nil, err
	}

	return &job, nil
}
