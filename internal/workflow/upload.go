package workflow

import (
	"fmt"
	"io"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jobmatcher/matchctl/internal/jobmatcher"
)

// StatusKind classifies the shared status surface of the upload view.
type StatusKind int

const (
	StatusNone StatusKind = iota
	StatusSuccess
	StatusError
)

type Status struct {
	Kind StatusKind
	Text string
}

const (
	DefaultJobLocation = "Remote"
	DefaultJobType     = "full-time"

	resumeFallbackMessage = "Failed to upload resume"
	jobFallbackMessage    = "Failed to post job"
)

// ResumeFile is the file picked for the next resume upload.
type ResumeFile struct {
	Name   string
	Reader io.Reader
}

// UploadController owns the two ingestion sub-flows. They share the status
// surface but nothing else: a resume failure never disturbs the job form and
// vice versa.
type UploadController struct {
	gateway  UploadGateway
	logger   *zap.Logger
	validate *validator.Validate

	mu      sync.Mutex
	file    *ResumeFile
	job     jobmatcher.JobSubmission
	status  Status
	loading bool
}

func NewUploadController(gateway UploadGateway, logger *zap.Logger) *UploadController {
	return &UploadController{
		gateway:  gateway,
		logger:   logger,
		validate: validator.New(),
		job:      defaultJobForm(),
	}
}

func defaultJobForm() jobmatcher.JobSubmission {
	return jobmatcher.JobSubmission{
		Location: DefaultJobLocation,
		JobType:  DefaultJobType,
	}
}

func (c *UploadController) SelectFile(name string, r io.Reader) {
	c.mu.Lock()
	c.file = &ResumeFile{Name: name, Reader: r}
	c.mu.Unlock()
}

func (c *UploadController) ClearFile() {
	c.mu.Lock()
	c.file = nil
	c.mu.Unlock()
}

// SelectedFile returns the pending file name, empty when none is picked.
func (c *UploadController) SelectedFile() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.file == nil {
		return ""
	}
	return c.file.Name
}

// UploadResume ingests the selected file. Without a selection this is a
// validation failure: no request goes out. Success clears the selection and
// reports the extracted candidate name; failure keeps the selection so the
// user can retry.
func (c *UploadController) UploadResume() error {
	c.mu.Lock()
	if c.file == nil {
		c.mu.Unlock()
		return ErrNoFileSelected
	}
	if c.loading {
		c.mu.Unlock()
		return ErrRequestInFlight
	}
	c.loading = true
	c.status = Status{}
	file := c.file
	c.mu.Unlock()

	candidate, err := c.gateway.UploadResume(file.Name, file.Reader)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false

	if err != nil {
		c.status = Status{Kind: StatusError, Text: errorMessage(err, resumeFallbackMessage)}
		return fmt.Errorf("uploading resume: %w", err)
	}

	c.file = nil
	c.status = Status{
		Kind: StatusSuccess,
		Text: fmt.Sprintf("Resume uploaded successfully! Candidate: %s", candidate.Name),
	}

	c.logger.Info("resume ingested", zap.Int("candidate_id", candidate.ID), zap.String("name", candidate.Name))

	return nil
}

// JobForm returns the current job form values.
func (c *UploadController) JobForm() jobmatcher.JobSubmission {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.job
}

// SetJobForm replaces the job form. Empty location and job type fall back to
// the defaults.
func (c *UploadController) SetJobForm(form jobmatcher.JobSubmission) {
	if form.Location == "" {
		form.Location = DefaultJobLocation
	}
	if form.JobType == "" {
		form.JobType = DefaultJobType
	}

	c.mu.Lock()
	c.job = form
	c.mu.Unlock()
}

// SubmitJob posts the job form. Missing required fields are caught before
// any request. Success resets the form to its defaults; failure keeps the
// entered values so nothing has to be retyped.
func (c *UploadController) SubmitJob() error {
	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return ErrRequestInFlight
	}
	form := c.job
	c.mu.Unlock()

	if err := c.validate.Struct(form); err != nil {
		return fmt.Errorf("job form is incomplete: %w", err)
	}

	c.mu.Lock()
	c.loading = true
	c.status = Status{}
	c.mu.Unlock()

	job, err := c.gateway.CreateJob(form)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false

	if err != nil {
		c.status = Status{Kind: StatusError, Text: errorMessage(err, jobFallbackMessage)}
		return fmt.Errorf("posting job: %w", err)
	}

	c.job = defaultJobForm()
	c.status = Status{
		Kind: StatusSuccess,
		Text: fmt.Sprintf("Job posted successfully! %s at %s", job.Title, job.Company),
	}

	c.logger.Info("job posted", zap.Int("job_id", job.ID), zap.String("title", job.Title))

	return nil
}

func (c *UploadController) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.status
}

func (c *UploadController) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.loading
}
