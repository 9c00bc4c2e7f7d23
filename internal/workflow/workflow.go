// Package workflow holds the per-view controllers: the state machines that
// sequence backend calls, guard against duplicate or stale responses and
// reduce results into displayable state. Controllers share nothing with each
// other; the session store is the only cross-view state in the program.
package workflow

import (
	"errors"
	"io"

	"github.com/jobmatcher/matchctl/internal/jobmatcher"
)

var (
	// ErrNoSelection means the action needs a target and none is chosen.
	// No request goes out in this case.
	ErrNoSelection = errors.New("no target selected")

	// ErrNoFileSelected means a resume upload was attempted without a file.
	ErrNoFileSelected = errors.New("no resume file selected")

	// ErrRequestInFlight rejects a duplicate dispatch while an earlier one
	// for the same workflow is still outstanding.
	ErrRequestInFlight = errors.New("a request is already in flight")
)

// AuthGateway is the slice of the backend client the login workflow needs.
type AuthGateway interface {
	Login(email, password string) (*jobmatcher.Token, error)
	Register(r jobmatcher.Registration) (*jobmatcher.User, error)
	CurrentUser(token string) (*jobmatcher.User, error)
}

// DirectoryGateway lists candidates and jobs. Used by the search workflow,
// the dashboard and the matching workflow's selection options.
type DirectoryGateway interface {
	SearchCandidates(filters *jobmatcher.CandidateFilters) (*jobmatcher.Candidates, error)
	SearchJobs(filters *jobmatcher.JobFilters) (*jobmatcher.Jobs, error)
}

// MatchGateway drives similarity requests.
type MatchGateway interface {
	MatchCandidateToJobs(candidateID int, params jobmatcher.MatchParams) (*jobmatcher.MatchResult, error)
	MatchJobToCandidates(jobID int, params jobmatcher.MatchParams) (*jobmatcher.MatchResult, error)
}

// UploadGateway ingests resumes and job records.
type UploadGateway interface {
	UploadResume(filename string, file io.Reader) (*jobmatcher.Candidate, error)
	CreateJob(submission jobmatcher.JobSubmission) (*jobmatcher.Job, error)
}

// errorMessage picks the user-facing text for a failed request: the
// backend's detail when it sent one, the workflow's fallback otherwise.
func errorMessage(err error, fallback string) string {
	var apiErr *jobmatcher.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}

	return fallback
}
