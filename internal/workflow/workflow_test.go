package workflow

import (
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/jobmatcher/matchctl/internal/jobmatcher"
)

const (
	testWait = 2 * time.Second
	testTick = 5 * time.Millisecond
)

// Test doubles for the gateway slices. They record the last call so tests
// can assert exactly what was sent, and can optionally block on a gate so
// overlapping dispatches can be arranged deterministically.

func apiErr(status int, detail string) *jobmatcher.APIError {
	return &jobmatcher.APIError{StatusCode: status, Detail: detail}
}

func candidateList(ids ...int) *jobmatcher.Candidates {
	list := &jobmatcher.Candidates{}
	for _, id := range ids {
		list.Items = append(list.Items, &jobmatcher.Candidate{ID: id, Name: "Candidate"})
	}
	return list
}

func jobList(ids ...int) *jobmatcher.Jobs {
	list := &jobmatcher.Jobs{}
	for _, id := range ids {
		list.Items = append(list.Items, &jobmatcher.Job{ID: id, Title: "Job", Company: "Acme"})
	}
	return list
}

func unauthorized(detail string) *jobmatcher.APIError {
	return apiErr(http.StatusUnauthorized, detail)
}

type stubAuth struct {
	token       *jobmatcher.Token
	loginErr    error
	user        *jobmatcher.User
	userErr     error
	registered  *jobmatcher.User
	registerErr error

	loginCalls      int
	userCalls       int
	registerCalls   int
	gotEmail        string
	gotPassword     string
	gotToken        string
	gotRegistration jobmatcher.Registration
}

func (s *stubAuth) Login(email, password string) (*jobmatcher.Token, error) {
	s.loginCalls++
	s.gotEmail = email
	s.gotPassword = password
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.token, nil
}

func (s *stubAuth) CurrentUser(token string) (*jobmatcher.User, error) {
	s.userCalls++
	s.gotToken = token
	if s.userErr != nil {
		return nil, s.userErr
	}
	return s.user, nil
}

func (s *stubAuth) Register(r jobmatcher.Registration) (*jobmatcher.User, error) {
	s.registerCalls++
	s.gotRegistration = r
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return s.registered, nil
}

type stubDirectory struct {
	mu             sync.Mutex
	candidates     *jobmatcher.Candidates
	jobs           *jobmatcher.Jobs
	err            error
	candidateCalls []jobmatcher.CandidateFilters
	jobCalls       []jobmatcher.JobFilters
}

func (s *stubDirectory) SearchCandidates(f *jobmatcher.CandidateFilters) (*jobmatcher.Candidates, error) {
	s.mu.Lock()
	s.candidateCalls = append(s.candidateCalls, *f)
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.candidates, nil
}

func (s *stubDirectory) SearchJobs(f *jobmatcher.JobFilters) (*jobmatcher.Jobs, error) {
	s.mu.Lock()
	s.jobCalls = append(s.jobCalls, *f)
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.jobs, nil
}

// funcDirectory lets a test supply per-call behavior, used to hold one
// response back while another overtakes it.
type funcDirectory struct {
	candidates func(*jobmatcher.CandidateFilters) (*jobmatcher.Candidates, error)
	jobs       func(*jobmatcher.JobFilters) (*jobmatcher.Jobs, error)
}

func (f *funcDirectory) SearchCandidates(filters *jobmatcher.CandidateFilters) (*jobmatcher.Candidates, error) {
	return f.candidates(filters)
}

func (f *funcDirectory) SearchJobs(filters *jobmatcher.JobFilters) (*jobmatcher.Jobs, error) {
	return f.jobs(filters)
}

type stubMatcher struct {
	mu         sync.Mutex
	result     *jobmatcher.MatchResult
	err        error
	calls      int
	lastMethod string
	lastID     int
	lastParams jobmatcher.MatchParams

	// When set, each call blocks until the gate is closed.
	gate chan struct{}
}

func (s *stubMatcher) record(method string, id int, params jobmatcher.MatchParams) {
	s.mu.Lock()
	s.calls++
	s.lastMethod = method
	s.lastID = id
	s.lastParams = params
	s.mu.Unlock()
}

func (s *stubMatcher) respond() (*jobmatcher.MatchResult, error) {
	if s.gate != nil {
		<-s.gate
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubMatcher) MatchCandidateToJobs(candidateID int, params jobmatcher.MatchParams) (*jobmatcher.MatchResult, error) {
	s.record("candidate", candidateID, params)
	return s.respond()
}

func (s *stubMatcher) MatchJobToCandidates(jobID int, params jobmatcher.MatchParams) (*jobmatcher.MatchResult, error) {
	s.record("job", jobID, params)
	return s.respond()
}

func (s *stubMatcher) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubUploader struct {
	candidate *jobmatcher.Candidate
	uploadErr error
	job       *jobmatcher.Job
	createErr error

	uploadCalls   int
	createCalls   int
	gotFilename   string
	gotSubmission jobmatcher.JobSubmission
}

func (s *stubUploader) UploadResume(filename string, file io.Reader) (*jobmatcher.Candidate, error) {
	s.uploadCalls++
	s.gotFilename = filename
	if s.uploadErr != nil {
		return nil, s.uploadErr
	}
	return s.candidate, nil
}

func (s *stubUploader) CreateJob(submission jobmatcher.JobSubmission) (*jobmatcher.Job, error) {
	s.createCalls++
	s.gotSubmission = submission
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.job, nil
}
