package workflow

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/jobmatcher/matchctl/internal/jobmatcher"
)

// SearchMode selects which directory a search runs against.
type SearchMode string

const (
	SearchCandidates SearchMode = "candidates"
	SearchJobs       SearchMode = "jobs"
)

const searchFallbackMessage = "Search failed. Please try again."

// SearchController translates independently-optional filters into one
// backend query. Overlapping dispatches are not cancelled; every dispatch is
// tagged with a sequence number and a response is applied only while its tag
// is still the latest issued, so a slow early request can never overwrite a
// later one.
type SearchController struct {
	gateway DirectoryGateway
	logger  *zap.Logger

	mu               sync.Mutex
	mode             SearchMode
	candidateFilters jobmatcher.CandidateFilters
	jobFilters       jobmatcher.JobFilters

	seq        uint64
	inFlight   int
	candidates *jobmatcher.Candidates
	jobs       *jobmatcher.Jobs
	completed  bool
	message    string
}

func NewSearchController(gateway DirectoryGateway, logger *zap.Logger) *SearchController {
	return &SearchController{
		gateway: gateway,
		logger:  logger,
		mode:    SearchCandidates,
	}
}

// SetMode switches the search target and discards prior results. The two
// filter objects are independent and both survive the switch untouched.
func (c *SearchController) SetMode(mode SearchMode) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mode = mode
	c.candidates = nil
	c.jobs = nil
	c.completed = false
	c.message = ""
}

func (c *SearchController) Mode() SearchMode {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.mode
}

func (c *SearchController) SetCandidateFilters(f jobmatcher.CandidateFilters) {
	c.mu.Lock()
	c.candidateFilters = f
	c.mu.Unlock()
}

func (c *SearchController) SetJobFilters(f jobmatcher.JobFilters) {
	c.mu.Lock()
	c.jobFilters = f
	c.mu.Unlock()
}

func (c *SearchController) CandidateFilters() jobmatcher.CandidateFilters {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.candidateFilters
}

func (c *SearchController) JobFilters() jobmatcher.JobFilters {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.jobFilters
}

// Search fires one request for the current mode and filters. The displayed
// state always belongs to the last dispatch: responses carrying an older
// sequence tag are dropped on arrival.
func (c *SearchController) Search() error {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.inFlight++
	mode := c.mode
	candidateFilters := c.candidateFilters
	jobFilters := c.jobFilters
	c.mu.Unlock()

	var (
		candidates *jobmatcher.Candidates
		jobs       *jobmatcher.Jobs
		err        error
	)

	if mode == SearchJobs {
		jobs, err = c.gateway.SearchJobs(&jobFilters)
	} else {
		candidates, err = c.gateway.SearchCandidates(&candidateFilters)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight--

	if seq != c.seq {
		// A newer request was issued while this one was in flight. Its
		// response, success or failure, no longer matters.
		c.logger.Debug("discarding stale search response", zap.Uint64("seq", seq), zap.Uint64("latest", c.seq))
		return nil
	}

	if err != nil {
		c.completed = false
		c.message = errorMessage(err, searchFallbackMessage)
		return fmt.Errorf("search: %w", err)
	}

	c.candidates = candidates
	c.jobs = jobs
	c.completed = true
	c.message = ""

	return nil
}

// Loading reports whether any dispatch is still outstanding.
func (c *SearchController) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.inFlight > 0
}

// Completed reports whether the displayed state comes from a finished,
// non-errored request. It distinguishes "zero results" from "never searched".
func (c *SearchController) Completed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.completed
}

func (c *SearchController) Message() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.message
}

// Results returns the current result lists; at most one is non-nil,
// depending on the mode of the last applied response.
func (c *SearchController) Results() (*jobmatcher.Candidates, *jobmatcher.Jobs) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.candidates, c.jobs
}
