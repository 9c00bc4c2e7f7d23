package workflow

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jobmatcher/matchctl/internal/jobmatcher"
)

// MatchMode selects the direction of a similarity request. Candidate and job
// ids are not comparable across modes, so a mode switch discards the current
// selection.
type MatchMode string

const (
	ModeCandidate MatchMode = "candidate"
	ModeJob       MatchMode = "job"
)

// MatchesPhase distinguishes the result states a consumer must render
// differently. NothingSelected, Loading and NoMatches are the three empty
// states: no target yet, request outstanding, and a completed request that
// returned nothing.
type MatchesPhase int

const (
	MatchesNothingSelected MatchesPhase = iota
	MatchesReady
	MatchesLoading
	MatchesNoMatches
	MatchesLoaded
	MatchesFailed
)

const (
	optionsLimit = 100

	minTopK = 1
	maxTopK = 50

	defaultMinSimilarityPct = 50

	matchesFallbackMessage = "Failed to find matches. Please try again."
)

// MatchesController drives the candidate-to-jobs / job-to-candidates
// matching cycle. One request may be outstanding at a time; the trigger is
// rejected while one is in flight.
type MatchesController struct {
	matcher   MatchGateway
	directory DirectoryGateway
	logger    *zap.Logger

	mu         sync.Mutex
	mode       MatchMode
	candidates *jobmatcher.Candidates
	jobs       *jobmatcher.Jobs
	selectedID int
	topK       int
	minSimPct  int

	phase    MatchesPhase
	matches  []*jobmatcher.Match
	message  string
	inFlight bool
}

func NewMatchesController(matcher MatchGateway, directory DirectoryGateway, logger *zap.Logger) *MatchesController {
	return &MatchesController{
		matcher:   matcher,
		directory: directory,
		logger:    logger,
		mode:      ModeCandidate,
		topK:      jobmatcher.DefaultTopK,
		minSimPct: defaultMinSimilarityPct,
		phase:     MatchesNothingSelected,
	}
}

// LoadOptions fetches the candidate and job lists for target selection. The
// two fetches have no data dependency and run concurrently; both must land
// before either list is published.
func (c *MatchesController) LoadOptions() error {
	var (
		candidates *jobmatcher.Candidates
		jobs       *jobmatcher.Jobs
	)

	g := new(errgroup.Group)
	g.Go(func() error {
		res, err := c.directory.SearchCandidates(&jobmatcher.CandidateFilters{Limit: optionsLimit})
		candidates = res
		return err
	})
	g.Go(func() error {
		res, err := c.directory.SearchJobs(&jobmatcher.JobFilters{Limit: optionsLimit})
		jobs = res
		return err
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("loading selection options: %w", err)
	}

	c.mu.Lock()
	c.candidates = candidates
	c.jobs = jobs
	c.mu.Unlock()

	c.logger.Debug("loaded selection options",
		zap.Int("candidates", candidates.Len()),
		zap.Int("jobs", jobs.Len()),
	)

	return nil
}

// SetMode switches the matching direction. The previous selection and any
// displayed matches never survive the switch.
func (c *MatchesController) SetMode(mode MatchMode) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mode = mode
	c.selectedID = 0
	c.matches = nil
	c.message = ""
	c.phase = MatchesNothingSelected
}

// Select picks the match target. When options are loaded the id must belong
// to the current mode's list.
func (c *MatchesController) Select(id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if id <= 0 {
		return fmt.Errorf("invalid target id %d", id)
	}

	switch c.mode {
	case ModeCandidate:
		if c.candidates != nil && c.candidates.FindByID(id) == nil {
			return fmt.Errorf("no candidate with id %d", id)
		}
	case ModeJob:
		if c.jobs != nil && c.jobs.FindByID(id) == nil {
			return fmt.Errorf("no job with id %d", id)
		}
	}

	c.selectedID = id
	if c.phase == MatchesNothingSelected {
		c.phase = MatchesReady
	}

	return nil
}

// SetTopK bounds the requested match count to [1, 50].
func (c *MatchesController) SetTopK(k int) {
	if k < minTopK {
		k = minTopK
	}
	if k > maxTopK {
		k = maxTopK
	}

	c.mu.Lock()
	c.topK = k
	c.mu.Unlock()
}

// SetMinSimilarity takes the threshold as a 0-100 percentage, the unit the
// user works in. Conversion to the wire fraction happens at dispatch.
func (c *MatchesController) SetMinSimilarity(pct int) {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	c.mu.Lock()
	c.minSimPct = pct
	c.mu.Unlock()
}

// FindMatches issues exactly one matching request. It is a no-op error when
// no target is selected and rejects concurrent dispatch. The loading state
// is cleared in a single finalization step whatever the outcome.
func (c *MatchesController) FindMatches() error {
	c.mu.Lock()
	if c.selectedID == 0 {
		c.mu.Unlock()
		return ErrNoSelection
	}
	if c.inFlight {
		c.mu.Unlock()
		return ErrRequestInFlight
	}

	c.inFlight = true
	c.phase = MatchesLoading
	c.matches = nil
	c.message = ""

	mode := c.mode
	id := c.selectedID
	params := jobmatcher.MatchParams{
		TopK:          c.topK,
		MinSimilarity: float64(c.minSimPct) / 100,
	}
	c.mu.Unlock()

	var (
		result *jobmatcher.MatchResult
		err    error
	)

	switch mode {
	case ModeJob:
		result, err = c.matcher.MatchJobToCandidates(id, params)
	default:
		result, err = c.matcher.MatchCandidateToJobs(id, params)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false

	if err != nil {
		c.phase = MatchesFailed
		c.message = errorMessage(err, matchesFallbackMessage)
		return fmt.Errorf("finding matches: %w", err)
	}

	// The backend owns the ranking; results are kept in arrival order.
	c.matches = result.Matches
	if len(c.matches) == 0 {
		c.phase = MatchesNoMatches
		return nil
	}

	c.phase = MatchesLoaded
	return nil
}

func (c *MatchesController) Mode() MatchMode {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.mode
}

func (c *MatchesController) SelectedID() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.selectedID
}

func (c *MatchesController) TopK() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.topK
}

func (c *MatchesController) MinSimilarity() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.minSimPct
}

func (c *MatchesController) Phase() MatchesPhase {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.phase
}

func (c *MatchesController) Matches() []*jobmatcher.Match {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.matches
}

func (c *MatchesController) Message() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.message
}

// Options returns the loaded selection lists. Either may be nil before
// LoadOptions succeeds.
func (c *MatchesController) Options() (*jobmatcher.Candidates, *jobmatcher.Jobs) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.candidates, c.jobs
}
