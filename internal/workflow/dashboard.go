package workflow

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jobmatcher/matchctl/internal/jobmatcher"
)

const dashboardLimit = 1000

// DashboardStats are the platform totals shown on the landing view.
type DashboardStats struct {
	TotalCandidates int
	TotalJobs       int
}

// DashboardController aggregates the directory totals. It keeps no state of
// its own; every load fetches fresh.
type DashboardController struct {
	directory DirectoryGateway
	logger    *zap.Logger
}

func NewDashboardController(directory DirectoryGateway, logger *zap.Logger) *DashboardController {
	return &DashboardController{
		directory: directory,
		logger:    logger,
	}
}

// Load fetches the candidate and job lists concurrently and computes the
// totals only once both have landed.
func (c *DashboardController) Load() (*DashboardStats, error) {
	var (
		candidates *jobmatcher.Candidates
		jobs       *jobmatcher.Jobs
	)

	g := new(errgroup.Group)
	g.Go(func() error {
		res, err := c.directory.SearchCandidates(&jobmatcher.CandidateFilters{Limit: dashboardLimit})
		candidates = res
		return err
	})
	g.Go(func() error {
		res, err := c.directory.SearchJobs(&jobmatcher.JobFilters{Limit: dashboardLimit})
		jobs = res
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading dashboard data: %w", err)
	}

	stats := &DashboardStats{
		TotalCandidates: candidates.Len(),
		TotalJobs:       jobs.Len(),
	}

	c.logger.Debug("dashboard loaded",
		zap.Int("candidates", stats.TotalCandidates),
		zap.Int("jobs", stats.TotalJobs),
	)

	return stats, nil
}
