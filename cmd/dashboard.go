package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jobmatcher/matchctl/internal/workflow"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show platform totals",
	Run: func(_ *cobra.Command, _ []string) {
		dashboard()
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func dashboard() {
	a := newApp()
	a.requireSession()

	ctrl := workflow.NewDashboardController(a.client, a.logger)

	stats, err := ctrl.Load()
	if err != nil {
		a.logger.Fatal("loading dashboard", zap.Error(err))
	}

	fmt.Printf("Total candidates: %d\n", stats.TotalCandidates)
	fmt.Printf("Active jobs:      %d\n", stats.TotalJobs)
}
