package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jobmatcher/matchctl/internal/jobmatcher"
	"github.com/jobmatcher/matchctl/internal/workflow"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search candidates or jobs with optional filters",
	Run: func(cmd *cobra.Command, _ []string) {
		search(cmd)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringP("mode", "m", string(workflow.SearchCandidates), "what to search: candidates or jobs")
	searchCmd.Flags().String("skills", "", "comma-separated skills")
	searchCmd.Flags().Float64("min-experience", 0, "minimum years of experience")
	searchCmd.Flags().Float64("max-experience", 0, "maximum years of experience")
	searchCmd.Flags().Int("limit", 0, "maximum number of results")

	// candidate filters
	searchCmd.Flags().String("name", "", "candidate name")

	// job filters
	searchCmd.Flags().String("title", "", "job title")
	searchCmd.Flags().String("company", "", "company name")
	searchCmd.Flags().String("location", "", "job location")
	searchCmd.Flags().String("job-type", "", "job type")
	searchCmd.Flags().String("seniority", "", "seniority level")
	searchCmd.Flags().String("domain", "", "business domain")
}

func search(cmd *cobra.Command) {
	a := newApp()
	a.requireSession()

	ctrl := workflow.NewSearchController(a.client, a.logger)

	mode := workflow.SearchMode(strings.ToLower(cmd.Flag("mode").Value.String()))
	if mode != workflow.SearchCandidates && mode != workflow.SearchJobs {
		a.logger.Fatal("invalid mode", zap.String("mode", string(mode)), zap.String("hint", "use candidates or jobs"))
	}
	ctrl.SetMode(mode)

	minExp, _ := cmd.Flags().GetFloat64("min-experience")
	maxExp, _ := cmd.Flags().GetFloat64("max-experience")
	limit, _ := cmd.Flags().GetInt("limit")

	if mode == workflow.SearchCandidates {
		ctrl.SetCandidateFilters(jobmatcher.CandidateFilters{
			Name:          cmd.Flag("name").Value.String(),
			Skills:        cmd.Flag("skills").Value.String(),
			MinExperience: minExp,
			MaxExperience: maxExp,
			Limit:         limit,
		})
	} else {
		ctrl.SetJobFilters(jobmatcher.JobFilters{
			Title:          cmd.Flag("title").Value.String(),
			Company:        cmd.Flag("company").Value.String(),
			Skills:         cmd.Flag("skills").Value.String(),
			Location:       cmd.Flag("location").Value.String(),
			JobType:        cmd.Flag("job-type").Value.String(),
			SeniorityLevel: cmd.Flag("seniority").Value.String(),
			Domain:         cmd.Flag("domain").Value.String(),
			MinExperience:  minExp,
			MaxExperience:  maxExp,
			Limit:          limit,
		})
	}

	if err := ctrl.Search(); err != nil {
		a.logger.Fatal("search failed", zap.String("reason", ctrl.Message()))
	}

	renderSearchResults(ctrl)
}

func renderSearchResults(ctrl *workflow.SearchController) {
	candidates, jobs := ctrl.Results()

	switch {
	case candidates != nil && candidates.Len() > 0:
		fmt.Printf("%d result(s) found\n\n", candidates.Len())
		for _, c := range candidates.Items {
			renderCandidate(c)
		}
	case jobs != nil && jobs.Len() > 0:
		fmt.Printf("%d result(s) found\n\n", jobs.Len())
		for _, j := range jobs.Items {
			renderJob(j)
		}
	case ctrl.Completed():
		fmt.Println("No results found. Try adjusting your search filters.")
	}
}

func renderCandidate(c *jobmatcher.Candidate) {
	fmt.Printf("%d. %s\n", c.ID, c.Name)
	fmt.Printf("   %s, %.0f years experience\n", c.Email, c.ExperienceYears)
	if len(c.Skills) > 0 {
		fmt.Printf("   skills: %s\n", strings.Join(c.Skills, ", "))
	}
	fmt.Println()
}

func renderJob(j *jobmatcher.Job) {
	fmt.Printf("%d. %s\n", j.ID, j.Title)
	fmt.Printf("   %s, %s, %s\n", j.Company, j.Location, j.JobType)
	if desc := strings.TrimSpace(j.Description); desc != "" {
		if len(desc) > 200 {
			desc = desc[:200] + "..."
		}
		fmt.Printf("   %s\n", desc)
	}
	if len(j.RequiredSkills) > 0 {
		fmt.Printf("   skills: %s\n", strings.Join(j.RequiredSkills, ", "))
	}
	fmt.Println()
}
