package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jobmatcher/matchctl/internal/jobmatcher"
	"github.com/jobmatcher/matchctl/internal/workflow"
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Ingest candidate resumes and job postings",
}

var uploadResumeCmd = &cobra.Command{
	Use:   "resume <file>",
	Short: "Upload a resume (PDF or DOCX); candidate data is extracted by the backend",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		uploadResume(args[0])
	},
}

var uploadJobCmd = &cobra.Command{
	Use:   "job",
	Short: "Post a new job",
	Run: func(cmd *cobra.Command, _ []string) {
		uploadJob(cmd)
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	uploadCmd.AddCommand(uploadResumeCmd)
	uploadCmd.AddCommand(uploadJobCmd)

	uploadJobCmd.Flags().String("title", "", "job title (required)")
	uploadJobCmd.Flags().String("company", "", "company name (required)")
	uploadJobCmd.Flags().String("description", "", "job description (required)")
	uploadJobCmd.Flags().String("location", workflow.DefaultJobLocation, "job location")
	uploadJobCmd.Flags().String("job-type", workflow.DefaultJobType, "full-time, part-time, contract, freelance or internship")
	uploadJobCmd.Flags().String("seniority", "", "seniority level")
	uploadJobCmd.Flags().String("domain", "", "business domain")
}

func uploadResume(path string) {
	a := newApp()
	a.requireSession()

	file, err := os.Open(path)
	if err != nil {
		a.logger.Fatal("opening resume file", zap.Error(err))
	}
	defer file.Close()

	ctrl := workflow.NewUploadController(a.client, a.logger)
	ctrl.SelectFile(path, file)

	if err := ctrl.UploadResume(); err != nil {
		a.logger.Fatal("resume upload failed", zap.String("reason", ctrl.Status().Text), zap.Error(err))
	}

	a.logger.Info(ctrl.Status().Text)
}

func uploadJob(cmd *cobra.Command) {
	a := newApp()
	a.requireSession()

	ctrl := workflow.NewUploadController(a.client, a.logger)
	ctrl.SetJobForm(jobmatcher.JobSubmission{
		Title:          cmd.Flag("title").Value.String(),
		Company:        cmd.Flag("company").Value.String(),
		Description:    cmd.Flag("description").Value.String(),
		Location:       cmd.Flag("location").Value.String(),
		JobType:        cmd.Flag("job-type").Value.String(),
		SeniorityLevel: cmd.Flag("seniority").Value.String(),
		Domain:         cmd.Flag("domain").Value.String(),
	})

	if err := ctrl.SubmitJob(); err != nil {
		reason := ctrl.Status().Text
		if reason == "" {
			reason = err.Error()
		}
		a.logger.Fatal("job posting failed",
			zap.String("reason", reason),
			zap.String("hint", "--title, --company and --description are required"),
		)
	}

	a.logger.Info(ctrl.Status().Text)
}
