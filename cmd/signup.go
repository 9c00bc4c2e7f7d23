package cmd

import (
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jobmatcher/matchctl/internal/jobmatcher"
	"github.com/jobmatcher/matchctl/internal/workflow"
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a recruiter account",
	Run: func(cmd *cobra.Command, _ []string) {
		signup(cmd)
	},
}

func init() {
	rootCmd.AddCommand(signupCmd)

	signupCmd.Flags().StringP("email", "e", "", "email address")
	signupCmd.Flags().String("full-name", "", "full name")
	signupCmd.Flags().String("role", "recruiter", "account role")
}

func signup(cmd *cobra.Command) {
	a := newApp()

	email := promptIfEmpty(a, cmd.Flag("email").Value.String(), "Email", false)
	fullName := promptIfEmpty(a, cmd.Flag("full-name").Value.String(), "Full name", false)
	password := promptIfEmpty(a, "", "Password", true)

	ctrl := workflow.NewLoginController(a.client, a.store, a.logger)
	user, err := ctrl.Register(jobmatcher.Registration{
		Email:    email,
		Password: password,
		FullName: fullName,
		Role:     cmd.Flag("role").Value.String(),
	})
	if err != nil {
		a.logger.Fatal("signup failed", zap.Error(err))
	}

	a.logger.Info("account created",
		zap.String("email", user.Email),
		zap.String("hint", "run 'matchctl login' to sign in"),
	)
}

func promptIfEmpty(a *appContext, value, label string, masked bool) string {
	value = strings.TrimSpace(value)
	if value != "" {
		return value
	}

	prompt := promptui.Prompt{Label: label}
	if masked {
		prompt.Mask = '*'
	}

	entered, err := prompt.Run()
	if err != nil {
		a.logger.Fatal("reading input", zap.String("field", label), zap.Error(err))
	}

	return strings.TrimSpace(entered)
}
