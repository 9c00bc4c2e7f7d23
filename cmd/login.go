package cmd

import (
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jobmatcher/matchctl/internal/session"
	"github.com/jobmatcher/matchctl/internal/workflow"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store a session token for later commands",
	Run: func(cmd *cobra.Command, _ []string) {
		login(cmd)
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().StringP("email", "e", "", "recruiter email address")
}

func login(cmd *cobra.Command) {
	a := newApp()

	email := strings.TrimSpace(cmd.Flag("email").Value.String())
	if email == "" {
		prompt := promptui.Prompt{Label: "Email"}
		value, err := prompt.Run()
		if err != nil {
			a.logger.Fatal("reading email", zap.Error(err))
		}
		email = strings.TrimSpace(value)
	}

	passwordPrompt := promptui.Prompt{Label: "Password", Mask: '*'}
	password, err := passwordPrompt.Run()
	if err != nil {
		a.logger.Fatal("reading password", zap.Error(err))
	}

	ctrl := workflow.NewLoginController(a.client, a.store, a.logger)
	if err := ctrl.Submit(email, password); err != nil {
		a.logger.Fatal("login failed", zap.String("reason", ctrl.Message()))
	}

	if err := session.SaveToken(a.sessionFile(), a.store.Token()); err != nil {
		a.logger.Fatal("persisting session token", zap.Error(err))
	}

	a.logger.Info("logged in",
		zap.String("email", a.store.User().Email),
		zap.String("session_file", a.sessionFile()),
	)
}
