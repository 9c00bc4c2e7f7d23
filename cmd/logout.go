package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jobmatcher/matchctl/internal/session"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	Run: func(_ *cobra.Command, _ []string) {
		logout()
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// logout clears both the in-memory store and the persisted token. Running it
// with no session is fine; both operations are no-ops then.
func logout() {
	a := newApp()

	a.store.Logout()

	if err := session.ClearToken(a.sessionFile()); err != nil {
		a.logger.Fatal("removing session token", zap.Error(err))
	}

	a.logger.Info("logged out")
}
