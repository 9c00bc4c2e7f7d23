package session

import (
	"github.com/jobmatcher/matchctl/internal/secrets"
)

// SaveToken persists the session token so later invocations can restore the
// session. Only the token is written; the profile is re-fetched on restore
// so the store never holds a token without a verified user.
func SaveToken(path, token string) error {
	return secrets.Save(path, token)
}

// LoadToken reads a previously persisted token. Restoring a session from it
// still requires validating the token against the backend before SetAuth.
func LoadToken(path string) (string, error) {
	return secrets.Load(secrets.Source{
		Name: "session token",
		File: path,
	})
}

// ClearToken removes the persisted token. A missing file is fine, matching
// the idempotence of Logout.
func ClearToken(path string) error {
	return secrets.Remove(path)
}
