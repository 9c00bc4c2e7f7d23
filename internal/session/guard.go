package session

import "errors"

// ErrNotAuthenticated is returned by Require when no session is present.
var ErrNotAuthenticated = errors.New("not logged in: run 'matchctl login' first")

// Require gates access to protected workflows. It is a pure read of the
// store, evaluated on every protected command run so a logout is observed
// immediately.
func Require(store *Store) error {
	if store == nil || !store.Authenticated() {
		return ErrNotAuthenticated
	}

	return nil
}
