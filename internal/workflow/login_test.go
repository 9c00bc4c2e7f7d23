package workflow

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jobmatcher/matchctl/internal/jobmatcher"
	"github.com/jobmatcher/matchctl/internal/session"
)

func TestLoginSubmitCommitsOnlyAfterBothSteps(t *testing.T) {
	auth := &stubAuth{
		token: &jobmatcher.Token{AccessToken: "fresh-token", TokenType: "bearer"},
		user:  &jobmatcher.User{ID: 1, Email: "recruiter@jobmatcher.com", Role: "recruiter"},
	}
	store := session.NewStore()
	ctrl := NewLoginController(auth, store, zap.NewNop())

	require.NoError(t, ctrl.Submit("recruiter@jobmatcher.com", "recruiter123"))

	require.Equal(t, LoginAuthenticated, ctrl.State())
	require.Equal(t, "recruiter@jobmatcher.com", auth.gotEmail)
	require.Equal(t, "fresh-token", store.Token())
	require.Equal(t, auth.user, store.User())
}

func TestLoginProfileFetchUsesAttemptToken(t *testing.T) {
	auth := &stubAuth{
		token: &jobmatcher.Token{AccessToken: "fresh-token"},
		user:  &jobmatcher.User{ID: 1, Email: "recruiter@jobmatcher.com"},
	}
	store := session.NewStore()
	// The store still carries a previous session. The profile fetch must
	// use the token just issued, not whatever the store holds.
	require.NoError(t, store.SetAuth("stale-token", &jobmatcher.User{ID: 99}))

	ctrl := NewLoginController(auth, store, zap.NewNop())
	require.NoError(t, ctrl.Submit("recruiter@jobmatcher.com", "recruiter123"))

	require.Equal(t, "fresh-token", auth.gotToken)
	require.Equal(t, "fresh-token", store.Token())
}

func TestLoginFailureLeavesStoreUntouched(t *testing.T) {
	auth := &stubAuth{
		loginErr: unauthorized("Incorrect email or password"),
	}
	store := session.NewStore()
	ctrl := NewLoginController(auth, store, zap.NewNop())

	require.Error(t, ctrl.Submit("recruiter@jobmatcher.com", "wrong"))

	require.Equal(t, LoginFailed, ctrl.State())
	require.Equal(t, "Incorrect email or password", ctrl.Message())
	require.False(t, store.Authenticated())
	require.Equal(t, 0, auth.userCalls)
}

func TestLoginProfileFailureDoesNotCommitToken(t *testing.T) {
	auth := &stubAuth{
		token:   &jobmatcher.Token{AccessToken: "fresh-token"},
		userErr: apiErr(http.StatusInternalServerError, ""),
	}
	store := session.NewStore()
	ctrl := NewLoginController(auth, store, zap.NewNop())

	require.Error(t, ctrl.Submit("recruiter@jobmatcher.com", "recruiter123"))

	// Step one succeeded but the attempt as a whole failed, so no partial
	// session may exist.
	require.Equal(t, LoginFailed, ctrl.State())
	require.Equal(t, "Login failed. Please try again.", ctrl.Message())
	require.False(t, store.Authenticated())
}

func TestLoginFailedIsRetryable(t *testing.T) {
	auth := &stubAuth{
		loginErr: unauthorized("Incorrect email or password"),
	}
	store := session.NewStore()
	ctrl := NewLoginController(auth, store, zap.NewNop())

	require.Error(t, ctrl.Submit("recruiter@jobmatcher.com", "wrong"))

	auth.loginErr = nil
	auth.token = &jobmatcher.Token{AccessToken: "fresh-token"}
	auth.user = &jobmatcher.User{ID: 1, Email: "recruiter@jobmatcher.com"}

	require.NoError(t, ctrl.Submit("recruiter@jobmatcher.com", "recruiter123"))
	require.Equal(t, LoginAuthenticated, ctrl.State())
	require.Empty(t, ctrl.Message())
}

func TestRegisterValidatesBeforeDispatch(t *testing.T) {
	auth := &stubAuth{}
	ctrl := NewLoginController(auth, session.NewStore(), zap.NewNop())

	_, err := ctrl.Register(jobmatcher.Registration{Email: "not-an-email", Password: "recruiter123", FullName: "Jane"})
	require.Error(t, err)

	_, err = ctrl.Register(jobmatcher.Registration{Email: "jane@jobmatcher.com", Password: "short", FullName: "Jane"})
	require.Error(t, err)

	require.Equal(t, 0, auth.registerCalls)
}

func TestRegisterDefaultsRole(t *testing.T) {
	auth := &stubAuth{
		registered: &jobmatcher.User{ID: 2, Email: "jane@jobmatcher.com", Role: "recruiter"},
	}
	ctrl := NewLoginController(auth, session.NewStore(), zap.NewNop())

	user, err := ctrl.Register(jobmatcher.Registration{
		Email:    "jane@jobmatcher.com",
		Password: "recruiter123",
		FullName: "Jane Doe",
	})
	require.NoError(t, err)

	require.Equal(t, "recruiter", auth.gotRegistration.Role)
	require.Equal(t, 2, user.ID)
}

func TestRegisterSurfacesBackendDetail(t *testing.T) {
	auth := &stubAuth{
		registerErr: apiErr(http.StatusBadRequest, "Email already registered"),
	}
	ctrl := NewLoginController(auth, session.NewStore(), zap.NewNop())

	_, err := ctrl.Register(jobmatcher.Registration{
		Email:    "jane@jobmatcher.com",
		Password: "recruiter123",
		FullName: "Jane Doe",
	})
	require.EqualError(t, err, "Email already registered")
}
