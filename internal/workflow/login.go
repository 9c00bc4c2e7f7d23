package workflow

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jobmatcher/matchctl/internal/jobmatcher"
	"github.com/jobmatcher/matchctl/internal/session"
)

// LoginState tracks the bootstrap attempt. Failed is not terminal: the next
// submit moves through Submitting again.
type LoginState int

const (
	LoginIdle LoginState = iota
	LoginSubmitting
	LoginAuthenticated
	LoginFailed
)

const loginFallbackMessage = "Login failed. Please try again."

// LoginController runs the two-step authentication bootstrap: exchange
// credentials for a token, then fetch the profile with that exact token.
// The session store is only written after both steps succeed.
type LoginController struct {
	auth     AuthGateway
	store    *session.Store
	logger   *zap.Logger
	validate *validator.Validate

	mu      sync.Mutex
	state   LoginState
	message string
}

func NewLoginController(auth AuthGateway, store *session.Store, logger *zap.Logger) *LoginController {
	return &LoginController{
		auth:     auth,
		store:    store,
		logger:   logger,
		validate: validator.New(),
		state:    LoginIdle,
	}
}

func (c *LoginController) State() LoginState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Message is the user-facing outcome of the last failed attempt.
func (c *LoginController) Message() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.message
}

// Submit performs the bootstrap. On any failure nothing is committed: the
// store stays exactly as it was before the attempt.
func (c *LoginController) Submit(email, password string) error {
	c.mu.Lock()
	if c.state == LoginSubmitting {
		c.mu.Unlock()
		return ErrRequestInFlight
	}
	c.state = LoginSubmitting
	c.message = ""
	c.mu.Unlock()

	token, err := c.auth.Login(email, password)
	if err != nil {
		return c.fail(err)
	}

	// The profile fetch takes the token from this attempt as an explicit
	// argument. Reading the shared store here would race against whatever
	// token a previous session left behind.
	user, err := c.auth.CurrentUser(token.AccessToken)
	if err != nil {
		return c.fail(err)
	}

	if err := c.store.SetAuth(token.AccessToken, user); err != nil {
		return c.fail(err)
	}

	c.mu.Lock()
	c.state = LoginAuthenticated
	c.mu.Unlock()

	c.logger.Info("session established", zap.String("email", user.Email), zap.String("role", user.Role))

	return nil
}

func (c *LoginController) fail(err error) error {
	msg := errorMessage(err, loginFallbackMessage)

	c.mu.Lock()
	c.state = LoginFailed
	c.message = msg
	c.mu.Unlock()

	c.logger.Debug("login attempt failed", zap.Error(err))

	return fmt.Errorf("login: %w", err)
}

// Register creates a new account. Required fields are enforced locally
// before any request goes out; the role defaults to recruiter.
func (c *LoginController) Register(r jobmatcher.Registration) (*jobmatcher.User, error) {
	if r.Role == "" {
		r.Role = "recruiter"
	}

	if err := c.validate.Struct(r); err != nil {
		return nil, fmt.Errorf("registration is incomplete: %w", err)
	}

	user, err := c.auth.Register(r)
	if err != nil {
		return nil, fmt.Errorf("%s", errorMessage(err, "Registration failed. Please try again."))
	}

	return user, nil
}
