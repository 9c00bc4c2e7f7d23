package jobmatcher

import (
	"fmt"
	"strings"
	"time"
)

const (
	loginPath    = "/auth/login"
	registerPath = "/auth/register"
	mePath       = "/auth/me"
)

// Token is the credential returned by a successful login. The client treats
// AccessToken as an opaque string.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type User struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type Registration struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required"`
	Role     string `json:"role"`
}

// Login exchanges credentials for a token. The backend expects an OAuth2
// password form, so the email travels in the username field.
func (c *Client) Login(email, password string) (*Token, error) {
	fields := map[string]string{
		"username": email,
		"password": password,
	}

	var token Token
	if err := c.postMultipart(loginPath, fields, nil, &token); err != nil {
		return nil, err
	}

	if strings.TrimSpace(token.AccessToken) == "" {
		return nil, fmt.Errorf("login response carries no access token")
	}

	return &token, nil
}

func (c *Client) Register(r Registration) (*User, error) {
	if r.Role == "" {
		r.Role = "recruiter"
	}

	var user User
	if err := c.postJSON(registerPath, r, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// CurrentUser fetches the profile for the given token. The token is an
// explicit argument on purpose: the login bootstrap must use the token it
// just received, not whatever the shared session happens to hold.
func (c *Client) CurrentUser(token string) (*User, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("token is required")
	}

	var user User
	if err := c.getJSON(mePath, nil, &user, token); err != nil {
		return nil, err
	}

	return &user, nil
}
