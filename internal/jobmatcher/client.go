package jobmatcher

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultAPIURL = "http://localhost:8000/api"
	userAgent     = "jobmatcher/matchctl"

	requestTimeout = 30 * time.Second
)

// TokenSource provides the bearer credential attached to authenticated
// requests. An empty token means the call goes out without a credential
// header at all.
type TokenSource interface {
	Token() string
}

// Client talks to the job matcher backend. It owns only transport concerns:
// base routing, credential attachment and response decoding. All state lives
// with the caller.
type Client struct {
	// ctx used only for http requests right now
	ctx        context.Context
	tokens     TokenSource
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

func New(ctx context.Context, logger *zap.Logger, tokens TokenSource) *Client {
	return &Client{
		ctx:    ctx,
		tokens: tokens,
		APIURL: defaultAPIURL,
		HTTPClient: &http.Client{
			Timeout: requestTimeout,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}

// bearer resolves the credential for a single request. An explicit override
// always wins over the token source; the login bootstrap depends on that.
func (c *Client) bearer(override string) string {
	if tok := strings.TrimSpace(override); tok != "" {
		return tok
	}

	if c.tokens == nil {
		return ""
	}

	return strings.TrimSpace(c.tokens.Token())
}

func (c *Client) setHeaders(req *http.Request, tokenOverride string) *http.Request {
	if tok := c.bearer(tokenOverride); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	req.Header.Set("User-Agent", c.UserAgent)

	return req
}
