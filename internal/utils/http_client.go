package utils

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
type HTTPClient struct {
	*resty.Client
}

// HTTPClientOptions configures NewHTTPClient. Zero values leave resty's
// defaults in place.
type HTTPClientOptions struct {
	BaseURL    string
	Timeout    time.Duration
	RetryCount int
	UserAgent  string

	// Username and Password enable basic authentication; Token enables a
	// bearer Authorization header and takes precedence.
	Username string
	Password string
	Token    string
}

// NewHTTPClient creates a resty client configured from opts. Transport
// failures are retried RetryCount times; HTTP status codes never are.
func NewHTTPClient(opts HTTPClientOptions) *HTTPClient {
	client := resty.New()

	if opts.BaseURL != "" {
		client.SetBaseURL(opts.BaseURL)
	}
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}
	if opts.RetryCount > 0 {
		client.
			SetRetryCount(opts.RetryCount).
			SetRetryWaitTime(500 * time.Millisecond).
			SetRetryMaxWaitTime(5 * time.Second).
			AddRetryCondition(func(resp *resty.Response, err error) bool {
				return err != nil
			})
	}
	if opts.UserAgent != "" {
		client.SetHeader("User-Agent", opts.UserAgent)
	}

	switch {
	case opts.Token != "":
		client.SetAuthToken(opts.Token)
	case opts.Username != "":
		client.SetBasicAuth(opts.Username, opts.Password)
	}

	// redirects are reported to the caller rather than followed
	client.SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}))

	return &HTTPClient{Client: client}
}
