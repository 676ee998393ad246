// Package exchange trades an authorization code for the provider's raw token response.
package exchange

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jrsteele09/oauth-redirect-relay/internal/errors"
	"golang.org/x/oauth2"
)

const (
	grantTypeAuthorizationCode = "authorization_code"
	accessTokenMarker          = "access_token"

	// maxResponseSize matches the limit x/oauth2 applies to token responses.
	maxResponseSize = 1 << 20
)

// Exchanger turns an authorization code into the provider's token response body.
type Exchanger interface {
	Exchange(ctx context.Context, code string) ([]byte, error)
}

type Client struct {
	endpoint     oauth2.Endpoint
	clientID     string
	clientSecret string
	httpClient   *http.Client
}

var _ Exchanger = (*Client)(nil)

type Option func(*Client)

// WithHTTPClient replaces the default client. Its timeout is left untouched.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

func New(endpoint oauth2.Endpoint, clientID, clientSecret string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		endpoint:     endpoint,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Exchange posts the code with the confidential credentials and returns the raw body.
//
// Errors wrap one of ErrTokenTransport, ErrTokenRejected or ErrMissingAccessToken. For the
// last two the provider did answer, and the error chain holds an *oauth2.RetrieveError with
// the body exactly as received.
func (c *Client) Exchange(ctx context.Context, code string) ([]byte, error) {
	if code == "" {
		return nil, errors.ErrMissingCode
	}

	form := url.Values{
		"code":       {code},
		"grant_type": {grantTypeAuthorizationCode},
	}
	// AuthStyleAutoDetect is not probed; anything but InHeader sends the credentials as params.
	if c.endpoint.AuthStyle != oauth2.AuthStyleInHeader {
		form.Set("client_id", c.clientID)
		form.Set("client_secret", c.clientSecret)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrTokenTransport, "[Exchange] build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	if c.endpoint.AuthStyle == oauth2.AuthStyleInHeader {
		req.SetBasicAuth(url.QueryEscape(c.clientID), url.QueryEscape(c.clientSecret))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrTokenTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", errors.ErrTokenTransport, err)
	}
	if len(body) > maxResponseSize {
		return nil, errors.Wrapf(errors.ErrTokenRejected, "response body exceeds %d bytes", maxResponseSize)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %w", errors.ErrTokenRejected, newRetrieveError(resp, body))
	}
	if !bytes.Contains(body, []byte(accessTokenMarker)) {
		return nil, fmt.Errorf("%w: %w", errors.ErrMissingAccessToken, newRetrieveError(resp, body))
	}
	return body, nil
}

// ProviderBody returns the provider's raw response carried by err, if the provider answered.
func ProviderBody(err error) ([]byte, bool) {
	var rErr *oauth2.RetrieveError
	if !errors.As(err, &rErr) {
		return nil, false
	}
	return rErr.Body, true
}

func newRetrieveError(resp *http.Response, body []byte) *oauth2.RetrieveError {
	rErr := &oauth2.RetrieveError{Response: resp, Body: body}

	// Only JSON bodies carry the RFC 6749 error fields; anything else stays opaque.
	contentType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if contentType != "application/json" && !json.Valid(body) {
		return rErr
	}
	var fields struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
		ErrorURI         string `json:"error_uri"`
	}
	if err := json.Unmarshal(body, &fields); err == nil {
		rErr.ErrorCode = fields.Error
		rErr.ErrorDescription = fields.ErrorDescription
		rErr.ErrorURI = fields.ErrorURI
	}
	return rErr
}
