package lulu

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const tokenRenewalBuffer = 600 // Renew 10 minutes before expiry

// TokenSource supplies bearer tokens for API requests.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource that always returns the same token.
type StaticToken string

// Token returns the token.
func (t StaticToken) Token(context.Context) (string, error) {
	if t == "" {
		return "", errors.New("static token is empty")
	}
	return string(t), nil
}

// ClientCredentials obtains tokens with the OAuth client credentials grant
// and caches them until shortly before they expire.
type ClientCredentials struct {
	httpClient *http.Client
	config     clientcredentials.Config

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
	now         func() time.Time
}

// NewClientCredentials creates a token source for the given API key and secret.
func NewClientCredentials(clientKey, clientSecret, tokenURL string, httpClient Doer) *ClientCredentials {
	return &ClientCredentials{
		httpClient: asHTTPClient(httpClient),
		config: clientcredentials.Config{
			ClientID:     clientKey,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
			AuthStyle:    oauth2.AuthStyleInHeader,
		},
		now: time.Now,
	}
}

// Token returns a cached token or fetches a new one.
func (c *ClientCredentials) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && c.now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	tok, err := c.config.Token(ctx)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			status := retrieveErr.Response.StatusCode
			return "", fmt.Errorf("authentication failed with status %d: %w", status, newRemoteError(status, retrieveErr.Body))
		}
		return "", fmt.Errorf("fetching access token: %w", err)
	}

	lifetime := time.Duration(tok.ExpiresIn) * time.Second
	if lifetime <= 0 && !tok.Expiry.IsZero() {
		lifetime = time.Until(tok.Expiry)
	}
	if buffer := tokenRenewalBuffer * time.Second; lifetime > 2*buffer {
		lifetime -= buffer
	} else {
		lifetime /= 2
	}

	c.accessToken = tok.AccessToken
	c.tokenExpiry = c.now().Add(lifetime)

	return c.accessToken, nil
}

// asHTTPClient adapts d for use as the token endpoint's HTTP client.
func asHTTPClient(d Doer) *http.Client {
	switch hc := d.(type) {
	case nil:
		return &http.Client{Timeout: 30 * time.Second}
	case *http.Client:
		if hc == nil {
			return &http.Client{Timeout: 30 * time.Second}
		}
		return hc
	default:
		return &http.Client{Transport: doerTransport{d}}
	}
}

type doerTransport struct {
	doer Doer
}

func (t doerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.doer.Do(req)
}
