package disco

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

// Authenticator produces the transport-level request for an HTTP verb and
// a fully-formed URL, with whatever credential material it manages
// already attached. The request builder never touches credentials itself.
type Authenticator interface {
	NewRequest(ctx context.Context, method, url string) (*http.Request, error)
}

// NoAuth issues requests without credentials. It is the default
// authenticator for requests that never call Authenticator.
type NoAuth struct{}

func (NoAuth) NewRequest(ctx context.Context, method, url string) (*http.Request, error) {
	return http.NewRequestWithContext(ctx, method, url, nil)
}

// TokenSource adapts an oauth2.TokenSource into an Authenticator that
// attaches the token as an Authorization header.
func TokenSource(ts oauth2.TokenSource) Authenticator {
	return &tokenSourceAuth{ts: ts}
}

// StaticToken returns an Authenticator that attaches a fixed bearer token.
func StaticToken(token string) Authenticator {
	return TokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
}

type tokenSourceAuth struct {
	ts oauth2.TokenSource
}

func (a *tokenSourceAuth) NewRequest(ctx context.Context, method, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	tok, err := a.ts.Token()
	if err != nil {
		return nil, fmt.Errorf("fetch token: %w", err)
	}
	tok.SetAuthHeader(req)
	return req, nil
}
