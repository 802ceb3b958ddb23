package twitter

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/dghubble/oauth1"
	"golang.org/x/oauth2"
)

// authMode selects how outgoing requests are signed.
type authMode int

const (
	authOAuth1 authMode = iota // user context, consumer key + access token
	authBearer                 // OAuth 2.0 bearer token
)

func (m authMode) String() string {
	if m == authBearer {
		return "bearer"
	}
	return "oauth1"
}

// selectAuthMode prefers OAuth 1.0a user context. The bearer token is only used
// when no OAuth 1.0a value was supplied at all.
func selectAuthMode(creds Credentials) authMode {
	oauth1Empty := creds.APIKey == "" && creds.APISecret == "" &&
		creds.AccessToken == "" && creds.AccessTokenSecret == ""
	if oauth1Empty && creds.BearerToken != "" {
		return authBearer
	}
	return authOAuth1
}

// baseHTTPClient returns the unsigned client the auth transports wrap.
func baseHTTPClient(cfg ClientConfig) (*http.Client, error) {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.Proxy != "" {
		u, err := url.Parse(cfg.Proxy)
		if err != nil {
			return nil, fmt.Errorf("parse proxy %s: %w", stealth.MaskProxy(cfg.Proxy), err)
		}
		tr.Proxy = http.ProxyURL(u)
		slog.Info("using proxy", slog.String("proxy", stealth.MaskProxy(cfg.Proxy)))
	}
	return &http.Client{Transport: tr, Timeout: cfg.Timeout}, nil
}

// newAuthClient builds the signed HTTP client for the given credentials.
// Empty or invalid credentials are not detected here.
func newAuthClient(cfg ClientConfig, mode authMode) (*http.Client, error) {
	base, err := baseHTTPClient(cfg)
	if err != nil {
		return nil, err
	}

	var hc *http.Client
	switch mode {
	case authBearer:
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
		hc = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: cfg.Credentials.BearerToken,
			TokenType:   "Bearer",
		}))
	default:
		ctx := context.WithValue(context.Background(), oauth1.HTTPClient, base)
		conf := oauth1.NewConfig(cfg.Credentials.APIKey, cfg.Credentials.APISecret)
		token := oauth1.NewToken(cfg.Credentials.AccessToken, cfg.Credentials.AccessTokenSecret)
		hc = conf.Client(ctx, token)
	}
	hc.Timeout = cfg.Timeout
	return hc, nil
}
