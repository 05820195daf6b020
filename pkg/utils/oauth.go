package utils

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"
)

const (
	// DefaultIAMURL is IBM Cloud's token endpoint for exchanging an API key for a bearer token
	DefaultIAMURL = "https://iam.cloud.ibm.com/identity/token"

	iamGrantType = "urn:ibm:params:oauth:grant-type:apikey"
	iamTimeout   = 30 * time.Second

	// Refresh a little before the reported expiry so in-flight requests don't race it
	expiryDelta = time.Minute
)

// iamTokenResponse is the IAM token endpoint reply
type iamTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Expiration  int64  `json:"expiration"`
}

type iamErrorResponse struct {
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

// iamTokenSource exchanges an API key for an access token on every Token call.
// Wrap it with oauth2.ReuseTokenSource to cache tokens until they expire.
type iamTokenSource struct {
	ctx    context.Context
	client *resty.Client
	url    string
	apiKey string
}

// NewIAMTokenSource returns a caching token source that exchanges apiKey for bearer tokens at
// iamURL (DefaultIAMURL when empty)
func NewIAMTokenSource(ctx context.Context, iamURL, apiKey string) oauth2.TokenSource {
	if iamURL == "" {
		iamURL = DefaultIAMURL
	}
	client := resty.New().
		SetTimeout(iamTimeout).
		SetHeader("Accept", "application/json")

	return oauth2.ReuseTokenSource(nil, &iamTokenSource{
		ctx:    ctx,
		client: client,
		url:    iamURL,
		apiKey: apiKey,
	})
}

func (s *iamTokenSource) Token() (*oauth2.Token, error) {
	var result iamTokenResponse
	var failure iamErrorResponse

	resp, err := s.client.R().
		SetContext(s.ctx).
		SetFormData(map[string]string{
			"grant_type": iamGrantType,
			"apikey":     s.apiKey,
		}).
		SetResult(&result).
		SetError(&failure).
		Post(s.url)
	if err != nil {
		return nil, fmt.Errorf("failed to request IAM token: %w", err)
	}
	if resp.IsError() {
		if failure.ErrorMessage != "" {
			return nil, fmt.Errorf("IAM token request failed (status %d): %s", resp.StatusCode(), failure.ErrorMessage)
		}
		return nil, fmt.Errorf("IAM token request failed (status %d)", resp.StatusCode())
	}
	if result.AccessToken == "" {
		return nil, fmt.Errorf("IAM token response did not include an access token")
	}

	return &oauth2.Token{
		AccessToken: result.AccessToken,
		TokenType:   result.TokenType,
		Expiry:      tokenExpiry(result),
	}, nil
}

func tokenExpiry(result iamTokenResponse) time.Time {
	var expiry time.Time
	switch {
	case result.Expiration > 0:
		expiry = time.Unix(result.Expiration, 0)
	case result.ExpiresIn > 0:
		expiry = time.Now().Add(time.Duration(result.ExpiresIn) * time.Second)
	default:
		return time.Time{}
	}
	return expiry.Add(-expiryDelta)
}

var (
	tokenSources   = make(map[string]oauth2.TokenSource)
	tokenSourcesMu sync.Mutex
)

// SharedIAMTokenSource returns one token source per (iamURL, apiKey) for the life of the
// process so every client built from the same credentials shares cached tokens
func SharedIAMTokenSource(ctx context.Context, iamURL, apiKey string) oauth2.TokenSource {
	tokenSourcesMu.Lock()
	defer tokenSourcesMu.Unlock()

	key := iamURL + "|" + apiKey
	if ts, ok := tokenSources[key]; ok {
		return ts
	}
	ts := NewIAMTokenSource(ctx, iamURL, apiKey)
	tokenSources[key] = ts
	return ts
}
