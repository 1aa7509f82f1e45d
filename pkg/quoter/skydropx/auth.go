package skydropx

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/telarmoda/shipping/pkg/quoter"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// expiryBuffer renews the token slightly before the provider's own
// expiry so in-flight requests never carry a token that dies mid-call.
const expiryBuffer = 5 * time.Second

// AuthClient owns the single bearer token shared by every quotation
// call in the process. State machine: no token -> valid -> (expiring
// soon | 401 observed) -> no token. The exchange itself is deduplicated
// with singleflight so concurrent callers discovering expiry trigger
// exactly one refresh.
type AuthClient struct {
	api          APIClient
	clientID     string
	clientSecret string
	scope        string
	logger       *otelzap.Logger

	mu        sync.Mutex
	token     string
	expiresAt time.Time

	sf  singleflight.Group
	now func() time.Time
}

// NewAuthClient creates the auth client. Credentials are validated on
// first use, not here, so a disabled provider costs nothing.
func NewAuthClient(api APIClient, clientID, clientSecret, scope string, logger *otelzap.Logger) *AuthClient {
	return &AuthClient{
		api:          api,
		clientID:     clientID,
		clientSecret: clientSecret,
		scope:        scope,
		logger:       logger,
		now:          time.Now,
	}
}

// Token returns a valid bearer token, performing the client-credentials
// exchange when none is cached or the cached one is about to expire.
func (a *AuthClient) Token(ctx context.Context) (string, error) {
	if tok, ok := a.cached(); ok {
		return tok, nil
	}
	return a.exchange(ctx)
}

// Refresh forcibly invalidates the cached token and re-authenticates.
// Called exactly once by the rate client after observing a 401; there
// is no further automatic retry.
func (a *AuthClient) Refresh(ctx context.Context) (string, error) {
	a.mu.Lock()
	a.token = ""
	a.expiresAt = time.Time{}
	a.mu.Unlock()

	a.logger.Info("carrier token invalidated, re-authenticating")
	return a.exchange(ctx)
}

func (a *AuthClient) cached() (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.token != "" && a.now().Before(a.expiresAt.Add(-expiryBuffer)) {
		return a.token, true
	}
	return "", false
}

func (a *AuthClient) exchange(ctx context.Context) (string, error) {
	if a.clientID == "" || a.clientSecret == "" {
		return "", fmt.Errorf("%w: skydropx client credentials", quoter.ErrMissingCredentials)
	}

	v, err, _ := a.sf.Do("token", func() (interface{}, error) {
		// A caller that lost the race may find a fresh token already
		// in place; don't exchange twice per expiry event.
		if tok, ok := a.cached(); ok {
			return tok, nil
		}

		resp, err := a.api.Authenticate(ctx, &TokenRequest{
			ClientID:     a.clientID,
			ClientSecret: a.clientSecret,
			Scope:        a.scope,
		})
		if err != nil {
			a.logger.Error("carrier token exchange failed", zap.Error(err))
			return nil, fmt.Errorf("%w: %v", quoter.ErrAuthenticationFailed, err)
		}

		a.mu.Lock()
		a.token = resp.AccessToken
		a.expiresAt = a.now().Add(time.Duration(resp.ExpiresIn) * time.Second)
		a.mu.Unlock()

		a.logger.Info("carrier token acquired",
			zap.Int("expires_in_seconds", resp.ExpiresIn),
		)
		return resp.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}
