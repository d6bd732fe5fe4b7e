package oauth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/elysian-softech/account-service/internal/greeter"
	"github.com/elysian-softech/account-service/internal/service"
)

var (
	ErrMissingCode   = errors.New("authorization code not provided")
	ErrIdentityFetch = errors.New("failed to fetch user info")
)

// CallbackResult is what a completed callback hands back to the HTTP layer:
// the reconciled identity plus the frontend redirect carrying it.
type CallbackResult struct {
	Name           string
	Email          string
	WelcomeMessage string
	NewUser        bool
	RedirectURL    string
}

// Flow runs the authorization-code exchange for one provider and reconciles
// the fetched identity into the account store.
type Flow struct {
	provider    Provider
	accounts    service.AccountService
	greeter     greeter.Greeter
	frontendURL string
}

func NewFlow(provider Provider, accounts service.AccountService, g greeter.Greeter, frontendURL string) *Flow {
	return &Flow{
		provider:    provider,
		accounts:    accounts,
		greeter:     g,
		frontendURL: frontendURL,
	}
}

// AuthorizeURL is the provider redirect target that starts the flow. The
// provider round-trip carries all state; nothing is persisted locally.
func (f *Flow) AuthorizeURL() string {
	return f.provider.AuthorizeURL()
}

// Callback drives code → token → identity → find-or-create. Any provider
// failure after the code check surfaces as ErrIdentityFetch; nothing is
// written to the store in that case.
func (f *Flow) Callback(ctx context.Context, code string) (*CallbackResult, error) {
	if code == "" {
		return nil, ErrMissingCode
	}

	accessToken, err := f.provider.ExchangeCode(ctx, code)
	if err != nil {
		slog.WarnContext(ctx, "OAuth token exchange failed", "provider", f.provider.Source(), "error", err)
		return nil, ErrIdentityFetch
	}

	// An empty token fails the userinfo call next, so there is no separate
	// error for it.
	identity, err := f.provider.FetchIdentity(ctx, accessToken)
	if err != nil {
		slog.WarnContext(ctx, "OAuth identity fetch failed", "provider", f.provider.Source(), "error", err)
		return nil, ErrIdentityFetch
	}
	if identity.Email == "" {
		return nil, ErrIdentityFetch
	}

	user, existed, err := f.accounts.FindOrCreate(ctx, identity.Email, identity.Name, f.provider.Source())
	if err != nil {
		return nil, err
	}

	var prompt string
	if existed {
		prompt = fmt.Sprintf("Welcome back, %s! Here's a random programming fact.", user.Name)
	} else {
		prompt = fmt.Sprintf("Welcome %s to Elysian Softech!", user.Name)
	}
	message := f.greeter.Generate(ctx, prompt)

	params := url.Values{
		"name":            {user.Name},
		"email":           {user.Email},
		"welcome_message": {message},
	}

	return &CallbackResult{
		Name:           user.Name,
		Email:          user.Email,
		WelcomeMessage: message,
		NewUser:        !existed,
		RedirectURL:    f.frontendURL + "/welcome?" + params.Encode(),
	}, nil
}
