// Package credentials resolves the hosted-API access token through an ordered
// chain of providers: OS keyring, environment, then a local ini file.
package credentials

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/gitgud/internal/foundation/errors"
	"git.home.luguber.info/inful/gitgud/internal/logfields"
)

var (
	// ErrTokenNotFound signals that a provider has no token; the chain moves on.
	ErrTokenNotFound = errors.CredentialsError("token not found").WithSeverity(errors.SeverityInfo).Build()

	// ErrNoCredentials signals that every provider in the chain came up empty.
	ErrNoCredentials = errors.CredentialsError("no access token available from keyring, environment or config file").Build()
)

// Provider looks up the access token from a single source.
type Provider interface {
	// Name returns a human-readable name for logging.
	Name() string
	// Token returns the token, ErrTokenNotFound when the source has none,
	// or another error when the source itself failed.
	Token(ctx context.Context) (string, error)
}

// Credentials is the resolved token plus the provider that supplied it.
type Credentials struct {
	Token  string
	Source string
}

// Chain evaluates providers in order and stops at the first success.
type Chain struct {
	providers []Provider
	logger    *slog.Logger
}

// NewChain builds a chain over providers, evaluated in the given order.
func NewChain(providers ...Provider) *Chain {
	return &Chain{providers: providers, logger: slog.Default()}
}

// WithLogger overrides the logger (fluent helper).
func (c *Chain) WithLogger(l *slog.Logger) *Chain { c.logger = l; return c }

// Resolve returns the first token found. Provider failures other than
// ErrTokenNotFound are logged and skipped. Exhaustion returns ErrNoCredentials.
func (c *Chain) Resolve(ctx context.Context) (Credentials, error) {
	for _, p := range c.providers {
		if err := ctx.Err(); err != nil {
			return Credentials{}, err
		}
		token, err := p.Token(ctx)
		switch {
		case err == nil && token != "":
			c.logger.Debug("Access token resolved", logfields.Provider(p.Name()))
			return Credentials{Token: token, Source: p.Name()}, nil
		case err == nil, isNotFound(err):
			c.logger.Debug("No token from provider", logfields.Provider(p.Name()))
		default:
			c.logger.Warn("Credential provider failed", logfields.Provider(p.Name()), logfields.Error(err))
		}
	}
	return Credentials{}, ErrNoCredentials
}
