package credentials

import (
	"context"
	stderrors "errors"

	"github.com/zalando/go-keyring"
)

// KeyringProvider reads the token from the OS secret store.
type KeyringProvider struct {
	service string
	user    string
}

// NewKeyringProvider creates a provider for the given keyring service/user pair.
func NewKeyringProvider(service, user string) *KeyringProvider {
	return &KeyringProvider{service: service, user: user}
}

// Name returns a human-readable name for this provider.
func (p *KeyringProvider) Name() string { return "keyring" }

// Token returns the stored secret.
func (p *KeyringProvider) Token(_ context.Context) (string, error) {
	secret, err := keyring.Get(p.service, p.user)
	if stderrors.Is(err, keyring.ErrNotFound) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", err
	}
	if secret = clean(secret); secret == "" {
		return "", ErrTokenNotFound
	}
	return secret, nil
}
