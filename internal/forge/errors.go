package forge

import (
	"git.home.luguber.info/inful/gitgud/internal/foundation/errors"
)

var (
	// ErrAuthRequired signals that a token is required for a forge operation.
	ErrAuthRequired = errors.AuthError("authentication required for forge client").Build()

	// ErrInvalidURL signals a malformed API URL in configuration.
	ErrInvalidURL = errors.ConfigError("invalid forge api_url").Build()
)
