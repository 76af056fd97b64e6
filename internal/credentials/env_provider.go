package credentials

import (
	"context"
	"os"

	"github.com/joho/godotenv"
)

// EnvProvider reads the token from an environment variable. When the process
// environment lacks it, the listed dotenv files are consulted in order
// without modifying the process environment.
type EnvProvider struct {
	variable string
	files    []string
}

// NewEnvProvider creates an environment provider.
func NewEnvProvider(variable string, dotenvFiles ...string) *EnvProvider {
	return &EnvProvider{variable: variable, files: dotenvFiles}
}

// Name returns a human-readable name for this provider.
func (p *EnvProvider) Name() string { return "env:" + p.variable }

// Token returns the variable's value.
func (p *EnvProvider) Token(_ context.Context) (string, error) {
	if v := clean(os.Getenv(p.variable)); v != "" {
		return v, nil
	}
	for _, file := range p.files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		values, err := godotenv.Read(file)
		if err != nil {
			return "", err
		}
		if v := clean(values[p.variable]); v != "" {
			return v, nil
		}
	}
	return "", ErrTokenNotFound
}
