package credentials

import (
	"context"
	"os"

	"gopkg.in/ini.v1"
)

// IniProvider reads KEY from the DEFAULT section of an ini file:
//
//	[DEFAULT]
//	KEY = <token>
type IniProvider struct {
	path string
}

// NewIniProvider creates a provider reading path.
func NewIniProvider(path string) *IniProvider {
	return &IniProvider{path: path}
}

// Name returns a human-readable name for this provider.
func (p *IniProvider) Name() string { return "ini:" + p.path }

// Token returns the KEY value.
func (p *IniProvider) Token(_ context.Context) (string, error) {
	if _, err := os.Stat(p.path); os.IsNotExist(err) {
		return "", ErrTokenNotFound
	}
	file, err := ini.Load(p.path)
	if err != nil {
		return "", err
	}
	section := file.Section(ini.DefaultSection)
	for _, name := range []string{"KEY", "key"} {
		if section.HasKey(name) {
			if v := clean(section.Key(name).String()); v != "" {
				return v, nil
			}
		}
	}
	return "", ErrTokenNotFound
}
