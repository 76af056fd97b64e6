package credentials

import "git.home.luguber.info/inful/gitgud/internal/config"

// DefaultChain builds the keyring -> environment -> ini file chain from configuration.
func DefaultChain(cfg config.CredentialsConfig) *Chain {
	return NewChain(
		NewKeyringProvider(cfg.KeyringService, cfg.KeyringUser),
		NewEnvProvider(cfg.EnvVar, cfg.EnvFiles...),
		NewIniProvider(cfg.IniFile),
	)
}
