package config

// Defaults mirror the values the grading workflow has always used.
const (
	DefaultGradingFile    = "GRADING.md"
	DefaultPassed         = "Result: PASS"
	DefaultFailed         = "Result: FAIL"
	DefaultCommitMsg      = "Graded project, see the {}-file in the root directory"
	DefaultAPIURL         = "https://api.github.com"
	DefaultBaseURL        = "https://github.com"
	DefaultKeyringService = "system"
	DefaultKeyringUser    = "gitgudtoken"
	DefaultTokenEnvVar    = "GIT_GUD_TOKEN"
	DefaultIniFile        = "config.ini"
)

// Default returns a configuration populated with defaults only.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.GradingFile == "" {
		cfg.GradingFile = DefaultGradingFile
	}
	if cfg.Passed == "" {
		cfg.Passed = DefaultPassed
	}
	if cfg.Failed == "" {
		cfg.Failed = DefaultFailed
	}
	if cfg.CommitMsg == "" {
		cfg.CommitMsg = DefaultCommitMsg
	}
	if cfg.Forge.APIURL == "" {
		cfg.Forge.APIURL = DefaultAPIURL
	}
	if cfg.Forge.BaseURL == "" {
		cfg.Forge.BaseURL = DefaultBaseURL
	}
	c := &cfg.Credentials
	if c.KeyringService == "" {
		c.KeyringService = DefaultKeyringService
	}
	if c.KeyringUser == "" {
		c.KeyringUser = DefaultKeyringUser
	}
	if c.EnvVar == "" {
		c.EnvVar = DefaultTokenEnvVar
	}
	if len(c.EnvFiles) == 0 {
		c.EnvFiles = []string{".env", ".env.local"}
	}
	if c.IniFile == "" {
		c.IniFile = DefaultIniFile
	}
}
