package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/gitgud/internal/foundation/errors"
)

// DefaultPath is the configuration file looked up when --config is not given.
const DefaultPath = "gitgud.yaml"

// Config is the gitgud configuration. It is loaded once at startup and passed
// explicitly to the components that need it.
type Config struct {
	// Owners are hosted-API logins that keep write access on set-readonly.
	Owners []string `yaml:"owners"`
	// GradingFile is the artifact written into every repository.
	GradingFile string `yaml:"grading_file"`
	// Passed and Failed are the markers written in pass/fail mode.
	Passed string `yaml:"passed"`
	Failed string `yaml:"failed"`
	// CommitMsg holds exactly one placeholder, "{}" or "%s", replaced with the artifact filename.
	CommitMsg   string            `yaml:"commit_msg"`
	Forge       ForgeConfig       `yaml:"forge"`
	Credentials CredentialsConfig `yaml:"credentials"`
}

// ForgeConfig points at the hosted repository API.
type ForgeConfig struct {
	APIURL  string `yaml:"api_url,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
}

// CredentialsConfig parameterizes the token provider chain.
type CredentialsConfig struct {
	KeyringService string   `yaml:"keyring_service,omitempty"`
	KeyringUser    string   `yaml:"keyring_user,omitempty"`
	EnvVar         string   `yaml:"env_var,omitempty"`
	EnvFiles       []string `yaml:"env_files,omitempty"`
	IniFile        string   `yaml:"ini_file,omitempty"`
}

// Load reads configPath. A missing file yields the defaults; any other read or
// parse problem is a config error.
func Load(configPath string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(configPath)
	switch {
	case os.IsNotExist(err):
		return Default(), nil
	case err != nil:
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			WithContext("path", configPath).Fatal().Build()
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").
			WithContext("path", configPath).Fatal().Build()
	}

	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ConfigError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath)).Build()
	}

	example := Default()
	example.Owners = []string{"instructor-login", "assistant-login"}

	data, err := yaml.Marshal(example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	header := "# gitgud configuration. commit_msg takes one {} placeholder for the artifact filename.\n"
	if err := os.WriteFile(configPath, append([]byte(header), data...), 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).Build()
	}
	return nil
}
