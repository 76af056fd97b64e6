package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/gitgud/internal/foundation/errors"
)

// Placeholder is the canonical commit message placeholder.
const Placeholder = "{}"

// Validate checks invariants the engine relies on.
func (c *Config) Validate() error {
	if n := placeholderCount(c.CommitMsg); n != 1 {
		return errors.ConfigError(fmt.Sprintf("commit_msg must contain exactly one placeholder, found %d", n)).
			WithContext("commit_msg", c.CommitMsg).Build()
	}
	for _, name := range []string{c.GradingFile, c.Passed, c.Failed} {
		if strings.TrimSpace(name) == "" {
			return errors.ConfigError("grading_file, passed and failed must not be blank").Build()
		}
	}
	if filepath.Base(c.GradingFile) != c.GradingFile {
		return errors.ConfigError("grading_file must be a plain filename").
			WithContext("grading_file", c.GradingFile).Build()
	}
	return nil
}

// CommitMessage substitutes filename into the commit template.
func (c *Config) CommitMessage(filename string) string {
	return FormatCommitMessage(c.CommitMsg, filename)
}

// FormatCommitMessage replaces the single placeholder of template with filename.
// "%s" is accepted as an alias of "{}".
func FormatCommitMessage(template, filename string) string {
	if strings.Contains(template, Placeholder) {
		return strings.Replace(template, Placeholder, filename, 1)
	}
	return strings.Replace(template, "%s", filename, 1)
}

func placeholderCount(template string) int {
	return strings.Count(template, Placeholder) + strings.Count(template, "%s")
}
