package mirror

import (
	"fmt"
	"regexp"

	"github.com/goccy/go-yaml"
)

// ProjectConfig names one source repository.
type ProjectConfig struct {
	// ID is the project identifier written into mirror commit subjects. It
	// must match \w+ so the subject survives the round trip back through
	// [ParseMirrorSubject].
	ID string `yaml:"id"`
	// GitRoot is the path of the source repository.
	GitRoot string `yaml:"git-root"`
}

// Config describes a sync run.
type Config struct {
	// IncludeEmails lists the author emails whose commits are mirrored,
	// matched exactly and case-sensitively.
	IncludeEmails []string `yaml:"include-emails"`
	// Projects lists the source repositories.
	Projects []ProjectConfig `yaml:"projects"`
	// SyncRepo is the path of the repository receiving mirror commits.
	SyncRepo string `yaml:"sync-repo"`
}

var projectIDRE = regexp.MustCompile(`^\w+$`)

// ParseConfigYAML parses and validates a [Config].
func ParseConfigYAML(file []byte) (*Config, error) {
	result := &Config{}

	if err := yaml.Unmarshal(file, result); err != nil {
		return nil, err
	}

	if err := result.Validate(); err != nil {
		return nil, err
	}

	return result, nil
}

// Validate checks that a sync repo is set and that every project has a git
// root and a unique id that can round-trip through a mirror subject.
func (c *Config) Validate() error {
	if c.SyncRepo == "" {
		return ErrNoSyncRepo
	}

	seen := make(map[string]empty, len(c.Projects))
	for _, p := range c.Projects {
		if p.ID == "" {
			return ErrEmptyProjectID
		}
		if !projectIDRE.MatchString(p.ID) {
			return fmt.Errorf("%w: %q", ErrInvalidProjectID, p.ID)
		}
		if _, found := seen[p.ID]; found {
			return fmt.Errorf("%w: %q", ErrDuplicateProjectID, p.ID)
		}
		seen[p.ID] = empty{}

		if p.GitRoot == "" {
			return fmt.Errorf("%w: project %q", ErrEmptyGitRoot, p.ID)
		}
	}

	return nil
}
