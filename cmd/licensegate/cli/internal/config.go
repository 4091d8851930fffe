package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/licensegate/licensegate/internal"
	"github.com/licensegate/licensegate/licensegate"
	"github.com/licensegate/licensegate/maven"
)

// ConfigName is the configuration file looked up in the working directory.
const ConfigName = ".licensegate.yaml"

// Config is the on-disk configuration: the license policy plus the
// repository the descriptors come from.
type Config struct {
	licensegate.PolicyConfig `yaml:",inline"`

	Repository maven.RepositoryConfig `yaml:"repository"`
}

func DefaultConfig() Config {
	return Config{
		PolicyConfig: licensegate.DefaultPolicyConfig(),
		Repository:   maven.DefaultRepositoryConfig(),
	}
}

var resolvedConfigPath string

// LoadConfig reads the configuration, searching in order: the explicit
// path (whose absence is an error), the working directory, and the XDG
// config home. When no file is found the defaults apply.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	resolvedConfigPath = ""

	var candidates []string
	if path != "" {
		candidates = []string{path}
	} else {
		candidates = []string{
			ConfigName,
			filepath.Join(xdg.ConfigHome, internal.ApplicationName, "config.yaml"),
		}
	}

	for _, candidate := range candidates {
		data, err := os.ReadFile(candidate)
		if err != nil {
			if path != "" {
				return cfg, fmt.Errorf("unable to read config %s: %w", candidate, err)
			}
			continue
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("unable to parse config %s: %w", candidate, err)
		}
		resolvedConfigPath = candidate
		break
	}

	return cfg, nil
}

// GetResolvedConfigPath returns the path of the config file the last
// LoadConfig call actually used, or empty when defaults applied.
func GetResolvedConfigPath() string {
	return resolvedConfigPath
}
