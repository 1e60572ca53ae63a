/*
Copyright © 2025 Benny Powers

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

// Package config loads and validates the top-level engine configuration:
// workspace location, the suite list, feature flags, and the icon export
// policy.
package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/xdg"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// IconSizeConfig names one (size, scale) tuple of the icon export
// policy.
type IconSizeConfig struct {
	Width  int    `mapstructure:"width" yaml:"width"`
	Height int    `mapstructure:"height" yaml:"height"`
	Scale  int    `mapstructure:"scale" yaml:"scale"`
	State  string `mapstructure:"state" yaml:"state"` // "cached", "ignored", "remote-only"
}

// SizeTag renders the "<WxH[@S]>" tag used in icons-<sizeTag>.tar.gz.
func (c IconSizeConfig) SizeTag() string {
	if c.Scale > 1 {
		return fmt.Sprintf("%dx%d@%d", c.Width, c.Height, c.Scale)
	}
	return fmt.Sprintf("%dx%d", c.Width, c.Height)
}

// Cached reports whether this policy entry should be scanned/exported:
// whose state is cached, not ignored or remote-only.
func (c IconSizeConfig) Cached() bool {
	return c.State != "ignored" && c.State != "remote-only"
}

// FeatureFlags gates the optional catalog-head attributes and the
// immutable-suites materialization.
type FeatureFlags struct {
	ImmutableSuites    bool `mapstructure:"immutableSuites" yaml:"immutableSuites"`
	StoreScreenshots   bool `mapstructure:"storeScreenshots" yaml:"storeScreenshots"`
	MetadataTimestamps bool `mapstructure:"metadataTimestamps" yaml:"metadataTimestamps"`
}

// SuiteConfig is one configured suite: a named set of sections and
// architectures to generate metadata for.
type SuiteConfig struct {
	Name             string   `mapstructure:"name" yaml:"name"`
	BaseSuite        string   `mapstructure:"baseSuite" yaml:"baseSuite"`
	Sections         []string `mapstructure:"sections" yaml:"sections"`
	Architectures    []string `mapstructure:"architectures" yaml:"architectures"`
	ExtraMetainfoDir string   `mapstructure:"extraMetainfoDir" yaml:"extraMetainfoDir"`
	IconTheme        string   `mapstructure:"iconTheme" yaml:"iconTheme"`
	DataPriority     int      `mapstructure:"dataPriority" yaml:"dataPriority"`
	Immutable        bool     `mapstructure:"isImmutable" yaml:"isImmutable"`
}

// HasSection reports whether section is configured for this suite.
func (s SuiteConfig) HasSection(section string) bool {
	for _, sec := range s.Sections {
		if sec == section {
			return true
		}
	}
	return false
}

// EngineConfig is the top-level configuration loaded from asgen.yaml.
type EngineConfig struct {
	WorkspaceDir      string          `mapstructure:"workspaceDir" yaml:"workspaceDir"`
	Project           string          `mapstructure:"project" yaml:"project"`
	Backend           string          `mapstructure:"backend" yaml:"backend"`
	MediaBaseUrl      string          `mapstructure:"mediaBaseUrl" yaml:"mediaBaseUrl"`
	ArchiveFormat     string          `mapstructure:"archiveFormat" yaml:"archiveFormat"` // "xml" | "yaml"
	Suites            []SuiteConfig   `mapstructure:"suites" yaml:"suites"`
	Features          FeatureFlags    `mapstructure:"features" yaml:"features"`
	IconPolicy        []IconSizeConfig `mapstructure:"iconPolicy" yaml:"iconPolicy"`
	AuxiliarySections []string        `mapstructure:"auxiliarySections" yaml:"auxiliarySections"`
	Verbose           bool            `mapstructure:"verbose" yaml:"verbose"`
}

// DefaultAuxiliarySections is the default auxiliary-sections list:
// distribution knowledge kept as data, not code.
var DefaultAuxiliarySections = []string{"main", "universe", "core", "extra"}

// SuiteByName returns the named suite, or false if absent.
func (c *EngineConfig) SuiteByName(name string) (SuiteConfig, bool) {
	for _, s := range c.Suites {
		if s.Name == name {
			return s, true
		}
	}
	return SuiteConfig{}, false
}

// configSchema is the embedded JSON Schema used to validate loaded configuration
// before it is unmarshalled into EngineConfig.
const configSchema = `{
  "type": "object",
  "required": ["project", "suites"],
  "properties": {
    "project": {"type": "string", "minLength": 1},
    "backend": {"type": "string"},
    "archiveFormat": {"type": "string", "enum": ["xml", "yaml"]},
    "suites": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["name", "sections", "architectures"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "sections": {"type": "array", "minItems": 1, "items": {"type": "string"}},
          "architectures": {"type": "array", "minItems": 1, "items": {"type": "string"}}
        }
      }
    }
  }
}`

var compiledSchema = mustCompileSchema(configSchema)

func mustCompileSchema(schemaText string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("asgen-config.json", strings.NewReader(schemaText)); err != nil {
		panic(err)
	}
	return compiler.MustCompile("asgen-config.json")
}

// Validate checks raw YAML bytes against the configuration schema before
// they are trusted.
func Validate(raw []byte) error {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	doc = toStringKeyed(doc)
	if err := compiledSchema.Validate(doc); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}
	return nil
}

// toStringKeyed deep-copies the map[string]any / []any tree produced by
// gopkg.in/yaml.v3's generic decode into the shape jsonschema expects; maps
// with non-string keys are passed through unconverted.
func toStringKeyed(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, vv := range val {
			out[k] = toStringKeyed(vv)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, vv := range val {
			out[i] = toStringKeyed(vv)
		}
		return out
	default:
		return v
	}
}

// Load reads and validates configuration from path (or ASGEN_-prefixed
// environment variables) using viper, resolving a usable
// root even when no explicit path is given.
func Load(path string) (*EngineConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("ASGEN")
	v.AutomaticEnv()
	v.SetConfigType("yaml")

	var raw []byte
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %q: %w", path, err)
		}
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		if err := enc.Encode(v.AllSettings()); err != nil {
			return nil, err
		}
		raw = buf.Bytes()
	}

	if len(raw) > 0 {
		if err := Validate(raw); err != nil {
			return nil, err
		}
	}

	cfg := &EngineConfig{
		ArchiveFormat:     "xml",
		AuxiliarySections: DefaultAuxiliarySections,
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if len(cfg.AuxiliarySections) == 0 {
		cfg.AuxiliarySections = DefaultAuxiliarySections
	}
	if cfg.WorkspaceDir == "" {
		cfg.WorkspaceDir = DefaultWorkspaceDir()
	}
	return cfg, nil
}

// DefaultWorkspaceDir resolves the workspace root when none is configured,
// falling back to the XDG cache home.
func DefaultWorkspaceDir() string {
	dir, err := xdg.CacheFile("asgen")
	if err != nil {
		return "asgen-workspace"
	}
	return dir
}
