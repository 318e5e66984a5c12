package yeyo

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is the config document used when none is given.
const DefaultConfigPath = ".yeyo.json"

// StartingVersion is the version of a freshly initialized project.
const StartingVersion = "0.0.0-dev.1"

// Config is the persisted state of a project.
type Config struct {
	Version        Version
	TagTemplate    string
	CommitTemplate string
	// Files is never nil in a config built by NewConfig or loaded by a
	// ConfigStore.
	Files *Registry
}

// NewConfig returns a config at v with default templates and no files.
func NewConfig(v Version) *Config {
	return &Config{
		Version:        v,
		TagTemplate:    DefaultTagTemplate,
		CommitTemplate: DefaultCommitTemplate,
		Files:          &Registry{},
	}
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := *c
	if c.Files != nil {
		out.Files = c.Files.Clone()
	} else {
		out.Files = &Registry{}
	}
	return &out
}

// WithVersion returns a copy of c at v.
func (c *Config) WithVersion(v Version) *Config {
	out := c.Clone()
	out.Version = v
	return out
}

// GitStrings returns the renderer for c's tag and commit templates.
func (c *Config) GitStrings() GitStrings {
	return GitStrings{TagTemplate: c.TagTemplate, CommitTemplate: c.CommitTemplate}
}

type fileDocument struct {
	FilePath      string `mapstructure:"file_path" json:"file_path" yaml:"file_path"`
	MatchTemplate string `mapstructure:"match_template" json:"match_template" yaml:"match_template"`
}

type configDocument struct {
	Version        string         `mapstructure:"version" json:"version" yaml:"version"`
	TagTemplate    string         `mapstructure:"tag_template" json:"tag_template" yaml:"tag_template"`
	CommitTemplate string         `mapstructure:"commit_template" json:"commit_template" yaml:"commit_template"`
	Files          []fileDocument `mapstructure:"files" json:"files" yaml:"files"`
}

func (c *Config) document() configDocument {
	doc := configDocument{
		Version:        c.Version.String(),
		TagTemplate:    c.TagTemplate,
		CommitTemplate: c.CommitTemplate,
		Files:          []fileDocument{},
	}
	if c.Files != nil {
		for _, f := range c.Files.List() {
			doc.Files = append(doc.Files, fileDocument{FilePath: f.Path, MatchTemplate: f.MatchTemplate})
		}
	}
	return doc
}

// MarshalYAML renders c as the YAML config document.
func (c *Config) MarshalYAML() (interface{}, error) {
	return c.document(), nil
}

// ConfigStore loads and saves a config document on a filesystem. The format
// is chosen from the extension: .yaml and .yml are YAML, anything else JSON.
type ConfigStore struct {
	fs   afero.Fs
	path string
}

// NewConfigStore returns a store for path on fs. A nil fs means the OS filesystem.
func NewConfigStore(fs afero.Fs, path string) *ConfigStore {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if path == "" {
		path = DefaultConfigPath
	}
	return &ConfigStore{fs: fs, path: path}
}

// Path returns the document path.
func (s *ConfigStore) Path() string {
	return s.path
}

// Exists reports whether the document is present.
func (s *ConfigStore) Exists() bool {
	ok, err := afero.Exists(s.fs, s.path)
	return err == nil && ok
}

func (s *ConfigStore) format() string {
	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

// Load reads the document. Missing templates get their defaults.
func (s *ConfigStore) Load() (*Config, error) {
	v := viper.New()
	v.SetFs(s.fs)
	v.SetConfigFile(s.path)
	v.SetConfigType(s.format())
	v.SetDefault("tag_template", DefaultTagTemplate)
	v.SetDefault("commit_template", DefaultCommitTemplate)

	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, newFileError(ConfigError, s.path, "config not found (run yeyo init)", err)
		}
		return nil, newFileError(ConfigError, s.path, "cannot read config", err)
	}

	var doc configDocument
	if err := v.Unmarshal(&doc); err != nil {
		return nil, newFileError(ConfigError, s.path, "invalid config", err)
	}

	version, err := ParseVersion(doc.Version)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	cfg := NewConfig(version)
	cfg.TagTemplate = doc.TagTemplate
	cfg.CommitTemplate = doc.CommitTemplate
	for _, f := range doc.Files {
		if err := cfg.Files.Add(f.FilePath, f.MatchTemplate); err != nil {
			return nil, fmt.Errorf("%s: %w", s.path, err)
		}
	}
	return cfg, nil
}

// Save writes cfg, replacing the document.
func (s *ConfigStore) Save(cfg *Config) error {
	doc := cfg.document()

	var data []byte
	var err error
	if s.format() == "yaml" {
		data, err = yaml.Marshal(doc)
	} else {
		data, err = json.MarshalIndent(doc, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return newFileError(ConfigError, s.path, "cannot encode config", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0755); err != nil {
			return newFileError(ConfigError, s.path, "cannot create config directory", err)
		}
	}
	if err := afero.WriteFile(s.fs, s.path, data, 0644); err != nil {
		return newFileError(ConfigError, s.path, "cannot write config", err)
	}
	return nil
}
