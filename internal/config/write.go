package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mrz1836/gitsync/internal/errors"
)

// Document is the on-disk and printable form of Config. Durations are
// rendered as strings ("60s") so the YAML round-trips through Load.
type Document struct {
	Sync DocumentSync `yaml:"sync" json:"sync"`
	Git  GitConfig    `yaml:"git" json:"git"`
	Log  LogConfig    `yaml:"log" json:"log"`
}

// DocumentSync is the printable form of SyncConfig.
type DocumentSync struct {
	Location       string   `yaml:"location" json:"location"`
	Locations      []string `yaml:"locations" json:"locations"`
	Remote         string   `yaml:"remote" json:"remote"`
	CommandTimeout string   `yaml:"command_timeout" json:"command_timeout"`
	SetUpstream    bool     `yaml:"set_upstream" json:"set_upstream"`
	WatchedFiles   []string `yaml:"watched_files" json:"watched_files"`
	CommitTemplate string   `yaml:"commit_template" json:"commit_template"`
}

// ToDocument converts cfg into its printable form.
func ToDocument(cfg *Config) Document {
	return Document{
		Sync: DocumentSync{
			Location:       cfg.Sync.Location,
			Locations:      cfg.Sync.Locations,
			Remote:         cfg.Sync.Remote,
			CommandTimeout: cfg.Sync.CommandTimeout.String(),
			SetUpstream:    cfg.Sync.SetUpstream,
			WatchedFiles:   cfg.Sync.WatchedFiles,
			CommitTemplate: cfg.Sync.CommitTemplate,
		},
		Git: cfg.Git,
		Log: cfg.Log,
	}
}

// MarshalYAML renders cfg as YAML with two-space indentation.
func MarshalYAML(cfg *Config) ([]byte, error) {
	if cfg == nil {
		return nil, errors.ErrConfigNil
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(ToDocument(cfg)); err != nil {
		return nil, errors.Wrap(err, "failed to encode config")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to encode config")
	}
	return buf.Bytes(), nil
}

// MarshalJSON renders cfg as indented JSON.
func MarshalJSON(cfg *Config) ([]byte, error) {
	if cfg == nil {
		return nil, errors.ErrConfigNil
	}
	return json.MarshalIndent(ToDocument(cfg), "", "  ")
}

// Write stores cfg as YAML at path, creating parent directories. An existing
// file is only replaced when overwrite is true.
func Write(path string, cfg *Config, overwrite bool) error {
	if err := Validate(cfg); err != nil {
		return err
	}
	if !overwrite && fileExists(path) {
		return errors.Wrapf(errors.ErrConfigExists, "%s", path)
	}

	data, err := MarshalYAML(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	header := []byte("# gitsync configuration\n")
	if err := os.WriteFile(path, append(header, data...), 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// SetLocationInFile updates sync.location in the YAML file at path, keeping
// the rest of the document (and its comments) intact. A missing file is created.
func SetLocationInFile(path, location string) error {
	var root yaml.Node
	data, err := os.ReadFile(path) //#nosec G304 -- path is the gitsync config file
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &root); err != nil {
			return errors.Wrapf(err, "failed to parse %s", path)
		}
	case os.IsNotExist(err):
	default:
		return fmt.Errorf("failed to read config: %w", err)
	}

	if root.Kind == 0 {
		root = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode}}}
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return errors.Wrapf(errors.ErrConfigInvalid, "%s is not a YAML mapping", path)
	}

	sync := mappingChild(root.Content[0], "sync")
	setScalar(sync, "location", location)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&root); err != nil {
		return errors.Wrap(err, "failed to encode config")
	}
	_ = enc.Close()

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// mappingChild returns the mapping stored under key in m, creating it if absent.
func mappingChild(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			child := m.Content[i+1]
			if child.Kind != yaml.MappingNode {
				*child = yaml.Node{Kind: yaml.MappingNode}
			}
			return child
		}
	}
	child := &yaml.Node{Kind: yaml.MappingNode}
	m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, child)
	return child
}

// setScalar sets key to a string value in mapping m.
func setScalar(m *yaml.Node, key, value string) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			m.Content[i+1] = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
			return
		}
	}
	m.Content = append(m.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value},
	)
}
