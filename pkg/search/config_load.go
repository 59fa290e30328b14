package search

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yosuke-furukawa/json5/encoding/json5"
	"gopkg.in/yaml.v3"
)

// DecodeConfig parses a serialized provider configuration, dispatching on the
// "type" discriminant. The input may be JSON or JSON5.
func DecodeConfig(data []byte) (ProviderConfig, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json5.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decoding provider config: %w", err)
	}
	cfg, err := newConfigForType(probe.Type)
	if err != nil {
		return nil, err
	}
	if err := json5.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decoding %s config: %w", probe.Type, err)
	}
	return cfg, nil
}

// DecodeConfigYAML parses a YAML provider configuration, dispatching on the
// "type" discriminant.
func DecodeConfigYAML(data []byte) (ProviderConfig, error) {
	var probe struct {
		Type string `yaml:"type"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decoding provider config: %w", err)
	}
	cfg, err := newConfigForType(probe.Type)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decoding %s config: %w", probe.Type, err)
	}
	return cfg, nil
}

// EncodeConfig serializes a provider configuration as JSON with the "type"
// discriminant included. Secrets are never written in plaintext.
func EncodeConfig(cfg ProviderConfig) ([]byte, error) {
	fields, err := configFields(cfg)
	if err != nil {
		return nil, err
	}
	return json.Marshal(fields)
}

// EncodeConfigYAML serializes a provider configuration as YAML with the
// "type" discriminant included.
func EncodeConfigYAML(cfg ProviderConfig) ([]byte, error) {
	fields, err := configFields(cfg)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(fields)
}

func configFields(cfg ProviderConfig) (map[string]any, error) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding %s config: %w", cfg.Type(), err)
	}
	fields := make(map[string]any)
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("encoding %s config: %w", cfg.Type(), err)
	}
	fields["type"] = cfg.Type()
	return fields, nil
}

// LoadConfigFile reads a provider configuration from a .json, .json5, .yaml,
// or .yml file.
func LoadConfigFile(path string) (ProviderConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".json5":
		return DecodeConfig(data)
	case ".yaml", ".yml":
		return DecodeConfigYAML(data)
	default:
		return nil, fmt.Errorf("unsupported config file extension %q", filepath.Ext(path))
	}
}
