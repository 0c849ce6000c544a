package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"hexmap/src/hexfile"
)

const (
	// DefaultPadding fills address gaps when flattening an image,
	// matching erased NOR flash.
	DefaultPadding byte = 0xFF
)

// Profile is a named decode profile: the file-level behaviors that vary
// across HEX producers, plus flattening defaults.
type Profile struct {
	Name string `json:"name" yaml:"name"`

	// Strict rejects comment lines and any text before the record
	// start code.
	Strict bool `json:"strict" yaml:"strict"`

	// VerifyChecksums recomputes each record checksum during assembly.
	VerifyChecksums bool `json:"verify_checksums" yaml:"verify_checksums"`

	// Padding is the fill byte for flattened binary output.
	Padding byte `json:"padding" yaml:"padding"`
}

// DefaultProfile is the permissive superset behavior: comments
// tolerated, checksums decoded but not verified.
func DefaultProfile() *Profile {
	return &Profile{
		Name:    "default",
		Padding: DefaultPadding,
	}
}

// Options maps the profile onto the core engine's assembly options.
func (p *Profile) Options() hexfile.Options {
	return hexfile.Options{
		Strict:          p.Strict,
		VerifyChecksums: p.VerifyChecksums,
	}
}

// LoadProfileFromPath loads a decode profile from a YAML or JSON file.
func LoadProfileFromPath(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}

	profile := &Profile{Padding: DefaultPadding}

	// Try YAML first, then JSON
	if err := yaml.Unmarshal(data, profile); err != nil {
		if err := json.Unmarshal(data, profile); err != nil {
			return nil, fmt.Errorf("failed to parse profile as YAML or JSON: %w", err)
		}
	}

	if profile.Name == "" {
		return nil, fmt.Errorf("profile at %s has no name", path)
	}

	return profile, nil
}
