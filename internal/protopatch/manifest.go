package protopatch

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest describes a set of proto schemas to patch and compile.
//
// Relative paths are resolved against the process working directory.
type Manifest struct {
	// Package is the proto package to inject into schemas lacking one.
	Package string `yaml:"package"`

	// GoPackage is the Go import path to inject as a go_package option.
	GoPackage string `yaml:"go_package"`

	// Protos lists the schema files to patch and compile.
	Protos []string `yaml:"protos"`

	// Includes lists the import search roots. Each proto path must live
	// under one of them so the patched tree keeps the original layout.
	Includes []string `yaml:"includes"`

	// Out is the output directory for generated code. Defaults to "gen".
	Out string `yaml:"out"`
}

// LoadManifest reads and validates a yaml manifest from path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}

	if m.Out == "" {
		m.Out = "gen"
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	if len(m.Protos) == 0 {
		return errors.New("no proto files listed")
	}
	if m.Package == "" {
		return errors.New("package is required")
	}
	return nil
}

// PatchOptions returns the patch declarations derived from the manifest.
func (m *Manifest) PatchOptions() Options {
	return Options{
		Package:   m.Package,
		GoPackage: m.GoPackage,
	}
}
