package config

import (
	"fmt"
	"io"

	"github.com/infinivision/vdisk/geometry"
	"gopkg.in/yaml.v3"
)

const (
	defaultDiskPath = "virtual_disk.bin"
)

// Cfg is the configuration of the vdisk command
type Cfg struct {
	Path     string            `yaml:"path"`
	LogFile  string            `yaml:"log"`
	Geometry geometry.Geometry `yaml:"geometry"`
}

func Default() *Cfg {
	return &Cfg{
		Path:     defaultDiskPath,
		Geometry: geometry.Default(),
	}
}

// Read reads a config from an io.Reader. Keys missing from the
// document keep their default values.
func Read(r io.Reader) (*Cfg, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("error reading config: %s", err)
	}
	if err := cfg.Geometry.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
