package layout

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"

	"github.com/joshuapare/memkit/pkg/types"
)

// Format is the encoding of a layout file.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

func (f Format) String() string {
	if f == FormatTOML {
		return "toml"
	}
	return "yaml"
}

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return 0, types.MissingConfig(fmt.Sprintf("layout: cannot tell the format of %q", path), path)
	}
}

// File is the decoded form of a layout file.
type File struct {
	Platform PlatformSpec `yaml:"platform" toml:"platform"`
	Padding  *bool        `yaml:"padding" toml:"padding" default:"true"`
	Align    int          `yaml:"align" toml:"align"`
	Types    []TypeSpec   `yaml:"types" toml:"types"`
}

// PlatformSpec names a platform the way types.ParsePlatform reads it.
// Empty fields keep the defaults.
type PlatformSpec struct {
	Endian string `yaml:"endian" toml:"endian"`
	Arch   string `yaml:"arch" toml:"arch"`
	OS     string `yaml:"os" toml:"os"`
}

func (p PlatformSpec) parse() (types.Platform, error) {
	return types.ParsePlatform(p.Endian, p.Arch, p.OS)
}

// TypeSpec declares one struct or union. Padding, Align and Platform
// override the file-level settings, or the parent's when Extends is set.
type TypeSpec struct {
	Name     string        `yaml:"name" toml:"name"`
	Kind     string        `yaml:"kind" toml:"kind"`
	Extends  string        `yaml:"extends" toml:"extends"`
	Padding  *bool         `yaml:"padding" toml:"padding"`
	Align    *int          `yaml:"align" toml:"align"`
	Platform *PlatformSpec `yaml:"platform" toml:"platform"`
	Members  []MemberSpec  `yaml:"members" toml:"members"`
}

// MemberSpec is a member name and its signature string.
type MemberSpec struct {
	Name string `yaml:"name" toml:"name"`
	Type string `yaml:"type" toml:"type"`
}

// Decode reads a layout file in format f and applies defaults.
func Decode(r io.Reader, f Format) (*File, error) {
	var file File
	switch f {
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&file); err != nil {
			return nil, fmt.Errorf("layout: decode toml: %w", err)
		}
	default:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("layout: decode yaml: %w", err)
		}
	}
	if err := defaults.Set(&file); err != nil {
		return nil, fmt.Errorf("layout: defaults: %w", err)
	}
	return &file, nil
}

// Load reads and compiles the layout file at path. The format follows the
// file extension.
func Load(path string) (*Layout, error) {
	f, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return Parse(fh, f)
}

// Parse reads and compiles a layout file.
func Parse(r io.Reader, f Format) (*Layout, error) {
	file, err := Decode(r, f)
	if err != nil {
		return nil, err
	}
	return Compile(file)
}
