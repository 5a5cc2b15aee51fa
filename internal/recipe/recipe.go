// Package recipe describes a manipulation as a YAML or TOML file.
//
// A recipe names the source and destination and lists the operations to
// apply:
//
//	source: photo.jpg
//	destination: thumb.webp
//	quality: 80
//	background: "#EE0033AE"
//	fit: {mode: fill, width: 400, height: 300}
//	steps:
//	  - blur: 20
//	  - sepia
//	  - flip: horizontal
//	  - crop: {width: 300, height: 200}
//	optimize: {}
//
// Both formats are first decoded into a generic map and then mapped onto
// Recipe with weak typing, so "20" and 20 are equivalent.
package recipe

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Recipe is a decoded manipulation file.
type Recipe struct {
	Source      string `mapstructure:"source" json:"source"`
	Destination string `mapstructure:"destination" json:"destination,omitempty"`
	Format      string `mapstructure:"format" json:"format,omitempty"`
	Quality     *int   `mapstructure:"quality" json:"quality,omitempty"`
	Background  string `mapstructure:"background" json:"background,omitempty"`
	Fit         *Fit   `mapstructure:"fit" json:"fit,omitempty"`
	Width       *int   `mapstructure:"width" json:"width,omitempty"`
	Height      *int   `mapstructure:"height" json:"height,omitempty"`

	// Steps is an ordered list. Each entry is either a bare operation name
	// or a map with a single operation name key holding its argument.
	Steps []interface{} `mapstructure:"steps" json:"steps,omitempty"`

	// Optimize is true, or a map of tool name to argument list. Absent or
	// false skips optimization.
	Optimize interface{} `mapstructure:"optimize" json:"optimize,omitempty"`
}

// Fit is the fit section of a recipe.
type Fit struct {
	Mode   string `mapstructure:"mode" json:"mode"`
	Width  int    `mapstructure:"width" json:"width"`
	Height int    `mapstructure:"height" json:"height"`
}

// Load reads and parses the recipe file at path. The syntax is chosen by
// extension: .yaml and .yml for YAML, .toml for TOML.
func Load(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read recipe")
	}

	syntax := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	r, err := Parse(data, syntax)
	if err != nil {
		return nil, err
	}

	// Relative image paths are resolved against the recipe's directory.
	dir := filepath.Dir(path)
	if r.Source != "" && !filepath.IsAbs(r.Source) {
		r.Source = filepath.Join(dir, r.Source)
	}
	if r.Destination != "" && !filepath.IsAbs(r.Destination) {
		r.Destination = filepath.Join(dir, r.Destination)
	}
	return r, nil
}

// Parse decodes a recipe written in syntax ("yaml", "yml" or "toml").
func Parse(data []byte, syntax string) (*Recipe, error) {
	raw := map[string]interface{}{}
	switch syntax {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, "failed to parse recipe")
		}
	case "toml":
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return nil, errors.Wrap(err, "failed to parse recipe")
		}
	default:
		return nil, errors.Errorf("unsupported recipe syntax %q", syntax)
	}
	return FromMap(raw)
}

// FromMap maps an already decoded document onto a Recipe. Unknown keys are
// rejected.
func FromMap(raw map[string]interface{}) (*Recipe, error) {
	var r Recipe
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &r,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, errors.Wrap(err, "invalid recipe")
	}
	if err := r.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid recipe")
	}
	return &r, nil
}

// Validate checks that the required fields are set.
func (r *Recipe) Validate() error {
	if r.Source == "" {
		return errors.New("source is required")
	}
	return nil
}
