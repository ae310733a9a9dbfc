// Package config loads YAML overrides for inference.Config, the way the
// teacher's utils/pipeline_parser.go loads pipeline YAML with
// gopkg.in/yaml.v3.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mimir-aip/semantic-schema-infer/pkg/inference"
)

// File is the on-disk shape of a configuration override file. Every
// field is optional; omitted fields keep inference.NewConfig's default.
type File struct {
	IntegerIDDensity   *float64 `yaml:"integer_id_density"`
	IntegerIDMinUnique *int     `yaml:"integer_id_min_unique"`
	CategoryRatio      *float64 `yaml:"category_ratio"`
	IDLengthStddev     *float64 `yaml:"id_length_stddev"`
	LatLonStddev       *float64 `yaml:"lat_lon_stddev"`
	LatitudeBound      *float64 `yaml:"latitude_bound"`
	LongitudeBound     *float64 `yaml:"longitude_bound"`
	MaxRows            *int     `yaml:"max_rows"`
	SamplePortion      *float64 `yaml:"sample_portion"`
}

// Load reads path and applies any fields present over inference.NewConfig's
// defaults. A missing path is not an error: Load returns the defaults.
func Load(path string) (inference.Config, error) {
	cfg := inference.NewConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}

	applyOverrides(&cfg, f)
	return cfg, nil
}

func applyOverrides(cfg *inference.Config, f File) {
	if f.IntegerIDDensity != nil {
		cfg.IntegerIDDensity = *f.IntegerIDDensity
	}
	if f.IntegerIDMinUnique != nil {
		cfg.IntegerIDMinUnique = *f.IntegerIDMinUnique
	}
	if f.CategoryRatio != nil {
		cfg.CategoryRatio = *f.CategoryRatio
	}
	if f.IDLengthStddev != nil {
		cfg.IDLengthStddev = *f.IDLengthStddev
	}
	if f.LatLonStddev != nil {
		cfg.LatLonStddev = *f.LatLonStddev
	}
	if f.LatitudeBound != nil {
		cfg.LatitudeBound = *f.LatitudeBound
	}
	if f.LongitudeBound != nil {
		cfg.LongitudeBound = *f.LongitudeBound
	}
	if f.MaxRows != nil {
		cfg.MaxRows = *f.MaxRows
	}
	if f.SamplePortion != nil {
		cfg.SamplePortion = *f.SamplePortion
	}
}
