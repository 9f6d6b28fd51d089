package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"netzero-nexus/internal/models"

	"gopkg.in/yaml.v3"
)

// FilterFile is a FilterSpec read from YAML. A key that is absent selects
// every option; a key present with an empty list selects nothing.
type FilterFile struct {
	Locations      *[]string `yaml:"location"`
	Scenarios      *[]string `yaml:"scenario"`
	Initiatives    *[]string `yaml:"initiative"`
	Alignments     *[]string `yaml:"alignment"`
	Customizations *[]string `yaml:"customization"`
	Sellable       *[]string `yaml:"sellable"`
	CostMin        *float64  `yaml:"cost_min"`
	CostMax        *float64  `yaml:"cost_max"`
}

// LoadFilterFile reads a FilterFile from path.
func LoadFilterFile(path string) (*FilterFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ff, err := ParseFilters(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return ff, nil
}

// ParseFilters decodes a FilterFile, rejecting unknown keys.
func ParseFilters(r io.Reader) (*FilterFile, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	ff := &FilterFile{}
	if err := dec.Decode(ff); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return ff, nil
}

// Resolve fills absent keys from the dataset's options.
func (ff *FilterFile) Resolve(opts models.FilterOptions) models.FilterSpec {
	spec := models.FilterSpec{
		Locations:      pick(ff.Locations, opts.Locations),
		Scenarios:      pick(ff.Scenarios, opts.Scenarios),
		Initiatives:    pick(ff.Initiatives, opts.Initiatives),
		Alignments:     pick(ff.Alignments, opts.Alignments),
		Customizations: pick(ff.Customizations, opts.Customizations),
		Sellable:       pick(ff.Sellable, opts.Sellable),
		CostMax:        opts.CostMax,
	}
	if ff.CostMin != nil {
		spec.CostMin = *ff.CostMin
	}
	if ff.CostMax != nil {
		spec.CostMax = *ff.CostMax
	}
	return spec
}

func pick(set *[]string, all []string) []string {
	if set == nil {
		return append([]string(nil), all...)
	}
	return append([]string{}, (*set)...)
}
