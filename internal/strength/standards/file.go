package standards

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk format for standards overrides:
//
//	standards:
//	  front_squat:
//	    male:   {beginner: 0.6, intermediate: 1.0, advanced: 1.3, elite: 1.8, god: 2.3}
//	    female: {beginner: 0.4, intermediate: 0.6, advanced: 1.0, elite: 1.3, god: 1.7}
//	aliases:
//	  fsq: front_squat
type File struct {
	Standards map[string]map[Gender]Standard `yaml:"standards"`
	Aliases   map[string]string              `yaml:"aliases"`
}

// LoadFile reads an overrides file and merges it over the built-in tables.
// Every resulting standard is validated; bad thresholds fail the load.
func LoadFile(path string) (Table, Aliases, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading standards file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, nil, fmt.Errorf("parsing standards file: %w", err)
	}

	override := make(Table, len(f.Standards))
	for exercise, byGender := range f.Standards {
		override[Normalize(exercise)] = byGender
	}
	table := Default().Merge(override)
	if err := table.Validate(); err != nil {
		return nil, nil, fmt.Errorf("standards validation: %w", err)
	}

	aliases := DefaultAliases()
	for alias, canonical := range f.Aliases {
		aliases[Normalize(alias)] = Normalize(canonical)
	}
	return table, aliases, nil
}
