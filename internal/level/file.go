package level

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type levelFile struct {
	Levels []Config `yaml:"levels"`
}

// LoadFile reads a level table from a YAML file. The table is validated in
// full; any invalid level fails the whole load.
func LoadFile(path string) ([]Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read levels %s: %w", path, err)
	}
	var f levelFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse levels %s: %w", path, err)
	}
	for i := range f.Levels {
		if f.Levels[i].AsteroidSizeMult == 0 {
			f.Levels[i].AsteroidSizeMult = 1
		}
	}
	if err := ValidateAll(f.Levels); err != nil {
		return nil, fmt.Errorf("invalid levels %s: %w", path, err)
	}
	return f.Levels, nil
}
