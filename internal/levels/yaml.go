package levels

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlFile is the on-disk shape of a level file.
type yamlFile struct {
	Levels []yamlLevel `yaml:"levels"`
}

type yamlLevel struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Logic       string   `yaml:"logic"`
	Keyboard    string   `yaml:"keyboard,omitempty"`
	Icons       []string `yaml:"icons,omitempty"`
	Instruction string   `yaml:"instruction,omitempty"`
	Hint        string   `yaml:"hint,omitempty"`
	Target      string   `yaml:"target,omitempty"`
}

// Parse decodes and validates a YAML level file.
// A missing keyboard type defaults to qwerty.
func Parse(data []byte) ([]Level, error) {
	lvls, err := parse(data)
	if err != nil {
		return nil, err
	}
	if err := Validate(lvls); err != nil {
		return nil, err
	}
	return lvls, nil
}

func parse(data []byte) ([]Level, error) {
	var f yamlFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: yaml unmarshal: %v", ErrInvalidLevels, err)
	}

	out := make([]Level, 0, len(f.Levels))
	for _, yl := range f.Levels {
		kb := KeyboardType(yl.Keyboard)
		if kb == "" {
			kb = KeyboardQwerty
		}
		out = append(out, Level{
			ID:          yl.ID,
			Name:        yl.Name,
			Logic:       yl.Logic,
			Keyboard:    kb,
			Icons:       yl.Icons,
			Instruction: yl.Instruction,
			Hint:        yl.Hint,
			Target:      yl.Target,
		})
	}
	return out, nil
}
