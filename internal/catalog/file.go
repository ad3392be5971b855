package catalog

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"golang.org/x/exp/slices"
)

type catalogFile struct {
	Actions []Action `toml:"actions"`
}

// LoadFile overlays actions from a toml file on the built-in set. An entry
// whose key matches a built-in action replaces it in place, any other entry is
// appended after the built-in ones.
func LoadFile(path string) (*Catalog, error) {
	var file catalogFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("cannot decode catalog file: %w", err)
	}

	actions := make([]Action, len(defaultActions))
	copy(actions, defaultActions)

	for _, override := range file.Actions {
		i := slices.IndexFunc(actions, func(a Action) bool {
			return a.Key == override.Key
		})

		if i >= 0 {
			actions[i] = override
		} else {
			actions = append(actions, override)
		}
	}

	return New(actions)
}
