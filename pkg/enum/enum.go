// Package enum keeps a registry of string-based enum values, so a raw string
// from a config file can be mapped back to the typed value it names.
package enum

import "fmt"

type Value interface {
	~string
}

// registry maps an enum type to its known values, keyed by the printed type
// name of the zero value.
var registry = map[string]map[string]any{}

// New registers a value of an enum type and returns it unchanged, so it can
// be used in a var declaration.
func New[T Value](value T) T {
	name := typeName[T]()
	if registry[name] == nil {
		registry[name] = map[string]any{}
	}

	registry[name][string(value)] = value
	return value
}

// ToEnum maps a raw string to the registered value of type T it names.
func ToEnum[T Value](s string) (T, error) {
	if v, ok := registry[typeName[T]()][s]; ok {
		return v.(T), nil
	}

	var zero T
	return zero, fmt.Errorf("not found value %s in enum %s", s, typeName[T]())
}

func typeName[T Value]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}
