package config

import (
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/breppy/breppy/internal/log"
)

// FindEmptyKeys returns the dotted path of every empty string in cfg, using
// the key names of the config file (e.g. "Emp.payload.auth"), in sorted
// order.
func FindEmptyKeys(cfg *Config) ([]string, error) {
	data, err := Marshal(cfg)
	if err != nil {
		return nil, err
	}

	var tree map[string]any
	if err := toml.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	return findEmptyKeys(tree, ""), nil
}

func findEmptyKeys(v any, current string) []string {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var empty []string
		for _, k := range keys {
			next := k
			if current != "" {
				next = current + "." + k
			}
			empty = append(empty, findEmptyKeys(val[k], next)...)
		}
		return empty
	case string:
		if val == "" {
			return []string{current}
		}
	}
	return nil
}

// WarnEmptyKeys logs a single warning naming every empty value in cfg. It
// never fails; an encoding problem is logged and otherwise ignored.
func WarnEmptyKeys(cfg *Config) []string {
	keys, err := FindEmptyKeys(cfg)
	if err != nil {
		log.Error("config").Err(err).Msg("Failed to scan config for empty values")
		return nil
	}

	if len(keys) > 0 {
		log.Warn("config").
			Strs("keys", keys).
			Msg("Values missing for the following keys: " + strings.Join(keys, ", "))
	}
	return keys
}
