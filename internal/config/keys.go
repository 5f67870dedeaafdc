package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Setting is one leaf value of the configuration addressed by its dotted key.
type Setting struct {
	Section string
	Key     string
	Value   string
}

// Get returns the value stored under a dotted key such as "llm.model"
// or "security.allowed_operations.fs.readfile".
func (c *Config) Get(key string) (string, error) {
	tree, err := c.toMap()
	if err != nil {
		return "", err
	}
	path, leaf, ok := resolve(tree, key)
	if !ok || len(path) == 0 {
		return "", &UnknownKeyError{Key: key}
	}
	if _, isSection := leaf.(map[string]any); isSection {
		return "", &UnknownKeyError{Key: key}
	}
	return formatValue(leaf), nil
}

// Set stores value under a dotted key. The value is converted to the
// setting's type; list settings take a comma-separated value.
// The config is left untouched if the result fails validation.
func (c *Config) Set(key, value string) error {
	tree, err := c.toMap()
	if err != nil {
		return err
	}
	path, leaf, ok := resolve(tree, key)
	if !ok || len(path) == 0 {
		return &UnknownKeyError{Key: key}
	}
	if _, isSection := leaf.(map[string]any); isSection {
		return &UnknownKeyError{Key: key}
	}

	var typed any = value
	if _, isList := leaf.([]string); isList {
		typed = splitList(value)
	}

	// Build {"a": {"b": value}} so only the addressed field is decoded.
	var patch any = typed
	for i := len(path) - 1; i >= 0; i-- {
		patch = map[string]any{path[i]: patch}
	}

	next := *c
	// ZeroFields replaces lists instead of overwriting them index by index.
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &next,
		WeaklyTypedInput: true,
		ZeroFields:       true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(patch); err != nil {
		return &InvalidValueError{Key: key, Value: value, Cause: err}
	}
	if err := next.Validate(); err != nil {
		return &InvalidValueError{Key: key, Value: value, Cause: err}
	}

	*c = next
	return nil
}

// Settings returns every leaf setting sorted by key.
func (c *Config) Settings() ([]Setting, error) {
	tree, err := c.toMap()
	if err != nil {
		return nil, err
	}
	var out []Setting
	flatten(tree, nil, &out)
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (c *Config) toMap() (map[string]any, error) {
	tree := make(map[string]any)
	if err := mapstructure.Decode(c, &tree); err != nil {
		return nil, fmt.Errorf("failed to flatten config: %w", err)
	}
	return tree, nil
}

// resolve walks tree along the dotted key. Map keys may themselves contain
// dots (e.g. "fs.readfile"), so at each level the longest matching prefix wins.
func resolve(tree map[string]any, key string) ([]string, any, bool) {
	parts := strings.Split(key, ".")
	var path []string
	var node any = tree

	for len(parts) > 0 {
		m, ok := node.(map[string]any)
		if !ok {
			return nil, nil, false
		}
		matched := false
		for n := len(parts); n > 0; n-- {
			candidate := strings.Join(parts[:n], ".")
			if v, ok := m[candidate]; ok {
				path = append(path, candidate)
				node = v
				parts = parts[n:]
				matched = true
				break
			}
		}
		if !matched {
			return nil, nil, false
		}
	}
	return path, node, true
}

func flatten(node map[string]any, prefix []string, out *[]Setting) {
	for k, v := range node {
		path := append(append([]string(nil), prefix...), k)
		if child, ok := v.(map[string]any); ok {
			flatten(child, path, out)
			continue
		}
		section := ""
		if len(path) > 1 {
			section = path[0]
		}
		*out = append(*out, Setting{
			Section: section,
			Key:     strings.Join(path, "."),
			Value:   formatValue(v),
		})
	}
}

func formatValue(v any) string {
	if list, ok := v.([]string); ok {
		return strings.Join(list, ",")
	}
	return fmt.Sprint(v)
}

func splitList(value string) []string {
	out := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
