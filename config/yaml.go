package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLGroup is the one concrete Group implementation shipped with the
// core, backed by a parsed YAML map[string]any tree. Every subgroup is
// expected to carry a "name" key (the node name), a "type" key (the
// registry prefix), an optional ordered "parents" list, and arbitrary
// scalar/array parameters.
type YAMLGroup struct {
	raw map[string]any
}

// Load reads and parses a YAML configuration file into a root YAMLGroup.
func Load(path string) (*YAMLGroup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	slog.Debug("config loaded", "path", path, "subgroups", len(subgroupList(raw)))
	return &YAMLGroup{raw: raw}, nil
}

// NewYAMLGroup wraps an already-decoded map as a Group, primarily useful
// for tests that build configuration trees in Go rather than on disk.
func NewYAMLGroup(raw map[string]any) *YAMLGroup {
	return &YAMLGroup{raw: raw}
}

func (g *YAMLGroup) Name() string {
	if v, ok := g.raw["name"].(string); ok {
		return v
	}
	return ""
}

func (g *YAMLGroup) TypeName() string {
	if v, ok := g.raw["type"].(string); ok {
		return v
	}
	return ""
}

func (g *YAMLGroup) Parents() []string {
	raw, ok := g.raw["parents"].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func (g *YAMLGroup) String(key string) (string, bool) {
	v, ok := g.raw[key].(string)
	return v, ok
}

func (g *YAMLGroup) Float(key string) (float32, bool) {
	switch v := g.raw[key].(type) {
	case float64:
		return float32(v), true
	case int:
		return float32(v), true
	default:
		return 0, false
	}
}

func (g *YAMLGroup) Floats(key string) ([]float32, bool) {
	raw, ok := g.raw[key].([]any)
	if !ok {
		return nil, false
	}
	out := make([]float32, 0, len(raw))
	for _, v := range raw {
		switch n := v.(type) {
		case float64:
			out = append(out, float32(n))
		case int:
			out = append(out, float32(n))
		}
	}
	return out, true
}

func (g *YAMLGroup) Ints(key string) ([]int, bool) {
	raw, ok := g.raw[key].([]any)
	if !ok {
		return nil, false
	}
	out := make([]int, 0, len(raw))
	for _, v := range raw {
		if n, ok := v.(int); ok {
			out = append(out, n)
		}
	}
	return out, true
}

func (g *YAMLGroup) Subgroups() []Group {
	list := subgroupList(g.raw)
	out := make([]Group, 0, len(list))
	for _, raw := range list {
		out = append(out, &YAMLGroup{raw: raw})
	}
	return out
}

func subgroupList(raw map[string]any) []map[string]any {
	children, ok := raw["nodes"].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(children))
	for _, c := range children {
		if m, ok := c.(map[string]any); ok {
			out = append(out, m)
			continue
		}
		// yaml.v3 decodes nested maps as map[string]any already when the
		// target is any, but guard the map[any]any shape too for safety.
		if m, ok := c.(map[any]any); ok {
			converted := make(map[string]any, len(m))
			for k, v := range m {
				if ks, ok := k.(string); ok {
					converted[ks] = v
				}
			}
			out = append(out, converted)
		}
	}
	return out
}

var _ Group = (*YAMLGroup)(nil)
