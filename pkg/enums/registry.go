// Package enums holds the shared enumerations (socket types, memory types,
// chipsets, power connectors) that specification templates bind to. The
// registry is loaded once at startup and passed explicitly into validator and
// evaluator calls, so tests can substitute their own value sets.
package enums

import (
	"fmt"
	"os"
	"strings"

	"voltshop/pkg/constants"

	"gopkg.in/yaml.v3"
)

// Well-known enumeration source names
const (
	SourceSocketType     = "socket_type"
	SourceMemoryType     = "memory_type"
	SourceChipset        = "chipset"
	SourcePowerConnector = "power_connector"
)

// Registry is an immutable set of named enumerations. Lookups are
// case-insensitive and resolve to the canonical spelling.
type Registry struct {
	sources   map[string][]string
	canonical map[string]map[string]string
}

type registryFile struct {
	Sources map[string][]string `yaml:"sources"`
}

// Load reads a registry from a yaml file of the form:
//
//	sources:
//	  socket_type: [AM4, AM5, LGA1700]
//	  memory_type: [DDR4, DDR5]
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read enumerations file: %w", err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse enumerations file: %w", err)
	}
	if len(file.Sources) == 0 {
		return nil, fmt.Errorf("enumerations file %s defines no sources", path)
	}

	return NewRegistry(file.Sources), nil
}

// NewRegistry builds a registry from in-memory source sets. The input maps are
// copied, so later mutation by the caller does not affect the registry.
func NewRegistry(sources map[string][]string) *Registry {
	r := &Registry{
		sources:   make(map[string][]string, len(sources)),
		canonical: make(map[string]map[string]string, len(sources)),
	}
	for name, values := range sources {
		copied := make([]string, len(values))
		copy(copied, values)
		r.sources[name] = copied

		lookup := make(map[string]string, len(values))
		for _, v := range values {
			lookup[strings.ToLower(v)] = v
		}
		r.canonical[name] = lookup
	}
	return r
}

// HasSource reports whether the registry defines the named enumeration
func (r *Registry) HasSource(name string) bool {
	_, ok := r.sources[name]
	return ok
}

// Values returns a copy of the canonical value set of the named enumeration
func (r *Registry) Values(name string) ([]string, bool) {
	values, ok := r.sources[name]
	if !ok {
		return nil, false
	}
	copied := make([]string, len(values))
	copy(copied, values)
	return copied, true
}

// Canonical resolves value against the named enumeration case-insensitively
// and returns the canonical spelling
func (r *Registry) Canonical(source, value string) (string, bool) {
	lookup, ok := r.canonical[source]
	if !ok {
		return "", false
	}
	canonical, ok := lookup[strings.ToLower(strings.TrimSpace(value))]
	return canonical, ok
}

// Contains reports whether value is a member of the named enumeration
func (r *Registry) Contains(source, value string) bool {
	_, ok := r.Canonical(source, value)
	return ok
}

// SourceForDataType returns the enumeration source a closed data type binds to
func SourceForDataType(dataType string) (string, bool) {
	switch dataType {
	case constants.DataTypeSocket:
		return SourceSocketType, true
	case constants.DataTypeMemoryType:
		return SourceMemoryType, true
	case constants.DataTypeChipset:
		return SourceChipset, true
	case constants.DataTypePowerConnector:
		return SourcePowerConnector, true
	}
	return "", false
}
