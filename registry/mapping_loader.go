/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/suparena/reactivestore/persister"
)

// mappingFile is the on-disk shape of an entity mapping declaration.
//
//	entities:
//	  Order:
//	    id: ID
//	    version: Version
//	    properties: [Total, Status, Version]
//	    postInsertId: true
//	    cache: true
type mappingFile struct {
	Entities map[string]mappingEntry `yaml:"entities"`
}

type mappingEntry struct {
	ID             string   `yaml:"id"`
	Version        string   `yaml:"version"`
	Properties     []string `yaml:"properties"`
	PostInsertID   bool     `yaml:"postInsertId"`
	HasSubclasses  bool     `yaml:"hasSubclasses"`
	Enhanced       bool     `yaml:"enhanced"`
	ClassicProxies bool     `yaml:"classicProxies"`
	Cache          bool     `yaml:"cache"`
}

// LoadMappings parses a YAML mapping file into persister.Mapping values,
// keyed by entity name. Field existence against Go types is checked later,
// when a persister is built; this layer validates the declaration itself.
func LoadMappings(path string) (map[string]persister.Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file: %w", err)
	}
	return ParseMappings(data)
}

// ParseMappings parses YAML mapping declarations from raw bytes.
func ParseMappings(data []byte) (map[string]persister.Mapping, error) {
	var file mappingFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse mapping file: %w", err)
	}
	if len(file.Entities) == 0 {
		return nil, fmt.Errorf("mapping file declares no entities")
	}

	mappings := make(map[string]persister.Mapping, len(file.Entities))
	for name, entry := range file.Entities {
		if entry.ID == "" {
			return nil, fmt.Errorf("entity %q: missing id field", name)
		}
		if entry.Version != "" && !contains(entry.Properties, entry.Version) {
			return nil, fmt.Errorf("entity %q: version field %q must be listed in properties", name, entry.Version)
		}
		mappings[name] = persister.Mapping{
			EntityName:             name,
			IDField:                entry.ID,
			VersionField:           entry.Version,
			Properties:             entry.Properties,
			PostInsertID:           entry.PostInsertID,
			HasSubclasses:          entry.HasSubclasses,
			EnhancedForLazyLoading: entry.Enhanced,
			ClassicProxies:         entry.ClassicProxies,
			CacheEnabled:           entry.Cache,
		}
	}
	return mappings, nil
}

// MappingNames returns the entity names of a mapping set in sorted order.
func MappingNames(mappings map[string]persister.Mapping) []string {
	names := make([]string, 0, len(mappings))
	for name := range mappings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
