package config

import (
	"fmt"

	"github.com/syntrixbase/pager/pkg/model"
)

// CollectionConfig declares how one collection is exposed for pagination.
type CollectionConfig struct {
	SearchFields []string                     `yaml:"search_fields"`
	Sortable     []string                     `yaml:"sortable"`
	FilterFields map[string]FilterFieldConfig `yaml:"filter_fields"`
	// BaseFilter is ANDed into every request as field equality.
	BaseFilter map[string]interface{} `yaml:"base_filter"`
}

// FilterFieldConfig maps a named request filter onto a field comparison.
// An empty Field means the filter name itself; an empty Op means equality.
type FilterFieldConfig struct {
	Field string         `yaml:"field"`
	Op    model.FilterOp `yaml:"op"`
}

// CollectionsConfig is keyed by collection name.
type CollectionsConfig map[string]CollectionConfig

func (c *CollectionsConfig) ApplyDefaults() {
	if *c == nil {
		*c = CollectionsConfig{}
	}
}

func (c *CollectionsConfig) ApplyEnvOverrides() {}

func (c *CollectionsConfig) ResolvePaths(_ string) {}

// Validate validates every collection declaration
func (c *CollectionsConfig) Validate() error {
	for name, coll := range *c {
		if name == "" {
			return fmt.Errorf("collection name cannot be empty")
		}
		for filterName, f := range coll.FilterFields {
			if f.Op != "" && !f.Op.IsValid() {
				return fmt.Errorf("collection %s: filter %s has invalid op %q", name, filterName, f.Op)
			}
		}
	}
	return nil
}
