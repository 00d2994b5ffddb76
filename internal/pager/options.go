package pager

import (
	"github.com/syntrixbase/pager/internal/config"
	"github.com/syntrixbase/pager/pkg/model"
)

// FilterFunc derives a predicate from the value of a named request filter.
type FilterFunc func(value interface{}) model.Predicate

// FilterField declares how a named request filter is applied.
// The zero value is Equal().
type FilterField struct {
	fn FilterFunc
}

// Equal passes the value through as equality on the same-named field.
func Equal() FilterField {
	return FilterField{}
}

// Func applies the predicate returned by fn.
func Func(fn FilterFunc) FilterField {
	return FilterField{fn: fn}
}

func (f FilterField) predicate(name string, value interface{}) model.Predicate {
	if f.fn == nil {
		return model.Eq(name, value)
	}
	return f.fn(value)
}

// Options are the per-call search and filter declarations.
type Options struct {
	// SearchFields are matched case-insensitively against the search text.
	SearchFields []string
	// FilterFields maps request filter names to how they apply.
	// Request filters with no entry are ignored.
	FilterFields map[string]FilterField
}

// OptionsFromConfig builds the options declared for a collection.
func OptionsFromConfig(cfg config.CollectionConfig) Options {
	opts := Options{
		SearchFields: cfg.SearchFields,
		FilterFields: make(map[string]FilterField, len(cfg.FilterFields)),
	}
	for name, f := range cfg.FilterFields {
		if f.Field == "" && (f.Op == "" || f.Op == model.OpEq) {
			opts.FilterFields[name] = Equal()
			continue
		}
		field, op := f.Field, f.Op
		if field == "" {
			field = name
		}
		if op == "" {
			op = model.OpEq
		}
		opts.FilterFields[name] = Func(func(value interface{}) model.Predicate {
			return model.Where(field, op, value)
		})
	}
	return opts
}

// basePredicate turns a configured field equality map into a predicate.
func basePredicate(fields map[string]interface{}) model.Predicate {
	preds := make([]model.Predicate, 0, len(fields))
	for _, name := range sortedKeys(fields) {
		preds = append(preds, model.Eq(name, fields[name]))
	}
	return model.And(preds...)
}
