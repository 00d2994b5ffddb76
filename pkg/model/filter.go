package model

// FilterOp defines the supported filter operators.
type FilterOp string

const (
	OpEq       FilterOp = "=="       // Equal
	OpNe       FilterOp = "!="       // Not equal
	OpGt       FilterOp = ">"        // Greater than
	OpGte      FilterOp = ">="       // Greater than or equal
	OpLt       FilterOp = "<"        // Less than
	OpLte      FilterOp = "<="       // Less than or equal
	OpIn       FilterOp = "in"       // Value in array
	OpContains FilterOp = "contains" // Array contains value
	OpMatch    FilterOp = "match"    // Case-insensitive substring
)

// ValidOps returns all valid filter operators.
func ValidOps() []FilterOp {
	return []FilterOp{OpEq, OpNe, OpGt, OpGte, OpLt, OpLte, OpIn, OpContains, OpMatch}
}

// IsValid checks if the operator is valid.
func (op FilterOp) IsValid() bool {
	switch op {
	case OpEq, OpNe, OpGt, OpGte, OpLt, OpLte, OpIn, OpContains, OpMatch:
		return true
	}
	return false
}

// Filters is a slice of Filter.
type Filters []Filter

// Filter represents a single field comparison.
type Filter struct {
	Field string      `json:"field"`
	Op    FilterOp    `json:"op"`
	Value interface{} `json:"value"`
}

// Validate checks if the filter is valid.
func (f Filter) Validate() bool {
	if f.Field == "" {
		return false
	}
	return f.Op.IsValid()
}

// PredicateKind tags the variant held by a Predicate.
type PredicateKind string

const (
	KindAnd PredicateKind = "and"
	KindOr  PredicateKind = "or"
	KindCmp PredicateKind = "cmp"
)

// Predicate is a store-neutral boolean condition over documents.
//
// A KindCmp predicate holds a single Filter. KindAnd and KindOr combine
// Children. The zero value is an empty AND and matches every document.
type Predicate struct {
	Kind     PredicateKind `json:"kind,omitempty"`
	Filter   *Filter       `json:"filter,omitempty"`
	Children []Predicate   `json:"children,omitempty"`
}

// And combines predicates so that all must hold. Empty operands are skipped.
func And(preds ...Predicate) Predicate {
	out := Predicate{Kind: KindAnd}
	for _, p := range preds {
		if p.IsEmpty() {
			continue
		}
		out.Children = append(out.Children, p)
	}
	return out
}

// Or combines predicates so that at least one must hold.
// An Or with no operands is empty and contributes nothing to an enclosing And.
func Or(preds ...Predicate) Predicate {
	out := Predicate{Kind: KindOr}
	for _, p := range preds {
		if p.IsEmpty() {
			continue
		}
		out.Children = append(out.Children, p)
	}
	return out
}

// Where builds a single comparison predicate.
func Where(field string, op FilterOp, value interface{}) Predicate {
	return Predicate{Kind: KindCmp, Filter: &Filter{Field: field, Op: op, Value: value}}
}

// Eq is shorthand for Where(field, OpEq, value).
func Eq(field string, value interface{}) Predicate { return Where(field, OpEq, value) }

// Gt is shorthand for Where(field, OpGt, value).
func Gt(field string, value interface{}) Predicate { return Where(field, OpGt, value) }

// Lt is shorthand for Where(field, OpLt, value).
func Lt(field string, value interface{}) Predicate { return Where(field, OpLt, value) }

// Match is a case-insensitive substring predicate.
func Match(field string, text string) Predicate { return Where(field, OpMatch, text) }

// Between selects values in the closed range [lo, hi].
func Between(field string, lo, hi interface{}) Predicate {
	return And(Where(field, OpGte, lo), Where(field, OpLte, hi))
}

// FromFilters ANDs a list of filters into a predicate.
func FromFilters(filters Filters) Predicate {
	preds := make([]Predicate, 0, len(filters))
	for _, f := range filters {
		preds = append(preds, Where(f.Field, f.Op, f.Value))
	}
	return And(preds...)
}

// IsEmpty reports whether the predicate places no constraint on documents.
func (p Predicate) IsEmpty() bool {
	switch p.Kind {
	case KindCmp:
		return p.Filter == nil
	case KindAnd, KindOr, "":
		for _, c := range p.Children {
			if !c.IsEmpty() {
				return false
			}
		}
		return true
	}
	return true
}

// Validate checks every comparison in the tree.
func (p Predicate) Validate() bool {
	switch p.Kind {
	case KindCmp:
		return p.Filter != nil && p.Filter.Validate()
	case KindAnd, KindOr, "":
		for _, c := range p.Children {
			if !c.Validate() {
				return false
			}
		}
		return true
	}
	return false
}
