package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterOp_IsValid(t *testing.T) {
	tests := []struct {
		name string
		op   FilterOp
		want bool
	}{
		{"OpEq", OpEq, true},
		{"OpNe", OpNe, true},
		{"OpGt", OpGt, true},
		{"OpGte", OpGte, true},
		{"OpLt", OpLt, true},
		{"OpLte", OpLte, true},
		{"OpIn", OpIn, true},
		{"OpContains", OpContains, true},
		{"OpMatch", OpMatch, true},
		{"Invalid", FilterOp("invalid"), false},
		{"Empty", FilterOp(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.op.IsValid())
		})
	}
}

func TestValidOps(t *testing.T) {
	ops := ValidOps()
	assert.Len(t, ops, 9)
	for _, op := range ops {
		assert.True(t, op.IsValid())
	}
}

func TestFilter_Validate(t *testing.T) {
	assert.True(t, Filter{Field: "age", Op: OpGt, Value: 1}.Validate())
	assert.False(t, Filter{Field: "", Op: OpGt, Value: 1}.Validate())
	assert.False(t, Filter{Field: "age", Op: "~", Value: 1}.Validate())
}

func TestPredicate_AndSkipsEmptyOperands(t *testing.T) {
	p := And(Eq("a", 1), Or(), Predicate{})
	require.Len(t, p.Children, 1)
	assert.Equal(t, KindCmp, p.Children[0].Kind)
	assert.Equal(t, "a", p.Children[0].Filter.Field)
}

func TestPredicate_IsEmpty(t *testing.T) {
	tests := []struct {
		name string
		p    Predicate
		want bool
	}{
		{"zero value", Predicate{}, true},
		{"empty and", And(), true},
		{"empty or", Or(), true},
		{"nested empties", And(Or(), And()), true},
		{"comparison", Eq("a", 1), false},
		{"or with comparison", Or(Eq("a", 1)), false},
		{"cmp without filter", Predicate{Kind: KindCmp}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.IsEmpty())
		})
	}
}

func TestPredicate_Validate(t *testing.T) {
	assert.True(t, And(Eq("a", 1), Or(Gt("b", 2), Lt("b", 0))).Validate())
	assert.False(t, And(Where("a", "bogus", 1)).Validate())
	assert.False(t, Predicate{Kind: "xor"}.Validate())
}

func TestBetween(t *testing.T) {
	p := Between("age", 18, 30)
	require.Equal(t, KindAnd, p.Kind)
	require.Len(t, p.Children, 2)
	assert.Equal(t, OpGte, p.Children[0].Filter.Op)
	assert.Equal(t, 18, p.Children[0].Filter.Value)
	assert.Equal(t, OpLte, p.Children[1].Filter.Op)
	assert.Equal(t, 30, p.Children[1].Filter.Value)
}

func TestFromFilters(t *testing.T) {
	p := FromFilters(Filters{{Field: "a", Op: OpEq, Value: 1}, {Field: "b", Op: OpNe, Value: "x"}})
	require.Len(t, p.Children, 2)
	assert.Equal(t, "b", p.Children[1].Filter.Field)
	assert.True(t, FromFilters(nil).IsEmpty())
}

func TestPredicate_JSON(t *testing.T) {
	p := And(Eq("status", "active"), Or(Match("name", "doe")))
	data, err := json.Marshal(p)
	require.NoError(t, err)

	var back Predicate
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, KindAnd, back.Kind)
	require.Len(t, back.Children, 2)
	assert.Equal(t, OpMatch, back.Children[1].Children[0].Filter.Op)
}
