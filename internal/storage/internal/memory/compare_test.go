package memory

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/syntrixbase/pager/pkg/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCompareValues(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		a, b interface{}
		want int
	}{
		{"strings", "Bar", "Doe", -1},
		{"equal strings", "Doe", "Doe", 0},
		{"ints", 3, int64(2), 1},
		{"int and float", 2, 2.5, -1},
		{"equal numbers", int32(2), 2.0, 0},
		{"bools", false, true, -1},
		{"times", now, now.Add(time.Second), -1},
		{"null before number", nil, 0, -1},
		{"number before string", 100, "1", -1},
		{"string before bool", "z", false, -1},
		{"bool before time", true, now, -1},
		{"objects by key", map[string]interface{}{"a": 1}, map[string]interface{}{"b": 0}, -1},
		{"objects by value", map[string]interface{}{"a": 1}, map[string]interface{}{"a": 2}, -1},
		{"equal objects", model.Document{"a": "x"}, map[string]interface{}{"a": "x"}, 0},
		{"object before array", map[string]interface{}{}, []interface{}{}, -1},
		{"lists element-wise", []interface{}{1, "b"}, []string{"a"}, -1},
		{"list prefix first", []string{"a"}, []string{"a", "b"}, -1},
		{"equal lists", []interface{}{"a", int64(2)}, []interface{}{"a", 2.0}, 0},
		{"uints", uint(3), uint64(4), -1},
		{"uint and int", uint32(5), int64(5), 0},
		{"huge uint", uint64(math.MaxUint64), int64(math.MaxInt64), 1},
		{"decimal", primitive.NewDecimal128(0, 15), 14, 1},
		{"array before binary", []interface{}{}, []byte{1}, -1},
		{"binary length first", []byte{9}, primitive.Binary{Subtype: 4, Data: []byte{0, 0}}, -1},
		{"binary before object id", []byte{9}, primitive.NilObjectID, -1},
		{"object ids", primitive.ObjectID{1}, primitive.ObjectID{2}, -1},
		{"object id before bool", primitive.ObjectID{}, false, -1},
		{"bson datetime", primitive.NewDateTimeFromTime(now.Add(-time.Hour)), now, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, compareValues(tt.a, tt.b))
			assert.Equal(t, -tt.want, compareValues(tt.b, tt.a))
		})
	}
}

func TestCompareDocuments(t *testing.T) {
	a := model.Document{"id": "u1", "lastName": "Doe"}
	b := model.Document{"id": "u2", "lastName": "Doe"}

	asc := []model.OrderBy{{Field: "lastName", Direction: model.SortAsc}, {Field: "id", Direction: model.SortAsc}}
	desc := []model.OrderBy{{Field: "lastName", Direction: model.SortDesc}, {Field: "id", Direction: model.SortDesc}}

	assert.Equal(t, -1, compareDocuments(a, b, asc))
	assert.Equal(t, 1, compareDocuments(a, b, desc))
	assert.Equal(t, 0, compareDocuments(a, b, []model.OrderBy{{Field: "lastName"}}))
}
