package memory

import (
	"bytes"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/syntrixbase/pager/pkg/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Type ranks follow the MongoDB cross-type sort order so that both backends
// order mixed-type fields the same way.
const (
	rankNull = iota
	rankNumber
	rankString
	rankObject
	rankArray
	rankBinary
	rankObjectID
	rankBool
	rankTime
	rankOther
)

func typeRank(v interface{}) int {
	switch v.(type) {
	case nil:
		return rankNull
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64,
		float32, float64, primitive.Decimal128:
		return rankNumber
	case string:
		return rankString
	case map[string]interface{}, model.Document:
		return rankObject
	case []byte, primitive.Binary:
		return rankBinary
	case primitive.ObjectID:
		return rankObjectID
	case bool:
		return rankBool
	case time.Time, primitive.DateTime:
		return rankTime
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rankArray
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return rankObject
		}
	}
	return rankOther
}

// compareValues returns -1, 0 or 1. Arrays compare element by element and
// objects by their keys in sorted order, then by the values under them.
// Unknown types of the same rank compare equal.
func compareValues(a, b interface{}) int {
	ra, rb := typeRank(a), typeRank(b)
	if ra != rb {
		return compareInts(int64(ra), int64(rb))
	}

	switch ra {
	case rankNumber:
		return compareNumbers(a, b)
	case rankString:
		return strings.Compare(a.(string), b.(string))
	case rankObject:
		return compareObjects(toObject(a), toObject(b))
	case rankArray:
		return compareLists(toList(a), toList(b))
	case rankBinary:
		return compareBinary(a, b)
	case rankObjectID:
		oa, ob := a.(primitive.ObjectID), b.(primitive.ObjectID)
		return bytes.Compare(oa[:], ob[:])
	case rankBool:
		ba, bb := a.(bool), b.(bool)
		switch {
		case ba == bb:
			return 0
		case !ba:
			return -1
		}
		return 1
	case rankTime:
		return toTime(a).Compare(toTime(b))
	}
	return 0
}

func compareInts(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareNumbers(a, b interface{}) int {
	ia, aInt, fa := numberParts(a)
	ib, bInt, fb := numberParts(b)
	if aInt && bInt {
		return compareInts(ia, ib)
	}
	switch {
	case fa < fb:
		return -1
	case fa > fb:
		return 1
	}
	return 0
}

// numberParts reports v as an int64 when it fits one, and always as a float64.
func numberParts(v interface{}) (int64, bool, float64) {
	switch n := v.(type) {
	case float32:
		return 0, false, float64(n)
	case float64:
		return 0, false, n
	case primitive.Decimal128:
		f, _ := strconv.ParseFloat(n.String(), 64)
		return 0, false, f
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := rv.Int()
		return i, true, float64(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u <= math.MaxInt64 {
			return int64(u), true, float64(u)
		}
		return 0, false, float64(u)
	}
	return 0, false, 0
}

func compareLists(a, b []interface{}) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := compareValues(a[i], b[i]); c != 0 {
			return c
		}
	}
	return compareInts(int64(len(a)), int64(len(b)))
}

func compareObjects(a, b map[string]interface{}) int {
	ka, kb := sortedKeys(a), sortedKeys(b)
	for i := 0; i < len(ka) && i < len(kb); i++ {
		if c := strings.Compare(ka[i], kb[i]); c != 0 {
			return c
		}
		if c := compareValues(a[ka[i]], b[kb[i]]); c != 0 {
			return c
		}
	}
	return compareInts(int64(len(ka)), int64(len(kb)))
}

// compareBinary orders by length, then subtype, then content.
func compareBinary(a, b interface{}) int {
	sa, da := binaryParts(a)
	sb, db := binaryParts(b)
	if c := compareInts(int64(len(da)), int64(len(db))); c != 0 {
		return c
	}
	if c := compareInts(int64(sa), int64(sb)); c != 0 {
		return c
	}
	return bytes.Compare(da, db)
}

func binaryParts(v interface{}) (byte, []byte) {
	if b, ok := v.(primitive.Binary); ok {
		return b.Subtype, b.Data
	}
	return 0, v.([]byte)
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func toList(v interface{}) []interface{} {
	if list, ok := v.([]interface{}); ok {
		return list
	}
	rv := reflect.ValueOf(v)
	out := make([]interface{}, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

func toObject(v interface{}) map[string]interface{} {
	switch m := v.(type) {
	case map[string]interface{}:
		return m
	case model.Document:
		return m
	}
	rv := reflect.ValueOf(v)
	out := make(map[string]interface{}, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out
}

func toTime(v interface{}) time.Time {
	if dt, ok := v.(primitive.DateTime); ok {
		return dt.Time()
	}
	return v.(time.Time)
}

// compareDocuments orders two documents by the given keys.
func compareDocuments(a, b model.Document, orderBy []model.OrderBy) int {
	for _, o := range orderBy {
		va, _ := a.Lookup(o.Field)
		vb, _ := b.Lookup(o.Field)
		c := compareValues(va, vb)
		if o.Direction == model.SortDesc {
			c = -c
		}
		if c != 0 {
			return c
		}
	}
	return 0
}
