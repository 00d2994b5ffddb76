package cursor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/syntrixbase/pager/pkg/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Value type tags carried next to the sort value so it decodes to the same
// Go kind it was encoded from.
const (
	typeNull     = "null"
	typeString   = "string"
	typeInt      = "int"
	typeUint     = "uint"
	typeFloat    = "float"
	typeBool     = "bool"
	typeTime     = "time"
	typeObjectID = "oid"
	typeDecimal  = "decimal"
	typeBinary   = "binary"
	// Arrays and objects travel as plain JSON. Numbers inside come back as
	// int64 when integral and float64 otherwise.
	typeJSON = "json"
)

type binaryValue struct {
	Subtype byte   `json:"subtype"`
	Data    []byte `json:"data"`
}

func encodeValue(v interface{}) (string, json.RawMessage, error) {
	switch val := v.(type) {
	case nil:
		return typeNull, json.RawMessage("null"), nil
	case string:
		raw, err := json.Marshal(val)
		return typeString, raw, err
	case bool:
		return typeBool, json.RawMessage(strconv.FormatBool(val)), nil
	case int, int8, int16, int32, int64:
		return typeInt, json.RawMessage(strconv.FormatInt(reflect.ValueOf(val).Int(), 10)), nil
	case uint, uint8, uint16, uint32, uint64:
		return typeUint, json.RawMessage(strconv.FormatUint(reflect.ValueOf(val).Uint(), 10)), nil
	case float32:
		raw, err := json.Marshal(float64(val))
		return typeFloat, raw, err
	case float64:
		raw, err := json.Marshal(val)
		return typeFloat, raw, err
	case time.Time:
		raw, err := json.Marshal(val.UTC().Format(time.RFC3339Nano))
		return typeTime, raw, err
	case primitive.DateTime:
		raw, err := json.Marshal(val.Time().UTC().Format(time.RFC3339Nano))
		return typeTime, raw, err
	case primitive.ObjectID:
		raw, err := json.Marshal(val.Hex())
		return typeObjectID, raw, err
	case primitive.Decimal128:
		raw, err := json.Marshal(val.String())
		return typeDecimal, raw, err
	case primitive.Binary:
		raw, err := json.Marshal(binaryValue{Subtype: val.Subtype, Data: val.Data})
		return typeBinary, raw, err
	case []byte:
		raw, err := json.Marshal(binaryValue{Data: val})
		return typeBinary, raw, err
	}

	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return typeJSON, json.RawMessage("[]"), nil
		}
		if rv.Kind() == reflect.Map && rv.IsNil() {
			return typeJSON, json.RawMessage("{}"), nil
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return "", nil, fmt.Errorf("unsupported sort value %T: %w", v, err)
		}
		return typeJSON, raw, nil
	}
	return "", nil, fmt.Errorf("unsupported sort value type %T", v)
}

func decodeValue(typ string, raw json.RawMessage) (interface{}, error) {
	switch typ {
	case typeNull:
		return nil, nil
	case typeString:
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	case typeBool:
		var b bool
		err := json.Unmarshal(raw, &b)
		return b, err
	case typeInt:
		return strconv.ParseInt(string(raw), 10, 64)
	case typeUint:
		return strconv.ParseUint(string(raw), 10, 64)
	case typeFloat:
		var f float64
		err := json.Unmarshal(raw, &f)
		return f, err
	case typeTime:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return time.Parse(time.RFC3339Nano, s)
	case typeObjectID:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return primitive.ObjectIDFromHex(s)
	case typeDecimal:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return primitive.ParseDecimal128(s)
	case typeBinary:
		var b binaryValue
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, err
		}
		return primitive.Binary{Subtype: b.Subtype, Data: b.Data}, nil
	case typeJSON:
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var v interface{}
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		switch v.(type) {
		case []interface{}, map[string]interface{}:
			return model.NormalizeNumbers(v), nil
		}
		return nil, fmt.Errorf("json sort value must be an array or an object")
	default:
		return nil, fmt.Errorf("unknown sort value type %q", typ)
	}
}
