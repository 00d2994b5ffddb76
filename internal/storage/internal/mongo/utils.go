package mongo

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/syntrixbase/pager/pkg/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// makeFilterBSON translates a predicate tree into a MongoDB query document.
func makeFilterBSON(p model.Predicate, objectIDs bool) (bson.M, error) {
	switch p.Kind {
	case model.KindAnd, model.KindOr, "":
		parts := bson.A{}
		for _, child := range p.Children {
			if child.IsEmpty() {
				continue
			}
			sub, err := makeFilterBSON(child, objectIDs)
			if err != nil {
				return nil, err
			}
			parts = append(parts, sub)
		}
		switch {
		case len(parts) == 0:
			return bson.M{}, nil
		case len(parts) == 1:
			return parts[0].(bson.M), nil
		case p.Kind == model.KindOr:
			return bson.M{"$or": parts}, nil
		default:
			return bson.M{"$and": parts}, nil
		}
	case model.KindCmp:
		if p.Filter == nil {
			return bson.M{}, nil
		}
		return makeCmpBSON(*p.Filter, objectIDs)
	default:
		return nil, fmt.Errorf("%w: unknown predicate kind %q", model.ErrInvalidQuery, p.Kind)
	}
}

func makeCmpBSON(f model.Filter, objectIDs bool) (bson.M, error) {
	field := mapField(f.Field)
	value := f.Value
	if field == "_id" && objectIDs {
		value = toObjectIDs(value)
	}

	switch f.Op {
	case model.OpMatch:
		text, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: match on %s needs a string, got %T", model.ErrInvalidQuery, f.Field, value)
		}
		return bson.M{field: bson.M{"$regex": regexp.QuoteMeta(text), "$options": "i"}}, nil
	case model.OpContains:
		return bson.M{field: bson.M{"$elemMatch": bson.M{"$eq": value}}}, nil
	case model.OpIn:
		list, ok := asList(value)
		if !ok {
			return nil, fmt.Errorf("%w: in on %s needs a list, got %T", model.ErrInvalidQuery, f.Field, value)
		}
		return bson.M{field: bson.M{"$in": list}}, nil
	}

	op := mapOp(f.Op)
	if op == "" {
		return nil, fmt.Errorf("%w: unsupported operator %q", model.ErrInvalidQuery, f.Op)
	}
	return bson.M{field: bson.M{op: value}}, nil
}

func makeSortBSON(orderBy []model.OrderBy) bson.D {
	sort := bson.D{}
	for _, o := range orderBy {
		dir := 1
		if o.Direction == model.SortDesc {
			dir = -1
		}
		sort = append(sort, bson.E{Key: mapField(o.Field), Value: dir})
	}
	return sort
}

func mapField(field string) string {
	if field == model.IDField {
		return "_id"
	}
	return field
}

func mapOp(op model.FilterOp) string {
	switch op {
	case model.OpEq:
		return "$eq"
	case model.OpNe:
		return "$ne"
	case model.OpGt:
		return "$gt"
	case model.OpGte:
		return "$gte"
	case model.OpLt:
		return "$lt"
	case model.OpLte:
		return "$lte"
	default:
		return ""
	}
}

func asList(v interface{}) (bson.A, bool) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}
	out := make(bson.A, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out = append(out, rv.Index(i).Interface())
	}
	return out, true
}

// toObjectIDs converts hex ids (or lists of them) to ObjectIDs. Anything
// that is not a valid hex id is passed through unchanged.
func toObjectIDs(v interface{}) interface{} {
	if s, ok := v.(string); ok {
		if oid, err := primitive.ObjectIDFromHex(s); err == nil {
			return oid
		}
		return s
	}
	if list, ok := asList(v); ok {
		for i, item := range list {
			list[i] = toObjectIDs(item)
		}
		return list
	}
	return v
}

// toDocument converts a raw MongoDB document into a model.Document,
// renaming _id to id. ObjectIDs become hex strings; other ids keep their
// type so cursors carry them back unchanged.
func toDocument(raw bson.M) model.Document {
	doc := make(model.Document, len(raw))
	for k, v := range raw {
		if k == "_id" {
			k = model.IDField
			if oid, ok := v.(primitive.ObjectID); ok {
				v = oid.Hex()
			}
		}
		doc[k] = normalize(v)
	}
	return doc
}

func normalize(v interface{}) interface{} {
	switch val := v.(type) {
	case bson.M:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = normalize(item)
		}
		return out
	case bson.D:
		out := make(map[string]interface{}, len(val))
		for _, e := range val {
			out[e.Key] = normalize(e.Value)
		}
		return out
	case bson.A:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = normalize(item)
		}
		return out
	case primitive.DateTime:
		return val.Time().UTC()
	default:
		return v
	}
}

// fromDocument prepares doc for insertion, renaming id to _id.
func fromDocument(doc model.Document, objectIDs bool) bson.M {
	out := make(bson.M, len(doc))
	for k, v := range doc {
		if k == model.IDField {
			k = "_id"
			if objectIDs {
				v = toObjectIDs(v)
			}
		}
		out[k] = v
	}
	return out
}
