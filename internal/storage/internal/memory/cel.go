package memory

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/syntrixbase/pager/pkg/model"
)

// compiler turns predicates into CEL programs evaluated against a doc variable.
type compiler struct {
	env *cel.Env
}

// query is a compiled predicate. Values that have no CEL literal form are
// kept in args and compared in Go by sortCompare.
type query struct {
	prg  cel.Program
	args []interface{}
}

func newCompiler() (*compiler, error) {
	env, err := cel.NewEnv(
		cel.Variable("doc", cel.MapType(cel.StringType, cel.DynType)),
		cel.Variable("args", cel.ListType(cel.DynType)),
		cel.CrossTypeNumericComparisons(true),
		cel.Function("sortCompare",
			cel.Overload("sortCompare_doc_string_list_int",
				[]*cel.Type{cel.MapType(cel.StringType, cel.DynType), cel.StringType, cel.ListType(cel.DynType), cel.IntType},
				cel.IntType,
				cel.FunctionBinding(sortCompare),
			),
		),
	)
	if err != nil {
		return nil, err
	}
	return &compiler{env: env}, nil
}

// sortCompare(doc, field, args, i) compares the field of doc with args[i]
// in sort order. A missing field compares as null.
func sortCompare(vals ...ref.Val) ref.Val {
	doc, ok := vals[0].Value().(map[string]interface{})
	if !ok {
		return types.NewErr("sortCompare: unexpected document %T", vals[0].Value())
	}
	field, ok := vals[1].(types.String)
	if !ok {
		return types.NewErr("sortCompare: field must be a string")
	}
	args, ok := vals[2].Value().([]interface{})
	if !ok {
		return types.NewErr("sortCompare: unexpected args %T", vals[2].Value())
	}
	i, ok := vals[3].(types.Int)
	if !ok || i < 0 || int(i) >= len(args) {
		return types.NewErr("sortCompare: argument index out of range")
	}

	v, _ := model.Document(doc).Lookup(string(field))
	return types.Int(compareValues(v, args[i]))
}

// compile returns nil for an empty predicate, which matches everything.
func (c *compiler) compile(p model.Predicate) (*query, error) {
	if p.IsEmpty() {
		return nil, nil
	}
	q := &query{}
	expr, err := q.predicateToExpression(p)
	if err != nil {
		return nil, err
	}

	ast, issues := c.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("%w: CEL compile error: %v", model.ErrInvalidQuery, issues.Err())
	}

	q.prg, err = c.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("CEL program creation error: %w", err)
	}
	return q, nil
}

// evaluate reports whether the document satisfies the query.
// Evaluation errors such as a missing field or a type mismatch count as no match.
func evaluate(q *query, doc map[string]interface{}) bool {
	if q == nil {
		return true
	}
	args := q.args
	if args == nil {
		args = []interface{}{}
	}
	out, _, err := q.prg.Eval(map[string]interface{}{"doc": doc, "args": args})
	if err != nil {
		return false
	}
	result, ok := out.Value().(bool)
	return ok && result
}

func (q *query) predicateToExpression(p model.Predicate) (string, error) {
	switch p.Kind {
	case model.KindAnd, model.KindOr, "":
		var parts []string
		for _, child := range p.Children {
			if child.IsEmpty() {
				continue
			}
			expr, err := q.predicateToExpression(child)
			if err != nil {
				return "", err
			}
			parts = append(parts, "("+expr+")")
		}
		if len(parts) == 0 {
			return "true", nil
		}
		sep := " && "
		if p.Kind == model.KindOr {
			sep = " || "
		}
		return strings.Join(parts, sep), nil
	case model.KindCmp:
		if p.Filter == nil {
			return "true", nil
		}
		return q.filterToExpression(*p.Filter)
	default:
		return "", fmt.Errorf("%w: unknown predicate kind %q", model.ErrInvalidQuery, p.Kind)
	}
}

func (q *query) filterToExpression(f model.Filter) (string, error) {
	field := "doc"
	for _, part := range strings.Split(f.Field, ".") {
		field += "[" + strconv.Quote(part) + "]"
	}

	if f.Op == model.OpMatch {
		text, ok := f.Value.(string)
		if !ok {
			return "", fmt.Errorf("%w: match on %s needs a string, got %T", model.ErrInvalidQuery, f.Field, f.Value)
		}
		return fmt.Sprintf("%s.matches(%s)", field, strconv.Quote("(?i)"+regexp.QuoteMeta(text))), nil
	}

	if op, ok := comparisonOps[f.Op]; ok && needsSortCompare(f.Op, f.Value) {
		q.args = append(q.args, f.Value)
		return fmt.Sprintf("sortCompare(doc, %s, args, %d) %s 0", strconv.Quote(f.Field), len(q.args)-1, op), nil
	}

	valStr, err := formatValue(f.Value)
	if err != nil {
		return "", err
	}

	switch f.Op {
	case model.OpEq:
		return fmt.Sprintf("%s == %s", field, valStr), nil
	case model.OpNe:
		return fmt.Sprintf("%s != %s", field, valStr), nil
	case model.OpGt:
		return fmt.Sprintf("%s > %s", field, valStr), nil
	case model.OpGte:
		return fmt.Sprintf("%s >= %s", field, valStr), nil
	case model.OpLt:
		return fmt.Sprintf("%s < %s", field, valStr), nil
	case model.OpLte:
		return fmt.Sprintf("%s <= %s", field, valStr), nil
	case model.OpIn:
		return fmt.Sprintf("%s in %s", field, valStr), nil
	case model.OpContains:
		return fmt.Sprintf("%s in %s", valStr, field), nil
	default:
		return "", fmt.Errorf("%w: unsupported operator: %s", model.ErrInvalidQuery, f.Op)
	}
}

var comparisonOps = map[model.FilterOp]string{
	model.OpEq:  "==",
	model.OpNe:  "!=",
	model.OpGt:  ">",
	model.OpGte: ">=",
	model.OpLt:  "<",
	model.OpLte: "<=",
}

// needsSortCompare reports whether a comparison against v cannot be written
// with CEL operators without disagreeing with compareValues.
func needsSortCompare(op model.FilterOp, v interface{}) bool {
	switch v.(type) {
	case string, bool, time.Time,
		int, int8, int16, int32, int64, float32, float64:
		return false
	case nil:
		return op != model.OpEq && op != model.OpNe
	}
	return true
}

// formatValue formats a value for use in a CEL expression.
func formatValue(v interface{}) (string, error) {
	switch val := v.(type) {
	case nil:
		return "null", nil
	case string:
		return strconv.Quote(val), nil
	case int, int8, int16, int32, int64:
		return fmt.Sprintf("%d", val), nil
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%du", val), nil
	case float32:
		return formatFloat(float64(val)), nil
	case float64:
		return formatFloat(val), nil
	case bool:
		return fmt.Sprintf("%v", val), nil
	case time.Time:
		return fmt.Sprintf("timestamp(%s)", strconv.Quote(val.UTC().Format(time.RFC3339Nano))), nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		parts := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			s, err := formatValue(rv.Index(i).Interface())
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return fmt.Sprintf("[%s]", strings.Join(parts, ", ")), nil
	}
	return "", fmt.Errorf("%w: unsupported value type: %T", model.ErrInvalidQuery, v)
}

// formatFloat always renders a double literal so CEL does not read it as an int.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
