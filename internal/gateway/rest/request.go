package rest

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/schema"

	"github.com/syntrixbase/pager/pkg/model"
)

const filterPrefix = "filter."

// queryArgs is the query-string form of a page request. Filters travel as
// filter.<name>=<value> and are collected separately.
type queryArgs struct {
	First  *int        `schema:"first"`
	Last   *int        `schema:"last"`
	After  string      `schema:"after"`
	Before string      `schema:"before"`
	Search string      `schema:"search"`
	Sort   *model.Sort `schema:"sort"`
}

func newQueryDecoder() *schema.Decoder {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	return decoder
}

// decodeQuery builds a page request from URL query parameters.
func decodeQuery(values url.Values) (model.PageRequest, error) {
	var args queryArgs
	if err := newQueryDecoder().Decode(&args, values); err != nil {
		return model.PageRequest{}, fmt.Errorf("%w: %v", model.ErrInvalidArgument, err)
	}

	req := model.PageRequest{
		First:  args.First,
		Last:   args.Last,
		After:  args.After,
		Before: args.Before,
		Search: args.Search,
		Sort:   args.Sort,
	}

	for key, vals := range values {
		name, ok := strings.CutPrefix(key, filterPrefix)
		if !ok {
			continue
		}
		if name == "" {
			return model.PageRequest{}, fmt.Errorf("%w: empty filter name", model.ErrInvalidArgument)
		}
		if req.Filters == nil {
			req.Filters = make(map[string]interface{})
		}
		if len(vals) == 1 {
			req.Filters[name] = parseScalar(vals[0])
			continue
		}
		list := make([]interface{}, len(vals))
		for i, v := range vals {
			list[i] = parseScalar(v)
		}
		req.Filters[name] = list
	}
	return req, nil
}

// parseScalar types a query-string value: null, booleans, integers and
// floats are recognized, anything else stays a string.
func parseScalar(s string) interface{} {
	switch s {
	case "null":
		return nil
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !strings.ContainsAny(s, "xXnN") {
		return f
	}
	return s
}
