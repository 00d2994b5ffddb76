package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// DecodePageRequest reads a JSON page request. An empty body is an empty
// request. Filter numbers become int64 when integral and float64 otherwise.
func DecodePageRequest(r io.Reader) (PageRequest, error) {
	var req PageRequest
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return PageRequest{}, nil
		}
		return PageRequest{}, err
	}
	for k, v := range req.Filters {
		req.Filters[k] = NormalizeNumbers(v)
	}
	return req, nil
}

// NormalizeNumbers replaces the json.Number values of a decoded JSON tree,
// in place, with int64 when integral and float64 otherwise.
func NormalizeNumbers(v interface{}) interface{} {
	switch val := v.(type) {
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return n
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case []interface{}:
		for i := range val {
			val[i] = NormalizeNumbers(val[i])
		}
		return val
	case map[string]interface{}:
		for k := range val {
			val[k] = NormalizeNumbers(val[k])
		}
		return val
	default:
		return v
	}
}

// CheckLimits rejects a negative first or last and, when maxPageSize is
// positive, one above it. Zero passes and means absent.
func (r PageRequest) CheckLimits(maxPageSize int) error {
	for _, arg := range []struct {
		name string
		n    *int
	}{{"first", r.First}, {"last", r.Last}} {
		if arg.n == nil {
			continue
		}
		if *arg.n < 0 {
			return fmt.Errorf("%w: %s cannot be negative", ErrInvalidArgument, arg.name)
		}
		if maxPageSize > 0 && *arg.n > maxPageSize {
			return fmt.Errorf("%w: %s cannot exceed %d", ErrInvalidArgument, arg.name, maxPageSize)
		}
	}
	return nil
}
