package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// IDField is the identity field of every document. It is the tie-break key
// of every ordering the pager produces.
const IDField = "id"

var (
	idRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-\.]{1,64}$`)
)

func CheckDocumentID(id string) bool {
	return idRegex.MatchString(id)
}

// User facing document type, represents a JSON object.
//
//	"id" field is reserved for document ID.
type Document map[string]interface{}

func (doc Document) GetID() string {
	if id, ok := doc[IDField].(string); ok {
		return id
	}
	return ""
}

// MissingID reports whether doc has no id of any type.
func (doc Document) MissingID() bool {
	id, ok := doc[IDField]
	return !ok || id == nil || id == ""
}

func (doc Document) SetID(newID string) {
	doc[IDField] = newID
}

func (doc Document) HasKey(key string) bool {
	_, exists := doc[key]
	return exists
}

// Lookup resolves a dotted field path ("address.city") against the document.
func (doc Document) Lookup(path string) (interface{}, bool) {
	if v, ok := doc[path]; ok {
		return v, true
	}

	var cur interface{} = map[string]interface{}(doc)
	for _, part := range strings.Split(path, ".") {
		switch m := cur.(type) {
		case map[string]interface{}:
			v, ok := m[part]
			if !ok {
				return nil, false
			}
			cur = v
		case Document:
			v, ok := m[part]
			if !ok {
				return nil, false
			}
			cur = v
		default:
			return nil, false
		}
	}
	return cur, true
}

func (doc Document) ValidateDocument() error {
	if doc == nil {
		return errors.New("data cannot be nil")
	}

	if idVal, ok := doc[IDField]; ok {
		switch idValue := idVal.(type) {
		case string:
			if idValue == "" {
				return errors.New("data field 'id' cannot be empty")
			}

			if !idRegex.MatchString(idValue) {
				return errors.New("invalid 'id' field: must be 1-64 characters of a-z, A-Z, 0-9, _, ., -")
			}
		case int, int32, int64:
			doc[IDField] = fmt.Sprintf("%d", idValue)
		default:
			return errors.New("data field 'id' must be a string or integer")
		}
	}

	return nil
}
