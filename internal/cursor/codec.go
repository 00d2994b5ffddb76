// Package cursor encodes and verifies the opaque position tokens handed out
// with every page edge.
//
// A token is an HS256 JWT without time-based claims, so it never expires.
// The signing key is derived from the configured secret with HKDF-SHA256.
package cursor

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"

	"github.com/golang-jwt/jwt/v5"
	"github.com/syntrixbase/pager/pkg/model"
	"golang.org/x/crypto/hkdf"
)

const keyInfo = "pager cursor v1"

// SortContext is the sort key of the row a cursor anchors.
type SortContext struct {
	Field string
	Value interface{}
}

// Payload is a decoded cursor. ID keeps the Go kind of the row's id.
type Payload struct {
	ID   interface{}
	Sort *SortContext
}

type sortClaim struct {
	Field string          `json:"field"`
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// IDType is omitted for string ids.
type claims struct {
	ID     json.RawMessage `json:"_id"`
	IDType string          `json:"idType,omitempty"`
	Sort   *sortClaim      `json:"sort,omitempty"`
	jwt.RegisteredClaims
}

// Codec signs and verifies cursors with a single key.
// It holds no mutable state and is safe for concurrent use.
type Codec struct {
	key    []byte
	parser *jwt.Parser
}

// NewCodec derives the signing key from secret.
func NewCodec(secret string) *Codec {
	key := make([]byte, sha256.Size)
	// HKDF-SHA256 can produce up to 255*32 bytes, a single block never fails.
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo)), key); err != nil {
		panic(fmt.Sprintf("cursor: derive key: %v", err))
	}

	return &Codec{
		key: key,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
			jwt.WithStrictDecoding(),
		),
	}
}

// Encode returns a signed cursor for the row with the given id.
// sort is nil when the page is not sorted.
func (c *Codec) Encode(id interface{}, sort *SortContext) (string, error) {
	idType, rawID, err := encodeValue(id)
	if err != nil {
		return "", fmt.Errorf("encode cursor id: %w", err)
	}
	if idType == typeNull || id == "" {
		return "", fmt.Errorf("encode cursor: missing id")
	}
	if idType == typeString {
		idType = ""
	}

	cl := claims{ID: rawID, IDType: idType}
	if sort != nil {
		typ, raw, err := encodeValue(sort.Value)
		if err != nil {
			return "", fmt.Errorf("encode cursor for %v: %w", id, err)
		}
		cl.Sort = &sortClaim{Field: sort.Field, Type: typ, Value: raw}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, cl)
	return token.SignedString(c.key)
}

// Decode verifies token and returns its payload.
// Every failure is reported as model.ErrInvalidCursor.
func (c *Codec) Decode(token string) (*Payload, error) {
	cl := &claims{}
	parsed, err := c.parser.ParseWithClaims(token, cl, func(*jwt.Token) (interface{}, error) {
		return c.key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidCursor, err)
	}
	if !parsed.Valid || len(cl.ID) == 0 || cl.IDType == typeNull {
		return nil, model.ErrInvalidCursor
	}
	idType := cl.IDType
	if idType == "" {
		idType = typeString
	}
	id, err := decodeValue(idType, cl.ID)
	if err != nil || id == "" {
		return nil, model.ErrInvalidCursor
	}

	p := &Payload{ID: id}
	if cl.Sort != nil {
		if cl.Sort.Field == "" {
			return nil, model.ErrInvalidCursor
		}
		v, err := decodeValue(cl.Sort.Type, cl.Sort.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrInvalidCursor, err)
		}
		p.Sort = &SortContext{Field: cl.Sort.Field, Value: v}
	}
	return p, nil
}
