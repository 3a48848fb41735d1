package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/alexivanou/geotrip-api/internal/apperr"
)

// DecodeBatch accepts either a single JSON object or a non-empty JSON array of
// objects. Unknown fields are rejected. The boolean reports whether the body
// was an array.
func DecodeBatch[T any](body []byte) ([]T, bool, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, false, apperr.BadRequestf("request body is empty")
	}

	switch trimmed[0] {
	case '{':
		item, err := DecodeObject[T](trimmed)
		if err != nil {
			return nil, false, err
		}
		return []T{item}, false, nil
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, true, apperr.BadRequestf("malformed JSON array")
		}
		if len(raw) == 0 {
			return nil, true, apperr.BadRequestf("request body must not be an empty array")
		}
		items := make([]T, 0, len(raw))
		for i, r := range raw {
			r = bytes.TrimSpace(r)
			if len(r) == 0 || r[0] != '{' {
				return nil, true, apperr.BadRequestf("item %d: expected a JSON object", i)
			}
			item, err := DecodeObject[T](r)
			if err != nil {
				return nil, true, apperr.BadRequestf("item %d: %s", i, apperr.MessageOf(err))
			}
			items = append(items, item)
		}
		return items, true, nil
	default:
		return nil, false, apperr.BadRequestf("request body must be a JSON object or a non-empty array of objects")
	}
}

// DecodeObject strictly decodes a single JSON object into T.
func DecodeObject[T any](body []byte) (T, error) {
	var v T
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return v, apperr.BadRequestf("request body must be a JSON object")
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, apperr.BadRequestf("invalid request body: %s", err.Error())
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return v, apperr.BadRequestf("invalid request body: unexpected trailing data")
	}
	return v, nil
}
