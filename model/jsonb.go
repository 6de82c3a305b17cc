package model

import (
	"encoding/json"
	"errors"

	"github.com/siherrmann/companygraph/helper"
)

// marshalJSONB converts a value to JSON bytes for a JSONB column
func marshalJSONB(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// unmarshalJSONB converts JSON bytes or strings from a JSONB column into dst.
// A nil value leaves dst untouched.
func unmarshalJSONB(value interface{}, dst interface{}) error {
	if value == nil {
		return nil
	}

	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return helper.NewError("byte assertion", errors.New("type assertion to []byte failed"))
	}

	return json.Unmarshal(b, dst)
}
