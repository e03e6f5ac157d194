package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ------------------------------
// Response Types
// ------------------------------

// Response is an untyped JSON object returned verbatim by the Witness API.
// Numbers are decoded as json.Number so tree sizes and leaf indexes keep
// their full precision.
type Response = map[string]any

// ErrNotObject is returned when a body is valid JSON but not an object.
var ErrNotObject = errors.New("json body is not an object")

// DecodeObject decodes body as a single JSON object.
func DecodeObject(body []byte) (Response, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing data after json object")
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return obj, nil
}
