// Package classify turns loosely formatted remote responses into typed values.
//
// Remote payloads are often wrapped in script callbacks such as
// jQuery123({...}). Extraction is best effort: the first '{' and the first
// '}' after it delimit the object, which is then decoded.
package classify

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var errNoObject = errors.New("no json object found")

// ParseError carries the raw text of a response that could not be decoded.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse response %q: %v", truncate(e.Raw, 200), e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Payload is a decoded flat response object.
type Payload map[string]any

// Parse extracts and decodes the object embedded in raw.
func Parse(raw string) (Payload, error) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return nil, &ParseError{Raw: raw, Err: errNoObject}
	}
	end := strings.IndexByte(raw[start:], '}')
	if end < 0 {
		return nil, &ParseError{Raw: raw, Err: errNoObject}
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(raw[start : start+end+1])))
	dec.UseNumber()

	var payload Payload
	if err := dec.Decode(&payload); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}

	return payload, nil
}

func (p Payload) String(key string) string {
	switch v := p[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func (p Payload) Int(key string) (int, bool) {
	switch v := p[key].(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func (p Payload) Bool(key string) bool {
	switch v := p[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	default:
		return false
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
