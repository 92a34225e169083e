package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

// Decoder turns a response body into v, which must be a pointer.
type Decoder interface {
	Decode(data []byte, v any) error
}

// DecoderFunc adapts a plain func to a [Decoder].
type DecoderFunc func(data []byte, v any) error

func (f DecoderFunc) Decode(data []byte, v any) error { return f(data, v) }

// KeyDecodingStrategy controls how JSON object keys are matched to fields.
type KeyDecodingStrategy int

const (
	// UseDefaultKeys matches keys as they appear in the document.
	UseDefaultKeys KeyDecodingStrategy = iota
	// ConvertFromSnakeCase rewrites snake_case keys to camelCase before
	// matching, so "some_property" fills a field tagged `json:"someProperty"`.
	ConvertFromSnakeCase
)

// JSONDecoder decodes JSON response bodies.
//
// After decoding into a struct, its `validate` tags are checked; a
// missing `validate:"required"` field fails the decode the same way a
// malformed document does.
type JSONDecoder struct {
	Keys KeyDecodingStrategy

	// UseNumber preserves numbers as json.Number instead of float64.
	UseNumber bool

	// DisallowUnknownFields rejects keys with no matching field.
	DisallowUnknownFields bool
}

// NewJSONDecoder returns a JSONDecoder using the given key strategy.
func NewJSONDecoder(keys KeyDecodingStrategy) *JSONDecoder {
	return &JSONDecoder{Keys: keys}
}

// Decode implements [Decoder]. Every failure is a *DecodeError.
func (d *JSONDecoder) Decode(data []byte, v any) error {
	typeName := typeNameOf(v)

	if !gjson.ValidBytes(data) {
		return &DecodeError{Type: typeName, Err: errors.New("invalid JSON document")}
	}

	if d.Keys == ConvertFromSnakeCase {
		data = appendCamelKeys(make([]byte, 0, len(data)), gjson.ParseBytes(data))
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if d.UseNumber {
		dec.UseNumber()
	}
	if d.DisallowUnknownFields {
		dec.DisallowUnknownFields()
	}

	if err := dec.Decode(v); err != nil {
		return &DecodeError{Type: typeName, Field: fieldOf(err), Err: err}
	}

	if err := checkFields(v); err != nil {
		var fields FieldErrors
		if errors.As(err, &fields) && len(fields) > 0 {
			return &DecodeError{Type: typeName, Field: fields[0].Field, Err: fields}
		}
		return &DecodeError{Type: typeName, Err: err}
	}

	return nil
}

// fieldOf pulls the offending field out of encoding/json errors.
func fieldOf(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return typeErr.Field
	}

	// encoding/json reports unknown fields only as text: json: unknown field "x"
	if name, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
		return strings.Trim(name, `"`)
	}

	return ""
}

func typeNameOf(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return "<nil>"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t.String()
}

// appendCamelKeys re-encodes r with every object key converted from
// snake_case. Values other than objects and arrays are copied verbatim.
func appendCamelKeys(buf []byte, r gjson.Result) []byte {
	switch {
	case r.IsObject():
		buf = append(buf, '{')
		first := true
		r.ForEach(func(key, value gjson.Result) bool {
			if !first {
				buf = append(buf, ',')
			}
			first = false

			k, _ := json.Marshal(snakeToCamel(key.String()))
			buf = append(buf, k...)
			buf = append(buf, ':')
			buf = appendCamelKeys(buf, value)

			return true
		})
		return append(buf, '}')

	case r.IsArray():
		buf = append(buf, '[')
		first := true
		r.ForEach(func(_, value gjson.Result) bool {
			if !first {
				buf = append(buf, ',')
			}
			first = false
			buf = appendCamelKeys(buf, value)

			return true
		})
		return append(buf, ']')

	default:
		return append(buf, r.Raw...)
	}
}

// snakeToCamel converts "some_property" to "someProperty". Leading and
// trailing underscores are kept; the first word is left as is and each
// following word is capitalized and lower-cased.
func snakeToCamel(key string) string {
	if !strings.Contains(key, "_") {
		return key
	}

	trimmed := strings.Trim(key, "_")
	if trimmed == "" {
		return key
	}
	lead := key[:strings.Index(key, trimmed)]
	trail := key[len(lead)+len(trimmed):]

	words := strings.Split(trimmed, "_")

	var b strings.Builder
	b.WriteString(lead)
	b.WriteString(words[0])
	for _, w := range words[1:] {
		if w == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(strings.ToLower(w[size:]))
	}
	b.WriteString(trail)

	return b.String()
}
