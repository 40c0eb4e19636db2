package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Object is a JSON object that remembers member order. The standard
// map[string]interface{} forgets insertion order and encoding/json silently
// re-sorts map keys on marshal, which would make key ordering an accident of
// the encoder rather than a property of the document. Object keeps the order
// explicit so normalization can be observed and tested on the in-memory tree.
type Object struct {
	keys   []string
	values map[string]interface{}
}

// NewObject creates an empty Object.
func NewObject() *Object {
	return &Object{values: make(map[string]interface{})}
}

// Len returns the number of members.
func (o *Object) Len() int {
	return len(o.keys)
}

// Keys returns the member keys in document order.
// The returned slice is shared; callers must not modify it.
func (o *Object) Keys() []string {
	return o.keys
}

// Get returns the value for key and whether the key is present.
func (o *Object) Get(key string) (interface{}, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Set adds or replaces a member. New keys append at the end.
func (o *Object) Set(key string, value interface{}) {
	if o.values == nil {
		o.values = make(map[string]interface{})
	}
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Delete removes a member if present. Missing keys are a no-op.
func (o *Object) Delete(key string) {
	if _, exists := o.values[key]; !exists {
		return
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// SortKeys reorders the members ascending by byte-wise key comparison.
// Values are untouched.
func (o *Object) SortKeys() {
	sort.Strings(o.keys)
}

// MarshalJSON writes the members in their stored order. HTML-significant
// characters and non-ASCII text are emitted unescaped.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := marshalNoEscape(k)
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		valJSON, err := marshalNoEscape(o.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(valJSON)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalNoEscape is json.Marshal with HTML escaping disabled. Nested Objects
// route through MarshalJSON, so escaping stays off at every depth.
func marshalNoEscape(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// DecodeJSON parses JSON into a tree of *Object, []interface{}, string, bool,
// json.Number and nil. Numbers keep their source text so re-encoding is
// byte-faithful (1.0 stays 1.0, not 1).
func DecodeJSON(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	value, err := decodeValue(dec)
	if err != nil {
		return nil, locateError(data, dec.InputOffset(), err)
	}

	// Anything after the first value is a malformed document.
	if tok, err := dec.Token(); err == nil {
		return nil, locateError(data, dec.InputOffset(), fmt.Errorf("unexpected trailing token %v", tok))
	}
	return value, nil
}

func decodeValue(dec *json.Decoder) (interface{}, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t.String())
		}
	default:
		// string, bool, json.Number or nil.
		return tok, nil
	}
}

func decodeObject(dec *json.Decoder) (*Object, error) {
	obj := NewObject()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string: %v", keyTok)
		}
		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		obj.Set(key, value)
	}
	// Consume the closing '}'.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) ([]interface{}, error) {
	arr := []interface{}{}
	for dec.More() {
		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, value)
	}
	// Consume the closing ']'.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}

// locateError wraps a decode error with the line:column of the given byte
// offset, since json.Decoder only reports offsets for syntax errors.
func locateError(data []byte, offset int64, err error) error {
	if syn, ok := err.(*json.SyntaxError); ok {
		offset = syn.Offset
	}
	line, col := offsetPosition(data, offset)
	return fmt.Errorf("line %d, column %d: %w", line, col, err)
}

func offsetPosition(data []byte, offset int64) (line, col int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	line, col = 1, 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
