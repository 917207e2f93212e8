package lulu

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// node is a JSON object together with the dotted path it was reached by.
// A node for an absent or null object has an empty field map, so lookups on
// it resolve to null instead of failing.
type node struct {
	path   string
	fields map[string]any
}

func newNode(path string, fields map[string]any) node {
	if fields == nil {
		fields = map[string]any{}
	}
	return node{path: path, fields: fields}
}

func (n node) at(key string) string {
	if n.path == "" {
		return key
	}
	return n.path + "." + key
}

// lookup returns the first of keys holding a non-null value. When every
// present key is null the first present one is returned.
func (n node) lookup(keys ...string) (string, any, bool) {
	found := ""
	for _, key := range keys {
		v, ok := n.fields[key]
		if !ok {
			continue
		}
		if v != nil {
			return key, v, true
		}
		if found == "" {
			found = key
		}
	}
	if found != "" {
		return found, nil, true
	}
	return keys[0], nil, false
}

func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case RawJob:
		return m, true
	default:
		return nil, false
	}
}

func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case float64:
		if n != math.Trunc(n) || n < math.MinInt64 || n >= math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	case int32:
		return int64(n), true
	default:
		return 0, false
	}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64, int, int64, int32:
		return "number"
	case []any:
		return "array"
	case map[string]any, RawJob:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// extractor reads typed fields from nodes and keeps the first error it hits.
// Once an error is recorded every further read returns a zero value.
type extractor struct {
	err error
}

func (x *extractor) fail(path string, sentinel error, detail string) {
	if x.err == nil {
		x.err = &TranslationError{Path: path, Err: sentinel, Detail: detail}
	}
}

func (x *extractor) wrongType(path, want string, got any) {
	x.fail(path, ErrWrongType, fmt.Sprintf("want %s, got %s", want, typeName(got)))
}

// object resolves the first present key among keys as a nested object,
// defaulting to an empty object when it is absent or null.
func (x *extractor) object(n node, keys ...string) node {
	key, v, ok := n.lookup(keys...)
	if x.err != nil || !ok || v == nil {
		return newNode(n.at(key), nil)
	}
	m, ok := asObject(v)
	if !ok {
		x.wrongType(n.at(key), "object", v)
		return newNode(n.at(key), nil)
	}
	return newNode(n.at(key), m)
}

// dig walks path one object at a time with an empty default at each hop.
func (x *extractor) dig(n node, path ...string) node {
	for _, key := range path {
		n = x.object(n, key)
	}
	return n
}

func (x *extractor) require(n node, keys ...string) (string, any, bool) {
	key, v, ok := n.lookup(keys...)
	if x.err != nil {
		return key, nil, false
	}
	if !ok {
		x.fail(n.at(key), ErrMissingField, "")
		return key, nil, false
	}
	return key, v, true
}

func (x *extractor) toString(path string, v any) *string {
	if v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		x.wrongType(path, "string", v)
		return nil
	}
	return &s
}

func (x *extractor) toInt(path string, v any) *int64 {
	if v == nil {
		return nil
	}
	i, ok := asInt(v)
	if !ok {
		x.wrongType(path, "integer", v)
		return nil
	}
	return &i
}

// str reads an optional string.
func (x *extractor) str(n node, key string) *string {
	if x.err != nil {
		return nil
	}
	return x.toString(n.at(key), n.fields[key])
}

// requiredStr reads a string whose key must be present; a null value is kept as nil.
func (x *extractor) requiredStr(n node, key string) *string {
	key, v, ok := x.require(n, key)
	if !ok {
		return nil
	}
	return x.toString(n.at(key), v)
}

// nonEmptyStr reads a string that must be present and not null.
func (x *extractor) nonEmptyStr(n node, key string) string {
	key, v, ok := x.require(n, key)
	if !ok {
		return ""
	}
	if v == nil {
		x.fail(n.at(key), ErrMissingField, "value is null")
		return ""
	}
	s := x.toString(n.at(key), v)
	if s == nil {
		return ""
	}
	return *s
}

func (x *extractor) integer(n node, key string) *int64 {
	if x.err != nil {
		return nil
	}
	return x.toInt(n.at(key), n.fields[key])
}

// requiredInt reads an integer that must be present and not null.
func (x *extractor) requiredInt(n node, key string) int64 {
	key, v, ok := x.require(n, key)
	if !ok {
		return 0
	}
	if v == nil {
		x.fail(n.at(key), ErrMissingField, "value is null")
		return 0
	}
	i := x.toInt(n.at(key), v)
	if i == nil {
		return 0
	}
	return *i
}

func (x *extractor) boolean(n node, key string) *bool {
	if x.err != nil {
		return nil
	}
	v := n.fields[key]
	if v == nil {
		return nil
	}
	b, ok := v.(bool)
	if !ok {
		x.wrongType(n.at(key), "boolean", v)
		return nil
	}
	return &b
}

func (x *extractor) integers(n node, key string) []int64 {
	if x.err != nil {
		return nil
	}
	v := n.fields[key]
	if v == nil {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		x.wrongType(n.at(key), "array", v)
		return nil
	}
	out := make([]int64, 0, len(items))
	for i, item := range items {
		id := x.toInt(n.at(key)+"["+strconv.Itoa(i)+"]", item)
		if id == nil {
			if x.err == nil {
				x.fail(n.at(key)+"["+strconv.Itoa(i)+"]", ErrWrongType, "want integer, got null")
			}
			return nil
		}
		out = append(out, *id)
	}
	return out
}

// strings reads either a single string or a list of strings.
func (x *extractor) strings(n node, key string) []string {
	if x.err != nil {
		return nil
	}
	switch v := n.fields[key].(type) {
	case nil:
		return nil
	case string:
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				x.wrongType(n.at(key)+"["+strconv.Itoa(i)+"]", "string", item)
				return nil
			}
			out = append(out, s)
		}
		return out
	default:
		x.wrongType(n.at(key), "string or array", v)
		return nil
	}
}

// objects reads a required list of objects under the first present key.
func (x *extractor) objects(n node, keys ...string) []node {
	key, v, ok := x.require(n, keys...)
	if !ok {
		return nil
	}
	if v == nil {
		x.fail(n.at(key), ErrMissingField, "value is null")
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		if typed, isTyped := v.([]map[string]any); isTyped {
			items = make([]any, len(typed))
			for i := range typed {
				items[i] = typed[i]
			}
		} else {
			x.wrongType(n.at(key), "array", v)
			return nil
		}
	}
	out := make([]node, 0, len(items))
	for i, item := range items {
		path := n.at(key) + "[" + strconv.Itoa(i) + "]"
		m, ok := asObject(item)
		if !ok {
			x.wrongType(path, "object", item)
			return nil
		}
		out = append(out, newNode(path, m))
	}
	return out
}

// raw returns a value verbatim, or nil when absent.
func (x *extractor) raw(n node, key string) any {
	if x.err != nil {
		return nil
	}
	return n.fields[key]
}

// rawObject returns a nested object verbatim, or nil when absent or null.
func (x *extractor) rawObject(n node, key string) any {
	if x.err != nil {
		return nil
	}
	v := n.fields[key]
	if v == nil {
		return nil
	}
	if _, ok := asObject(v); !ok {
		x.wrongType(n.at(key), "object", v)
		return nil
	}
	return v
}

// rawArray returns a nested array verbatim, or nil when absent or null.
func (x *extractor) rawArray(n node, key string) any {
	if x.err != nil {
		return nil
	}
	v := n.fields[key]
	if v == nil {
		return nil
	}
	switch v.(type) {
	case []any, []map[string]any:
		return v
	default:
		x.wrongType(n.at(key), "array", v)
		return nil
	}
}
