// Package tolerant reads loosely shaped third-party JSON.
//
// Fields that appear under different names or at different depths are
// described as an ordered list of JSONPath candidates. The first candidate
// that resolves wins, so each fallback policy can be read (and tested) as
// a single list.
package tolerant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// Decode parses raw JSON into generic maps, slices, strings and float64s.
func Decode(raw []byte) (any, error) {
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// Lookup is an ordered list of compiled JSONPath candidates.
type Lookup struct {
	paths []string
	evals []func(context.Context, interface{}) (interface{}, error)
}

// Compile builds a Lookup from JSONPath expressions such as "$.items".
func Compile(paths ...string) (*Lookup, error) {
	l := &Lookup{paths: paths}
	for _, p := range paths {
		eval, err := jsonpath.New(p)
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", p, err)
		}
		l.evals = append(l.evals, eval)
	}
	return l, nil
}

// MustCompile is like Compile but panics on an invalid expression.
func MustCompile(paths ...string) *Lookup {
	l, err := Compile(paths...)
	if err != nil {
		panic(err)
	}
	return l
}

func (l *Lookup) Paths() []string { return l.paths }

// Find returns the first candidate value accepted by keep.
func (l *Lookup) Find(obj any, keep func(any) bool) (any, bool) {
	for _, eval := range l.evals {
		v, err := eval(context.Background(), obj)
		if err != nil || v == nil {
			continue
		}
		if keep == nil || keep(v) {
			return v, true
		}
	}
	return nil, false
}

// First returns the first candidate that resolves to any non-null value.
func (l *Lookup) First(obj any) (any, bool) {
	return l.Find(obj, nil)
}

// Object returns the first candidate that resolves to a JSON object.
func (l *Lookup) Object(obj any) (map[string]any, bool) {
	v, ok := l.Find(obj, func(v any) bool {
		_, isObj := v.(map[string]any)
		return isObj
	})
	if !ok {
		return nil, false
	}
	return v.(map[string]any), true
}

// String returns the first candidate that is a non-empty string.
func (l *Lookup) String(obj any) (string, bool) {
	v, ok := l.Find(obj, func(v any) bool {
		s, isStr := v.(string)
		return isStr && s != ""
	})
	if !ok {
		return "", false
	}
	return v.(string), true
}

// StringOr is String with a default.
func (l *Lookup) StringOr(obj any, def string) string {
	if s, ok := l.String(obj); ok {
		return s
	}
	return def
}

// Int accepts a JSON number holding a 32-bit integer or a string holding one.
func Int(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) || n < math.MinInt32 || n > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := strconv.ParseInt(n.String(), 10, 32)
		if err != nil {
			return 0, false
		}
		return int(i), true
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 32)
		if err != nil {
			return 0, false
		}
		return int(i), true
	}
	return 0, false
}

// Float accepts JSON numbers only.
func Float(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// Field returns obj[key] when obj is a JSON object.
func Field(obj any, key string) (any, bool) {
	m, ok := obj.(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := m[key]
	return v, ok
}

// IntField reads an integer field, see Int.
func IntField(obj any, key string) (int, bool) {
	v, ok := Field(obj, key)
	if !ok {
		return 0, false
	}
	return Int(v)
}

// StringField returns the field when it is a string.
func StringField(obj any, key string) (string, bool) {
	v, ok := Field(obj, key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
