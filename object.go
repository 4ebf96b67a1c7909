// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package sdptransform

import (
	"strconv"
)

// Object is one node of a parsed session description: the session itself,
// a media section, or one entry of a repeated attribute such as rtpmap.
//
// Values are string, int, float64, Object or []Object. Documents decoded from
// JSON carry float64 numbers and []interface{} lists instead; the accessors
// below and the writer accept both shapes.
type Object map[string]interface{}

// Has reports whether key is present and not nil.
func (o Object) Has(key string) bool {
	v, ok := o[key]
	return ok && v != nil
}

// String returns the value stored under key rendered as a string. Numbers are
// formatted the same way the writer formats them.
func (o Object) String(key string) string {
	v, ok := o[key]
	if !ok || v == nil {
		return ""
	}
	return formatValue(v)
}

// Int returns the value stored under key as an int. Strings are parsed, a
// value that is neither numeric nor parsable yields 0.
func (o Object) Int(key string) int {
	n, _ := toInt(o[key])
	return n
}

// Float returns the value stored under key as a float64.
func (o Object) Float(key string) float64 {
	switch v := o[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		n, _ := toInt(v)
		return float64(n)
	}
}

// Object returns the nested object stored under key, or nil.
func (o Object) Object(key string) Object {
	return toObject(o[key])
}

// List returns the repeated attribute stored under key. It never returns nil
// for a present list, and returns nil when key is absent.
func (o Object) List(key string) []Object {
	return toObjects(o[key])
}

// Append adds entry to the list stored under key, creating the list if needed.
func (o Object) Append(key string, entry Object) {
	o[key] = append(o.List(key), entry)
}

// Media returns the media sections of a session.
func (o Object) Media() []Object {
	return o.List("media")
}

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		return int(n), true
	case float32:
		return int(n), true
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

func toObject(v interface{}) Object {
	switch m := v.(type) {
	case Object:
		return m
	case map[string]interface{}:
		return Object(m)
	default:
		return nil
	}
}

func toObjects(v interface{}) []Object {
	switch l := v.(type) {
	case []Object:
		return l
	case []map[string]interface{}:
		out := make([]Object, 0, len(l))
		for _, m := range l {
			out = append(out, Object(m))
		}
		return out
	case []interface{}:
		out := make([]Object, 0, len(l))
		for _, e := range l {
			if m := toObject(e); m != nil {
				out = append(out, m)
			}
		}
		return out
	default:
		return nil
	}
}

// formatValue renders a scalar the way it appears on the wire. Floats use the
// shortest representation so 20 and 29.97 survive a round trip unchanged.
func formatValue(v interface{}) string {
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return n
	case bool:
		return strconv.FormatBool(n)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 32)
	default:
		if i, ok := toInt(n); ok {
			return strconv.Itoa(i)
		}
		return ""
	}
}
