// Package attr provides typed key/value attributes for spans and
// resources.
package attr

import (
	"fmt"
	"math"
	"time"
)

// Attr is a key-value pair attached to a span, event, or resource.
type Attr struct {
	Key   string
	Value Value
}

// String creates a string attribute.
func String(key, value string) Attr {
	return Attr{Key: key, Value: StringValue(value)}
}

// Int creates an int attribute (stored as int64).
func Int(key string, value int) Attr {
	return Attr{Key: key, Value: Int64Value(int64(value))}
}

// Int64 creates an int64 attribute.
func Int64(key string, value int64) Attr {
	return Attr{Key: key, Value: Int64Value(value)}
}

// Float64 creates a float64 attribute.
func Float64(key string, value float64) Attr {
	return Attr{Key: key, Value: Float64Value(value)}
}

// Bool creates a bool attribute.
func Bool(key string, value bool) Attr {
	return Attr{Key: key, Value: BoolValue(value)}
}

// Duration creates a time.Duration attribute.
func Duration(key string, value time.Duration) Attr {
	return Attr{Key: key, Value: DurationValue(value)}
}

// Kind represents the type of a Value.
type Kind int

const (
	KindString Kind = iota
	KindInt64
	KindFloat64
	KindBool
	KindDuration
)

// Value is a union type holding any attribute value. Numeric kinds are
// stored inline without allocation.
type Value struct {
	kind Kind
	num  uint64
	str  string
}

// Kind returns the type of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// StringValue creates a Value from a string.
func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

// Int64Value creates a Value from an int64.
func Int64Value(n int64) Value {
	return Value{kind: KindInt64, num: uint64(n)}
}

// Float64Value creates a Value from a float64.
func Float64Value(f float64) Value {
	return Value{kind: KindFloat64, num: math.Float64bits(f)}
}

// BoolValue creates a Value from a bool.
func BoolValue(b bool) Value {
	var n uint64
	if b {
		n = 1
	}
	return Value{kind: KindBool, num: n}
}

// DurationValue creates a Value from a time.Duration.
func DurationValue(d time.Duration) Value {
	return Value{kind: KindDuration, num: uint64(d)}
}

// AsString returns the string value, or "" for other kinds.
func (v Value) AsString() string {
	return v.str
}

// AsInt64 returns the int64 value, or 0 for other kinds.
func (v Value) AsInt64() int64 {
	if v.kind != KindInt64 {
		return 0
	}
	return int64(v.num)
}

// AsFloat64 returns the float64 value, or 0 for other kinds.
func (v Value) AsFloat64() float64 {
	if v.kind != KindFloat64 {
		return 0
	}
	return math.Float64frombits(v.num)
}

// AsBool returns the bool value, or false for other kinds.
func (v Value) AsBool() bool {
	return v.kind == KindBool && v.num == 1
}

// AsDuration returns the duration value, or 0 for other kinds.
func (v Value) AsDuration() time.Duration {
	if v.kind != KindDuration {
		return 0
	}
	return time.Duration(v.num)
}

// Text renders the value for logs and error messages.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt64:
		return fmt.Sprintf("%d", int64(v.num))
	case KindFloat64:
		return fmt.Sprintf("%g", math.Float64frombits(v.num))
	case KindBool:
		return fmt.Sprintf("%t", v.num == 1)
	case KindDuration:
		return time.Duration(v.num).String()
	}
	return ""
}
