// Package models holds the value tree produced by the parser.
package models

import (
	"sort"
)

// Kind identifies the variant of a Value.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindFloat
	KindBool
	KindArray
	KindObject
	KindNull
)

var kindNames = [...]string{
	KindString:  "string",
	KindInteger: "integer",
	KindFloat:   "float",
	KindBool:    "bool",
	KindArray:   "array",
	KindObject:  "object",
	KindNull:    "null",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Value is a node of a parsed document. The set of implementations is closed:
// StringValue, IntegerValue, FloatValue, BoolValue, ArrayValue, ObjectValue
// and NullValue.
type Value interface {
	Kind() Kind
	isValue()
}

// StringValue is a string literal, kept verbatim.
type StringValue string

// IntegerValue is a 32-bit integer literal.
type IntegerValue int32

// FloatValue is a 32-bit floating point literal.
type FloatValue float32

// BoolValue is true or false.
type BoolValue bool

// ArrayValue is an ordered sequence of values.
type ArrayValue []Value

// ObjectValue maps unique keys to values. Iteration order is not significant.
type ObjectValue map[string]Value

// NullValue is the null literal.
type NullValue struct{}

func (StringValue) Kind() Kind  { return KindString }
func (IntegerValue) Kind() Kind { return KindInteger }
func (FloatValue) Kind() Kind   { return KindFloat }
func (BoolValue) Kind() Kind    { return KindBool }
func (ArrayValue) Kind() Kind   { return KindArray }
func (ObjectValue) Kind() Kind  { return KindObject }
func (NullValue) Kind() Kind    { return KindNull }

func (StringValue) isValue()  {}
func (IntegerValue) isValue() {}
func (FloatValue) isValue()   {}
func (BoolValue) isValue()    {}
func (ArrayValue) isValue()   {}
func (ObjectValue) isValue()  {}
func (NullValue) isValue()    {}

// Get returns the value stored under key.
func (o ObjectValue) Get(key string) (Value, bool) {
	v, ok := o[key]
	return v, ok
}

// Keys returns the object's keys in sorted order.
func (o ObjectValue) Keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Equal reports whether a and b are structurally identical, variant included:
// IntegerValue(2) and FloatValue(2) are not equal.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}

	switch av := a.(type) {
	case ArrayValue:
		bv := b.(ArrayValue)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case ObjectValue:
		bv := b.(ObjectValue)
		if len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			other, ok := bv[k]
			if !ok || !Equal(v, other) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// ToInterface converts a value tree into plain Go values: map[string]any,
// []any, string, int32, float32, bool and nil.
func ToInterface(v Value) any {
	switch val := v.(type) {
	case StringValue:
		return string(val)
	case IntegerValue:
		return int32(val)
	case FloatValue:
		return float32(val)
	case BoolValue:
		return bool(val)
	case ArrayValue:
		arr := make([]any, len(val))
		for i, elem := range val {
			arr[i] = ToInterface(elem)
		}
		return arr
	case ObjectValue:
		obj := make(map[string]any, len(val))
		for key, elem := range val {
			obj[key] = ToInterface(elem)
		}
		return obj
	default:
		return nil
	}
}
