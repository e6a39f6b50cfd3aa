package jnibridge

import "math"

// ValueKind tags the lane a Value carries.
type ValueKind uint8

const (
	KindBool ValueKind = iota
	KindByte
	KindChar
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindRef
)

// Value is the runtime's generic call-argument encoding: one tagged slot
// per argument. Numeric payloads are flattened into a single 64-bit lane;
// object arguments ride in the Ref lane.
type Value struct {
	Bits uint64
	Ref  Ref
	Kind ValueKind
}

func BoolValue(v bool) Value {
	var bits uint64
	if v {
		bits = 1
	}
	return Value{Kind: KindBool, Bits: bits}
}

func ByteValue(v int8) Value {
	return Value{Kind: KindByte, Bits: uint64(uint8(v))}
}

func CharValue(v uint16) Value {
	return Value{Kind: KindChar, Bits: uint64(v)}
}

func ShortValue(v int16) Value {
	return Value{Kind: KindShort, Bits: uint64(uint16(v))}
}

func IntValue(v int32) Value {
	return Value{Kind: KindInt, Bits: uint64(uint32(v))}
}

func LongValue(v int64) Value {
	return Value{Kind: KindLong, Bits: uint64(v)}
}

func FloatValue(v float32) Value {
	return Value{Kind: KindFloat, Bits: uint64(math.Float32bits(v))}
}

func DoubleValue(v float64) Value {
	return Value{Kind: KindDouble, Bits: math.Float64bits(v)}
}

func RefValue(v Ref) Value {
	return Value{Kind: KindRef, Ref: v}
}

// Int returns the signed 32-bit lane.
func (v Value) Int() int32 { return int32(uint32(v.Bits)) }

// Long returns the signed 64-bit lane.
func (v Value) Long() int64 { return int64(v.Bits) }

// Float returns the 32-bit float lane.
func (v Value) Float() float32 { return math.Float32frombits(uint32(v.Bits)) }

// Double returns the 64-bit float lane.
func (v Value) Double() float64 { return math.Float64frombits(v.Bits) }

// Bool returns the boolean lane.
func (v Value) Bool() bool { return v.Bits != 0 }
