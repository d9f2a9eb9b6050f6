package wire

import (
	"math"
	"unicode/utf8"
)

func isValidUTF8(b []byte) bool {
	return utf8.Valid(b)
}

// Value is a tagged union of the wire payloads the format can carry: a
// raw varint, a raw 32-bit word, a raw 64-bit word, or a borrowed
// length-delimited byte span. It carries no schema knowledge of its own —
// narrowing it to a concrete proto type (TryAsUint32, TryAsFloat, ...) is
// how a caller reinterprets the raw bits.
type Value struct {
	wt   WireType
	vi   uint64 // Varint payload
	i32  uint32 // I32 payload
	i64  uint64 // I64 payload
	len  []byte // Len payload (borrowed)
	none bool   // true for SGroup/EGroup: no payload at all
}

// WireType reports which wire type this value carries.
func (v Value) WireType() WireType {
	return v.wt
}

// VarintValue wraps a raw varint payload.
func VarintValue(raw uint64) Value { return Value{wt: Varint, vi: raw} }

// I32Value wraps a raw 32-bit little-endian payload.
func I32Value(raw uint32) Value { return Value{wt: I32, i32: raw} }

// I64Value wraps a raw 64-bit little-endian payload.
func I64Value(raw uint64) Value { return Value{wt: I64, i64: raw} }

// LenValue wraps a borrowed length-delimited byte span.
func LenValue(b []byte) Value { return Value{wt: Len, len: b} }

// GroupValue wraps a presence-only SGROUP/EGROUP marker.
func GroupValue(wt WireType) Value { return Value{wt: wt, none: true} }

func (v Value) wireTypeErr(want WireType) error {
	return &UnexpectedWireTypeError{Expected: want, Actual: v.wt}
}

// TryAsBool narrows a Varint value to bool. It fails if the wire type
// isn't Varint, or if the raw value is neither 0 nor 1.
func (v Value) TryAsBool() (bool, error) {
	if v.wt != Varint {
		return false, v.wireTypeErr(Varint)
	}
	switch v.vi {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, &VarintTooWideError{Raw: v.vi}
	}
}

// TryAsUint32 narrows a Varint value to uint32. It fails if the raw value
// exceeds 2^32-1.
func (v Value) TryAsUint32() (uint32, error) {
	if v.wt != Varint {
		return 0, v.wireTypeErr(Varint)
	}
	if v.vi > math.MaxUint32 {
		return 0, &VarintTooWideError{Raw: v.vi}
	}
	return uint32(v.vi), nil
}

// TryAsInt32 narrows a Varint value to int32 by truncating the raw 64-bit
// varint to its low 32 bits, the way a negative int32 (sign-extended to a
// 10-byte varint on the wire) is meant to round-trip. Unlike TryAsUint32,
// this accepts any raw 64-bit value rather than bounds-checking it, so a
// wire-negative int32 decodes successfully instead of failing as "too
// wide". See DESIGN.md for the reasoning.
func (v Value) TryAsInt32() (int32, error) {
	if v.wt != Varint {
		return 0, v.wireTypeErr(Varint)
	}
	return int32(uint32(v.vi)), nil
}

// TryAsSint32 narrows a Varint value to int32 via the ZigZag transform. It
// fails if the raw value exceeds 2^32-1.
func (v Value) TryAsSint32() (int32, error) {
	if v.wt != Varint {
		return 0, v.wireTypeErr(Varint)
	}
	if v.vi > math.MaxUint32 {
		return 0, &VarintTooWideError{Raw: v.vi}
	}
	return ZigZagDecode32(uint32(v.vi)), nil
}

// TryAsUint64 narrows a Varint value to uint64.
func (v Value) TryAsUint64() (uint64, error) {
	if v.wt != Varint {
		return 0, v.wireTypeErr(Varint)
	}
	return v.vi, nil
}

// TryAsInt64 narrows a Varint value to int64 (bitwise reinterpretation).
func (v Value) TryAsInt64() (int64, error) {
	if v.wt != Varint {
		return 0, v.wireTypeErr(Varint)
	}
	return int64(v.vi), nil
}

// TryAsSint64 narrows a Varint value to int64 via the ZigZag transform.
func (v Value) TryAsSint64() (int64, error) {
	if v.wt != Varint {
		return 0, v.wireTypeErr(Varint)
	}
	return ZigZagDecode64(v.vi), nil
}

// TryAsEnum narrows a Varint value to int32, per int32 semantics.
func (v Value) TryAsEnum() (int32, error) {
	return v.TryAsInt32()
}

// TryAsFixed32 narrows an I32 value to uint32.
func (v Value) TryAsFixed32() (uint32, error) {
	if v.wt != I32 {
		return 0, v.wireTypeErr(I32)
	}
	return v.i32, nil
}

// TryAsSfixed32 narrows an I32 value to int32.
func (v Value) TryAsSfixed32() (int32, error) {
	if v.wt != I32 {
		return 0, v.wireTypeErr(I32)
	}
	return int32(v.i32), nil
}

// TryAsFloat narrows an I32 value to float32.
func (v Value) TryAsFloat() (float32, error) {
	if v.wt != I32 {
		return 0, v.wireTypeErr(I32)
	}
	return math.Float32frombits(v.i32), nil
}

// TryAsFixed64 narrows an I64 value to uint64.
func (v Value) TryAsFixed64() (uint64, error) {
	if v.wt != I64 {
		return 0, v.wireTypeErr(I64)
	}
	return v.i64, nil
}

// TryAsSfixed64 narrows an I64 value to int64.
func (v Value) TryAsSfixed64() (int64, error) {
	if v.wt != I64 {
		return 0, v.wireTypeErr(I64)
	}
	return int64(v.i64), nil
}

// TryAsDouble narrows an I64 value to float64.
func (v Value) TryAsDouble() (float64, error) {
	if v.wt != I64 {
		return 0, v.wireTypeErr(I64)
	}
	return math.Float64frombits(v.i64), nil
}

// TryAsBytes narrows a Len value to its borrowed byte span.
func (v Value) TryAsBytes() ([]byte, error) {
	if v.wt != Len {
		return nil, v.wireTypeErr(Len)
	}
	return v.len, nil
}

// TryAsString narrows a Len value to a string, failing if the bytes are
// not valid UTF-8.
func (v Value) TryAsString() (string, error) {
	b, err := v.TryAsBytes()
	if err != nil {
		return "", err
	}
	if !isValidUTF8(b) {
		return "", &InvalidUTF8Error{}
	}
	return string(b), nil
}

// TryAsSubMessage narrows a Len value to a nested MessageDecoder, letting
// the caller recurse into it.
func (v Value) TryAsSubMessage() (*MessageDecoder, error) {
	b, err := v.TryAsBytes()
	if err != nil {
		return nil, err
	}
	return NewMessageDecoder(b), nil
}
