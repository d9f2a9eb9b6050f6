package wire

import "math/bits"

// SizeVarint32 returns the number of bytes a canonical varint encoding of
// v occupies: ceil(max(1, bitlen(v))/7), capped at 5.
func SizeVarint32(v uint32) int {
	if v == 0 {
		return 1
	}
	return (bits.Len32(v) + 6) / 7
}

// SizeVarint64 returns the number of bytes a canonical varint encoding of
// v occupies: ceil(max(1, bitlen(v))/7), capped at 10.
func SizeVarint64(v uint64) int {
	if v == 0 {
		return 1
	}
	return (bits.Len64(v) + 6) / 7
}

// TagSize returns the byte width of the varint-encoded tag for the given
// field number: SizeVarint32(fieldNumber << 3). The wire-type bits are
// zero in this computation since they never add an extra byte of their
// own (the low 3 bits are absorbed by the field number's own width).
func TagSize(f FieldNumber) int {
	return SizeVarint32(uint32(f) << 3)
}

// ZigZagEncode32 maps a signed 32-bit value onto an unsigned 32-bit value
// such that small-magnitude values (positive or negative) encode as small
// varints: 0,-1,1,-2,2,... -> 0,1,2,3,4,...
func ZigZagEncode32(v int32) uint32 {
	return uint32(v<<1) ^ uint32(v>>31)
}

// ZigZagDecode32 is the inverse of ZigZagEncode32.
func ZigZagDecode32(u uint32) int32 {
	return int32(u>>1) ^ -int32(u&1)
}

// ZigZagEncode64 is the 64-bit analogue of ZigZagEncode32.
func ZigZagEncode64(v int64) uint64 {
	return uint64(v<<1) ^ uint64(v>>63)
}

// ZigZagDecode64 is the inverse of ZigZagEncode64.
func ZigZagDecode64(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

// SignExtendInt32 reinterprets a two's-complement int32 as the 64-bit
// varint raw value the wire format requires: negative values sign-extend
// to all-ones in the high 32 bits, producing a 10-byte varint on the wire.
func SignExtendInt32(v int32) uint64 {
	return uint64(int64(v))
}
