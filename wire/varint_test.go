package wire_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JulianSchmid/protobin/wire"
)

func TestSizeVarint32_matchesEmittedLength(t *testing.T) {
	values := []uint32{0, 1, 127, 128, 16383, 16384, 2097151, 2097152, 268435455, 268435456, 0xFFFFFFFF}
	for _, v := range values {
		e := wire.NewEncoder()
		e.AddVarint32(v)
		require.Equal(t, wire.SizeVarint32(v), len(e.Bytes()), "value %d", v)
	}
}

func TestSizeVarint64_matchesEmittedLength(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 1 << 35, 1<<63 - 1, 1 << 63, ^uint64(0)}
	for _, v := range values {
		e := wire.NewEncoder()
		e.AddVarint64(v)
		require.Equal(t, wire.SizeVarint64(v), len(e.Bytes()), "value %d", v)
	}
}

func TestTagSize_matchesEmittedTagLength(t *testing.T) {
	for _, f := range []wire.FieldNumber{1, 15, 16, 2047, 2048, 268435455} {
		e := wire.NewEncoder()
		e.AddTag(f, wire.Varint)
		require.Equal(t, wire.TagSize(f), len(e.Bytes()))
	}
}

func TestVarintRoundTrip_u32(t *testing.T) {
	for _, v := range []uint32{0, 1, 42, 300, 1 << 20, 0xFFFFFFFF} {
		e := wire.NewEncoder()
		e.AddVarint32(v)
		c := wire.NewCursor(e.Bytes())
		got, err := c.ReadVarint32()
		require.NoError(t, err)
		require.Equal(t, v, got)
		require.True(t, c.EOF())
	}
}

func TestVarintRoundTrip_u64(t *testing.T) {
	for _, v := range []uint64{0, 1, 42, 1 << 40, ^uint64(0)} {
		e := wire.NewEncoder()
		e.AddVarint64(v)
		c := wire.NewCursor(e.Bytes())
		got, err := c.ReadVarint()
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

// sint32 zigzag round trip for {2,1,0,-1,-2} -> raw {4,2,0,1,3}.
func TestZigZag32_S2table(t *testing.T) {
	cases := []struct {
		signed int32
		raw    uint32
	}{
		{2, 4},
		{1, 2},
		{0, 0},
		{-1, 1},
		{-2, 3},
	}
	for _, c := range cases {
		require.Equal(t, c.raw, wire.ZigZagEncode32(c.signed), "encode %d", c.signed)
		require.Equal(t, c.signed, wire.ZigZagDecode32(c.raw), "decode %d", c.raw)
	}
}

func TestZigZag32_fullSmallRange(t *testing.T) {
	for i := int32(-5); i <= 5; i++ {
		require.Equal(t, i, wire.ZigZagDecode32(wire.ZigZagEncode32(i)))
	}
}

func TestZigZag64_roundTrip(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 2, -2, 1 << 40, -(1 << 40)} {
		require.Equal(t, v, wire.ZigZagDecode64(wire.ZigZagEncode64(v)))
	}
}

func TestZigZag_negativeHasLowBitSet(t *testing.T) {
	require.Equal(t, uint32(1), wire.ZigZagEncode32(-1)&1)
	require.Equal(t, uint64(1), wire.ZigZagEncode64(-1)&1)
}
