package wire_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JulianSchmid/protobin/wire"
)

func TestEncoder_fixed32_fixed64_roundTrip(t *testing.T) {
	e := wire.NewEncoder()
	e.AddFixed32(0x11223344)
	e.AddFixed64(0x0123456789ABCDEF)

	c := wire.NewCursor(e.Bytes())
	f32, err := c.ReadFixed32()
	require.NoError(t, err)
	require.Equal(t, uint32(0x11223344), f32)

	f64, err := c.ReadFixed64()
	require.NoError(t, err)
	require.Equal(t, uint64(0x0123456789ABCDEF), f64)
	require.True(t, c.EOF())
}

// fixed32 field 1 value 0x11223344 -> 0D 44 33 22 11.
func TestS6_fixed32Field(t *testing.T) {
	e := wire.NewEncoder()
	e.AddTag(1, wire.I32)
	e.AddFixed32(0x11223344)
	require.Equal(t, []byte{0x0D, 0x44, 0x33, 0x22, 0x11}, e.Bytes())
}

// field 1 value -1 (int32) sign-extends to a 10-byte varint.
func TestS3_negativeInt32SignExtends(t *testing.T) {
	e := wire.NewEncoder()
	e.AddTag(1, wire.Varint)
	e.AddVarint64(uint64(int64(int32(-1))))
	require.Equal(t, []byte{
		0x08,
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01,
	}, e.Bytes())
}

func TestEncoder_bool(t *testing.T) {
	e := wire.NewEncoder()
	e.AddBool(true)
	e.AddBool(false)
	require.Equal(t, []byte{1, 0}, e.Bytes())
}

func TestCursor_shortBuffer(t *testing.T) {
	c := wire.NewCursor([]byte{0x80}) // continuation bit set, no following byte
	_, err := c.ReadVarint()
	require.ErrorIs(t, err, wire.ErrShortBuffer)

	c2 := wire.NewCursor([]byte{1, 2})
	_, err = c2.ReadFixed32()
	require.ErrorIs(t, err, wire.ErrShortBuffer)
}

func TestCursor_takeNDoesNotAdvanceOnFailure(t *testing.T) {
	c := wire.NewCursor([]byte{1, 2, 3})
	_, err := c.TakeN(10)
	require.Error(t, err)
	require.Equal(t, 3, c.Len())
}

// an overlong varint fails with ErrVarintOverflow.
func TestS7_overlongVarintOverflow(t *testing.T) {
	input := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	c := wire.NewCursor(input)
	_, err := c.ReadVarint()
	require.ErrorIs(t, err, wire.ErrVarintOverflow)
}

func TestCursor_varint32RejectsSixthContinuationByte(t *testing.T) {
	// Five continuation bytes followed by a terminal 6th byte: valid as a
	// 64-bit varint but too wide for the 32-bit fast path.
	input := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01}
	c := wire.NewCursor(input)
	_, err := c.ReadVarint32()
	require.ErrorIs(t, err, wire.ErrVarintOverflow)
}
