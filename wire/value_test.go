package wire_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JulianSchmid/protobin/wire"
)

func TestValue_boolNarrowing(t *testing.T) {
	v, err := wire.VarintValue(0).TryAsBool()
	require.NoError(t, err)
	require.False(t, v)

	v, err = wire.VarintValue(1).TryAsBool()
	require.NoError(t, err)
	require.True(t, v)

	_, err = wire.VarintValue(2).TryAsBool()
	require.Error(t, err)
}

func TestValue_uint32Narrowing(t *testing.T) {
	got, err := wire.VarintValue(math.MaxUint32).TryAsUint32()
	require.NoError(t, err)
	require.Equal(t, uint32(math.MaxUint32), got)

	_, err = wire.VarintValue(math.MaxUint32 + 1).TryAsUint32()
	require.Error(t, err)
	var tooWide *wire.VarintTooWideError
	require.ErrorAs(t, err, &tooWide)
}

func TestValue_int32TruncatesWireNegative(t *testing.T) {
	raw := uint64(int64(int32(-1))) // what the wire actually carries for int32(-1)
	got, err := wire.VarintValue(raw).TryAsInt32()
	require.NoError(t, err)
	require.Equal(t, int32(-1), got)
}

func TestValue_sint32RoundTrip(t *testing.T) {
	for _, v := range []int32{0, 1, -1, 2, -2, math.MaxInt32, math.MinInt32} {
		raw := wire.ZigZagEncode32(v)
		got, err := wire.VarintValue(uint64(raw)).TryAsSint32()
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestValue_sint64RoundTrip(t *testing.T) {
	for _, v := range []int64{0, 1, -1, math.MaxInt64, math.MinInt64} {
		raw := wire.ZigZagEncode64(v)
		got, err := wire.VarintValue(raw).TryAsSint64()
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestValue_int64RoundTrip(t *testing.T) {
	for _, v := range []int64{0, 1, -1, math.MaxInt64, math.MinInt64} {
		got, err := wire.VarintValue(uint64(v)).TryAsInt64()
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestValue_fixed32float(t *testing.T) {
	bits := math.Float32bits(3.5)
	got, err := wire.I32Value(bits).TryAsFloat()
	require.NoError(t, err)
	require.Equal(t, float32(3.5), got)

	u, err := wire.I32Value(0xCAFEBABE).TryAsFixed32()
	require.NoError(t, err)
	require.Equal(t, uint32(0xCAFEBABE), u)
}

func TestValue_fixed64double(t *testing.T) {
	bits := math.Float64bits(2.25)
	got, err := wire.I64Value(bits).TryAsDouble()
	require.NoError(t, err)
	require.Equal(t, 2.25, got)
}

func TestValue_wireTypeMismatch(t *testing.T) {
	_, err := wire.I32Value(0).TryAsUint32()
	require.Error(t, err)
	var mismatch *wire.UnexpectedWireTypeError
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, wire.Varint, mismatch.Expected)
	require.Equal(t, wire.I32, mismatch.Actual)
}

func TestValue_stringAndBytes(t *testing.T) {
	s, err := wire.LenValue([]byte("Greg")).TryAsString()
	require.NoError(t, err)
	require.Equal(t, "Greg", s)

	// empty string narrows cleanly.
	s, err = wire.LenValue(nil).TryAsString()
	require.NoError(t, err)
	require.Equal(t, "", s)

	_, err = wire.LenValue([]byte{0xFF, 0xFE}).TryAsString()
	require.Error(t, err)

	b, err := wire.LenValue([]byte{1, 2, 3}).TryAsBytes()
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, b)
}

func TestValue_subMessage(t *testing.T) {
	e := wire.NewEncoder()
	e.AddTag(1, wire.Varint)
	e.AddVarint64(42)

	dec, err := wire.LenValue(e.Bytes()).TryAsSubMessage()
	require.NoError(t, err)
	rec, ok, err := dec.Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, wire.FieldNumber(1), rec.FieldNumber)
	v, err := rec.Value.TryAsUint64()
	require.NoError(t, err)
	require.Equal(t, uint64(42), v)
}
