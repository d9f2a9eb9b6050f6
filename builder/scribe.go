package builder

import (
	"io"

	"github.com/JulianSchmid/protobin/wire"
)

// FormatFunc writes a field's textual representation to w, the way a
// caller's Display or Debug formatter would. AddDisplay/AddDebug run it
// twice — once to measure, once to emit — so its output must be
// byte-for-byte identical across both calls; see countingWriter for the
// byte-counting measurement technique this relies on.
type FormatFunc func(w io.Writer) error

// Scribe is the capability set a caller-supplied serialization routine is
// written generic over. LengthWriter and SerializationWriter both
// implement it: running the same routine against each, in order, is how
// the two-pass encoder works. Scribe has no higher-kinded-generic
// machinery behind it — just an interface each pass implements with a
// different effect (accumulate lengths vs. emit bytes).
type Scribe interface {
	AddBool(f wire.FieldNumber, v bool)
	AddUint32(f wire.FieldNumber, v uint32)
	AddInt32(f wire.FieldNumber, v int32)
	AddSint32(f wire.FieldNumber, v int32)
	AddUint64(f wire.FieldNumber, v uint64)
	AddInt64(f wire.FieldNumber, v int64)
	AddSint64(f wire.FieldNumber, v int64)
	AddEnum(f wire.FieldNumber, v int32)
	AddFixed32(f wire.FieldNumber, v uint32)
	AddSfixed32(f wire.FieldNumber, v int32)
	AddFloat(f wire.FieldNumber, v float32)
	AddFixed64(f wire.FieldNumber, v uint64)
	AddSfixed64(f wire.FieldNumber, v int64)
	AddDouble(f wire.FieldNumber, v float64)
	AddString(f wire.FieldNumber, v string)
	AddBytes(f wire.FieldNumber, v []byte)
	AddDisplay(f wire.FieldNumber, format FormatFunc) error
	AddDebug(f wire.FieldNumber, format FormatFunc) error

	// StartSubMessage/EndSubMessage bracket a nested message's fields.
	// The caller must call End with the same FieldNumber it opened with.
	StartSubMessage(f wire.FieldNumber)
	EndSubMessage(f wire.FieldNumber)

	// StartPacked/EndPacked bracket a packed repeated scalar field. The
	// returned PackedScribe exposes the subset of Scribe that doesn't
	// take a field number, since every element shares the enclosing tag.
	StartPacked(f wire.FieldNumber) PackedScribe
	EndPacked(f wire.FieldNumber)
}

// PackedScribe is the reduced API exposed inside a packed repeated field:
// identical to Scribe's scalar add methods, but without field numbers,
// since every element shares the tag written when the region was opened.
type PackedScribe interface {
	AddBool(v bool)
	AddUint32(v uint32)
	AddInt32(v int32)
	AddSint32(v int32)
	AddUint64(v uint64)
	AddInt64(v int64)
	AddSint64(v int64)
	AddEnum(v int32)
	AddFixed32(v uint32)
	AddSfixed32(v int32)
	AddFloat(v float32)
	AddFixed64(v uint64)
	AddSfixed64(v int64)
	AddDouble(v float64)
}

// countingWriter discards every byte written to it and sums their count,
// the byte-counting sink AddDisplay/AddDebug measurement relies on.
type countingWriter struct {
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	c.n += len(p)
	return len(p), nil
}

// encoderWriter adapts a *wire.Encoder to io.Writer, so a FormatFunc can
// stream straight into the serialization pass's output buffer instead of
// being buffered and copied.
type encoderWriter struct {
	enc *wire.Encoder
}

func (w encoderWriter) Write(p []byte) (int, error) {
	w.enc.AddRaw(p)
	return len(p), nil
}
