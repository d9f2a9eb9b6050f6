package builder

import (
	"fmt"
	"math"

	"github.com/JulianSchmid/protobin/wire"
)

// SerializationWriter is the emission pass: it implements Scribe
// by writing tag and payload bytes straight to the MessageBuilder's
// output buffer. Every length-delimited region it opens consumes the
// next unconsumed entry in the builder's lens, in the same order the
// measurement pass produced them — see builder.nextLenEntry.
type SerializationWriter struct {
	b *MessageBuilder
}

var _ Scribe = (*SerializationWriter)(nil)

func (sw *SerializationWriter) tag(f wire.FieldNumber, wt wire.WireType) {
	sw.b.requireState(stateSerializing, fmt.Sprintf("Add on field %d", f))
	sw.b.enc.AddTag(f, wt)
}

func (sw *SerializationWriter) AddBool(f wire.FieldNumber, v bool) {
	sw.tag(f, wire.Varint)
	sw.b.enc.AddBool(v)
}

func (sw *SerializationWriter) AddUint32(f wire.FieldNumber, v uint32) {
	sw.tag(f, wire.Varint)
	sw.b.enc.AddVarint32(v)
}

func (sw *SerializationWriter) AddInt32(f wire.FieldNumber, v int32) {
	sw.tag(f, wire.Varint)
	sw.b.enc.AddVarint64(wire.SignExtendInt32(v))
}

func (sw *SerializationWriter) AddSint32(f wire.FieldNumber, v int32) {
	sw.tag(f, wire.Varint)
	sw.b.enc.AddVarint32(wire.ZigZagEncode32(v))
}

func (sw *SerializationWriter) AddUint64(f wire.FieldNumber, v uint64) {
	sw.tag(f, wire.Varint)
	sw.b.enc.AddVarint64(v)
}

func (sw *SerializationWriter) AddInt64(f wire.FieldNumber, v int64) {
	sw.tag(f, wire.Varint)
	sw.b.enc.AddVarint64(uint64(v))
}

func (sw *SerializationWriter) AddSint64(f wire.FieldNumber, v int64) {
	sw.tag(f, wire.Varint)
	sw.b.enc.AddVarint64(wire.ZigZagEncode64(v))
}

func (sw *SerializationWriter) AddEnum(f wire.FieldNumber, v int32) {
	sw.AddInt32(f, v)
}

func (sw *SerializationWriter) AddFixed32(f wire.FieldNumber, v uint32) {
	sw.tag(f, wire.I32)
	sw.b.enc.AddFixed32(v)
}

func (sw *SerializationWriter) AddSfixed32(f wire.FieldNumber, v int32) {
	sw.tag(f, wire.I32)
	sw.b.enc.AddFixed32(uint32(v))
}

func (sw *SerializationWriter) AddFloat(f wire.FieldNumber, v float32) {
	sw.tag(f, wire.I32)
	sw.b.enc.AddFixed32(math.Float32bits(v))
}

func (sw *SerializationWriter) AddFixed64(f wire.FieldNumber, v uint64) {
	sw.tag(f, wire.I64)
	sw.b.enc.AddFixed64(v)
}

func (sw *SerializationWriter) AddSfixed64(f wire.FieldNumber, v int64) {
	sw.tag(f, wire.I64)
	sw.b.enc.AddFixed64(uint64(v))
}

func (sw *SerializationWriter) AddDouble(f wire.FieldNumber, v float64) {
	sw.tag(f, wire.I64)
	sw.b.enc.AddFixed64(math.Float64bits(v))
}

func (sw *SerializationWriter) AddString(f wire.FieldNumber, v string) {
	sw.tag(f, wire.Len)
	sw.b.enc.AddVarint64(uint64(len(v)))
	sw.b.enc.AddRaw([]byte(v))
}

func (sw *SerializationWriter) AddBytes(f wire.FieldNumber, v []byte) {
	sw.tag(f, wire.Len)
	sw.b.enc.AddVarint64(uint64(len(v)))
	sw.b.enc.AddRaw(v)
}

func (sw *SerializationWriter) runAndEmit(f wire.FieldNumber, format FormatFunc) error {
	var cw countingWriter
	if err := format(&cw); err != nil {
		return fmt.Errorf("protobin: formatter failed: %w", err)
	}
	if cw.n > math.MaxInt32 {
		return fmt.Errorf("protobin: formatted output too large: %d bytes", cw.n)
	}

	sw.tag(f, wire.Len)
	sw.b.enc.AddVarint64(uint64(cw.n))

	before := sw.b.enc.Len()
	if err := format(encoderWriter{enc: &sw.b.enc}); err != nil {
		return fmt.Errorf("protobin: formatter failed: %w", err)
	}
	if written := sw.b.enc.Len() - before; written != cw.n {
		panic(fmt.Sprintf("protobin: formatter for field %d wrote %d bytes on emission but %d on measurement (non-deterministic formatter)", f, written, cw.n))
	}
	return nil
}

func (sw *SerializationWriter) AddDisplay(f wire.FieldNumber, format FormatFunc) error {
	return sw.runAndEmit(f, format)
}

func (sw *SerializationWriter) AddDebug(f wire.FieldNumber, format FormatFunc) error {
	return sw.runAndEmit(f, format)
}

func (sw *SerializationWriter) StartSubMessage(f wire.FieldNumber) {
	e := sw.b.nextLenEntry(f, regionSubMessage)
	sw.tag(f, wire.Len)
	sw.b.enc.AddVarint32(uint32(e.length))
}

func (sw *SerializationWriter) EndSubMessage(f wire.FieldNumber) {
	// No-op in pass 2: the region's bytes were already emitted inline as
	// the caller's routine made further Add*/Start* calls after Start.
}

func (sw *SerializationWriter) StartPacked(f wire.FieldNumber) PackedScribe {
	e := sw.b.nextLenEntry(f, regionPacked)
	sw.tag(f, wire.Len)
	sw.b.enc.AddVarint32(uint32(e.length))
	return &packedSerializationWriter{b: sw.b}
}

func (sw *SerializationWriter) EndPacked(f wire.FieldNumber) {
	// No-op in pass 2, same as EndSubMessage.
}

// Finalize asserts every lens entry pass 1 recorded was consumed by a
// matching Start call in pass 2, then returns a view of the encoded
// bytes. The returned slice aliases the builder's internal buffer and is
// invalidated by the next call to MessageBuilder.Start.
func (sw *SerializationWriter) Finalize() []byte {
	if sw.b.lensCursor != len(sw.b.lens) {
		panic(fmt.Sprintf("protobin: Finalize called after consuming %d of %d measured regions (passes produced different call sequences)", sw.b.lensCursor, len(sw.b.lens)))
	}
	sw.b.st = stateIdle
	return sw.b.enc.Bytes()
}
