package builder

import (
	"fmt"
	"math"

	"github.com/JulianSchmid/protobin/wire"
)

// LengthWriter is the measurement pass: it implements Scribe by
// accumulating byte counts only — it never touches the MessageBuilder's
// output buffer. Every length-delimited region it opens (sub-message or
// packed field) reserves a slot in the builder's lens, filled in on the
// matching End call.
type LengthWriter struct {
	b *MessageBuilder
}

var _ Scribe = (*LengthWriter)(nil)

func (lw *LengthWriter) add(f wire.FieldNumber, payloadBytes int) {
	lw.b.requireState(stateMeasuring, fmt.Sprintf("Add on field %d", f))
	lw.b.partial += int32(wire.TagSize(f) + payloadBytes)
}

func (lw *LengthWriter) AddBool(f wire.FieldNumber, v bool) {
	lw.add(f, 1)
}

func (lw *LengthWriter) AddUint32(f wire.FieldNumber, v uint32) {
	lw.add(f, wire.SizeVarint32(v))
}

func (lw *LengthWriter) AddInt32(f wire.FieldNumber, v int32) {
	lw.add(f, wire.SizeVarint64(wire.SignExtendInt32(v)))
}

func (lw *LengthWriter) AddSint32(f wire.FieldNumber, v int32) {
	lw.add(f, wire.SizeVarint32(wire.ZigZagEncode32(v)))
}

func (lw *LengthWriter) AddUint64(f wire.FieldNumber, v uint64) {
	lw.add(f, wire.SizeVarint64(v))
}

func (lw *LengthWriter) AddInt64(f wire.FieldNumber, v int64) {
	lw.add(f, wire.SizeVarint64(uint64(v)))
}

func (lw *LengthWriter) AddSint64(f wire.FieldNumber, v int64) {
	lw.add(f, wire.SizeVarint64(wire.ZigZagEncode64(v)))
}

func (lw *LengthWriter) AddEnum(f wire.FieldNumber, v int32) {
	lw.AddInt32(f, v)
}

func (lw *LengthWriter) AddFixed32(f wire.FieldNumber, v uint32) {
	lw.add(f, 4)
}

func (lw *LengthWriter) AddSfixed32(f wire.FieldNumber, v int32) {
	lw.add(f, 4)
}

func (lw *LengthWriter) AddFloat(f wire.FieldNumber, v float32) {
	lw.add(f, 4)
}

func (lw *LengthWriter) AddFixed64(f wire.FieldNumber, v uint64) {
	lw.add(f, 8)
}

func (lw *LengthWriter) AddSfixed64(f wire.FieldNumber, v int64) {
	lw.add(f, 8)
}

func (lw *LengthWriter) AddDouble(f wire.FieldNumber, v float64) {
	lw.add(f, 8)
}

func (lw *LengthWriter) addLenDelimited(f wire.FieldNumber, n int) {
	lw.add(f, wire.SizeVarint64(uint64(n))+n)
}

func (lw *LengthWriter) AddString(f wire.FieldNumber, v string) {
	lw.addLenDelimited(f, len(v))
}

func (lw *LengthWriter) AddBytes(f wire.FieldNumber, v []byte) {
	lw.addLenDelimited(f, len(v))
}

func (lw *LengthWriter) runFormatter(format FormatFunc) (int, error) {
	var cw countingWriter
	if err := format(&cw); err != nil {
		return 0, fmt.Errorf("protobin: formatter failed: %w", err)
	}
	if cw.n > math.MaxInt32 {
		return 0, fmt.Errorf("protobin: formatted output too large: %d bytes", cw.n)
	}
	return cw.n, nil
}

func (lw *LengthWriter) AddDisplay(f wire.FieldNumber, format FormatFunc) error {
	n, err := lw.runFormatter(format)
	if err != nil {
		return err
	}
	lw.addLenDelimited(f, n)
	return nil
}

func (lw *LengthWriter) AddDebug(f wire.FieldNumber, format FormatFunc) error {
	n, err := lw.runFormatter(format)
	if err != nil {
		return err
	}
	lw.addLenDelimited(f, n)
	return nil
}

func (lw *LengthWriter) StartSubMessage(f wire.FieldNumber) {
	lw.b.openRegion(f, regionSubMessage)
}

func (lw *LengthWriter) EndSubMessage(f wire.FieldNumber) {
	lw.b.closeRegion(f, regionSubMessage)
}

func (lw *LengthWriter) StartPacked(f wire.FieldNumber) PackedScribe {
	lw.b.openRegion(f, regionPacked)
	return &packedLengthWriter{b: lw.b}
}

func (lw *LengthWriter) EndPacked(f wire.FieldNumber) {
	lw.b.closeRegion(f, regionPacked)
}

// TopLevelLength returns the total byte length accumulated at the top
// level so far: the exact size pass 2 will produce, once every field has
// been measured. Callers can use it after running their routine against
// the LengthWriter but before Finalize, to pre-size a destination buffer
// or to assert the sum invariant in tests.
func (lw *LengthWriter) TopLevelLength() int32 {
	return lw.b.partial
}

// Finalize asserts the length stack is empty — every Start had a matching
// End — and transitions the builder to the serialization pass, returning
// a SerializationWriter that will consume the lengths just recorded, in
// the same order they were opened.
func (lw *LengthWriter) Finalize() *SerializationWriter {
	if len(lw.b.lenStack) != 0 {
		top := lw.b.lenStack[len(lw.b.lenStack)-1]
		panic(fmt.Sprintf("protobin: Finalize called with an open %s region for field %d (missing End call)", top.kind, top.field))
	}
	lw.b.lensCursor = 0
	lw.b.st = stateSerializing
	return &SerializationWriter{b: lw.b}
}
