// Package builder implements the two-pass protobuf wire encoder: a
// reusable MessageBuilder drives a measurement pass (LengthWriter) that
// records the byte length of every length-delimited region, then a
// serialization pass (SerializationWriter) that emits the final bytes,
// consuming those pre-computed lengths in encounter order. Both passes
// walk the same caller-supplied scribe routine, generic over the Scribe
// interface — this is what lets a length-delimited region's varint-width
// length prefix be written with its true width on the first pass through
// the buffer, with no byte ever shifted afterward.
package builder

import (
	"fmt"

	"github.com/JulianSchmid/protobin/wire"
)

type regionKind uint8

const (
	regionSubMessage regionKind = iota
	regionPacked
)

func (k regionKind) String() string {
	if k == regionPacked {
		return "packed"
	}
	return "sub-message"
}

// lenEntry is one reserved slot in MessageBuilder.lens: the field number
// the region was opened under, and its byte length once pass 1 has closed
// the region.
type lenEntry struct {
	field  wire.FieldNumber
	length int32
}

// stackFrame is one in-flight length-delimited region during pass 1.
type stackFrame struct {
	field         wire.FieldNumber
	kind          regionKind
	slot          int
	parentPartial int32
}

type passState uint8

const (
	stateIdle passState = iota
	stateMeasuring
	stateSerializing
)

// MessageBuilder is a reusable two-pass encoder. Construct one with
// NewMessageBuilder and reuse it across many encodings to amortize
// allocation: Start clears all internal buffers and returns a
// LengthWriter scoped to the new encoding.
//
// Exactly one LengthWriter or SerializationWriter may be alive for a
// given MessageBuilder at a time. Calling Start again invalidates any
// byte slice a prior SerializationWriter.Finalize returned, since it
// aliases the same internal buffer.
type MessageBuilder struct {
	lens     []lenEntry
	lenStack []stackFrame
	enc      wire.Encoder

	partial    int32 // pass-1 running length of the current region
	lensCursor int    // pass-2 index into lens of the next region to open

	generation uint64
	st         passState
}

// NewMessageBuilder returns an empty, ready-to-use MessageBuilder.
func NewMessageBuilder() *MessageBuilder {
	return &MessageBuilder{}
}

// NewMessageBuilderSize returns a MessageBuilder whose output buffer is
// pre-sized to n bytes, for callers with a rough estimate of message size.
func NewMessageBuilderSize(n int) *MessageBuilder {
	b := &MessageBuilder{}
	b.enc = *wire.NewEncoderSize(n)
	return b
}

// Generation returns a counter incremented on every call to Start. Tests
// and debug-mode callers can snapshot it alongside a byte slice returned
// by Finalize to detect use of a stale view after a subsequent Start.
func (b *MessageBuilder) Generation() uint64 {
	return b.generation
}

// Start clears the builder's internal buffers and begins a new encoding,
// returning a LengthWriter for the measurement pass. The caller must run
// its serialization routine against the returned writer, call Finalize to
// get a SerializationWriter, run the *same* routine against that, and
// call Finalize again to get the encoded bytes.
func (b *MessageBuilder) Start() *LengthWriter {
	b.lens = b.lens[:0]
	b.lenStack = b.lenStack[:0]
	b.enc.Reset()
	b.partial = 0
	b.lensCursor = 0
	b.generation++
	b.st = stateMeasuring
	return &LengthWriter{b: b}
}

func (b *MessageBuilder) requireState(want passState, op string) {
	if b.st != want {
		panic(fmt.Sprintf("protobin: %s called outside of its pass (builder state %d)", op, b.st))
	}
}

// openRegion records the tag width into the enclosing region, snapshots
// the running partial sum, reserves a lens slot, and pushes a new stack
// frame. Shared by both sub-messages and packed fields.
func (b *MessageBuilder) openRegion(f wire.FieldNumber, kind regionKind) {
	b.requireState(stateMeasuring, fmt.Sprintf("Start%s(%d)", kind.titleCase(), f))
	b.partial += int32(wire.TagSize(f))
	snapshot := b.partial
	slot := len(b.lens)
	b.lens = append(b.lens, lenEntry{field: f, length: 0})
	b.lenStack = append(b.lenStack, stackFrame{
		field:         f,
		kind:          kind,
		slot:          slot,
		parentPartial: snapshot,
	})
	b.partial = 0
}

// closeRegion pops the frame, asserts it matches, stores the region's
// final length into its lens slot, and restores the enclosing partial sum
// plus the region's own length and the varint width its length prefix
// will occupy in pass 2.
func (b *MessageBuilder) closeRegion(f wire.FieldNumber, kind regionKind) {
	b.requireState(stateMeasuring, fmt.Sprintf("End%s(%d)", kind.titleCase(), f))
	if len(b.lenStack) == 0 {
		panic(fmt.Sprintf("protobin: End%s(%d) called with no matching Start%s", kind.titleCase(), f, kind.titleCase()))
	}
	top := b.lenStack[len(b.lenStack)-1]
	if top.field != f || top.kind != kind {
		panic(fmt.Sprintf("protobin: End%s(%d) does not match the open Start%s(%d)", kind.titleCase(), f, top.kind.titleCase(), top.field))
	}
	b.lenStack = b.lenStack[:len(b.lenStack)-1]

	length := b.partial
	if length < 0 {
		panic(fmt.Sprintf("protobin: region for field %d produced a negative length", f))
	}
	b.lens[top.slot].length = length

	b.partial = top.parentPartial + int32(wire.SizeVarint64(uint64(length))) + length
}

func (k regionKind) titleCase() string {
	if k == regionPacked {
		return "Packed"
	}
	return "SubMessage"
}

// nextLenEntry implements the pass-2 half of the region discipline:
// fetch the next unconsumed lens entry, assert its field number matches
// the open call, and advance the cursor.
func (b *MessageBuilder) nextLenEntry(f wire.FieldNumber, kind regionKind) lenEntry {
	b.requireState(stateSerializing, fmt.Sprintf("Start%s(%d)", kind.titleCase(), f))
	if b.lensCursor >= len(b.lens) {
		panic(fmt.Sprintf("protobin: Start%s(%d) has no corresponding measurement-pass region (passes produced different call sequences)", kind.titleCase(), f))
	}
	e := b.lens[b.lensCursor]
	if e.field != f {
		panic(fmt.Sprintf("protobin: Start%s(%d) does not match the measurement pass's field %d at the same position (passes produced different call sequences)", kind.titleCase(), f, e.field))
	}
	b.lensCursor++
	return e
}
