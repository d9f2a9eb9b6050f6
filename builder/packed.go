package builder

import (
	"math"

	"github.com/JulianSchmid/protobin/wire"
)

// packedLengthWriter is the measurement-pass view inside a packed region
// it increments the running partial sum by payload width only —
// no per-element tag, since every element shares the tag the enclosing
// StartPacked call already charged to the parent region.
type packedLengthWriter struct {
	b *MessageBuilder
}

var _ PackedScribe = (*packedLengthWriter)(nil)

func (p *packedLengthWriter) AddBool(v bool) {
	p.b.partial += 1
}

func (p *packedLengthWriter) AddUint32(v uint32) {
	p.b.partial += int32(wire.SizeVarint32(v))
}

func (p *packedLengthWriter) AddInt32(v int32) {
	p.b.partial += int32(wire.SizeVarint64(wire.SignExtendInt32(v)))
}

func (p *packedLengthWriter) AddSint32(v int32) {
	p.b.partial += int32(wire.SizeVarint32(wire.ZigZagEncode32(v)))
}

func (p *packedLengthWriter) AddUint64(v uint64) {
	p.b.partial += int32(wire.SizeVarint64(v))
}

func (p *packedLengthWriter) AddInt64(v int64) {
	p.b.partial += int32(wire.SizeVarint64(uint64(v)))
}

func (p *packedLengthWriter) AddSint64(v int64) {
	p.b.partial += int32(wire.SizeVarint64(wire.ZigZagEncode64(v)))
}

func (p *packedLengthWriter) AddEnum(v int32) {
	p.AddInt32(v)
}

func (p *packedLengthWriter) AddFixed32(v uint32) {
	p.b.partial += 4
}

func (p *packedLengthWriter) AddSfixed32(v int32) {
	p.b.partial += 4
}

func (p *packedLengthWriter) AddFloat(v float32) {
	p.b.partial += 4
}

func (p *packedLengthWriter) AddFixed64(v uint64) {
	p.b.partial += 8
}

func (p *packedLengthWriter) AddSfixed64(v int64) {
	p.b.partial += 8
}

func (p *packedLengthWriter) AddDouble(v float64) {
	p.b.partial += 8
}

// packedSerializationWriter is the emission-pass view inside a packed
// region: it writes payload bytes only, directly to the shared encoder
// buffer, with no tag and no length prefix per element.
type packedSerializationWriter struct {
	b *MessageBuilder
}

var _ PackedScribe = (*packedSerializationWriter)(nil)

func (p *packedSerializationWriter) AddBool(v bool) {
	p.b.enc.AddBool(v)
}

func (p *packedSerializationWriter) AddUint32(v uint32) {
	p.b.enc.AddVarint32(v)
}

func (p *packedSerializationWriter) AddInt32(v int32) {
	p.b.enc.AddVarint64(wire.SignExtendInt32(v))
}

func (p *packedSerializationWriter) AddSint32(v int32) {
	p.b.enc.AddVarint32(wire.ZigZagEncode32(v))
}

func (p *packedSerializationWriter) AddUint64(v uint64) {
	p.b.enc.AddVarint64(v)
}

func (p *packedSerializationWriter) AddInt64(v int64) {
	p.b.enc.AddVarint64(uint64(v))
}

func (p *packedSerializationWriter) AddSint64(v int64) {
	p.b.enc.AddVarint64(wire.ZigZagEncode64(v))
}

func (p *packedSerializationWriter) AddEnum(v int32) {
	p.AddInt32(v)
}

func (p *packedSerializationWriter) AddFixed32(v uint32) {
	p.b.enc.AddFixed32(v)
}

func (p *packedSerializationWriter) AddSfixed32(v int32) {
	p.b.enc.AddFixed32(uint32(v))
}

func (p *packedSerializationWriter) AddFloat(v float32) {
	p.b.enc.AddFixed32(math.Float32bits(v))
}

func (p *packedSerializationWriter) AddFixed64(v uint64) {
	p.b.enc.AddFixed64(v)
}

func (p *packedSerializationWriter) AddSfixed64(v int64) {
	p.b.enc.AddFixed64(uint64(v))
}

func (p *packedSerializationWriter) AddDouble(v float64) {
	p.b.enc.AddFixed64(math.Float64bits(v))
}
