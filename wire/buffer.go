package wire

// Encoder is an append-only byte buffer with typed primitive writes. It
// never reads back from the buffer and never shifts already-written
// bytes — every operation is a plain append, which is what lets the
// two-pass builder in package builder avoid the O(N*D) data movement a
// single-pass, patch-the-length-afterwards encoder would require.
type Encoder struct {
	buf []byte
}

// NewEncoder returns an Encoder with an empty buffer.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// NewEncoderSize returns an Encoder whose buffer is pre-allocated to hold
// at least n bytes before its first grow, to cut down on reallocation for
// callers that know roughly how large their output will be.
func NewEncoderSize(n int) *Encoder {
	return &Encoder{buf: make([]byte, 0, n)}
}

// Reset clears the encoder's buffer, retaining its underlying capacity for
// reuse.
func (e *Encoder) Reset() {
	e.buf = e.buf[:0]
}

// Bytes returns the accumulated bytes. The returned slice aliases the
// encoder's internal buffer; it is invalidated by the next write.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// Len returns the number of bytes written so far.
func (e *Encoder) Len() int {
	return len(e.buf)
}

// AddVarint32 appends v as a canonical little-endian base-128 varint,
// 1-5 bytes.
func (e *Encoder) AddVarint32(v uint32) {
	e.AddVarint64(uint64(v))
}

// AddVarint64 appends v as a canonical little-endian base-128 varint,
// 1-10 bytes.
func (e *Encoder) AddVarint64(v uint64) {
	for v >= 0x80 {
		e.buf = append(e.buf, byte(v)|0x80)
		v >>= 7
	}
	e.buf = append(e.buf, byte(v))
}

// AddTag appends the varint-encoded tag for the given field number and
// wire type.
func (e *Encoder) AddTag(f FieldNumber, w WireType) {
	e.AddVarint64(uint64(MakeTag(f, w)))
}

// AddFixed32 appends v as 4 little-endian bytes.
func (e *Encoder) AddFixed32(v uint32) {
	e.buf = append(e.buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

// AddFixed64 appends v as 8 little-endian bytes.
func (e *Encoder) AddFixed64(v uint64) {
	e.buf = append(e.buf,
		byte(v), byte(v>>8), byte(v>>16), byte(v>>24),
		byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56))
}

// AddBool appends a single byte: 0x00 or 0x01.
func (e *Encoder) AddBool(v bool) {
	if v {
		e.buf = append(e.buf, 1)
	} else {
		e.buf = append(e.buf, 0)
	}
}

// AddRaw appends b verbatim.
func (e *Encoder) AddRaw(b []byte) {
	e.buf = append(e.buf, b...)
}

// Cursor is a zero-copy forward cursor over a byte slice. Every read
// either advances the cursor and returns a value borrowed from (or copied
// out of) the input, or fails with ErrShortBuffer/ErrVarintOverflow and
// leaves the cursor unadvanced.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor wraps buf in a Cursor starting at offset 0.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Len returns the number of unread bytes remaining.
func (c *Cursor) Len() int {
	return len(c.buf) - c.pos
}

// EOF reports whether the cursor has no bytes left to read.
func (c *Cursor) EOF() bool {
	return c.pos >= len(c.buf)
}

// TakeN returns a subslice of exactly n unread bytes and advances the
// cursor past them. The returned slice aliases the cursor's input; its
// lifetime is that of the input, not of the cursor.
func (c *Cursor) TakeN(n int) ([]byte, error) {
	if n < 0 || n > c.Len() {
		return nil, ErrShortBuffer
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// ReadVarint reads a base-128 varint of at most 10 bytes.
func (c *Cursor) ReadVarint() (uint64, error) {
	buf := c.buf
	i := c.pos

	if i >= len(buf) {
		return 0, ErrShortBuffer
	}
	if buf[i] < 0x80 {
		c.pos = i + 1
		return uint64(buf[i]), nil
	}

	var x uint64
	for n := 0; n < 10; n++ {
		if i >= len(buf) {
			return 0, ErrShortBuffer
		}
		b := buf[i]
		i++
		shift := uint(n * 7)
		x |= uint64(b&0x7f) << shift
		if b < 0x80 {
			c.pos = i
			return x, nil
		}
	}
	// 10 continuation bytes consumed and the 10th still had its high bit
	// set: an 11th byte would follow, which no 64-bit varint may have.
	return 0, ErrVarintOverflow
}

// ReadVarint32 reads a varint and fails with ErrVarintOverflow if it uses
// more than the 5 bytes a 32-bit value can ever need — distinct from
// ReadVarint's 10-byte ceiling.
func (c *Cursor) ReadVarint32() (uint32, error) {
	start := c.pos
	v, err := c.ReadVarint()
	if err != nil {
		return 0, err
	}
	if c.pos-start > 5 {
		c.pos = start
		return 0, ErrVarintOverflow
	}
	return uint32(v), nil
}

// ReadFixed32 reads 4 little-endian bytes.
func (c *Cursor) ReadFixed32() (uint32, error) {
	b, err := c.TakeN(4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, nil
}

// ReadFixed64 reads 8 little-endian bytes.
func (c *Cursor) ReadFixed64() (uint64, error) {
	b, err := c.TakeN(8)
	if err != nil {
		return 0, err
	}
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56, nil
}

// ReadTag reads a tag varint and splits it into a field number and wire
// type. A tag is a 29-bit field number plus a 3-bit wire type, so it can
// never legally need more than 5 bytes; this uses ReadVarint32's 5-byte
// ceiling rather than ReadVarint's 10-byte one, so a malformed 6+ byte tag
// fails with ErrVarintOverflow instead of silently truncating to 32 bits.
func (c *Cursor) ReadTag() (FieldNumber, WireType, error) {
	v, err := c.ReadVarint32()
	if err != nil {
		return 0, 0, err
	}
	return FieldNumber(v >> 3), WireType(v & 0x7), nil
}
