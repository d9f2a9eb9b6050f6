package wire

// Record pairs a decoded field number with its raw wire value.
type Record struct {
	FieldNumber FieldNumber
	Value       Value
}

// MessageDecoder is a pull iterator over a byte slice, yielding one
// Record per call to Next until the input is exhausted or a decode error
// occurs. It performs no schema validation: it yields raw tagged payloads,
// including SGROUP/EGROUP presence markers, and leaves reinterpretation
// (string/bytes/sub-message/packed) to the caller via Value's narrowing
// methods.
//
// Once Next returns an error, the decoder is poisoned: every subsequent
// call returns ok=false with a nil error, so a caller that loops on
// "has more" cannot spin forever on malformed input.
type MessageDecoder struct {
	cursor  *Cursor
	dead    bool
	lastErr error
}

// NewMessageDecoder wraps buf in a MessageDecoder. The decoder borrows buf
// for the lifetime of the iteration; LEN-typed records in the yielded
// Records alias it.
func NewMessageDecoder(buf []byte) *MessageDecoder {
	return &MessageDecoder{cursor: NewCursor(buf)}
}

// Next returns the next record. ok is false when the input is exhausted
// (err is nil) or the decoder has been poisoned by a prior error (err is
// also nil in that case — the error was already reported on the call that
// poisoned it).
func (d *MessageDecoder) Next() (rec Record, ok bool, err error) {
	if d.dead {
		return Record{}, false, nil
	}
	if d.cursor.EOF() {
		return Record{}, false, nil
	}

	fn, wt, err := d.cursor.ReadTag()
	if err != nil {
		d.poison(err)
		return Record{}, false, err
	}

	var val Value
	switch wt {
	case Varint:
		v, err := d.cursor.ReadVarint()
		if err != nil {
			d.poison(err)
			return Record{}, false, err
		}
		val = VarintValue(v)
	case I64:
		v, err := d.cursor.ReadFixed64()
		if err != nil {
			d.poison(err)
			return Record{}, false, err
		}
		val = I64Value(v)
	case Len:
		// A LEN length prefix is a byte count, never a field number, but it
		// is still capped at 5 bytes on the wire (matching the 32-bit fast
		// path): a length needing more than 32 bits to represent could never
		// address real memory, so ReadVarint32 is the correct ceiling here.
		n, err := d.cursor.ReadVarint32()
		if err != nil {
			d.poison(err)
			return Record{}, false, err
		}
		b, err := d.cursor.TakeN(int(n))
		if err != nil {
			d.poison(err)
			return Record{}, false, err
		}
		val = LenValue(b)
	case SGroup, EGroup:
		val = GroupValue(wt)
	case I32:
		v, err := d.cursor.ReadFixed32()
		if err != nil {
			d.poison(err)
			return Record{}, false, err
		}
		val = I32Value(v)
	default:
		werr := &UnknownWireTypeError{Code: uint8(wt)}
		d.poison(werr)
		return Record{}, false, werr
	}

	return Record{FieldNumber: fn, Value: val}, true, nil
}

func (d *MessageDecoder) poison(err error) {
	d.dead = true
	d.lastErr = err
}

// Err returns the error that poisoned the decoder, or nil if it hasn't
// been poisoned (either still live, or simply exhausted).
func (d *MessageDecoder) Err() error {
	return d.lastErr
}
