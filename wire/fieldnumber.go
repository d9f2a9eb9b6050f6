package wire

// FieldNumber is a validated protobuf field number: a 29-bit unsigned
// identifier in the range [1, 2^29-1].
//
// Field numbers in [19000, 19999] are reserved by the wire format for
// internal use. FieldNumber does not reject values in that range on
// construction — the format merely asks implementations not to hand them
// out for new fields — but ReservedRangeStart/ReservedRangeEnd, IsReserved
// and Next let callers that enumerate field numbers skip over it.
type FieldNumber uint32

const (
	minFieldNumber = 1
	maxFieldNumber = 1<<29 - 1

	// ReservedRangeStart and ReservedRangeEnd bound the field numbers the
	// wire format reserves for internal use.
	ReservedRangeStart FieldNumber = 19000
	ReservedRangeEnd   FieldNumber = 19999
)

// NewFieldNumber validates v and returns it as a FieldNumber. It fails if
// v is 0 or exceeds 2^29-1.
func NewFieldNumber(v uint32) (FieldNumber, error) {
	if v < minFieldNumber || v > maxFieldNumber {
		return 0, &InvalidFieldNumberError{Value: uint64(v)}
	}
	return FieldNumber(v), nil
}

// FieldNumberUnsafe constructs a FieldNumber without validation, for
// callers that have already checked v independently (for example, a
// decoder that only ever produces values taken from a valid tag varint).
func FieldNumberUnsafe(v uint32) FieldNumber {
	return FieldNumber(v)
}

// IsReserved reports whether f falls in the wire format's reserved range
// [19000, 19999].
func (f FieldNumber) IsReserved() bool {
	return f >= ReservedRangeStart && f <= ReservedRangeEnd
}

// Next returns the next field number after f, skipping the reserved range
// so that callers enumerating field numbers never hand out a reserved one.
func (f FieldNumber) Next() FieldNumber {
	n := f + 1
	if n >= ReservedRangeStart && n <= ReservedRangeEnd {
		return ReservedRangeEnd + 1
	}
	return n
}

// Uint32 returns f as a plain uint32.
func (f FieldNumber) Uint32() uint32 {
	return uint32(f)
}
