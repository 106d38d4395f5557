package dense

import (
	"encoding/binary"
	"unsafe"
)

// label identifies the on-disk format. It is 24 bytes, matching the header
// layout below exactly.
const label = "go-densedfa-dense-dfa\x00\x00\x00"

const (
	endiannessCheck = 0xFEFF
	formatVersion   = 1
	headerSize      = 320 // label(24) + 2+2+2+2 + 8*4 + 256, see ToBytes
)

// byteOrder abstracts the three serialization entry points over
// encoding/binary's ByteOrder so the encode/decode logic is written once.
type byteOrder = binary.ByteOrder

// nativeByteOrder is resolved once at init time by inspecting how the host
// lays out a multi-byte integer, the same trick used throughout the
// standard library wherever native-endian access matters.
var nativeByteOrder = func() byteOrder {
	var x uint16 = 1
	b := (*[2]byte)(unsafe.Pointer(&x))
	if b[0] == 1 {
		return binary.LittleEndian
	}
	return binary.BigEndian
}()

// ToBytesLittleEndian serializes the DFA to a little-endian byte slice
// aligned to an 8-byte boundary. The returned bytes can later be reloaded
// on any host with FromBytes or BorrowBytes by passing binary.LittleEndian
// as the order: this package decodes using the order the caller supplies,
// not the host's, and rejects the buffer if its endianness marker does not
// read back correctly under that order.
func (d *DFA[S]) ToBytesLittleEndian() ([]byte, error) {
	return d.toBytes(binary.LittleEndian)
}

// ToBytesBigEndian serializes the DFA to a big-endian byte slice.
func (d *DFA[S]) ToBytesBigEndian() ([]byte, error) {
	return d.toBytes(binary.BigEndian)
}

// ToBytesNativeEndian serializes the DFA using the host's native byte
// order. Prefer ToBytesLittleEndian or ToBytesBigEndian for anything
// persisted or sent across machines; native endian is meant for tests that
// serialize and deserialize on the same process.
func (d *DFA[S]) ToBytesNativeEndian() ([]byte, error) {
	return d.toBytes(nativeByteOrder)
}

func (d *DFA[S]) toBytes(order byteOrder) ([]byte, error) {
	stateSize := idWidth[S]()
	if stateSize != 1 && stateSize != 2 && stateSize != 4 && stateSize != 8 {
		return nil, errSerialize("unsupported state id width")
	}

	transSize := stateSize * len(d.trans)
	size := headerSize + transSize

	buf := make([]byte, size)
	i := 0

	copy(buf[i:i+24], label)
	i += 24
	order.PutUint16(buf[i:], endiannessCheck)
	i += 2
	order.PutUint16(buf[i:], formatVersion)
	i += 2
	order.PutUint16(buf[i:], uint16(stateSize))
	i += 2
	order.PutUint16(buf[i:], d.kind.toByte())
	i += 2
	order.PutUint64(buf[i:], uint64(d.start))
	i += 8
	order.PutUint64(buf[i:], uint64(d.stateCount))
	i += 8
	order.PutUint64(buf[i:], uint64(d.maxMatch))
	i += 8
	order.PutUint64(buf[i:], uint64(d.alphabetLen))
	i += 8

	if len(d.byteClasses) == 0 {
		for b := 0; b < 256; b++ {
			buf[i] = byte(b)
			i++
		}
	} else {
		copy(buf[i:i+256], d.byteClasses)
		i += 256
	}

	for _, id := range d.trans {
		switch stateSize {
		case 1:
			buf[i] = byte(id)
		case 2:
			order.PutUint16(buf[i:], uint16(id))
		case 4:
			order.PutUint32(buf[i:], uint32(id))
		case 8:
			order.PutUint64(buf[i:], uint64(id))
		}
		i += stateSize
	}
	if i != size {
		return nil, errSerialize("internal error: did not fill entire buffer")
	}
	return buf, nil
}

// FromBytes deserializes a DFA previously produced by ToBytesLittleEndian,
// ToBytesBigEndian or ToBytesNativeEndian, copying the transition table and
// byte-class map out of buf so the returned DFA owns its memory
// independently of buf's lifetime.
//
// order must match the endianness the bytes were written with; callers
// that don't control provenance should record which ToBytes variant they
// used alongside the bytes.
func FromBytes[S ID](buf []byte, order byteOrder) (*DFA[S], error) {
	v, rest, err := parseHeader[S](buf, order)
	if err != nil {
		return nil, err
	}

	out := &DFA[S]{core[S]{
		kind:        v.kind,
		start:       v.start,
		stateCount:  v.stateCount,
		maxMatch:    v.maxMatch,
		alphabetLen: v.alphabetLen,
	}}
	if len(v.byteClasses) > 0 {
		out.byteClasses = make([]byte, 256)
		copy(out.byteClasses, v.byteClasses)
	}
	out.trans = make([]S, len(v.trans))
	copy(out.trans, v.trans)
	_ = rest
	return out, nil
}

// BorrowBytes deserializes a DFA as a read-only View that aliases buf
// where it can: the byte-class map is always used in place, and so is the
// transition table when ids are one byte wide or order is the host's
// native byte order; otherwise the transition table is decoded into a
// freshly allocated slice. buf must outlive the returned View and must
// not be mutated while the View is in use; violating either is undefined
// behavior, same as aliasing any other foreign memory in Go.
//
// buf must be 8-byte aligned in the sense of having been produced by one
// of the ToBytes methods (or a copy thereof at a naturally-aligned
// address); BorrowBytes does not re-copy to fix up misalignment the way
// FromBytes implicitly does by copying into freshly allocated slices.
func BorrowBytes[S ID](buf []byte, order byteOrder) (*View[S], error) {
	v, _, err := parseHeader[S](buf, order)
	if err != nil {
		return nil, err
	}
	return &View[S]{v}, nil
}

// parseHeader validates and decodes the fixed-size header, and returns a
// core whose trans/byteClasses slices alias buf (the caller decides
// whether to copy them, per FromBytes vs BorrowBytes).
func parseHeader[S ID](buf []byte, order byteOrder) (core[S], []byte, error) {
	var zero core[S]
	if len(buf) < headerSize {
		return zero, nil, errDeserialize("buffer shorter than header")
	}
	i := 0
	if string(buf[i:i+24]) != label {
		return zero, nil, errDeserialize("label mismatch")
	}
	i += 24
	if order.Uint16(buf[i:]) != endiannessCheck {
		return zero, nil, errDeserialize("endianness check failed")
	}
	i += 2
	if order.Uint16(buf[i:]) != formatVersion {
		return zero, nil, errDeserialize("unsupported format version")
	}
	i += 2
	stateSize := int(order.Uint16(buf[i:]))
	i += 2
	if stateSize != idWidth[S]() {
		return zero, nil, errDeserialize("state id width does not match requested type S")
	}
	kind, ok := kindFromByte(order.Uint16(buf[i:]))
	if !ok {
		return zero, nil, errDeserialize("unrecognized DFA kind tag")
	}
	i += 2
	start := order.Uint64(buf[i:])
	i += 8
	stateCount := order.Uint64(buf[i:])
	i += 8
	maxMatch := order.Uint64(buf[i:])
	i += 8
	alphabetLen := order.Uint64(buf[i:])
	i += 8

	byteClasses := buf[i : i+256]
	i += 256
	allIdentity := !kind.IsByteClass()

	transBytes := buf[i:]
	wantTransBytes := stateSize * int(stateCount) * int(alphabetLen)
	if len(transBytes) < wantTransBytes {
		return zero, nil, errDeserialize("buffer too short for transition table")
	}
	trans := decodeTrans[S](transBytes[:wantTransBytes], order, stateSize)

	c := core[S]{
		kind:        kind,
		start:       S(start),
		stateCount:  int(stateCount),
		maxMatch:    S(maxMatch),
		alphabetLen: int(alphabetLen),
		trans:       trans,
	}
	if !allIdentity {
		c.byteClasses = byteClasses
	}
	return c, buf[i+wantTransBytes:], nil
}

// decodeTrans reinterprets raw transition bytes as a []S. For the rare
// case where S's width and the host's native endianness both line up with
// the encoded byte order, this is a direct unsafe reinterpretation of the
// backing array with no copy; otherwise it falls back to decoding element
// by element.
func decodeTrans[S ID](buf []byte, order byteOrder, stateSize int) []S {
	if stateSize == 1 || order == nativeByteOrder {
		if n := len(buf) / stateSize; n > 0 {
			return unsafe.Slice((*S)(unsafe.Pointer(&buf[0])), n)
		}
		return nil
	}

	n := len(buf) / stateSize
	out := make([]S, n)
	for idx := 0; idx < n; idx++ {
		off := idx * stateSize
		switch stateSize {
		case 2:
			out[idx] = S(order.Uint16(buf[off:]))
		case 4:
			out[idx] = S(order.Uint32(buf[off:]))
		case 8:
			out[idx] = S(order.Uint64(buf[off:]))
		}
	}
	return out
}
