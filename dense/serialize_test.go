package dense

import (
	"encoding/binary"
	"testing"
)

func TestSerializeRoundTrip(t *testing.T) {
	orig := buildToyDFA(t)

	orders := []struct {
		name string
		ser  func() ([]byte, error)
	}{
		{"little", orig.ToBytesLittleEndian},
		{"big", orig.ToBytesBigEndian},
		{"native", orig.ToBytesNativeEndian},
	}
	byOrder := map[string]binary.ByteOrder{
		"little": binary.LittleEndian,
		"big":    binary.BigEndian,
		"native": nativeByteOrder,
	}

	inputs := [][]byte{[]byte("ab"), []byte("a"), []byte("ac"), []byte("")}

	for _, o := range orders {
		t.Run(o.name, func(t *testing.T) {
			buf, err := o.ser()
			if err != nil {
				t.Fatalf("serialize: %v", err)
			}
			if string(buf[:24]) != label {
				t.Fatalf("label mismatch: got %q", buf[:24])
			}
			wantLen := headerSize + len(orig.trans)*2 // uint16 width
			if len(buf) != wantLen {
				t.Fatalf("len(buf) = %d, want %d", len(buf), wantLen)
			}

			got, err := FromBytes[uint16](buf, byOrder[o.name])
			if err != nil {
				t.Fatalf("FromBytes: %v", err)
			}
			for _, in := range inputs {
				if got.IsMatch(in) != orig.IsMatch(in) {
					t.Errorf("round trip mismatch on %q", in)
				}
			}

			view, err := BorrowBytes[uint16](buf, byOrder[o.name])
			if err != nil {
				t.Fatalf("BorrowBytes: %v", err)
			}
			for _, in := range inputs {
				if view.IsMatch(in) != orig.IsMatch(in) {
					t.Errorf("BorrowBytes mismatch on %q", in)
				}
			}
		})
	}
}

func TestDeserializeRejectsWrongEndianness(t *testing.T) {
	orig := buildToyDFA(t)
	buf, err := orig.ToBytesLittleEndian()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if _, err := FromBytes[uint16](buf, binary.BigEndian); err == nil {
		t.Fatalf("FromBytes with mismatched endianness: expected error")
	} else if derr, ok := err.(*Error); !ok || derr.Kind != DeserializeError {
		t.Fatalf("got %v, want DeserializeError", err)
	}
}

func TestDeserializeRejectsWrongWidth(t *testing.T) {
	orig := buildToyDFA(t)
	buf, err := orig.ToBytesLittleEndian()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if _, err := FromBytes[uint32](buf, binary.LittleEndian); err == nil {
		t.Fatalf("FromBytes with mismatched state-id width: expected error")
	}
}

func TestDeserializeRejectsTruncatedBuffer(t *testing.T) {
	orig := buildToyDFA(t)
	buf, err := orig.ToBytesLittleEndian()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if _, err := FromBytes[uint16](buf[:len(buf)-1], binary.LittleEndian); err == nil {
		t.Fatalf("FromBytes on truncated buffer: expected error")
	}
}

func TestSerializeHeaderSize(t *testing.T) {
	// Width is fixed by the ID type system (1/2/4/8 bytes are the only
	// instantiable widths), so toBytes's unsupported-width error cannot be
	// reached; this guards the internal headerSize/byte math instead.
	if headerSize != 320 {
		t.Fatalf("headerSize = %d, want 320 per spec.md's binary layout", headerSize)
	}
}
