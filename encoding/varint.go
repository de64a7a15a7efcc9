// Package encoding implements the variable-length integer codec embedded
// in the fleece wire format. Collection headers use it for counts that do
// not fit the 2-byte header, and string headers use it for lengths of 15
// bytes or more.
package encoding

// MaxUvarintLen64 is the maximum number of bytes an unsigned varint
// occupies.
const MaxUvarintLen64 = 10

// AppendUvarint appends v to dst as an unsigned varint using 7-bit
// continuation groups, least significant group first, and returns the
// extended slice.
func AppendUvarint(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}

	return append(dst, byte(v))
}

// UvarintSize returns the number of bytes AppendUvarint would write for v.
func UvarintSize(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}

	return n
}

// Uvarint decodes an unsigned varint from the start of buf. It returns the
// value and the number of bytes consumed. If the buffer ends mid-varint or
// the value overflows 64 bits, the consumed count is 0.
func Uvarint(buf []byte) (uint64, int) {
	var v uint64
	var shift uint

	for i, b := range buf {
		if shift >= 64 {
			return 0, 0
		}
		if b < 0x80 {
			if i == 9 && b > 1 {
				return 0, 0
			}

			return v | uint64(b)<<shift, i + 1
		}
		v |= uint64(b&0x7F) << shift
		shift += 7
	}

	return 0, 0
}
