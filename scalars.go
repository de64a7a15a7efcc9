package fleece

import (
	"fmt"
	"math"

	"github.com/bigdig/fleece/errs"
	"github.com/bigdig/fleece/format"
)

// WriteNull writes a null value into the current scope.
func (e *Encoder) WriteNull() error {
	return e.writeSpecial(format.SpecialNull)
}

// WriteBool writes a boolean value into the current scope.
func (e *Encoder) WriteBool(b bool) error {
	if b {
		return e.writeSpecial(format.SpecialTrue)
	}

	return e.writeSpecial(format.SpecialFalse)
}

func (e *Encoder) writeSpecial(nibble byte) error {
	var buf [2]byte
	buf[0] = nibble
	_, err := e.place(format.TagSpecial, buf[:], true)

	return err
}

// WriteInt writes a signed integer. Values in the short range
// [format.MinShortInt, format.MaxShortInt] take 2 bytes; larger values use
// the general encoding: a size byte plus a minimal little-endian
// two's-complement payload, padded to even total length.
func (e *Encoder) WriteInt(i int64) error {
	if i >= format.MinShortInt && i <= format.MaxShortInt {
		return e.writeShortInt(uint16(i) & 0x0FFF)
	}

	return e.writeBigInt(uint64(i), intPayloadLen(i), false)
}

// WriteUint writes an unsigned integer. Values below 2048 use the short
// encoding; larger values use the general encoding with the unsigned flag.
func (e *Encoder) WriteUint(u uint64) error {
	if u <= format.MaxShortInt {
		return e.writeShortInt(uint16(u))
	}

	return e.writeBigInt(u, uintPayloadLen(u), true)
}

func (e *Encoder) writeShortInt(v uint16) error {
	var buf [2]byte
	buf[0] = byte(v>>8) & 0x0F
	buf[1] = byte(v)
	_, err := e.place(format.TagShortInt, buf[:], true)

	return err
}

func (e *Encoder) writeBigInt(v uint64, n int, unsigned bool) error {
	var le [8]byte
	e.engine.PutUint64(le[:], v)

	var buf [10]byte
	buf[0] = byte(n - 1)
	if unsigned {
		buf[0] |= format.IntFlagUnsigned
	}
	size := 1 + copy(buf[1:1+n], le[:n])
	if size&1 == 1 {
		size++ // pad byte, buf is already zeroed
	}
	_, err := e.place(format.TagInt, buf[:size], true)

	return err
}

// intPayloadLen returns the minimal number of little-endian bytes whose
// sign extension reproduces i.
func intPayloadLen(i int64) int {
	for n := 1; n < 8; n++ {
		shift := uint(64 - 8*n)
		if i<<shift>>shift == i {
			return n
		}
	}

	return 8
}

func uintPayloadLen(u uint64) int {
	n := 1
	for u > 0xFF {
		u >>= 8
		n++
	}

	return n
}

const (
	twoTo31 = float64(1 << 31)
	twoTo63 = float64(1 << 63)
)

// WriteFloat writes a 32-bit float. A value exactly equal to its 32-bit
// integer truncation is stored as that integer instead; this is a size
// optimization, not a type distinction. NaN returns ErrInvalidValue since
// the format has no representation for it.
func (e *Encoder) WriteFloat(f float32) error {
	d := float64(f)
	if math.IsNaN(d) {
		return fmt.Errorf("%w: NaN float", errs.ErrInvalidValue)
	}
	if d == math.Trunc(d) && d >= -twoTo31 && d < twoTo31 {
		return e.WriteInt(int64(d))
	}

	var buf [6]byte
	buf[0] = format.FloatFlag32
	e.engine.PutUint32(buf[2:], math.Float32bits(f))
	_, err := e.place(format.TagFloat, buf[:], true)

	return err
}

// WriteDouble writes a 64-bit float. A value exactly equal to its 64-bit
// integer truncation is stored as that integer instead, byte-identical to
// WriteInt of the same value. NaN returns ErrInvalidValue.
func (e *Encoder) WriteDouble(d float64) error {
	if math.IsNaN(d) {
		return fmt.Errorf("%w: NaN double", errs.ErrInvalidValue)
	}
	if d == math.Trunc(d) && d >= -twoTo63 && d < twoTo63 {
		return e.WriteInt(int64(d))
	}

	var buf [10]byte
	buf[0] = format.FloatFlag64
	e.engine.PutUint64(buf[2:], math.Float64bits(d))
	_, err := e.place(format.TagFloat, buf[:], true)

	return err
}
