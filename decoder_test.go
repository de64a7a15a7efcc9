package fleece

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bigdig/fleece/encoding"
	"github.com/bigdig/fleece/format"
)

// docReader is the test oracle for the wire format: a minimal reader that
// walks a finished document from position 0, resolving slots and relative
// pointers. The reader side of the format is deliberately not part of the
// public API; tests use this to verify round-trip behavior.
type docReader struct {
	data []byte
}

func decodeDocument(data []byte) (any, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty document")
	}
	r := &docReader{data: data}

	return r.readValue(0)
}

func mustDecode(t *testing.T, data []byte) any {
	t.Helper()
	v, err := decodeDocument(data)
	require.NoError(t, err)

	return v
}

// readSlot reads a collection slot: either an inline value or a pointer to
// one, discriminated by the top bit of the slot's first byte.
func (r *docReader) readSlot(slotPos, width int) (any, error) {
	if slotPos+width > len(r.data) {
		return nil, fmt.Errorf("slot at %d overruns document", slotPos)
	}

	b0 := r.data[slotPos]
	if b0&format.PointerFlag == 0 {
		return r.readValue(slotPos)
	}

	var delta int
	switch width {
	case format.WidthNarrow:
		v := uint16(b0)<<8 | uint16(r.data[slotPos+1])
		v &= 0x7FFF
		delta = int(v)
		if v&0x4000 != 0 {
			delta = int(v) - 0x8000
		}
	case format.WidthWide:
		v := uint32(b0)<<24 | uint32(r.data[slotPos+1])<<16 |
			uint32(r.data[slotPos+2])<<8 | uint32(r.data[slotPos+3])
		v &= 0x7FFFFFFF
		delta = int(v)
		if v&0x40000000 != 0 {
			delta = int(v) - 0x80000000
		}
	default:
		return nil, fmt.Errorf("invalid slot width %d", width)
	}

	return r.readValue(slotPos + delta*2)
}

func (r *docReader) readValue(pos int) (any, error) {
	if pos < 0 || pos >= len(r.data) {
		return nil, fmt.Errorf("value position %d out of bounds", pos)
	}

	b0 := r.data[pos]
	if b0&format.PointerFlag != 0 {
		return nil, fmt.Errorf("unexpected pointer at value position %d", pos)
	}

	switch format.Tag(b0 >> 4) {
	case format.TagSpecial:
		switch b0 & 0x0F {
		case format.SpecialNull:
			return nil, nil
		case format.SpecialFalse:
			return false, nil
		case format.SpecialTrue:
			return true, nil
		default:
			return nil, fmt.Errorf("unknown special value %#x at %d", b0&0x0F, pos)
		}

	case format.TagShortInt:
		v := uint16(b0&0x0F)<<8 | uint16(r.data[pos+1])
		if v&0x0800 != 0 {
			return int64(v) - 0x1000, nil
		}

		return int64(v), nil

	case format.TagInt:
		flag := b0 & 0x0F
		n := int(flag&format.IntSizeMask) + 1
		if pos+1+n > len(r.data) {
			return nil, fmt.Errorf("int payload at %d overruns document", pos)
		}
		var u uint64
		for i := n - 1; i >= 0; i-- {
			u = u<<8 | uint64(r.data[pos+1+i])
		}
		if flag&format.IntFlagUnsigned != 0 {
			return u, nil
		}
		shift := uint(64 - 8*n)

		return int64(u) << shift >> shift, nil

	case format.TagFloat:
		switch b0 & 0x0F {
		case format.FloatFlag32:
			bits := uint32(r.data[pos+2]) | uint32(r.data[pos+3])<<8 |
				uint32(r.data[pos+4])<<16 | uint32(r.data[pos+5])<<24
			return math.Float32frombits(bits), nil
		case format.FloatFlag64:
			var bits uint64
			for i := 7; i >= 0; i-- {
				bits = bits<<8 | uint64(r.data[pos+2+i])
			}
			return math.Float64frombits(bits), nil
		default:
			return nil, fmt.Errorf("unknown float flag %#x at %d", b0&0x0F, pos)
		}

	case format.TagString, format.TagBinary:
		n := int(b0 & 0x0F)
		off := pos + 1
		if n == format.LongStringLength {
			ln, sz := encoding.Uvarint(r.data[off:])
			if sz == 0 {
				return nil, fmt.Errorf("bad length varint at %d", off)
			}
			n = int(ln)
			off += sz
		}
		if off+n > len(r.data) {
			return nil, fmt.Errorf("string at %d overruns document", pos)
		}
		if format.Tag(b0>>4) == format.TagString {
			return string(r.data[off : off+n]), nil
		}
		out := make([]byte, n)
		copy(out, r.data[off:off+n])

		return out, nil

	case format.TagArray, format.TagDict:
		isDict := format.Tag(b0>>4) == format.TagDict
		width := format.WidthNarrow
		if b0&format.WideFlag != 0 {
			width = format.WidthWide
		}
		count := int(b0&0x07)<<8 | int(r.data[pos+1])
		slotBase := pos + 2
		if count == format.MaxInlineCount {
			ln, sz := encoding.Uvarint(r.data[slotBase:])
			if sz == 0 {
				return nil, fmt.Errorf("bad count varint at %d", slotBase)
			}
			count = int(ln)
			hdrLen := 2 + sz
			if hdrLen&1 == 1 {
				hdrLen++
			}
			slotBase = pos + hdrLen
		}

		if !isDict {
			arr := make([]any, 0, count)
			for i := 0; i < count; i++ {
				v, err := r.readSlot(slotBase+i*width, width)
				if err != nil {
					return nil, err
				}
				arr = append(arr, v)
			}

			return arr, nil
		}

		m := make(map[string]any, count)
		valBase := slotBase + count*width
		for i := 0; i < count; i++ {
			k, err := r.readSlot(slotBase+i*width, width)
			if err != nil {
				return nil, err
			}
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string dictionary key %T", k)
			}
			v, err := r.readSlot(valBase+i*width, width)
			if err != nil {
				return nil, err
			}
			m[key] = v
		}

		return m, nil

	default:
		return nil, fmt.Errorf("unknown tag %#x at %d", b0>>4, pos)
	}
}
