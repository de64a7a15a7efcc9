package fleece

import (
	"fmt"

	"github.com/bigdig/fleece/errs"
	"github.com/bigdig/fleece/format"
)

// scope is one encoding context: the root, or an array/dictionary being
// built. A scope is complete when remaining reaches zero; it is never
// reopened.
type scope struct {
	parent    int // index into the encoder's scope arena; -1 for the root
	remaining int // values still expected (keys do not count)
	width     int // slot width: 0 for the root, otherwise 2 or 4

	valuePos int // absolute position of the next value slot
	keyPos   int // absolute position of the next key slot (dicts)

	isDict       bool
	writingKey   bool // the current write targets the key slot
	blockedOnKey bool // a key must arrive before the next value
}

// place is the single funnel every value write passes through. It decides
// inline versus out-of-line placement for the tagged payload, fills the
// destination slot, and advances the scope's bookkeeping. It returns the
// absolute position of the value.
//
// The payload's first byte must have a zero high nibble for non-pointer
// tags; place ORs the tag in. Pointer payloads arrive fully formed with
// the discriminator bit already set.
func (e *Encoder) place(tag format.Tag, payload []byte, canInline bool) (int, error) {
	if e.finished {
		return 0, errs.ErrEncoderFinished
	}

	s := &e.scopes[e.cur]
	if s.remaining == 0 {
		return 0, fmt.Errorf("%w: %s value rejected", errs.ErrCollectionFull, tag)
	}
	if s.blockedOnKey {
		return 0, fmt.Errorf("%w: %s value rejected", errs.ErrKeyExpected, tag)
	}

	if tag < format.TagPointer {
		if payload[0]&0xF0 != 0 {
			panic("fleece: payload high nibble collides with tag")
		}
		payload[0] |= byte(tag) << 4
	}

	var pos int
	if s.parent < 0 {
		// Root value: no slot to fill, append directly.
		pos = e.buf.Append(payload)
	} else {
		slot := s.valuePos
		if s.writingKey {
			slot = s.keyPos
		}

		if len(payload) <= s.width && canInline {
			// Small value: overwrite the reserved slot in place,
			// zero-padded to the slot width.
			var cell [format.WidthWide]byte
			copy(cell[:], payload)
			e.buf.Rewrite(slot, cell[:s.width])
			pos = slot
		} else {
			// Large value: append out-of-line at the next even position
			// and point the slot at it. Even alignment halves the delta,
			// doubling pointer reach.
			if e.buf.Len()&1 == 1 {
				e.buf.AppendByte(0)
			}
			target := e.buf.Len()

			var ptr [format.WidthWide]byte
			if err := putPointer(ptr[:s.width], target, slot); err != nil {
				return 0, err
			}
			e.buf.Rewrite(slot, ptr[:s.width])
			pos = e.buf.Append(payload)
		}

		if s.writingKey {
			s.keyPos += s.width
		} else {
			s.valuePos += s.width
		}
	}

	if s.writingKey {
		s.writingKey = false
	} else {
		s.remaining--
		if s.isDict {
			s.writingKey = true
			s.blockedOnKey = true
		}
	}

	return pos, nil
}

// writePointerTo fills the current slot with a pointer to an already
// written value at target, going through place so scope bookkeeping stays
// uniform. The pointer is exactly one slot wide, so it always inlines.
func (e *Encoder) writePointerTo(target int) error {
	s := &e.scopes[e.cur]
	slot := s.valuePos
	if s.writingKey {
		slot = s.keyPos
	}

	var ptr [format.WidthWide]byte
	if err := putPointer(ptr[:s.width], target, slot); err != nil {
		return err
	}

	_, err := e.place(format.TagPointer, ptr[:s.width], true)

	return err
}

// putPointer encodes the relative pointer from slot to target into dst,
// whose length selects the slot width. The delta is measured in 2-byte
// units and stored high byte first so the discriminator bit lands in the
// slot's first byte, where inline values keep their tag nibble.
func putPointer(dst []byte, target, slot int) error {
	delta := (target - slot) / 2

	switch len(dst) {
	case format.WidthNarrow:
		if delta < -format.MaxNarrowDelta || delta >= format.MaxNarrowDelta {
			return fmt.Errorf("%w: delta %d outside narrow reach", errs.ErrPointerOutOfRange, delta)
		}
		v := uint16(int16(delta))
		dst[0] = byte(v>>8) | format.PointerFlag
		dst[1] = byte(v)
	case format.WidthWide:
		if delta < -format.MaxWideDelta || delta >= format.MaxWideDelta {
			return fmt.Errorf("%w: delta %d outside wide reach", errs.ErrPointerOutOfRange, delta)
		}
		v := uint32(int32(delta))
		dst[0] = byte(v>>24) | format.PointerFlag
		dst[1] = byte(v >> 16)
		dst[2] = byte(v >> 8)
		dst[3] = byte(v)
	default:
		// Root scope: there is no slot, so nothing can be pointed from it.
		return fmt.Errorf("%w: no slot in root scope", errs.ErrPointerOutOfRange)
	}

	return nil
}
