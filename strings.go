package fleece

import (
	"errors"

	"github.com/bigdig/fleece/encoding"
	"github.com/bigdig/fleece/errs"
	"github.com/bigdig/fleece/format"
)

// WriteString writes a string value into the current scope.
//
// Strings no shorter than the scope's slot width and no longer than the
// shared-string limit are interned: writing the same content again emits a
// pointer to the existing instance instead of a second literal. When the
// existing instance is too far away for the scope's slot width, a fresh
// literal is written and the cache tracks that closer instance from then
// on.
func (e *Encoder) WriteString(s string) error {
	if e.finished {
		return errs.ErrEncoderFinished
	}

	return e.writeString(s)
}

func (e *Encoder) writeString(s string) error {
	sc := &e.scopes[e.cur]
	if sc.width == 0 || len(s) < sc.width || len(s) > e.sharedLimit {
		// Not worth sharing: shorter than a pointer, longer than the cache
		// bound, or the root scope where no slot exists to point from.
		_, err := e.writeData(format.TagString, []byte(s))
		return err
	}

	if pos, ok := e.strings.Lookup(s); ok {
		err := e.writePointerTo(pos)
		if err == nil {
			return nil
		}
		if !errors.Is(err, errs.ErrPointerOutOfRange) {
			return err
		}
		// The cached instance is out of reach for this scope's width.
		// Write a fresh literal and track the closer instance; the old one
		// is unreachable from here on anyway.
		newPos, werr := e.writeData(format.TagString, []byte(s))
		if werr != nil {
			return werr
		}
		e.strings.Insert(s, newPos)

		return nil
	}

	pos, err := e.writeData(format.TagString, []byte(s))
	if err != nil {
		return err
	}
	e.strings.Insert(s, pos)

	return nil
}

// WriteData writes an opaque byte string into the current scope. Binary
// data is never interned.
func (e *Encoder) WriteData(data []byte) error {
	if e.finished {
		return errs.ErrEncoderFinished
	}

	_, err := e.writeData(format.TagBinary, data)

	return err
}

// writeData writes a string or binary literal: a header byte whose low
// nibble is min(length, 15), a varint of the true length when it is 15 or
// more, then the raw bytes. It returns the absolute position of the value.
func (e *Encoder) writeData(tag format.Tag, data []byte) (int, error) {
	var scratch [2 + encoding.MaxUvarintLen64]byte

	if len(data) < e.scopes[e.cur].width {
		// Tiny literal: header and bytes fit the slot together.
		buf := append(scratch[:0], byte(len(data)))
		buf = append(buf, data...)

		return e.place(tag, buf, true)
	}

	buf := scratch[:1]
	if len(data) >= format.LongStringLength {
		buf[0] = format.LongStringLength
		buf = encoding.AppendUvarint(buf, uint64(len(data)))
	} else {
		buf[0] = byte(len(data))
	}
	if len(data) == 0 {
		// Only reachable at the root, where nothing inlines: keep the
		// value even-length.
		buf = append(buf, 0)
	}

	pos, err := e.place(tag, buf, false)
	if err != nil {
		return 0, err
	}
	e.buf.Append(data)

	return pos, nil
}
