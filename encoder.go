package fleece

import (
	"fmt"

	"github.com/bigdig/fleece/encoding"
	"github.com/bigdig/fleece/endian"
	"github.com/bigdig/fleece/errs"
	"github.com/bigdig/fleece/format"
	"github.com/bigdig/fleece/internal/intern"
	"github.com/bigdig/fleece/internal/options"
	"github.com/bigdig/fleece/internal/pool"
)

// Encoder serializes one value tree into the fleece binary format in a
// single forward pass. A document is built top-down: scalar writes go to
// the innermost open scope, BeginArray/BeginDict open a child scope bound
// to a slot reserved in the parent, and End closes the innermost scope
// once its declared count of values has been written. Finish validates the
// root and returns the document bytes.
//
// Note: The Encoder is NOT thread-safe. The format is strictly
// single-writer and every operation completes synchronously before the
// next begins.
//
// Note: After Finish the encoder's buffer is released; call Reset to start
// a fresh document with the same encoder.
type Encoder struct {
	buf     *pool.ByteBuffer
	engine  endian.EndianEngine
	strings *intern.Cache

	// Scope arena: index 0 is the root, children refer to parents by
	// index. Scopes close in LIFO order, so cur is always the last entry.
	scopes []scope
	cur    int

	sharedLimit int
	finished    bool
}

// Option configures an Encoder at construction time.
type Option = options.Option[*Encoder]

// WithSharedStringLimit sets the largest string length the intern cache
// will deduplicate. Longer strings are always written as full literals.
// The default is format.DefaultSharedStringLimit.
func WithSharedStringLimit(limit int) Option {
	return options.New(func(e *Encoder) error {
		if limit < 0 {
			return fmt.Errorf("%w: negative shared string limit %d", errs.ErrInvalidValue, limit)
		}
		e.sharedLimit = limit

		return nil
	})
}

// WithInitialCapacity pre-grows the output buffer so documents of a known
// approximate size encode without reallocation.
func WithInitialCapacity(n int) Option {
	return options.New(func(e *Encoder) error {
		if n < 0 {
			return fmt.Errorf("%w: negative capacity %d", errs.ErrInvalidValue, n)
		}
		e.buf.Grow(n)

		return nil
	})
}

// NewEncoder creates an Encoder ready to write one root value.
//
// The output buffer comes from a shared pool; callers that abandon a
// document without calling Finish should call Discard to return it.
func NewEncoder(opts ...Option) (*Encoder, error) {
	e := &Encoder{
		buf:         pool.GetDocBuffer(),
		engine:      endian.GetLittleEndianEngine(),
		strings:     intern.NewCache(),
		scopes:      make([]scope, 1, 8),
		sharedLimit: format.DefaultSharedStringLimit,
	}
	e.scopes[0] = scope{parent: -1, remaining: 1}

	if err := options.Apply(e, opts...); err != nil {
		pool.PutDocBuffer(e.buf)
		return nil, err
	}

	return e, nil
}

// BeginArray writes an array header into the current scope and opens a
// child scope expecting exactly count values. The wide flag selects 4-byte
// slots instead of 2-byte ones, trading document size for pointer reach and
// inline capacity; the choice is fixed for the scope's whole lifetime, so a
// later ErrPointerOutOfRange cannot be repaired without re-encoding wide.
func (e *Encoder) BeginArray(count int, wide bool) error {
	return e.beginCollection(format.TagArray, count, wide)
}

// BeginDict writes a dictionary header into the current scope and opens a
// child scope expecting exactly count key/value pairs, written strictly
// alternating WriteKey then value. See BeginArray for the wide flag.
func (e *Encoder) BeginDict(count int, wide bool) error {
	return e.beginCollection(format.TagDict, count, wide)
}

func (e *Encoder) beginCollection(tag format.Tag, count int, wide bool) error {
	if e.finished {
		return errs.ErrEncoderFinished
	}
	if count < 0 {
		return fmt.Errorf("%w: %d", errs.ErrInvalidCount, count)
	}

	// 2-byte header; counts at or above the sentinel append a varint of
	// the true count, padded so the whole header stays even-length.
	var scratch [2 + encoding.MaxUvarintLen64 + 1]byte
	inline := count
	if count >= format.MaxInlineCount {
		inline = format.MaxInlineCount
	}
	hdr := append(scratch[:0], byte(inline>>8), byte(inline))
	if count >= format.MaxInlineCount {
		hdr = encoding.AppendUvarint(hdr, uint64(count))
		if len(hdr)&1 == 1 {
			hdr = append(hdr, 0)
		}
	}
	if wide {
		hdr[0] |= format.WideFlag
	}

	// An empty collection is complete at birth: its header may inline into
	// the parent slot. A non-empty header must go out-of-line so its slot
	// block can follow it directly.
	if _, err := e.place(tag, hdr, count == 0); err != nil {
		return err
	}

	width := format.WidthNarrow
	if wide {
		width = format.WidthWide
	}
	space := count * width
	if tag == format.TagDict {
		space *= 2
	}

	base := e.buf.Reserve(space)
	sc := scope{
		parent:    e.cur,
		remaining: count,
		width:     width,
		isDict:    tag == format.TagDict,
		valuePos:  base,
	}
	if sc.isDict {
		sc.keyPos = base
		sc.valuePos = base + count*width
		sc.writingKey = true
		sc.blockedOnKey = true
	}

	e.scopes = append(e.scopes, sc)
	e.cur = len(e.scopes) - 1

	return nil
}

// WriteKey writes the key of the next dictionary entry. Keys go through
// the same string interning as values.
func (e *Encoder) WriteKey(key string) error {
	if e.finished {
		return errs.ErrEncoderFinished
	}

	s := &e.scopes[e.cur]
	if !s.blockedOnKey {
		if s.isDict {
			return fmt.Errorf("%w: key %q", errs.ErrValueExpected, key)
		}

		return fmt.Errorf("%w: key %q", errs.ErrNotDictionary, key)
	}

	s.blockedOnKey = false
	if err := e.writeString(key); err != nil {
		s.blockedOnKey = true
		return err
	}

	return nil
}

// End asserts that the innermost scope received its declared count of
// values and closes it. End writes no bytes; every slot was filled as its
// value arrived. Calling End at the root only validates root completeness.
func (e *Encoder) End() error {
	if e.finished {
		return errs.ErrEncoderFinished
	}

	s := &e.scopes[e.cur]
	if s.remaining != 0 {
		return fmt.Errorf("%w: %d values outstanding", errs.ErrIncompleteCollection, s.remaining)
	}

	if e.cur != 0 {
		parent := s.parent
		e.scopes = e.scopes[:e.cur]
		e.cur = parent
	}

	return nil
}

// Finish validates that the document is complete and returns its bytes.
// The encoder's buffer returns to the pool; the returned slice is owned by
// the caller. After Finish only Reset is legal.
func (e *Encoder) Finish() ([]byte, error) {
	if e.finished {
		return nil, errs.ErrEncoderFinished
	}
	if e.cur != 0 {
		return nil, fmt.Errorf("%w: %d collection scopes still open", errs.ErrIncompleteCollection, e.cur)
	}
	if e.scopes[0].remaining != 0 {
		return nil, fmt.Errorf("%w: root value not written", errs.ErrIncompleteCollection)
	}

	out := make([]byte, e.buf.Len())
	copy(out, e.buf.Bytes())

	pool.PutDocBuffer(e.buf)
	e.buf = nil
	e.finished = true

	return out, nil
}

// Reset discards any prior document state and re-arms the encoder for a
// fresh root value. It is only legal on an idle root: resetting while
// child scopes are open returns ErrInvalidReset. The string cache is
// cleared; cached positions would dangle into the discarded document.
func (e *Encoder) Reset() error {
	if e.cur != 0 {
		return fmt.Errorf("%w: %d collection scopes still open", errs.ErrInvalidReset, e.cur)
	}

	if e.buf == nil {
		e.buf = pool.GetDocBuffer()
	} else {
		e.buf.Reset()
	}
	e.strings.Reset()
	e.scopes = e.scopes[:1]
	e.scopes[0] = scope{parent: -1, remaining: 1}
	e.finished = false

	return nil
}

// Discard abandons the in-progress document and returns the buffer to the
// pool. There is no partial rollback in this format; cancellation is
// realized by dropping everything. After Discard only Reset is legal.
func (e *Encoder) Discard() {
	if e.buf != nil {
		pool.PutDocBuffer(e.buf)
		e.buf = nil
	}
	e.scopes = e.scopes[:1]
	e.cur = 0
	e.finished = true
}

// Len returns the number of document bytes written so far.
func (e *Encoder) Len() int {
	if e.buf == nil {
		return 0
	}

	return e.buf.Len()
}

// Depth returns the number of collection scopes currently open; 0 means
// only the root is active.
func (e *Encoder) Depth() int {
	return e.cur
}
