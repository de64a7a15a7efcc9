// Package fleece implements a single-pass, forward-only encoder for a
// compact, self-describing binary format with internal structural sharing.
//
// A document is one value tree: scalars, strings, byte strings, arrays and
// dictionaries. Instead of nesting containers, collections hold fixed-width
// slots that carry either a small value inline or a relative pointer to the
// value's bytes elsewhere in the stream. Repeated string content is
// deduplicated into pointers by a document-scoped intern cache, so a string
// written many times occupies the stream once.
//
// # Core Features
//
//   - Single forward pass: producers build a document once, top-down, and
//     never revisit a closed collection
//   - Slot reservation with in-place back-patching, so parents never buffer
//     their children
//   - Per-scope slot width (2 or 4 bytes) trading size against pointer reach
//   - Document-wide string interning via 64-bit xxHash64 keys
//   - Optional whole-document compression (None, Zstd, S2, LZ4)
//
// # Basic Usage
//
// Encoding a document with the streaming API:
//
//	enc, _ := fleece.NewEncoder()
//	enc.BeginDict(2, false)
//	enc.WriteKey("name")
//	enc.WriteString("sensor-7")
//	enc.WriteKey("readings")
//	enc.BeginArray(3, false)
//	enc.WriteInt(17)
//	enc.WriteDouble(3.25)
//	enc.WriteNull()
//	enc.End()
//	enc.End()
//	doc, _ := enc.Finish()
//
// Or with the convenience wrapper:
//
//	doc, _ := fleece.Marshal(map[string]any{
//	    "name":     "sensor-7",
//	    "readings": []any{int64(17), 3.25, nil},
//	})
//
// The encoder is strictly single-writer: exactly one scope, the innermost,
// is open for writing at any instant, and every operation completes before
// the next begins.
package fleece

import (
	"errors"
	"fmt"
	"sort"

	"github.com/bigdig/fleece/compress"
	"github.com/bigdig/fleece/errs"
	"github.com/bigdig/fleece/format"
)

// Marshal encodes v as a complete document and returns its bytes.
//
// Supported types: nil, bool, all Go integer types, float32, float64,
// string, []byte, []any and map[string]any. Dictionary keys are written in
// sorted order so output is deterministic.
//
// Collections are first encoded with narrow (2-byte) slots; if a pointer
// overflows that reach the whole document is re-encoded with wide slots.
func Marshal(v any, opts ...Option) ([]byte, error) {
	doc, err := marshal(v, false, opts)
	if err != nil && errors.Is(err, errs.ErrPointerOutOfRange) {
		return marshal(v, true, opts)
	}

	return doc, err
}

func marshal(v any, wide bool, opts []Option) ([]byte, error) {
	e, err := NewEncoder(opts...)
	if err != nil {
		return nil, err
	}

	if err := e.writeAny(v, wide); err != nil {
		e.Discard()
		return nil, err
	}

	return e.Finish()
}

func (e *Encoder) writeAny(v any, wide bool) error {
	switch x := v.(type) {
	case nil:
		return e.WriteNull()
	case bool:
		return e.WriteBool(x)
	case int:
		return e.WriteInt(int64(x))
	case int8:
		return e.WriteInt(int64(x))
	case int16:
		return e.WriteInt(int64(x))
	case int32:
		return e.WriteInt(int64(x))
	case int64:
		return e.WriteInt(x)
	case uint:
		return e.WriteUint(uint64(x))
	case uint8:
		return e.WriteUint(uint64(x))
	case uint16:
		return e.WriteUint(uint64(x))
	case uint32:
		return e.WriteUint(uint64(x))
	case uint64:
		return e.WriteUint(x)
	case float32:
		return e.WriteFloat(x)
	case float64:
		return e.WriteDouble(x)
	case string:
		return e.WriteString(x)
	case []byte:
		return e.WriteData(x)
	case []any:
		if err := e.BeginArray(len(x), wide); err != nil {
			return err
		}
		for _, item := range x {
			if err := e.writeAny(item, wide); err != nil {
				return err
			}
		}

		return e.End()
	case map[string]any:
		if err := e.BeginDict(len(x), wide); err != nil {
			return err
		}
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := e.WriteKey(k); err != nil {
				return err
			}
			if err := e.writeAny(x[k], wide); err != nil {
				return err
			}
		}

		return e.End()
	default:
		return fmt.Errorf("%w: unsupported type %T", errs.ErrInvalidValue, v)
	}
}

// Compress compresses a finished document with the given codec type.
func Compress(doc []byte, compression format.CompressionType) ([]byte, error) {
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, err
	}

	return codec.Compress(doc)
}

// Decompress restores a document previously compressed with Compress using
// the same codec type.
func Decompress(data []byte, compression format.CompressionType) ([]byte, error) {
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, err
	}

	return codec.Decompress(data)
}
