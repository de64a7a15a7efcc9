// Package format defines the wire-level constants of the fleece encoding:
// the value tag space, special-value nibbles, slot widths, pointer ranges,
// and the compression types usable on finished documents.
package format

type (
	// Tag identifies a value kind. It occupies the high nibble of a value's
	// first byte unless the PointerFlag bit is set, in which case the slot
	// holds a relative pointer instead of an inline value.
	Tag uint8

	CompressionType uint8
)

const (
	TagSpecial  Tag = 0x0 // TagSpecial marks null and boolean values.
	TagShortInt Tag = 0x1 // TagShortInt marks 12-bit signed integers.
	TagInt      Tag = 0x2 // TagInt marks variable-length integers.
	TagFloat    Tag = 0x3 // TagFloat marks float32/float64 values.
	TagString   Tag = 0x4 // TagString marks UTF-8 string values.
	TagBinary   Tag = 0x5 // TagBinary marks opaque byte strings.
	TagArray    Tag = 0x6 // TagArray marks array headers.
	TagDict     Tag = 0x7 // TagDict marks dictionary headers.

	// TagPointer is the first of the pointer pseudo-tags: any first byte
	// with the top bit set (tags 0x8..0xF) is a relative pointer, not an
	// inline value.
	TagPointer Tag = 0x8

	// PointerFlag is the pointer discriminator bit. It overlays the whole
	// tag space: value tags never exceed 0x7, so the top bit of a slot's
	// first byte is free to distinguish pointers from inline values.
	PointerFlag = 0x80
)

// Special-value payload nibbles, stored in the low bits of a special
// value's first byte.
const (
	SpecialNull  = 0x00
	SpecialFalse = 0x04
	SpecialTrue  = 0x08
)

// Slot widths. A collection scope picks one at creation and keeps it for
// its whole lifetime; the width bounds both the largest inline value and
// the farthest reachable pointer target.
const (
	WidthNarrow = 2
	WidthWide   = 4
)

// Pointer deltas are measured in 2-byte units from the slot to the value.
// A narrow slot encodes 15 signed bits of delta, a wide slot 31.
const (
	MaxNarrowDelta = 0x4000
	MaxWideDelta   = 0x40000000
)

// Short-integer bounds: values in this closed range use the 2-byte
// short-int encoding.
const (
	MinShortInt = -2048
	MaxShortInt = 2047
)

// General-integer flag byte layout: low 3 bits hold payload length minus
// one, IntFlagUnsigned marks an unsigned payload.
const (
	IntSizeMask     = 0x07
	IntFlagUnsigned = 0x08
)

// Float flag bytes double as payload byte lengths.
const (
	FloatFlag32 = 0x04
	FloatFlag64 = 0x08
)

// Collection header layout: byte 0 carries the tag nibble, the wide flag
// and the top 3 count bits; byte 1 carries the low 8 count bits. Counts of
// MaxInlineCount or more store the sentinel and append a varint of the
// true count.
const (
	WideFlag       = 0x08
	MaxInlineCount = 0x07FF
)

// String headers store the length in the low nibble of the first byte;
// LongStringLength marks an appended varint holding the true length.
const LongStringLength = 0x0F

// DefaultSharedStringLimit is the largest string the intern cache will
// deduplicate. Longer strings are always written as literals to bound
// cache memory and lookup cost.
const DefaultSharedStringLimit = 100

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (t Tag) String() string {
	switch t {
	case TagSpecial:
		return "Special"
	case TagShortInt:
		return "ShortInt"
	case TagInt:
		return "Int"
	case TagFloat:
		return "Float"
	case TagString:
		return "String"
	case TagBinary:
		return "Binary"
	case TagArray:
		return "Array"
	case TagDict:
		return "Dict"
	default:
		if t >= TagPointer {
			return "Pointer"
		}

		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
