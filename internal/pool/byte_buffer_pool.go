// Package pool provides pooled byte buffers used as the encoder's output
// sink. The buffer is append-only except for Rewrite, which performs a
// bounds-checked overwrite of previously written or reserved bytes: the
// encoder reserves zero-filled slot space for collections up front and
// back-patches it as values arrive.
package pool

import (
	"io"
	"sync"
)

const (
	// DocBufferDefaultSize is the default capacity of document buffers
	// obtained from the pool.
	DocBufferDefaultSize  = 1024 * 16  // 16KiB
	DocBufferMaxThreshold = 1024 * 128 // 128KiB
)

type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// Append writes data to the end of the buffer, growing it if necessary,
// and returns the absolute position the data now occupies.
func (bb *ByteBuffer) Append(data []byte) int {
	pos := len(bb.B)
	bb.B = append(bb.B, data...)

	return pos
}

// AppendByte writes a single byte to the end of the buffer and returns its
// absolute position.
func (bb *ByteBuffer) AppendByte(c byte) int {
	pos := len(bb.B)
	bb.B = append(bb.B, c)

	return pos
}

// Reserve extends the buffer by n zero bytes without caller-supplied
// content and returns the starting position of the reserved region. The
// region is filled in later via Rewrite.
func (bb *ByteBuffer) Reserve(n int) int {
	if n < 0 {
		panic("Reserve: negative size")
	}

	pos := len(bb.B)
	bb.Grow(n)
	bb.B = bb.B[:pos+n]

	// Reused pool memory may hold stale bytes past the old length.
	clear(bb.B[pos:])

	return pos
}

// Rewrite overwrites exactly len(data) bytes starting at pos. The target
// range must already be within the buffer's written or reserved extent;
// Rewrite panics otherwise since an out-of-range patch indicates encoder
// state corruption, not caller input.
func (bb *ByteBuffer) Rewrite(pos int, data []byte) {
	if pos < 0 || pos+len(data) > len(bb.B) {
		panic("Rewrite: range outside written extent")
	}

	copy(bb.B[pos:], data)
}

// Slice returns a slice of the buffer from start to end.
// Panics if the indices are out of bounds.
func (bb *ByteBuffer) Slice(start, end int) []byte {
	if start < 0 || end < start || end > len(bb.B) {
		panic("Slice: invalid indices")
	}

	return bb.B[start:end]
}

// Grow grows the buffer to ensure it can hold requiredBytes more bytes without reallocating.
// If the buffer has sufficient capacity, Grow does nothing.
//
// The growth strategy is as follows:
//   - For small buffers (<64KB), grow by DocBufferDefaultSize to minimize reallocations.
//   - For larger buffers, grow by 25% of current capacity to balance memory usage and reallocation cost.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return // Sufficient capacity
	}

	growBy := DocBufferDefaultSize
	if cap(bb.B) > 4*DocBufferDefaultSize {
		// For larger buffers, grow by 25% to balance memory and reallocation cost
		growBy = cap(bb.B) / 4
	}

	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends the contents of data to the buffer, growing it as needed.
// It implements io.Writer.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// It uses sync.Pool internally to manage the buffers.
// The pool can be configured with a maximum size threshold to avoid retaining
// overly large buffers that could lead to memory bloat.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int // Optional maximum size threshold for buffers
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		// Discard overly large buffers to prevent memory bloat
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var docDefaultPool = NewByteBufferPool(DocBufferDefaultSize, DocBufferMaxThreshold)

// GetDocBuffer retrieves a ByteBuffer from the default document pool.
func GetDocBuffer() *ByteBuffer {
	return docDefaultPool.Get()
}

// PutDocBuffer returns a ByteBuffer to the default document pool.
func PutDocBuffer(bb *ByteBuffer) {
	docDefaultPool.Put(bb)
}
