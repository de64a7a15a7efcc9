package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer_Append(t *testing.T) {
	bb := NewByteBuffer(16)

	pos := bb.Append([]byte{1, 2, 3})
	require.Equal(t, 0, pos)
	require.Equal(t, 3, bb.Len())

	pos = bb.Append([]byte{4, 5})
	require.Equal(t, 3, pos)
	require.Equal(t, []byte{1, 2, 3, 4, 5}, bb.Bytes())

	pos = bb.AppendByte(6)
	require.Equal(t, 5, pos)
	require.Equal(t, byte(6), bb.Bytes()[5])
}

func TestByteBuffer_ReserveRewrite(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.Append([]byte{0xAA, 0xBB})

	pos := bb.Reserve(4)
	require.Equal(t, 2, pos)
	require.Equal(t, 6, bb.Len())
	require.Equal(t, []byte{0, 0, 0, 0}, bb.Slice(pos, pos+4))

	bb.Rewrite(pos, []byte{1, 2})
	bb.Rewrite(pos+2, []byte{3, 4})
	require.Equal(t, []byte{0xAA, 0xBB, 1, 2, 3, 4}, bb.Bytes())
}

func TestByteBuffer_ReserveZeroesReusedMemory(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.Append([]byte{0xFF, 0xFF, 0xFF, 0xFF})
	bb.Reset()

	pos := bb.Reserve(4)
	require.Equal(t, 0, pos)
	require.Equal(t, []byte{0, 0, 0, 0}, bb.Bytes())
}

func TestByteBuffer_RewriteOutOfRange(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.Append([]byte{1, 2, 3})

	require.Panics(t, func() { bb.Rewrite(2, []byte{9, 9}) })
	require.Panics(t, func() { bb.Rewrite(-1, []byte{9}) })
}

func TestByteBuffer_Grow(t *testing.T) {
	bb := NewByteBuffer(8)
	initialCap := bb.Cap()

	bb.Grow(initialCap + 1)
	require.GreaterOrEqual(t, bb.Cap(), initialCap+1)
	require.Equal(t, 0, bb.Len())

	// Growing within capacity is a no-op.
	capBefore := bb.Cap()
	bb.Grow(1)
	require.Equal(t, capBefore, bb.Cap())
}

func TestByteBufferPool(t *testing.T) {
	p := NewByteBufferPool(64, 128)

	bb := p.Get()
	require.NotNil(t, bb)
	bb.Append([]byte{1, 2, 3})
	p.Put(bb)

	bb2 := p.Get()
	require.Equal(t, 0, bb2.Len())

	// Oversized buffers are discarded rather than pooled.
	big := NewByteBuffer(256)
	big.Reserve(200)
	p.Put(big)

	p.Put(nil) // must not panic
}

func TestDocBufferPool(t *testing.T) {
	bb := GetDocBuffer()
	require.NotNil(t, bb)
	require.Equal(t, 0, bb.Len())

	bb.Append([]byte("doc"))
	PutDocBuffer(bb)
}
