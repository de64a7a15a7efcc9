package encoding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUvarint_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		v    uint64
		size int
	}{
		{"zero", 0, 1},
		{"one byte max", 0x7F, 1},
		{"two bytes min", 0x80, 2},
		{"two bytes", 0x0FFF, 2},
		{"three bytes", 0x4000, 3},
		{"large count", 100_000, 3},
		{"max uint64", math.MaxUint64, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := AppendUvarint(nil, tt.v)
			require.Len(t, buf, tt.size)
			require.Equal(t, tt.size, UvarintSize(tt.v))

			got, n := Uvarint(buf)
			require.Equal(t, tt.size, n)
			require.Equal(t, tt.v, got)
		})
	}
}

func TestAppendUvarint_Extends(t *testing.T) {
	buf := []byte{0xAA}
	buf = AppendUvarint(buf, 300)
	require.Equal(t, byte(0xAA), buf[0])

	got, n := Uvarint(buf[1:])
	require.Equal(t, 2, n)
	require.Equal(t, uint64(300), got)
}

func TestUvarint_Truncated(t *testing.T) {
	// Continuation bit set but no following byte.
	_, n := Uvarint([]byte{0x80})
	require.Equal(t, 0, n)

	_, n = Uvarint(nil)
	require.Equal(t, 0, n)
}

func TestUvarint_Overflow(t *testing.T) {
	// 11 continuation groups exceed 64 bits.
	buf := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01}
	_, n := Uvarint(buf)
	require.Equal(t, 0, n)
}

func BenchmarkAppendUvarint(b *testing.B) {
	buf := make([]byte, 0, MaxUvarintLen64)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf = AppendUvarint(buf[:0], 123456789)
	}
}
