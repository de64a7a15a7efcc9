package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bigdig/fleece/format"
)

// sampleDocument builds a payload that resembles a realistic encoded
// document: repetitive headers mixed with literal string data.
func sampleDocument() []byte {
	var buf bytes.Buffer
	for i := 0; i < 200; i++ {
		buf.Write([]byte{0x60, 0x04, 0x80, 0x02})
		buf.WriteString("sensor-reading-")
		buf.WriteByte(byte('a' + i%26))
	}

	return buf.Bytes()
}

func TestCodecs_RoundTrip(t *testing.T) {
	doc := sampleDocument()

	types := []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}
	for _, ct := range types {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(doc)
			require.NoError(t, err)

			restored, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, doc, restored)
		})
	}
}

func TestCodecs_CompressRepetitiveData(t *testing.T) {
	doc := sampleDocument()

	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		compressed, err := codec.Compress(doc)
		require.NoError(t, err)
		require.Less(t, len(compressed), len(doc), "%s should shrink repetitive document data", ct)
	}
}

func TestCodecs_EmptyInput(t *testing.T) {
	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		compressed, err := codec.Compress(nil)
		require.NoError(t, err)

		restored, err := codec.Decompress(compressed)
		require.NoError(t, err)
		require.Empty(t, restored)
	}
}

func TestCreateCodec_Invalid(t *testing.T) {
	_, err := CreateCodec(format.CompressionType(0xFF), "document")
	require.Error(t, err)
	require.Contains(t, err.Error(), "document")

	_, err = GetCodec(format.CompressionType(0xFF))
	require.Error(t, err)
}

func TestNoOp_SharesInput(t *testing.T) {
	codec := NewNoOpCompressor()
	doc := []byte{1, 2, 3}

	out, err := codec.Compress(doc)
	require.NoError(t, err)
	require.Equal(t, doc, out)

	back, err := codec.Decompress(out)
	require.NoError(t, err)
	require.Equal(t, doc, back)
}
