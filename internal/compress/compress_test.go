package compress

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestRoundTrip(t *testing.T) {
	codecs := []Compress{NewNop(), NewGZip(), NewBrotli(), NewLZ4()}
	payload := []byte(strings.Repeat("a fairly repetitive snapshot line\n", 64))

	for _, codec := range codecs {
		t.Run(codec.Name(), func(t *testing.T) {
			encoded, err := codec.Encode(payload)
			assert.NoError(t, err)

			decoded, err := codec.Decode(encoded)
			assert.NoError(t, err)
			assert.Equal(t, payload, decoded)
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	codecs := []Compress{NewNop(), NewGZip(), NewBrotli(), NewLZ4()}
	payload := []byte(strings.Repeat("a fairly repetitive snapshot line\n", 64))

	for _, codec := range codecs {
		t.Run(codec.Name(), func(t *testing.T) {
			stored, err := EncodeString(codec, payload)
			assert.NoError(t, err)

			// compressed output is binary; the stored form must survive a
			// Postgres text column
			assert.True(t, utf8.ValidString(stored))
			assert.NotContains(t, stored, "\x00")

			decoded, err := DecodeString(codec, stored)
			assert.NoError(t, err)
			assert.Equal(t, payload, decoded)
		})
	}
}

func TestDecodeString_BadContent(t *testing.T) {
	_, err := DecodeString(NewGZip(), "not base64!")
	assert.Error(t, err)
}

func TestFromName(t *testing.T) {
	tests := []struct {
		name  string
		codec string
	}{
		{name: "", codec: "none"},
		{name: "none", codec: "none"},
		{name: "gzip", codec: "gzip"},
		{name: "brotli", codec: "brotli"},
		{name: "lz4", codec: "lz4"},
	}

	for _, tt := range tests {
		codec, err := FromName(tt.name)
		assert.NoError(t, err)
		assert.Equal(t, tt.codec, codec.Name())
	}

	_, err := FromName("zstd")
	assert.Error(t, err)
}
