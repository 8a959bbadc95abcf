package compress

import (
	"encoding/base64"
	"fmt"
)

// Compress encodes record content before it is written to the database and
// decodes it on the way back out.
type Compress interface {
	Name() string
	Encode(data []byte) ([]byte, error)
	Decode(data []byte) ([]byte, error)
}

// FromName returns the codec registered under the given name. Commits store
// the codec name so their records stay readable after the server default
// changes.
func FromName(name string) (Compress, error) {
	switch name {
	case "", "none":
		return NewNop(), nil
	case "gzip":
		return NewGZip(), nil
	case "brotli":
		return NewBrotli(), nil
	case "lz4":
		return NewLZ4(), nil
	}

	return nil, fmt.Errorf("unknown compression codec: %q", name)
}

// EncodeString compresses data and renders the result safe for a text
// column. Codec output is arbitrary binary, which Postgres rejects in text
// columns, so the stored form is base64.
func EncodeString(c Compress, data []byte) (string, error) {
	encoded, err := c.Encode(data)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(encoded), nil
}

// DecodeString reverses EncodeString.
func DecodeString(c Compress, content string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		return nil, err
	}
	return c.Decode(raw)
}
