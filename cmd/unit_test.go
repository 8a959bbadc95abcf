package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadSourceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.txt")
	assert.NoError(t, os.WriteFile(path, []byte("first\nsecond\n"), 0644))

	sources, err := readSourceFile(path)
	assert.NoError(t, err)
	assert.Len(t, sources, 2)
	assert.Equal(t, int32(0), sources[0].Sq)
	assert.Equal(t, "first", sources[0].Content)
	assert.Equal(t, int32(1), sources[1].Sq)
	assert.Equal(t, "second", sources[1].Content)
}

func TestReadSourceFile_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	assert.NoError(t, os.WriteFile(path, nil, 0644))

	sources, err := readSourceFile(path)
	assert.NoError(t, err)
	assert.Empty(t, sources)
}
