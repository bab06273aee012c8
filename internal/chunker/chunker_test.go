package chunker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pommel-dev/probe/internal/chunk"
)

func TestRegistry_DispatchesByExtension(t *testing.T) {
	r := NewRegistry()

	chunks, err := r.Chunk("Foo.java", []byte(`class Foo { void bar(){} }`))
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, chunk.KindClass, chunks[0].Kind)
}

func TestRegistry_FallsBackForUnknownExtension(t *testing.T) {
	r := NewRegistry()

	chunks, err := r.Chunk("config.json", []byte(`{"database_url": "x"}`))
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, chunk.KindOther, chunks[0].Kind)
	assert.Equal(t, "file", chunks[0].Name)
}

func TestRegistry_EmptyUnknownFileYieldsNoChunks(t *testing.T) {
	r := NewRegistry()

	chunks, err := r.Chunk("empty.txt", []byte("   \n\t"))
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestRegistry_DumpMirrorsChunk(t *testing.T) {
	r := NewRegistry()
	a, err := r.Chunk("Foo.java", []byte(`class Foo { void bar(){} }`))
	require.NoError(t, err)
	b, err := r.Dump("Foo.java", []byte(`class Foo { void bar(){} }`))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
