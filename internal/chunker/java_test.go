package chunker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pommel-dev/probe/internal/chunk"
)

func TestJavaProcessor_ClassAndMethods(t *testing.T) {
	src := `class FooBar { void someMethod(){ blablaCode(); } String doSomething(){ return "text"; } }`

	chunks, err := NewJavaProcessor().Chunk([]byte(src))
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	assert.Equal(t, chunk.KindClass, chunks[0].Kind)
	assert.Equal(t, "FooBar", chunks[0].Name)

	assert.Equal(t, chunk.KindMethod, chunks[1].Kind)
	assert.Equal(t, "someMethod", chunks[1].Name)
	assert.Contains(t, chunks[1].Declaration, "void someMethod() {")
	assert.True(t, chunks[1].Content[len(chunks[1].Content)-1] == '}')

	assert.Equal(t, chunk.KindMethod, chunks[2].Kind)
	assert.Equal(t, "doSomething", chunks[2].Name)
}

func TestJavaProcessor_Ordering(t *testing.T) {
	src := `
class A {
	void first() {}
	void second() {}
}
`
	chunks, err := NewJavaProcessor().Chunk([]byte(src))
	require.NoError(t, err)
	for i := 1; i < len(chunks); i++ {
		assert.LessOrEqual(t, chunks[i-1].StartLine, chunks[i].StartLine)
	}
}

func TestJavaProcessor_NestedClassCarriesAncestorHeader(t *testing.T) {
	src := `
class Outer {
	class Inner {
		void method() {}
	}
}
`
	chunks, err := NewJavaProcessor().Chunk([]byte(src))
	require.NoError(t, err)

	var method *chunk.Chunk
	for i := range chunks {
		if chunks[i].Name == "method" {
			method = &chunks[i]
		}
	}
	require.NotNil(t, method)
	assert.Contains(t, method.Declaration, "class Outer {")
	assert.Contains(t, method.Declaration, "class Inner {")
}

func TestJavaProcessor_UnnamedCallableSkipped(t *testing.T) {
	src := `
class WithLambda {
	Runnable r = () -> { doThing(); };
}
`
	chunks, err := NewJavaProcessor().Chunk([]byte(src))
	require.NoError(t, err)
	for _, c := range chunks {
		assert.NotEqual(t, "", c.Name)
	}
}
