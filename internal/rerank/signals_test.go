package rerank

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsTestPath(t *testing.T) {
	assert.True(t, ContainsTestPath("internal/query/query_test.go"))
	assert.True(t, ContainsTestPath("TEST/fixtures/a.go"))
	assert.False(t, ContainsTestPath("internal/query/query.go"))
}
