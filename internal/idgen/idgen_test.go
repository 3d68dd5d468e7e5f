package idgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	first, second := New(), New()
	assert.NotEqual(t, first, second)
	assert.True(t, IsValid(first))
	assert.False(t, IsValid("report-1"))

	original := NewFunc
	NewFunc = func() string { return "fixed" }
	defer func() { NewFunc = original }()
	assert.Equal(t, "fixed", New())
}
