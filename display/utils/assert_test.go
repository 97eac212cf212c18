package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssert(t *testing.T) {
	assert.NotPanics(t, func() { Assert(true) })
	assert.NotPanics(t, func() { Assert(true, "with message") })
	assert.Panics(t, func() { Assert(false) })
	assert.PanicsWithValue(t, "boom", func() { Assert(false, "boom") })
}
