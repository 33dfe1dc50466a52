package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitIDs(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitIDs("a,b"))
	assert.Equal(t, []string{"a", "b"}, splitIDs(" a , b "), "whitespace around ids is dropped")
	assert.Equal(t, []string{"a", "b"}, splitIDs("a,,b,"), "empty segments are dropped")
	assert.Nil(t, splitIDs(",, ,"))
	assert.Nil(t, splitIDs(""))
}
