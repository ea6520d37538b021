package uniuri

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	a, b := New(), New()

	assert.Len(t, a, StdLen)
	assert.NotEqual(t, a, b)

	for _, r := range a {
		assert.True(t, strings.ContainsRune(string(StdChars), r))
	}
}

func TestNewLenChars(t *testing.T) {
	assert.Empty(t, NewLen(0))
	assert.Len(t, NewLen(SessionLen), SessionLen)
	assert.Len(t, NewLen(500), 500)

	s := NewLenChars(200, []byte("ab"))
	assert.Len(t, s, 200)
	assert.Empty(t, strings.Trim(s, "ab"))

	assert.Panics(t, func() { NewLenChars(3, []byte("a")) })
}
