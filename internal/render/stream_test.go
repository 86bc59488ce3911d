package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStreamWord(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"$Name!", "Name"},
		{"$name_2[x]", "name_2"},
		{"$2abc", ""},
		{"$", ""},
		{"$ Name", ""},
		{"$Ünïcode.", "Ünïcode"},
	}
	for _, tt := range tests {
		s := newStream(tt.text)
		s.advance()
		assert.Equal(t, tt.want, s.word(1), tt.text)
	}
}

func TestStreamBlock(t *testing.T) {
	s := newStream("x[a[b]c][d]")
	s.advance()

	body, ok := s.block('[', ']')
	assert.True(t, ok)
	assert.Equal(t, "a[b]c", body)
	assert.Equal(t, ']', s.current())

	body, ok = s.block('[', ']')
	assert.True(t, ok)
	assert.Equal(t, "d", body)

	body, ok = s.block('[', ']')
	assert.False(t, ok)
	assert.Empty(t, body)
	assert.False(t, s.dangling, "no clause follows the last one")
	assert.False(t, s.advance())
}

func TestStreamBlockMustFollowImmediately(t *testing.T) {
	s := newStream("x [a]")
	s.advance()
	_, ok := s.block('[', ']')
	assert.False(t, ok)
	assert.Equal(t, 0, s.pos)
}

func TestStreamUnclosedBlock(t *testing.T) {
	s := newStream("x(a(b)")
	s.advance()
	_, ok := s.block('(', ')')
	assert.False(t, ok)
	assert.Equal(t, 0, s.pos, "an unclosed block leaves the stream in place")
	assert.True(t, s.dangling)
	assert.Equal(t, "x(a(b)", s.rest(0))
	assert.False(t, s.advance())
}

func TestStreamFork(t *testing.T) {
	s := newStream("abc")
	s.advance()
	f := s.fork()
	f.advance()
	assert.Equal(t, 'b', f.current())
	assert.Equal(t, 'a', s.current())
	assert.Equal(t, 'c', s.peek(2))
	assert.Equal(t, rune(0), s.peek(5))
}
