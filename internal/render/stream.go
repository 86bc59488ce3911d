package render

import "unicode"

// stream walks a template one rune at a time. pos is the index of the
// current rune and starts before the first one.
type stream struct {
	src []rune
	pos int

	// dangling is set once a clause was opened but never closed.
	dangling bool
}

func newStream(template string) *stream {
	return &stream{src: []rune(template), pos: -1}
}

// advance moves to the next rune and reports whether there is one.
func (s *stream) advance() bool {
	if s.pos+1 >= len(s.src) {
		s.pos = len(s.src)
		return false
	}
	s.pos++
	return true
}

// current returns the rune at pos.
func (s *stream) current() rune { return s.src[s.pos] }

// peek returns the rune offset positions ahead, or 0 past the end.
func (s *stream) peek(offset int) rune {
	i := s.pos + offset
	if i < 0 || i >= len(s.src) {
		return 0
	}
	return s.src[i]
}

// word returns the identifier starting offset positions ahead. Identifiers
// are letters, digits and underscores and never start with a digit.
func (s *stream) word(offset int) string {
	start := s.pos + offset
	end := start
	for end < len(s.src) && isWordRune(s.src[end], end == start) {
		end++
	}
	if start >= len(s.src) {
		return ""
	}
	return string(s.src[start:end])
}

func isWordRune(r rune, first bool) bool {
	if r == '_' || unicode.IsLetter(r) {
		return true
	}
	return !first && unicode.IsDigit(r)
}

// fork returns an independent stream at the same position.
func (s *stream) fork() *stream {
	return &stream{src: s.src, pos: s.pos}
}

// block reads an open/close delimited clause that starts right after the
// current rune. Nested pairs of the same delimiters are kept in the clause.
// When the next rune is not open, or the clause is never closed, the stream
// does not move and ok is false; an unclosed clause also marks the stream
// dangling. On success the stream rests on the closing delimiter.
func (s *stream) block(open, close rune) (body string, ok bool) {
	if s.peek(1) != open {
		return "", false
	}

	depth := 0
	for i := s.pos + 1; i < len(s.src); i++ {
		switch s.src[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				body = string(s.src[s.pos+2 : i])
				s.pos = i
				return body, true
			}
		}
	}
	s.dangling = true
	return "", false
}

// rest returns the text from start to the end and moves past the end.
func (s *stream) rest(start int) string {
	text := string(s.src[start:])
	s.pos = len(s.src)
	return text
}
