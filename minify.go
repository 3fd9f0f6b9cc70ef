package main

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// CommentProfile holds the comment delimiters for one language. An empty token
// disables that kind of comment; block comments need both tokens.
type CommentProfile struct {
	LineComment string
	BlockStart  string
	BlockEnd    string
}

func (p CommentProfile) hasBlockComments() bool {
	return p.BlockStart != "" && p.BlockEnd != ""
}

type scanState int

const (
	stateNormal scanState = iota
	stateString
	stateChar
	stateLineComment
	stateBlockComment
)

func (s scanState) String() string {
	switch s {
	case stateNormal:
		return "normal"
	case stateString:
		return "string"
	case stateChar:
		return "char"
	case stateLineComment:
		return "line-comment"
	case stateBlockComment:
		return "block-comment"
	default:
		return "unknown"
	}
}

// minify removes comments and collapses whitespace so the whole file fits on
// one line. String and character literals are copied through, except that raw
// line breaks inside a string become the two characters `\n`.
func minify(content string, profile CommentProfile) string {
	m := minifier{
		src:     content,
		profile: profile,
	}
	m.out.Grow(len(content))
	m.scan()
	return strings.TrimRightFunc(m.out.String(), unicode.IsSpace)
}

type minifier struct {
	src     string
	profile CommentProfile
	out     strings.Builder

	state scanState
	// escaped is set while inside a literal when the previous character was a
	// backslash that has not itself been escaped.
	escaped bool
	// pendingSpace records whitespace (or a removed comment) seen in normal
	// code; it is written as one space before the next emitted character.
	pendingSpace bool
}

func (m *minifier) scan() {
	for i := 0; i < len(m.src); {
		i = m.step(i)
	}
}

// step consumes input at offset i according to the current state and returns
// the offset of the next unconsumed byte.
func (m *minifier) step(i int) int {
	switch m.state {
	case stateString:
		return m.scanString(i)
	case stateChar:
		return m.scanChar(i)
	case stateLineComment:
		return m.scanLineComment(i)
	case stateBlockComment:
		return m.scanBlockComment(i)
	default:
		return m.scanNormal(i)
	}
}

func (m *minifier) scanNormal(i int) int {
	r, size := utf8.DecodeRuneInString(m.src[i:])
	// Quotes win over comment tokens, so a token starting with a quote (VB's ',
	// Python's ''') never opens a comment.
	switch r {
	case '"':
		m.openLiteral(stateString)
		m.emit("\"")
		return i + size
	case '\'':
		m.openLiteral(stateChar)
		m.emit("'")
		return i + size
	}

	if tok := m.profile.LineComment; tok != "" && strings.HasPrefix(m.src[i:], tok) {
		m.state = stateLineComment
		m.pendingSpace = true
		return i + len(tok)
	}
	if m.profile.hasBlockComments() && strings.HasPrefix(m.src[i:], m.profile.BlockStart) {
		m.state = stateBlockComment
		m.pendingSpace = true
		return i + len(m.profile.BlockStart)
	}

	if unicode.IsSpace(r) {
		m.pendingSpace = true
	} else {
		m.emit(m.src[i : i+size])
	}
	return i + size
}

func (m *minifier) openLiteral(state scanState) {
	m.state = state
	m.escaped = false
}

func (m *minifier) scanString(i int) int {
	r, size := utf8.DecodeRuneInString(m.src[i:])
	switch {
	case r == '\\' && !m.escaped:
		m.out.WriteByte('\\')
		if i+1 < len(m.src) && isPairedEscape(m.src[i+1]) {
			m.out.WriteByte(m.src[i+1])
			return i + 2
		}
		m.escaped = true
		return i + 1
	case r == '"' && !m.escaped:
		m.out.WriteByte('"')
		m.state = stateNormal
		return i + 1
	case r == '\n' || r == '\r':
		m.escaped = false
		m.out.WriteString(`\n`)
		return skipLineBreak(m.src, i)
	}
	m.escaped = false
	m.out.WriteString(m.src[i : i+size])
	return i + size
}

func (m *minifier) scanChar(i int) int {
	r, size := utf8.DecodeRuneInString(m.src[i:])
	switch {
	case r == '\'' && !m.escaped:
		m.out.WriteByte('\'')
		m.state = stateNormal
		return i + 1
	case r == '\n' || r == '\r':
		m.escaped = false
		m.out.WriteByte(' ')
		return skipLineBreak(m.src, i)
	}
	m.escaped = r == '\\' && !m.escaped
	m.out.WriteString(m.src[i : i+size])
	return i + size
}

func (m *minifier) scanLineComment(i int) int {
	j := strings.IndexAny(m.src[i:], "\r\n")
	if j < 0 {
		return len(m.src)
	}
	m.state = stateNormal
	return i + j + 1
}

func (m *minifier) scanBlockComment(i int) int {
	j := strings.Index(m.src[i:], m.profile.BlockEnd)
	if j < 0 {
		return len(m.src)
	}
	m.state = stateNormal
	return i + j + len(m.profile.BlockEnd)
}

// emit writes code outside literals, flushing a pending separator first. No
// separator is written at the start of the output.
func (m *minifier) emit(s string) {
	if m.pendingSpace && m.out.Len() > 0 {
		m.out.WriteByte(' ')
	}
	m.pendingSpace = false
	m.out.WriteString(s)
}

func isPairedEscape(b byte) bool {
	switch b {
	case 'n', 'r', 't', '\\', '"':
		return true
	}
	return false
}

// skipLineBreak returns the offset just past the line break at i, treating
// "\r\n" as one break.
func skipLineBreak(s string, i int) int {
	if s[i] == '\r' && i+1 < len(s) && s[i+1] == '\n' {
		return i + 2
	}
	return i + 1
}
