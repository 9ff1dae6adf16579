// Package lexer tokenizes SKILL source text into delimiter, atom, string,
// comment and whitespace spans. It is built for buffers that are being
// actively edited: an unterminated string or comment at the end of the
// buffer is reported as end-of-input, never as an error.
package lexer

import "strings"

// Kind classifies a token span.
type Kind int

const (
	// KindOpen is an opening delimiter "("
	KindOpen Kind = iota
	// KindClose is a closing delimiter ")"
	KindClose
	// KindAtom is a symbol, number or other contiguous non-delimiter run
	KindAtom
	// KindString is a double-quoted string literal
	KindString
	// KindComment is a ";" line comment or a nested "/* */" block comment
	KindComment
	// KindWhitespace is a run of spaces, tabs and newlines
	KindWhitespace
)

// String returns a readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindOpen:
		return "open"
	case KindClose:
		return "close"
	case KindAtom:
		return "atom"
	case KindString:
		return "string"
	case KindComment:
		return "comment"
	case KindWhitespace:
		return "whitespace"
	default:
		return "unknown"
	}
}

// Direction selects which way Scan moves from the given offset.
type Direction int

const (
	// Forward scans toward the end of the buffer
	Forward Direction = iota
	// Backward scans toward the start of the buffer
	Backward
)

// Token is a classified span [Start, End) of the source text.
// Incomplete marks a string or comment that reaches the end of the
// buffer without its closing delimiter.
type Token struct {
	Kind       Kind
	Start      int
	End        int
	Incomplete bool
}

// Text returns the token's span of src.
func (t Token) Text(src string) string {
	return src[t.Start:t.End]
}

// IsTrivia reports whether the token carries no structure (whitespace or
// comment). Navigation skips trivia.
func (t Token) IsTrivia() bool {
	return t.Kind == KindComment || t.Kind == KindWhitespace
}

// Scan returns the nearest non-trivia token at or after `from` (Forward)
// or ending at or before `from` (Backward). The second result is false at
// end of input, including when the only remaining token is an unterminated
// string or comment.
func Scan(src string, from int, dir Direction) (Token, bool) {
	tokens := ScanAll(src)
	if dir == Forward {
		for _, t := range tokens {
			if t.Start < from || t.IsTrivia() {
				continue
			}
			if t.Incomplete {
				return Token{}, false
			}
			return t, true
		}
		return Token{}, false
	}
	for i := len(tokens) - 1; i >= 0; i-- {
		t := tokens[i]
		if t.End > from || t.IsTrivia() {
			continue
		}
		if t.Incomplete {
			return Token{}, false
		}
		return t, true
	}
	return Token{}, false
}

// ScanAll tokenizes the whole buffer front to back, trivia included.
func ScanAll(src string) []Token {
	var tokens []Token
	pos := 0
	for pos < len(src) {
		t := scanOne(src, pos)
		tokens = append(tokens, t)
		pos = t.End
	}
	return tokens
}

// scanOne reads the single token starting at pos. pos must be < len(src).
func scanOne(src string, pos int) Token {
	c := src[pos]
	switch {
	case c == '(':
		return Token{Kind: KindOpen, Start: pos, End: pos + 1}
	case c == ')':
		return Token{Kind: KindClose, Start: pos, End: pos + 1}
	case c == ';':
		return scanLineComment(src, pos)
	case c == '/' && pos+1 < len(src) && src[pos+1] == '*':
		return scanBlockComment(src, pos)
	case c == '"':
		return scanString(src, pos)
	case isSpace(c):
		end := pos
		for end < len(src) && isSpace(src[end]) {
			end++
		}
		return Token{Kind: KindWhitespace, Start: pos, End: end}
	default:
		return scanAtom(src, pos)
	}
}

func scanLineComment(src string, pos int) Token {
	end := strings.IndexByte(src[pos:], '\n')
	if end < 0 {
		return Token{Kind: KindComment, Start: pos, End: len(src)}
	}
	return Token{Kind: KindComment, Start: pos, End: pos + end}
}

// scanBlockComment handles nested /* */ pairs. An unclosed comment swallows
// the rest of the buffer and is marked Incomplete.
func scanBlockComment(src string, pos int) Token {
	depth := 0
	i := pos
	for i < len(src) {
		if i+1 < len(src) && src[i] == '/' && src[i+1] == '*' {
			depth++
			i += 2
			continue
		}
		if i+1 < len(src) && src[i] == '*' && src[i+1] == '/' {
			depth--
			i += 2
			if depth == 0 {
				return Token{Kind: KindComment, Start: pos, End: i}
			}
			continue
		}
		i++
	}
	return Token{Kind: KindComment, Start: pos, End: len(src), Incomplete: true}
}

// scanString treats the literal as opaque; only the closing quote matters,
// and a backslash keeps the next byte from closing it.
func scanString(src string, pos int) Token {
	i := pos + 1
	for i < len(src) {
		switch src[i] {
		case '\\':
			i += 2
		case '"':
			return Token{Kind: KindString, Start: pos, End: i + 1}
		default:
			i++
		}
	}
	return Token{Kind: KindString, Start: pos, End: len(src), Incomplete: true}
}

func scanAtom(src string, pos int) Token {
	end := pos
	for end < len(src) {
		c := src[end]
		if isSpace(c) || c == '(' || c == ')' || c == '"' || c == ';' {
			break
		}
		if c == '/' && end+1 < len(src) && src[end+1] == '*' {
			break
		}
		end++
	}
	return Token{Kind: KindAtom, Start: pos, End: end}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
