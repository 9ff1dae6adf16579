// Package sexp recovers structural context from SKILL source text: walking
// sibling expressions, finding enclosing forms, and resolving the cursor's
// argument position. Nothing is cached between queries; a Navigator is built
// per query from the live buffer text and discarded.
package sexp

import (
	"github.com/Aurelbuche/skill-mode/internal/lexer"
)

// Navigator walks balanced expressions over a fixed snapshot of buffer text.
type Navigator struct {
	src    string
	tokens []lexer.Token // structural tokens only, trivia stripped
}

// NewNavigator tokenizes src once and returns a navigator over it.
func NewNavigator(src string) *Navigator {
	all := lexer.ScanAll(src)
	tokens := make([]lexer.Token, 0, len(all))
	for _, t := range all {
		if t.IsTrivia() {
			continue
		}
		tokens = append(tokens, t)
	}
	return &Navigator{src: src, tokens: tokens}
}

// BackwardSexp finds the complete expression ending at or before offset,
// skipping trivia. It returns the expression text and the offset of its
// first byte. ok is false when no complete expression precedes the offset;
// in particular an unmatched closing delimiter is not a valid boundary.
func (n *Navigator) BackwardSexp(offset int) (text string, newOffset int, ok bool) {
	idx := n.lastEndingBefore(offset)
	if idx < 0 {
		return "", offset, false
	}
	t := n.tokens[idx]
	switch t.Kind {
	case lexer.KindClose:
		openIdx := n.matchBackward(idx)
		if openIdx < 0 {
			return "", offset, false
		}
		start := n.tokens[openIdx].Start
		return n.src[start:t.End], start, true
	case lexer.KindAtom:
		return t.Text(n.src), t.Start, true
	case lexer.KindString:
		if t.Incomplete {
			return "", offset, false
		}
		return t.Text(n.src), t.Start, true
	default:
		// An opening delimiter has no complete expression ending here.
		return "", offset, false
	}
}

// ForwardSexp is the mirror of BackwardSexp: it finds the complete
// expression starting at or after offset and returns the offset just past
// its last byte.
func (n *Navigator) ForwardSexp(offset int) (text string, newOffset int, ok bool) {
	idx := n.firstStartingAt(offset)
	if idx < 0 {
		return "", offset, false
	}
	t := n.tokens[idx]
	switch t.Kind {
	case lexer.KindOpen:
		closeIdx := n.matchForward(idx)
		if closeIdx < 0 {
			return "", offset, false
		}
		end := n.tokens[closeIdx].End
		return n.src[t.Start:end], end, true
	case lexer.KindAtom:
		return t.Text(n.src), t.End, true
	case lexer.KindString:
		if t.Incomplete {
			return "", offset, false
		}
		return t.Text(n.src), t.End, true
	default:
		return "", offset, false
	}
}

// EnclosingOpen returns the byte offset of the opening delimiter of the
// level-th enclosing form around offset (level 1 is the innermost). ok is
// false when the offset sits at top level for that depth.
func (n *Navigator) EnclosingOpen(offset, level int) (int, bool) {
	idx := n.enclosingOpenIndex(offset, level)
	if idx < 0 {
		return 0, false
	}
	return n.tokens[idx].Start, true
}

// enclosingOpenIndex scans backward from offset counting delimiter depth.
// Every unmatched opening delimiter met at depth zero is one enclosing
// level further out; the search stops once `level` of them have been seen.
func (n *Navigator) enclosingOpenIndex(offset, level int) int {
	depth := 0
	for i := n.lastEndingBefore(offset); i >= 0; i-- {
		switch n.tokens[i].Kind {
		case lexer.KindClose:
			depth++
		case lexer.KindOpen:
			if depth > 0 {
				depth--
				continue
			}
			level--
			if level == 0 {
				return i
			}
		}
	}
	return -1
}

// lastEndingBefore returns the index of the last token with End <= offset,
// or -1. Tokens straddling the offset are excluded: an expression the
// cursor is inside has not ended before the cursor.
func (n *Navigator) lastEndingBefore(offset int) int {
	lo, hi := 0, len(n.tokens)-1
	idx := -1
	for lo <= hi {
		mid := (lo + hi) / 2
		if n.tokens[mid].End <= offset {
			idx = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return idx
}

// firstStartingAt returns the index of the first token with Start >= offset,
// or -1.
func (n *Navigator) firstStartingAt(offset int) int {
	lo, hi := 0, len(n.tokens)-1
	idx := -1
	for lo <= hi {
		mid := (lo + hi) / 2
		if n.tokens[mid].Start >= offset {
			idx = mid
			hi = mid - 1
		} else {
			lo = mid + 1
		}
	}
	return idx
}

// OpenerFor returns the offset of the opening delimiter matching the
// closing delimiter at closeOffset. ok is false when closeOffset is not a
// closing delimiter or the closer is unbalanced.
func (n *Navigator) OpenerFor(closeOffset int) (int, bool) {
	idx := n.firstStartingAt(closeOffset)
	if idx < 0 || n.tokens[idx].Start != closeOffset || n.tokens[idx].Kind != lexer.KindClose {
		return 0, false
	}
	openIdx := n.matchBackward(idx)
	if openIdx < 0 {
		return 0, false
	}
	return n.tokens[openIdx].Start, true
}

// PriorCloser returns the offset of the i-th closing delimiter ending at or
// before offset, counting backward (i is 1-based). ok is false when fewer
// than i closing delimiters precede the offset.
func (n *Navigator) PriorCloser(offset, i int) (int, bool) {
	for idx := n.lastEndingBefore(offset); idx >= 0; idx-- {
		if n.tokens[idx].Kind != lexer.KindClose {
			continue
		}
		i--
		if i == 0 {
			return n.tokens[idx].Start, true
		}
	}
	return 0, false
}

// CloserOffsets returns the offsets of all closing delimiters in [start, end).
func (n *Navigator) CloserOffsets(start, end int) []int {
	var offs []int
	for _, t := range n.tokens {
		if t.Kind == lexer.KindClose && t.Start >= start && t.End <= end {
			offs = append(offs, t.Start)
		}
	}
	return offs
}

// matchBackward finds the opening delimiter matching the closer at idx.
func (n *Navigator) matchBackward(idx int) int {
	depth := 1
	for i := idx - 1; i >= 0; i-- {
		switch n.tokens[i].Kind {
		case lexer.KindClose:
			depth++
		case lexer.KindOpen:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// matchForward finds the closing delimiter matching the opener at idx.
func (n *Navigator) matchForward(idx int) int {
	depth := 1
	for i := idx + 1; i < len(n.tokens); i++ {
		switch n.tokens[i].Kind {
		case lexer.KindOpen:
			depth++
		case lexer.KindClose:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
