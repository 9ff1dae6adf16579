package sexp

import (
	"github.com/Aurelbuche/skill-mode/internal/buffer"
	"github.com/Aurelbuche/skill-mode/internal/lexer"
)

// Context describes the enclosing form around a cursor offset.
type Context struct {
	// Head is the first child atom of the form, empty when the form has no
	// children yet or its first child is not an atom.
	Head string `json:"head,omitempty"`
	// Line is the zero-based line of the opening delimiter.
	Line int `json:"line"`
	// Column is the zero-based column of the opening delimiter.
	Column int `json:"column"`
	// Indent is the leading-whitespace width of the opener's line.
	Indent int `json:"indent"`
	// ArgIndex counts the sibling expressions, head included, that end
	// strictly before the cursor within this form.
	ArgIndex int `json:"argIndex"`
}

// ResolveCurrent resolves the innermost form enclosing offset p, or nil when
// p sits at top level.
func ResolveCurrent(buf buffer.Buffer, p int) *Context {
	nav := NewNavigator(buf.ReadRange(0, buf.Len()))
	return nav.Resolve(buf, p, 1)
}

// ResolveParent resolves the next form out from the one enclosing p, or nil.
// Indentation rules consult both: several key off the parent's head and the
// current form's position within it.
func ResolveParent(buf buffer.Buffer, p int) *Context {
	nav := NewNavigator(buf.ReadRange(0, buf.Len()))
	return nav.Resolve(buf, p, 2)
}

// Resolve computes the context of the level-th enclosing form around p
// (level 1 is the innermost) using this navigator's token index. The buffer
// must hold the same text the navigator was built from.
func (n *Navigator) Resolve(buf buffer.Buffer, p, level int) *Context {
	openIdx := n.enclosingOpenIndex(p, level)
	if openIdx < 0 {
		return nil
	}
	open := n.tokens[openIdx]

	ctx := &Context{
		Line:     buf.LineAt(open.Start),
		Column:   buf.ColumnAt(open.Start),
		ArgIndex: n.countArgs(openIdx, p),
	}
	ctx.Indent = lineIndent(buf, open.Start-ctx.Column)

	if openIdx+1 < len(n.tokens) {
		first := n.tokens[openIdx+1]
		if first.Kind == lexer.KindAtom && first.End <= p {
			ctx.Head = first.Text(n.src)
		}
	}
	return ctx
}

// countArgs counts the complete sibling expressions after the opener at
// openIdx that end strictly before p. The head atom counts like any other
// sibling, so a cursor inside the bindings list of (let ( ... sees index 1.
func (n *Navigator) countArgs(openIdx, p int) int {
	count := 0
	i := openIdx + 1
	for i < len(n.tokens) {
		t := n.tokens[i]
		if t.Start >= p {
			break
		}
		switch t.Kind {
		case lexer.KindAtom:
			if t.End > p {
				return count
			}
			count++
			i++
		case lexer.KindString:
			if t.Incomplete || t.End > p {
				return count
			}
			count++
			i++
		case lexer.KindOpen:
			closeIdx := n.matchForward(i)
			if closeIdx < 0 || n.tokens[closeIdx].End > p {
				return count
			}
			count++
			i = closeIdx + 1
		default:
			// Reached this form's own closer.
			return count
		}
	}
	return count
}

// lineIndent counts leading space/tab bytes starting at lineStart.
func lineIndent(buf buffer.Buffer, lineStart int) int {
	indent := 0
	for {
		c := buf.ReadRange(lineStart+indent, lineStart+indent+1)
		if c != " " && c != "\t" {
			return indent
		}
		indent++
	}
}
