package indent

import (
	"regexp"

	"github.com/Aurelbuche/skill-mode/internal/buffer"
	"github.com/Aurelbuche/skill-mode/internal/lexer"
	"github.com/Aurelbuche/skill-mode/internal/sexp"
)

// LineInfo carries the facts about the line being indented that the rule
// table keys off, beyond the structural contexts.
type LineInfo struct {
	// Number is the zero-based line number.
	Number int
	// FirstText is the text of the first token on the line, empty when the
	// line is blank.
	FirstText string
	// FirstKind is the kind of that token.
	FirstKind lexer.Kind
	// HasToken is false for blank lines.
	HasToken bool
}

// Engine computes target indentation columns. Each call is a pure function
// of the buffer text and position; the engine itself only holds the rule
// table.
type Engine struct {
	rules *Ruleset
}

// NewEngine returns an engine over the given rule table, or over the
// embedded defaults when rules is nil.
func NewEngine(rules *Ruleset) *Engine {
	if rules == nil {
		rules = DefaultRuleset()
	}
	return &Engine{rules: rules}
}

// Rules returns the engine's rule table.
func (e *Engine) Rules() *Ruleset { return e.rules }

// Decide maps the structural contexts around a position to a target column.
// The rules are ordered; the first match wins and the generic fallback comes
// last. Both contexts absent means top level: column 0.
func (e *Engine) Decide(cur, par *sexp.Context, line LineInfo) int {
	rs := e.rules

	// 1. Alignment forms: arguments line up under the first argument.
	if cur != nil && cur.Head != "" {
		if off, ok := rs.AlignOffset(cur.Head); ok {
			return cur.Column + 1 + len(cur.Head) + off
		}
	}

	// 2. Bindings list of a local-binding form.
	if par != nil && rs.IsBinding(par.Head) && par.ArgIndex == 1 {
		return par.Column + 1 + len(par.Head) + 2
	}

	// 3. Body of a block-sequencing form.
	if cur != nil && rs.IsSequence(cur.Head) {
		return cur.Column + 1 + len(cur.Head) + 2
	}

	// 4. Parameter list of a function definition.
	if par != nil && rs.IsDefine(par.Head) && par.ArgIndex == 2 {
		if line.HasToken && rs.IsKeywordMarker(line.FirstText) {
			return par.Column + 6
		}
		return par.Column + 1
	}

	// 5. Docstring of a function definition on its own line.
	if cur != nil && rs.IsDefine(cur.Head) && cur.ArgIndex == 3 &&
		line.HasToken && line.FirstKind == lexer.KindString {
		return 0
	}

	// 6. Slot list of a class definition.
	if par != nil && rs.IsClass(par.Head) && par.ArgIndex == 3 {
		return par.Column + 1
	}

	// 7. Early arguments of a wrapping form.
	if cur != nil && rs.IsWrapping(cur.Head) && cur.ArgIndex < 3 {
		return cur.Column + 1 + len(cur.Head) + 2
	}

	// 8. Form opened on the line itself: keep at the margin.
	if cur != nil && cur.Line == line.Number {
		return 0
	}

	// 9. Fallback.
	if cur != nil {
		return cur.Indent + rs.Width
	}
	return 0
}

// closerLine matches a line of closing delimiters, optionally followed by a
// line comment. bareCloserLine is the stricter look-back predicate used when
// chaining dedents upward; it admits no trailing comment. The two are kept
// distinct on purpose.
var (
	closerLine     = regexp.MustCompile(`^[ \t]*\)+[ \t]*(;.*)?$`)
	bareCloserLine = regexp.MustCompile(`^[ \t]*\)+[ \t]*$`)
)

// IndentLine computes the target column for line n of the document without
// applying it.
func (e *Engine) IndentLine(doc *buffer.Document, n int) int {
	nav := sexp.NewNavigator(doc.Text())
	return e.indentLine(doc, nav, n)
}

func (e *Engine) indentLine(doc *buffer.Document, nav *sexp.Navigator, n int) int {
	p := doc.LineStart(n) + doc.LineIndent(n)
	cur := nav.Resolve(doc, p, 1)
	par := nav.Resolve(doc, p, 2)
	col := e.Decide(cur, par, lineInfoAt(doc, n))

	if closerLine.MatchString(doc.Line(n)) {
		if dedented, ok := e.openerColumn(doc, nav, n); ok {
			col = dedented
		}
	}
	if col < 0 {
		col = 0
	}
	return col
}

// ApplyLine indents line n in place and re-runs the dedent on the chain of
// bare closer lines above it, bounded by the rule table's dedent depth.
// It returns the column applied to line n.
func (e *Engine) ApplyLine(doc *buffer.Document, n int) int {
	nav := sexp.NewNavigator(doc.Text())
	col := e.indentLine(doc, nav, n)
	doc.SetLineIndent(n, col)

	// Closing-delimiter chains re-align upward.
	if closerLine.MatchString(doc.Line(n)) {
		for i, m := n-1, 0; i >= 0 && m < e.rules.MaxDedentDepth; i, m = i-1, m+1 {
			if !bareCloserLine.MatchString(doc.Line(i)) {
				break
			}
			nav = sexp.NewNavigator(doc.Text())
			c, ok := e.openerColumn(doc, nav, i)
			if !ok {
				break
			}
			doc.SetLineIndent(i, c)
		}
	}
	return col
}

// Reindent re-indents every line of the document.
func (e *Engine) Reindent(doc *buffer.Document) {
	for n := 0; n < doc.LineCount(); n++ {
		nav := sexp.NewNavigator(doc.Text())
		doc.SetLineIndent(n, e.indentLine(doc, nav, n))
	}
}

// openerColumn aligns a closer line with the form closed by its last
// closing delimiter. When that delimiter is unbalanced the earlier closers
// on the line are tried in turn, keeping the best known answer rather than
// failing.
func (e *Engine) openerColumn(doc *buffer.Document, nav *sexp.Navigator, n int) (int, bool) {
	closers := nav.CloserOffsets(doc.LineStart(n), doc.LineEnd(n))
	for i := len(closers) - 1; i >= 0; i-- {
		if open, ok := nav.OpenerFor(closers[i]); ok {
			return doc.ColumnAt(open), true
		}
	}

	// None of the line's closers is balanced: the line re-closes forms the
	// preceding text already closed. Pair its closers with those forms in
	// reverse close order, walking inward, and align with the opener the
	// last closer lands on. Fewer prior closes than line closers keeps the
	// best known answer.
	for i := len(closers); i >= 1; i-- {
		c, ok := nav.PriorCloser(doc.LineStart(n), i)
		if !ok {
			continue
		}
		if open, ok := nav.OpenerFor(c); ok {
			return doc.ColumnAt(open), true
		}
	}
	return 0, false
}

// lineInfoAt lexes the content of line n and reports its first token.
func lineInfoAt(doc *buffer.Document, n int) LineInfo {
	li := LineInfo{Number: n}
	for _, t := range lexer.ScanAll(doc.Line(n)) {
		if t.IsTrivia() {
			continue
		}
		li.FirstText = t.Text(doc.Line(n))
		li.FirstKind = t.Kind
		li.HasToken = true
		break
	}
	return li
}
