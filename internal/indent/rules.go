// Package indent decides target columns for SKILL source lines from the
// structural context around them. The decision procedure is an ordered rule
// list driven by a configurable table of form names; matching logic and
// configuration data are kept separate.
package indent

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed rules.toml
var defaultRulesTOML []byte

// Ruleset is the immutable rule table consumed by the engine. It is built
// once from TOML configuration data; the lookup sets are not mutated after
// construction.
type Ruleset struct {
	Width          int `toml:"width"`
	MaxDedentDepth int `toml:"maxDedentDepth"`

	Binding        []string       `toml:"binding"`
	Sequence       []string       `toml:"sequence"`
	Define         []string       `toml:"define"`
	Class          []string       `toml:"class"`
	Wrapping       []string       `toml:"wrapping"`
	KeywordMarkers []string       `toml:"keywordMarkers"`
	Align          map[string]int `toml:"align"`

	binding  map[string]bool
	sequence map[string]bool
	define   map[string]bool
	class    map[string]bool
	wrapping map[string]bool
	markers  map[string]bool
}

// DefaultRuleset returns the rule table embedded in the binary.
func DefaultRuleset() *Ruleset {
	rs, err := parseRuleset(defaultRulesTOML)
	if err != nil {
		// The embedded table is fixed at build time.
		panic(fmt.Sprintf("indent: embedded rules.toml invalid: %v", err))
	}
	return rs
}

// LoadRuleset reads a rule table from a TOML file. Omitted numeric fields
// fall back to safe values; the name lists are taken as given.
func LoadRuleset(path string) (*Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	return parseRuleset(data)
}

func parseRuleset(data []byte) (*Ruleset, error) {
	var rs Ruleset
	if err := toml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	if rs.Width <= 0 {
		rs.Width = 2
	}
	if rs.MaxDedentDepth <= 0 {
		rs.MaxDedentDepth = 64
	}
	rs.binding = toSet(rs.Binding)
	rs.sequence = toSet(rs.Sequence)
	rs.define = toSet(rs.Define)
	rs.class = toSet(rs.Class)
	rs.wrapping = toSet(rs.Wrapping)
	rs.markers = toSet(rs.KeywordMarkers)
	return &rs, nil
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// AlignOffset returns the alignment offset for head when head is one of the
// alignment forms.
func (rs *Ruleset) AlignOffset(head string) (int, bool) {
	off, ok := rs.Align[head]
	return off, ok
}

// IsBinding reports whether head is a local-binding form.
func (rs *Ruleset) IsBinding(head string) bool { return rs.binding[head] }

// IsSequence reports whether head is a block-sequencing form.
func (rs *Ruleset) IsSequence(head string) bool { return rs.sequence[head] }

// IsDefine reports whether head is a function-definition form.
func (rs *Ruleset) IsDefine(head string) bool { return rs.define[head] }

// IsClass reports whether head is a class-definition form.
func (rs *Ruleset) IsClass(head string) bool { return rs.class[head] }

// IsWrapping reports whether head is a wrapping form.
func (rs *Ruleset) IsWrapping(head string) bool { return rs.wrapping[head] }

// IsKeywordMarker reports whether tok is a lambda-list keyword marker such
// as @optional or @key.
func (rs *Ruleset) IsKeywordMarker(tok string) bool { return rs.markers[tok] }
