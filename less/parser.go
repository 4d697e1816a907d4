package less

import (
	"maps"
	"slices"
	"strings"

	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Variables maps variable names (without leading @) to their values.
type Variables map[string]string

type variable struct {
	name  string
	value []token
	line  int
	scope *ruleset
}

type declaration struct {
	property string
	value    []token
	line     int
}

// ruleset is a selector block, root ruleset has no parent and no selectors.
type ruleset struct {
	parent    *ruleset
	selectors []string
	line      int
	vars      map[string]*variable
	decls     []declaration
	children  []*ruleset
}

func newRuleset(parent *ruleset, selectors []string, line int) *ruleset {
	return &ruleset{parent: parent, selectors: selectors, line: line, vars: make(map[string]*variable)}
}

// lookup finds variable visible from rs, innermost scope first.
func (rs *ruleset) lookup(name string) *variable {
	for s := rs; s != nil; s = s.parent {
		if v, ok := s.vars[name]; ok {
			return v
		}
	}
	return nil
}

// Tree is a parsed stylesheet ready for Transform.
type Tree struct {
	root *ruleset
	log  *zap.Logger
}

type options struct {
	modifyVars map[string]string
	log        *zap.Logger
}

// Option changes Parse behavior.
type Option func(*options)

// WithModifyVars replaces values of top level variables after parsing, names
// may be given with or without leading @. Variables not present in source are
// added.
func WithModifyVars(vars map[string]string) Option {
	return func(o *options) {
		o.modifyVars = vars
	}
}

// WithLogger sets logger for debug output.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// Parse builds stylesheet tree from LESS source.
func Parse(source string, opts ...Option) (*Tree, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}

	tokens, err := tokenize(source)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens}
	root := newRuleset(nil, nil, 1)
	if err := p.parseBlock(root); err != nil {
		return nil, err
	}

	for _, name := range slices.Sorted(maps.Keys(o.modifyVars)) {
		value, err := tokenize(o.modifyVars[name])
		name = strings.TrimPrefix(name, "@")
		if err != nil {
			return nil, errorf(0, "override for @%s: %v", name, err)
		}
		root.vars[name] = &variable{name: name, value: trimWhitespace(value), scope: root}
	}

	o.log.Debug("Stylesheet parsed",
		zap.Int("tokens", len(tokens)),
		zap.Int("variables", len(root.vars)),
		zap.Int("overrides", len(o.modifyVars)),
		zap.Int("rulesets", len(root.children)))

	return &Tree{root: root, log: o.log}, nil
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.tokens) {
		return token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) skipWhitespace() {
	for p.pos < len(p.tokens) && p.tokens[p.pos].tt == css.WhitespaceToken {
		p.pos++
	}
}

// parseBlock consumes statements up to the closing brace of rs, or up to the
// end of input for root ruleset.
func (p *parser) parseBlock(rs *ruleset) error {
	for {
		p.skipWhitespace()
		t, ok := p.peek()
		if !ok {
			if rs.parent != nil {
				return errorf(rs.line, "missing closing brace for %q", strings.Join(rs.selectors, ", "))
			}
			return nil
		}

		switch t.tt {
		case css.RightBraceToken:
			if rs.parent == nil {
				return errorf(t.line, "unexpected closing brace")
			}
			p.pos++
			return nil
		case css.SemicolonToken:
			p.pos++
			continue
		case css.AtKeywordToken:
			if err := p.parseVariable(rs); err != nil {
				return err
			}
			continue
		}

		prelude, end, err := p.readStatement()
		if err != nil {
			return err
		}

		if end.tt == css.LeftBraceToken {
			selectors := renderSelectors(prelude)
			if len(selectors) == 0 {
				return errorf(end.line, "missing selector before opening brace")
			}
			child := newRuleset(rs, selectors, t.line)
			if err := p.parseBlock(child); err != nil {
				return err
			}
			rs.children = append(rs.children, child)
			continue
		}

		decl, err := parseDeclaration(prelude, t.line)
		if err != nil {
			return err
		}
		if rs.parent == nil {
			return errorf(t.line, "declaration of %q outside of any ruleset", decl.property)
		}
		rs.decls = append(rs.decls, decl)
	}
}

// parseVariable handles "@name: value;", any other at-rule is not supported.
func (p *parser) parseVariable(rs *ruleset) error {
	at := p.tokens[p.pos]
	p.pos++
	p.skipWhitespace()
	if t, ok := p.peek(); !ok || t.tt != css.ColonToken {
		return errorf(at.line, "at-rule %s is not supported", at.data)
	}
	p.pos++

	value, end, err := p.readStatement()
	if err != nil {
		return err
	}
	if end.tt == css.LeftBraceToken {
		return errorf(at.line, "detached ruleset %s is not supported", at.data)
	}

	name := at.data[1:]
	rs.vars[name] = &variable{name: name, value: trimWhitespace(value), line: at.line, scope: rs}
	return nil
}

// readStatement collects tokens up to top level ";", "{" or "}". Semicolon and
// opening brace are consumed, closing brace is left for parseBlock. Returned
// terminator is zero token at the end of input.
func (p *parser) readStatement() ([]token, token, error) {
	var (
		collected []token
		depth     int
	)
	for ; p.pos < len(p.tokens); p.pos++ {
		t := p.tokens[p.pos]
		switch t.tt {
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			depth--
			if depth < 0 {
				return nil, t, errorf(t.line, "unbalanced %q", t.data)
			}
		case css.DelimToken:
			if t.data == "@" {
				return nil, t, errorf(t.line, "variable interpolation is not supported")
			}
		case css.SemicolonToken, css.LeftBraceToken:
			if depth == 0 {
				p.pos++
				return collected, t, nil
			}
			if t.tt == css.LeftBraceToken {
				return nil, t, errorf(t.line, "unbalanced parentheses before opening brace")
			}
		case css.RightBraceToken:
			if depth != 0 {
				return nil, t, errorf(t.line, "unbalanced parentheses before closing brace")
			}
			return collected, t, nil
		}
		collected = append(collected, t)
	}
	if depth != 0 {
		return nil, token{}, errorf(lastLine(collected), "unbalanced parentheses at the end of input")
	}
	return collected, token{}, nil
}

func parseDeclaration(tokens []token, line int) (declaration, error) {
	tokens = trimWhitespace(tokens)
	colon := slices.IndexFunc(tokens, func(t token) bool { return t.tt == css.ColonToken })
	if colon <= 0 {
		return declaration{}, errorf(line, "unable to parse %q as declaration, mixins are not supported", render(tokens))
	}
	return declaration{
		property: render(trimWhitespace(tokens[:colon])),
		value:    trimWhitespace(tokens[colon+1:]),
		line:     line,
	}, nil
}

func lastLine(tokens []token) int {
	if len(tokens) == 0 {
		return 0
	}
	return tokens[len(tokens)-1].line
}
