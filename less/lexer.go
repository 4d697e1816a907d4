package less

import (
	"errors"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

type token struct {
	tt   css.TokenType
	data string
	line int
}

func (t token) is(tt css.TokenType, data string) bool {
	return t.tt == tt && t.data == data
}

// tokenize splits source into CSS tokens dropping comments. Line comments are
// not CSS and are blanked out before lexing.
func tokenize(source string) ([]token, error) {
	lexer := css.NewLexer(parse.NewInput(strings.NewReader(stripLineComments(source))))

	var (
		tokens []token
		line   = 1
	)
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			if err := lexer.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, errorf(line, "%v", err)
			}
			return tokens, nil
		}

		t := token{tt: tt, data: string(data), line: line}
		line += strings.Count(t.data, "\n")

		if tt == css.CommentToken {
			if !strings.HasSuffix(t.data, "*/") || len(t.data) < 4 {
				return nil, errorf(t.line, "unterminated comment")
			}
			continue
		}
		tokens = append(tokens, t)
	}
}

// stripLineComments replaces every "//" comment with spaces up to the end of
// its line. Quoted strings, block comments and unquoted url() arguments are
// skipped over so their content is never taken for a comment. Newlines are
// kept, token line numbers stay intact.
func stripLineComments(source string) string {
	if !strings.Contains(source, "//") {
		return source
	}

	b := []byte(source)
	for i := 0; i < len(b); i++ {
		switch c := b[i]; {
		case c == '"' || c == '\'':
			for i++; i < len(b) && b[i] != c && b[i] != '\n'; i++ {
				if b[i] == '\\' {
					i++
				}
			}
		case c == '/' && i+1 < len(b) && b[i+1] == '*':
			end := strings.Index(source[i+2:], "*/")
			if end < 0 {
				return string(b)
			}
			i += end + 3
		case c == '/' && i+1 < len(b) && b[i+1] == '/':
			for ; i < len(b) && b[i] != '\n'; i++ {
				b[i] = ' '
			}
		case (c == 'u' || c == 'U') && isURLStart(source, i):
			for i += 4; i < len(b) && b[i] != ')' && b[i] != '\n'; i++ {
			}
		}
	}
	return string(b)
}

// isURLStart reports whether unquoted url( argument starts at position i.
func isURLStart(source string, i int) bool {
	if i > 0 && isNameByte(source[i-1]) {
		return false
	}
	if len(source) < i+4 || !strings.EqualFold(source[i:i+4], "url(") {
		return false
	}
	rest := strings.TrimLeft(source[i+4:], " \t")
	return len(rest) == 0 || (rest[0] != '"' && rest[0] != '\'')
}

func isNameByte(c byte) bool {
	return c == '-' || c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80
}

func trimWhitespace(tokens []token) []token {
	for len(tokens) > 0 && tokens[0].tt == css.WhitespaceToken {
		tokens = tokens[1:]
	}
	for len(tokens) > 0 && tokens[len(tokens)-1].tt == css.WhitespaceToken {
		tokens = tokens[:len(tokens)-1]
	}
	return tokens
}

// render joins tokens collapsing every whitespace run into a single space.
func render(tokens []token) string {
	var (
		b     strings.Builder
		space bool
	)
	for _, t := range tokens {
		if t.tt == css.WhitespaceToken {
			space = b.Len() > 0
			continue
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		b.WriteString(t.data)
	}
	return b.String()
}

func isCombinator(s string) bool {
	return s == ">" || s == "+" || s == "~"
}

// renderSelectors splits selector list on top level commas, normalizing
// whitespace and spacing around combinators.
func renderSelectors(tokens []token) []string {
	var (
		selectors []string
		b         strings.Builder
		space     bool
		depth     int
	)
	flush := func() {
		if b.Len() > 0 {
			selectors = append(selectors, b.String())
		}
		b.Reset()
		space = false
	}

	for _, t := range tokens {
		switch {
		case t.tt == css.WhitespaceToken:
			space = b.Len() > 0
			continue
		case t.tt == css.CommaToken && depth == 0:
			flush()
			continue
		case t.tt == css.DelimToken && depth == 0 && isCombinator(t.data):
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(t.data)
			space = true
			continue
		case t.tt == css.FunctionToken, t.tt == css.LeftParenthesisToken, t.tt == css.LeftBracketToken:
			depth++
		case t.tt == css.RightParenthesisToken, t.tt == css.RightBracketToken:
			depth--
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		b.WriteString(t.data)
	}
	flush()
	return selectors
}
