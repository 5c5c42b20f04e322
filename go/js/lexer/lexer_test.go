/*
 * JavaScript Lexer - Test Suite
 *
 * Validates tokenization of the permissive lexer: stream reconstruction,
 * regex/division disambiguation, operator merging, and the sticky error
 * behavior for unterminated constructs.
 */

package lexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webrewrite/webrewrite/go/js/keywords"
)

type tok struct {
	Type keywords.Type
	Text string
}

// lexAll drains the token stream for input, failing the test if the lexer
// ever stops making progress.
func lexAll(t *testing.T, input string) []tok {
	t.Helper()
	l := NewLexer([]byte(input))
	var out []tok
	for i := 0; i < len(input)+1; i++ {
		typ, text := l.NextToken()
		if typ == keywords.EndOfInput {
			return out
		}
		require.NotEmpty(t, text, "non-final token must consume at least one byte")
		out = append(out, tok{typ, string(text)})
	}
	t.Fatalf("lexer failed to terminate on %q", input)
	return nil
}

func TestBasicTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []tok
	}{
		{
			name:  "Division after number",
			input: "var x=1/2;",
			expected: []tok{
				{keywords.Var, "var"},
				{keywords.Whitespace, " "},
				{keywords.Identifier, "x"},
				{keywords.Operator, "="},
				{keywords.Number, "1"},
				{keywords.Operator, "/"},
				{keywords.Number, "2"},
				{keywords.Operator, ";"},
			},
		},
		{
			name:  "Regex after assignment",
			input: "a=/foo/;",
			expected: []tok{
				{keywords.Identifier, "a"},
				{keywords.Operator, "="},
				{keywords.Regex, "/foo/"},
				{keywords.Operator, ";"},
			},
		},
		{
			name:  "Increment does not merge with following plus",
			input: "x++ +y",
			expected: []tok{
				{keywords.Identifier, "x"},
				{keywords.Operator, "++"},
				{keywords.Whitespace, " "},
				{keywords.Operator, "+"},
				{keywords.Identifier, "y"},
			},
		},
		{
			name:  "Block comment then identifier",
			input: "/*c*/x",
			expected: []tok{
				{keywords.Comment, "/*c*/"},
				{keywords.Identifier, "x"},
			},
		},
		{
			name:  "Bracket class protects slash",
			input: "a=/[a/b]/;",
			expected: []tok{
				{keywords.Identifier, "a"},
				{keywords.Operator, "="},
				{keywords.Regex, "/[a/b]/"},
				{keywords.Operator, ";"},
			},
		},
		{
			name:  "Line comment runs to line break",
			input: "// note\nx",
			expected: []tok{
				{keywords.Comment, "// note"},
				{keywords.LineSeparator, "\n"},
				{keywords.Identifier, "x"},
			},
		},
		{
			name:  "HTML comment open lexes as line comment",
			input: "<!-- hide\nx",
			expected: []tok{
				{keywords.Comment, "<!-- hide"},
				{keywords.LineSeparator, "\n"},
				{keywords.Identifier, "x"},
			},
		},
		{
			name:  "String with escaped quote",
			input: `s="a\"b";`,
			expected: []tok{
				{keywords.Identifier, "s"},
				{keywords.Operator, "="},
				{keywords.StringLiteral, `"a\"b"`},
				{keywords.Operator, ";"},
			},
		},
		{
			name:  "Single quoted string",
			input: `'it''s'`,
			expected: []tok{
				{keywords.StringLiteral, "'it'"},
				{keywords.StringLiteral, "'s'"},
			},
		},
		{
			name:  "Whitespace run including form feed",
			input: "a \t\f b",
			expected: []tok{
				{keywords.Identifier, "a"},
				{keywords.Whitespace, " \t\f "},
				{keywords.Identifier, "b"},
			},
		},
		{
			name:  "Line separator run",
			input: "a\r\n\nb",
			expected: []tok{
				{keywords.Identifier, "a"},
				{keywords.LineSeparator, "\r\n\n"},
				{keywords.Identifier, "b"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, lexAll(t, tt.input))
		})
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []tok
	}{
		{
			name:  "Second dot ends the run",
			input: "1.2.3",
			expected: []tok{
				{keywords.Number, "1.2"},
				{keywords.Operator, "."},
				{keywords.Number, "3"},
			},
		},
		{
			name:     "Lone dot is an operator",
			input:    ".",
			expected: []tok{{keywords.Operator, "."}},
		},
		{
			name:     "Leading dot still a number",
			input:    ".5",
			expected: []tok{{keywords.Number, ".5"}},
		},
		{
			name:  "Member access",
			input: "a.b",
			expected: []tok{
				{keywords.Identifier, "a"},
				{keywords.Operator, "."},
				{keywords.Identifier, "b"},
			},
		},
		{
			name:  "Hex literal splits but reconstructs",
			input: "0x1f",
			expected: []tok{
				{keywords.Number, "0"},
				{keywords.Identifier, "x1f"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, lexAll(t, tt.input))
		})
	}
}

func TestOperatorMerging(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []tok
	}{
		{
			name:     "Plus equals",
			input:    "a+=b",
			expected: []tok{{keywords.Identifier, "a"}, {keywords.Operator, "+="}, {keywords.Identifier, "b"}},
		},
		{
			name:     "Minus minus",
			input:    "a--",
			expected: []tok{{keywords.Identifier, "a"}, {keywords.Operator, "--"}},
		},
		{
			name:     "Times equals",
			input:    "a*=2",
			expected: []tok{{keywords.Identifier, "a"}, {keywords.Operator, "*="}, {keywords.Number, "2"}},
		},
		{
			name:     "Divide equals",
			input:    "a/=2",
			expected: []tok{{keywords.Identifier, "a"}, {keywords.Operator, "/="}, {keywords.Number, "2"}},
		},
		{
			name:  "Triple plus splits after increment",
			input: "a+++b",
			expected: []tok{
				{keywords.Identifier, "a"},
				{keywords.Operator, "++"},
				{keywords.Operator, "+"},
				{keywords.Identifier, "b"},
			},
		},
		{
			name:  "Equality stays unmerged",
			input: "a==b",
			expected: []tok{
				{keywords.Identifier, "a"},
				{keywords.Operator, "="},
				{keywords.Operator, "="},
				{keywords.Identifier, "b"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, lexAll(t, tt.input))
		})
	}
}

func TestIdentifiers(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []tok
	}{
		{
			name:     "Dollar and underscore",
			input:    "$_a1",
			expected: []tok{{keywords.Identifier, "$_a1"}},
		},
		{
			name:     "Unicode escape kept verbatim",
			input:    `\u03c0r2`,
			expected: []tok{{keywords.Identifier, `\u03c0r2`}},
		},
		{
			name:     "High bytes are identifier material",
			input:    "caf\xc3\xa9",
			expected: []tok{{keywords.Identifier, "caf\xc3\xa9"}},
		},
		{
			name:     "Keyword gets its own type",
			input:    "function",
			expected: []tok{{keywords.Function, "function"}},
		},
		{
			name:     "Keywords are case sensitive",
			input:    "Function",
			expected: []tok{{keywords.Identifier, "Function"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, lexAll(t, tt.input))
		})
	}
}

func TestRegexDisambiguation(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		slashTok tok
	}{
		{
			name:     "After identifier is division",
			input:    "a/b",
			slashTok: tok{keywords.Operator, "/"},
		},
		{
			name:     "After string is division",
			input:    `"a"/b/`,
			slashTok: tok{keywords.Operator, "/"},
		},
		{
			name:     "After closing paren is division",
			input:    "(a)/b/",
			slashTok: tok{keywords.Operator, "/"},
		},
		{
			name:     "After closing bracket is division",
			input:    "a[0]/b/",
			slashTok: tok{keywords.Operator, "/"},
		},
		{
			name:     "After value keyword is division",
			input:    "this/b/",
			slashTok: tok{keywords.Operator, "/"},
		},
		{
			name:     "After non-value keyword is regex",
			input:    "typeof /b/",
			slashTok: tok{keywords.Regex, "/b/"},
		},
		{
			name:     "After return is regex",
			input:    "return /b/",
			slashTok: tok{keywords.Regex, "/b/"},
		},
		{
			name:     "After open paren is regex",
			input:    "(/b/)",
			slashTok: tok{keywords.Regex, "/b/"},
		},
		{
			name:     "Escaped slash stays in regex",
			input:    `=/a\/b/`,
			slashTok: tok{keywords.Regex, `/a\/b/`},
		},
		{
			name:     "Start of input is regex",
			input:    "/b/.test(s)",
			slashTok: tok{keywords.Regex, "/b/"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := lexAll(t, tt.input)
			require.NotEmpty(t, toks)
			found := false
			for _, tk := range toks {
				if tk == tt.slashTok {
					found = true
					break
				}
			}
			assert.True(t, found, "expected %v in %v", tt.slashTok, toks)
		})
	}
}

func TestReconstruction(t *testing.T) {
	inputs := []string{
		"",
		"var x = 1;",
		"function f(a, b) { return a / b; }\n",
		"s = 'it\\'s';\nt = \"q\\\"q\";",
		"re = /[a/b]*\\//g;",
		"/* multi\n * line\n */ x++;\r\n",
		"if (a instanceof B) { c = a.b[0] / 2; } // tail\n",
		"<!-- legacy\nalert(1)//-->",
		"\\u0041bc = caf\xc3\xa9 + 1.5e3;",
		"x+++y---z",
	}

	for _, input := range inputs {
		l := NewLexer([]byte(input))
		var sb strings.Builder
		for {
			typ, text := l.NextToken()
			if typ == keywords.EndOfInput {
				break
			}
			sb.Write(text)
		}
		require.False(t, l.HasError(), "unexpected scan error for %q", input)
		assert.Equal(t, input, sb.String(), "token stream must reconstruct the input")
	}
}

func TestStickyError(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		lastType keywords.Type
		lastText string
	}{
		{
			name:     "Unterminated string",
			input:    `"abc`,
			lastType: keywords.StringLiteral,
			lastText: `"abc`,
		},
		{
			name:     "Unterminated block comment",
			input:    "/*c",
			lastType: keywords.Comment,
			lastText: "/*c",
		},
		{
			name:     "Unterminated regex",
			input:    "=/ab",
			lastType: keywords.Regex,
			lastText: "/ab",
		},
		{
			name:     "Newline inside regex",
			input:    "=/a\nb/",
			lastType: keywords.Regex,
			lastText: "/a\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLexer([]byte(tt.input))
			var lastType keywords.Type
			var lastText string
			for {
				typ, text := l.NextToken()
				if typ == keywords.EndOfInput {
					break
				}
				lastType, lastText = typ, string(text)
			}
			assert.True(t, l.HasError())
			assert.Equal(t, tt.lastType, lastType)
			assert.Equal(t, tt.lastText, lastText)

			// Once latched, every subsequent call yields EndOfInput and
			// the flag stays set.
			for i := 0; i < 3; i++ {
				typ, text := l.NextToken()
				assert.Equal(t, keywords.EndOfInput, typ)
				assert.Nil(t, text)
			}
			assert.True(t, l.HasError())
		})
	}
}

func TestTrailingSlash(t *testing.T) {
	// A slash as the very last byte cannot open a comment or regex; it is
	// a plain operator.
	assert.Equal(t, []tok{
		{keywords.Identifier, "a"},
		{keywords.Operator, "/"},
	}, lexAll(t, "a/"))

	assert.Equal(t, []tok{{keywords.Operator, "/"}}, lexAll(t, "/"))
}

func TestLoadResetsState(t *testing.T) {
	l := NewLexer([]byte(`"abc`))
	for {
		typ, _ := l.NextToken()
		if typ == keywords.EndOfInput {
			break
		}
	}
	require.True(t, l.HasError())

	// Reloading clears the sticky error and every disambiguation flag.
	l.Load([]byte("a=/x/"))
	assert.False(t, l.HasError())
	assert.Equal(t, []tok{
		{keywords.Identifier, "a"},
		{keywords.Operator, "="},
		{keywords.Regex, "/x/"},
	}, drain(t, l))
	assert.False(t, l.HasError())
}

// drain collects the remaining tokens of an already-loaded lexer.
func drain(t *testing.T, l *Lexer) []tok {
	t.Helper()
	var out []tok
	for {
		typ, text := l.NextToken()
		if typ == keywords.EndOfInput {
			return out
		}
		out = append(out, tok{typ, string(text)})
	}
}

func TestTokenSlicesAliasInput(t *testing.T) {
	input := []byte("var x")
	l := NewLexer(input)
	typ, text := l.NextToken()
	require.Equal(t, keywords.Var, typ)
	require.Equal(t, "var", string(text))

	// The returned slice is a view into the caller's buffer.
	input[0] = 'V'
	assert.Equal(t, "Var", string(text))
}
