/*
 * JavaScript Lexer - Core Implementation
 *
 * A permissive single-pass tokenizer for JavaScript source text. It is not
 * designed to reject all illegal programs, but it attempts to accept all
 * legal ones: the consumer is a content-rewriting pipeline that must
 * tolerate unusual real-world scripts without corrupting them. No attempt
 * is made to decode unicode escape sequences. Comments and whitespace are
 * outputs of the tokenization process, so the token stream can be used to
 * reconstruct a byte-identical copy of the input.
 *
 * The regex recognition is heuristic: division and regex literals cannot
 * be told apart without parsing, so the lexer tracks whether the previous
 * significant token may end a value and decides from that.
 */

package lexer

import (
	"bytes"

	"github.com/webrewrite/webrewrite/go/js/keywords"
)

// predicate is a per-character acceptance rule. It receives the byte under
// consideration and its offset from the token's first character, and
// reports whether the token continues. Rules may mutate lexer sub-state
// (escape pending, bracket class, decimal point seen).
type predicate func(ch byte, i int) bool

var htmlCommentOpen = []byte("<!--")

// Lexer holds the mutable state of one scan. An instance processes one
// input buffer at a time and may be reused sequentially via Load, but it
// has no internal synchronization: sharing an instance across goroutines
// or interleaving two scans on it is undefined.
type Lexer struct {
	input []byte
	index int

	prevChar   byte // previous byte examined by consume
	tokenStart byte // first byte of the current token

	lastTokenMayEndValue bool // previous significant token may end a value
	withinBrackets       bool // inside a regex [...] class
	backslashMode        bool // a backslash escape is pending
	seenADot             bool // a decimal point was seen in this number
	err                  bool // sticky error flag
}

// NewLexer creates a lexer loaded with the given input.
func NewLexer(input []byte) *Lexer {
	l := &Lexer{}
	l.Load(input)
	return l
}

// Load reinitializes the lexer for a new input buffer. All scan state is
// reset; the keyword table is package-level and untouched.
func (l *Lexer) Load(input []byte) {
	l.input = input
	l.index = 0
	l.prevChar = 0
	l.tokenStart = 0
	l.lastTokenMayEndValue = false
	l.withinBrackets = false
	l.backslashMode = false
	l.seenADot = false
	l.err = false
}

// HasError reports whether scanning hit an unterminated or invalid
// construct. The flag is sticky: once set, NextToken yields EndOfInput
// even if unconsumed bytes remain.
func (l *Lexer) HasError() bool {
	return l.err
}

// NextToken returns the next token's type and its exact source slice. The
// slice is a view into the input buffer; concatenating every returned
// slice reproduces the input byte-for-byte on an error-free scan. Once the
// input is exhausted or the error flag is set, it returns EndOfInput with
// a nil slice.
func (l *Lexer) NextToken() (keywords.Type, []byte) {
	if l.index >= len(l.input) || l.err {
		return keywords.EndOfInput, nil
	}

	ch := l.input[l.index]
	l.tokenStart = ch

	switch {
	case isSpace(ch):
		// lastTokenMayEndValue does not change across whitespace.
		return keywords.Whitespace, l.consume(l.inSpace, false, true)

	case isLineSeparator(ch):
		return keywords.LineSeparator, l.consume(l.inLineSeparator, false, true)

	case isDigit(ch) || ch == '.':
		l.seenADot = ch == '.'
		tok := l.consume(l.inNumber, false, true)
		l.seenADot = false
		return l.numberOrDot(tok), tok

	case ch == '/':
		// A slash could herald a comment, a regex, or division.
		return l.consumeSlash()

	case ch == '"' || ch == '\'':
		tok := l.consume(l.inString, true, false)
		l.lastTokenMayEndValue = true
		return keywords.StringLiteral, tok

	case l.identifierStart(ch):
		tok := l.consume(l.inIdentifier, false, true)
		return l.identifierOrKeyword(tok), tok

	case bytes.HasPrefix(l.input[l.index:], htmlCommentOpen):
		// Legacy HTML comment open inside script bodies; treated as a
		// comment to the end of the line.
		return keywords.Comment, l.consume(l.inLineComment, false, true)
	}

	// All other punctuation is an operator token.
	tok := l.consume(l.inOperator, false, true)
	l.lastTokenMayEndValue = isValueCloser(tok[len(tok)-1])
	return keywords.Operator, tok
}

// consume produces the maximal token starting at the current cursor. The
// first byte is taken unconditionally; pred is then applied to each
// following byte until it rejects one or the input ends. If the input ends
// while pred still accepts and okToTerminateWithEOF is false, the sticky
// error flag is set. If includeLastChar is true the rejected byte is
// pulled into the token (closing quotes, the '/' of '*/'). This is the
// only place the cursor advances.
func (l *Lexer) consume(pred predicate, includeLastChar, okToTerminateWithEOF bool) []byte {
	start := l.index
	l.prevChar = l.input[start]
	p := start + 1
	for i := 1; p < len(l.input) && pred(l.input[p], i); p, i = p+1, i+1 {
		l.prevChar = l.input[p]
	}

	size := p - start
	if p == len(l.input) {
		if !okToTerminateWithEOF {
			l.err = true
		}
	} else if includeLastChar {
		size++
	}
	l.index += size
	return l.input[start : start+size]
}

// consumeSlash resolves the four meanings of '/': line comment, block
// comment, regex literal, or division. Division and regexes are mostly
// impossible to differentiate without parsing, so we do our best based on
// the previous significant token.
func (l *Lexer) consumeSlash() (keywords.Type, []byte) {
	if l.index < len(l.input)-1 {
		switch next := l.input[l.index+1]; {
		case next == '/':
			return keywords.Comment, l.consume(l.inLineComment, false, true)
		case next == '*':
			return keywords.Comment, l.consume(l.inBlockComment, true, false)
		case !l.lastTokenMayEndValue:
			l.withinBrackets = false
			return keywords.Regex, l.consume(l.inRegex, true, false)
		}
	}
	tok := l.consume(l.inOperator, false, true)
	l.lastTokenMayEndValue = false
	return keywords.Operator, tok
}

// identifierOrKeyword classifies a finished identifier run through the
// keyword table and updates the value-ending flag.
func (l *Lexer) identifierOrKeyword(tok []byte) keywords.Type {
	kw := keywords.Lookup(string(tok))
	if kw == nil {
		l.lastTokenMayEndValue = true
		return keywords.Identifier
	}
	l.lastTokenMayEndValue = kw.IsValue
	return kw.Type
}

// numberOrDot reclassifies a finished number run: a lone '.' is an
// operator, anything else is a number.
func (l *Lexer) numberOrDot(tok []byte) keywords.Type {
	if len(tok) == 1 && tok[0] == '.' {
		l.lastTokenMayEndValue = false
		return keywords.Operator
	}
	l.lastTokenMayEndValue = true
	return keywords.Number
}

// processBackslash implements the escape-pending sub-state shared by
// strings, regexes, and identifiers: a backslash unconditionally accepts
// the byte that follows it, whatever it is, without decoding.
func (l *Lexer) processBackslash(ch byte) bool {
	if l.backslashMode {
		l.backslashMode = false
		return true
	}
	if ch == '\\' {
		l.backslashMode = true
		return true
	}
	return false
}

// identifierStart reports whether ch can start an identifier. Backslashes
// are tolerated because unicode escape sequences (e.g. \u03c0) may appear
// in identifiers; the identifier is still terminated by the usual rules
// and the escape is never decoded.
func (l *Lexer) identifierStart(ch byte) bool {
	if l.processBackslash(ch) {
		return true
	}
	return isIdentStart(ch)
}

func (l *Lexer) inSpace(ch byte, i int) bool {
	return isSpace(ch)
}

func (l *Lexer) inLineSeparator(ch byte, i int) bool {
	return isLineSeparator(ch)
}

// inNumber accepts digits and at most one decimal point; a second '.'
// ends the run, so "1.2.3" lexes as "1.2", ".", "3". Hex and octal forms
// still lex correctly enough for reconstruction ("0x1f" is a number
// followed by an identifier).
func (l *Lexer) inNumber(ch byte, i int) bool {
	if ch == '.' {
		if l.seenADot {
			return false
		}
		l.seenADot = true
	}
	return isDigit(ch) || ch == '.'
}

func (l *Lexer) inLineComment(ch byte, i int) bool {
	return ch != '\n' && ch != '\r'
}

func (l *Lexer) inBlockComment(ch byte, i int) bool {
	atEnd := l.prevChar == '*' && ch == '/'
	return !atEnd
}

func (l *Lexer) inIdentifier(ch byte, i int) bool {
	return l.processBackslash(ch) || isIdentCont(ch)
}

func (l *Lexer) inString(ch byte, i int) bool {
	if l.processBackslash(ch) {
		return true
	}
	return ch != l.tokenStart
}

// inRegex accepts the body of a regex literal. Slashes within a bracket
// class are implicitly escaped; regex classes don't nest, so a bool
// suffices. A raw newline cannot appear in a regex literal and latches
// the error flag.
func (l *Lexer) inRegex(ch byte, i int) bool {
	if l.processBackslash(ch) {
		return true
	}
	switch ch {
	case '/':
		if !l.withinBrackets {
			return false
		}
	case '[':
		l.withinBrackets = true
	case ']':
		l.withinBrackets = false
	case '\n':
		l.err = true
		return false
	}
	return true
}

// inOperator merges exactly ++, --, +=, -=, *= and /= into one token;
// every other punctuation byte stands alone.
func (l *Lexer) inOperator(ch byte, i int) bool {
	if ((l.tokenStart == '+' || l.tokenStart == '-') && ch == l.tokenStart) ||
		(ch == '=' && (l.tokenStart == '+' || l.tokenStart == '-' ||
			l.tokenStart == '*' || l.tokenStart == '/')) {
		// Clear the start byte so ++ cannot grow into a triple-plus.
		l.tokenStart = 0
		return true
	}
	return false
}
