/*
 * JavaScript Lexer - Character Classification
 *
 * Byte-level character classification using a pre-computed lookup table
 * instead of per-call comparisons. The lexer works on raw bytes and never
 * decodes UTF-8: any byte with the high bit set is treated as identifier
 * material, which errs on the side of accepting invalid programs.
 */

package lexer

// charClass represents character classification flags using bit fields.
type charClass uint8

const (
	classDigit         charClass = 1 << iota // 0-9
	classIdentStart                          // a-z, A-Z, _, $, bytes >= 127
	classIdentCont                           // identifier start plus digits
	classSpace                               // space, tab, form feed
	classLineSeparator                       // \n, \r
	classValueCloser                         // ), ], } - closers that can end a value
)

// Character classification lookup table, pre-computed for all 256 byte
// values.
var charClassTable [256]charClass

func init() {
	for b := byte('0'); b <= '9'; b++ {
		charClassTable[b] |= classDigit | classIdentCont
	}
	for b := byte('a'); b <= 'z'; b++ {
		charClassTable[b] |= classIdentStart | classIdentCont
	}
	for b := byte('A'); b <= 'Z'; b++ {
		charClassTable[b] |= classIdentStart | classIdentCont
	}
	charClassTable['_'] |= classIdentStart | classIdentCont
	charClassTable['$'] |= classIdentStart | classIdentCont

	// Bytes >= 127 may be part of multi-byte sequences; they are accepted
	// as identifier material without decoding.
	for b := 127; b <= 0xFF; b++ {
		charClassTable[b] |= classIdentStart | classIdentCont
	}

	charClassTable[' '] |= classSpace
	charClassTable['\t'] |= classSpace
	charClassTable['\f'] |= classSpace

	charClassTable['\n'] |= classLineSeparator
	charClassTable['\r'] |= classLineSeparator

	charClassTable[')'] |= classValueCloser
	charClassTable[']'] |= classValueCloser
	charClassTable['}'] |= classValueCloser
}

// isDigit checks if a byte is a decimal digit (0-9).
func isDigit(b byte) bool {
	return charClassTable[b]&classDigit != 0
}

// isIdentStart checks if a byte can start an identifier. Backslash is not
// in this class; the lexer handles identifier escape sequences separately.
func isIdentStart(b byte) bool {
	return charClassTable[b]&classIdentStart != 0
}

// isIdentCont checks if a byte can continue an identifier.
func isIdentCont(b byte) bool {
	return charClassTable[b]&classIdentCont != 0
}

// isSpace checks if a byte is intra-line whitespace (space, tab, form feed).
// Line breaks are classified separately so the token stream preserves them.
func isSpace(b byte) bool {
	return charClassTable[b]&classSpace != 0
}

// isLineSeparator checks if a byte is a line break character.
func isLineSeparator(b byte) bool {
	return charClassTable[b]&classLineSeparator != 0
}

// isValueCloser checks if a byte is a closing bracket that can end a value
// expression.
func isValueCloser(b byte) bool {
	return charClassTable[b]&classValueCloser != 0
}
