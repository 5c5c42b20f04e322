// Package keywords provides JavaScript keyword recognition and the token
// type enumeration shared with the lexer.
//
// The keyword table is fixed at construction: a package init builds a
// reverse spelling-to-info map once, and nothing mutates it afterward, so
// the table can be shared read-only across any number of lexer instances.
package keywords

import (
	"sort"
)

// Type identifies the kind of a lexed token. Every keyword gets its own
// type so downstream rewriters can match on specific keywords without
// re-inspecting token text.
type Type int

const (
	// Lexical token types.
	Comment Type = iota
	Whitespace
	LineSeparator
	Regex
	StringLiteral
	Number
	Operator
	EndOfInput

	// Identifier covers any identifier spelling not found in the
	// keyword table.
	Identifier

	// ECMAScript 5.1 keywords (section 7.6.1.1).
	Break
	Case
	Catch
	Continue
	Debugger
	Default
	Delete
	Do
	Else
	Finally
	For
	Function
	If
	In
	Instanceof
	New
	Return
	Switch
	This
	Throw
	Try
	Typeof
	Var
	Void
	While
	With

	// Future reserved words (section 7.6.1.2), including the
	// strict-mode set.
	Class
	Const
	Enum
	Export
	Extends
	Import
	Super
	Implements
	Interface
	Let
	Package
	Private
	Protected
	Public
	Static
	Yield

	// Literals that lex as keywords.
	True
	False
	Null
)

// KeywordInfo describes one entry of the keyword table.
type KeywordInfo struct {
	Name    string // Keyword spelling (case-sensitive)
	Type    Type   // Token type emitted for this keyword
	IsValue bool   // Whether the keyword can end a value expression
}

// Keywords is the fixed keyword enumeration. IsValue marks the keywords
// that can terminate a value expression; the lexer uses it to decide
// whether a following slash is division or the start of a regex literal.
var Keywords = []KeywordInfo{
	{"break", Break, false},
	{"case", Case, false},
	{"catch", Catch, false},
	{"class", Class, false},
	{"const", Const, false},
	{"continue", Continue, false},
	{"debugger", Debugger, false},
	{"default", Default, false},
	{"delete", Delete, false},
	{"do", Do, false},
	{"else", Else, false},
	{"enum", Enum, false},
	{"export", Export, false},
	{"extends", Extends, false},
	{"false", False, true},
	{"finally", Finally, false},
	{"for", For, false},
	{"function", Function, false},
	{"if", If, false},
	{"implements", Implements, false},
	{"import", Import, false},
	{"in", In, false},
	{"instanceof", Instanceof, false},
	{"interface", Interface, false},
	{"let", Let, false},
	{"new", New, false},
	{"null", Null, true},
	{"package", Package, false},
	{"private", Private, false},
	{"protected", Protected, false},
	{"public", Public, false},
	{"return", Return, false},
	{"static", Static, false},
	{"super", Super, false},
	{"switch", Switch, false},
	{"this", This, true},
	{"throw", Throw, false},
	{"true", True, true},
	{"try", Try, false},
	{"typeof", Typeof, false},
	{"var", Var, false},
	{"void", Void, false},
	{"while", While, false},
	{"with", With, false},
	{"yield", Yield, false},
}

// keywordLookupMap provides fast keyword lookup by spelling.
// Built once during package initialization.
var keywordLookupMap map[string]*KeywordInfo

func init() {
	keywordLookupMap = make(map[string]*KeywordInfo, len(Keywords))
	for i := range Keywords {
		keywordLookupMap[Keywords[i].Name] = &Keywords[i]
	}
}

// Lookup returns the keyword entry for the given spelling, or nil if the
// spelling is not a keyword. A nil result is the expected outcome for
// ordinary identifiers, not a failure. JavaScript keywords are
// case-sensitive, so no case folding is applied.
func Lookup(name string) *KeywordInfo {
	return keywordLookupMap[name]
}

// IsKeyword returns true if the given spelling is a keyword.
func IsKeyword(name string) bool {
	return Lookup(name) != nil
}

// KeywordNames returns a sorted slice of all keyword spellings.
// Useful for debugging and testing.
func KeywordNames() []string {
	names := make([]string, len(Keywords))
	for i, kw := range Keywords {
		names[i] = kw.Name
	}
	sort.Strings(names)
	return names
}

// String returns the string representation of a Type.
func (t Type) String() string {
	switch t {
	case Comment:
		return "Comment"
	case Whitespace:
		return "Whitespace"
	case LineSeparator:
		return "LineSeparator"
	case Regex:
		return "Regex"
	case StringLiteral:
		return "StringLiteral"
	case Number:
		return "Number"
	case Operator:
		return "Operator"
	case EndOfInput:
		return "EndOfInput"
	case Identifier:
		return "Identifier"
	}
	if kw := findKeywordByType(t); kw != nil {
		return "Keyword(" + kw.Name + ")"
	}
	return "Unknown"
}

// IsKeywordType returns true if t is one of the per-keyword token types.
func (t Type) IsKeywordType() bool {
	return findKeywordByType(t) != nil
}

// findKeywordByType is a helper to find a keyword entry by its token type.
func findKeywordByType(t Type) *KeywordInfo {
	for i := range Keywords {
		if Keywords[i].Type == t {
			return &Keywords[i]
		}
	}
	return nil
}
