package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// KwFunc represents the 'func' keyword.
	KwFunc // func
	// KwStruct represents the 'struct' keyword.
	KwStruct // struct
	// KwMut represents the 'mut' keyword.
	KwMut // mut
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwTrue represents the 'true' keyword.
	KwTrue // true
	// KwFalse represents the 'false' keyword.
	KwFalse // false

	// IntLit represents the integer literal token.
	IntLit
	// FloatLit represents the float literal token.
	FloatLit
	// StringLit represents the string literal token.
	StringLit
	// RuneLit represents the rune literal token.
	RuneLit

	Plus    // +
	Minus   // -
	Star    // *
	Slash   // /
	Percent // %
	Assign  // =
	EqEq    // ==
	Bang    // !
	BangEq  // !=
	Lt      // <
	LtEq    // <=
	Gt      // >
	GtEq    // >=
	Shl     // <<
	Shr     // >>
	Amp     // &
	Pipe    // |
	Caret   // ^
	Tilde   // ~
	At      // @
	AndAnd  // &&
	OrOr    // ||

	Colon     // :
	Semicolon // ;
	Comma     // ,
	Dot       // .
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]

	kindCount
)

var kindNames = [kindCount]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	Ident:     "Ident",
	KwFunc:    "KwFunc",
	KwStruct:  "KwStruct",
	KwMut:     "KwMut",
	KwReturn:  "KwReturn",
	KwIf:      "KwIf",
	KwElse:    "KwElse",
	KwTrue:    "KwTrue",
	KwFalse:   "KwFalse",
	IntLit:    "IntLit",
	FloatLit:  "FloatLit",
	StringLit: "StringLit",
	RuneLit:   "RuneLit",
	Plus:      "Plus",
	Minus:     "Minus",
	Star:      "Star",
	Slash:     "Slash",
	Percent:   "Percent",
	Assign:    "Assign",
	EqEq:      "EqEq",
	Bang:      "Bang",
	BangEq:    "BangEq",
	Lt:        "Lt",
	LtEq:      "LtEq",
	Gt:        "Gt",
	GtEq:      "GtEq",
	Shl:       "Shl",
	Shr:       "Shr",
	Amp:       "Amp",
	Pipe:      "Pipe",
	Caret:     "Caret",
	Tilde:     "Tilde",
	At:        "At",
	AndAnd:    "AndAnd",
	OrOr:      "OrOr",
	Colon:     "Colon",
	Semicolon: "Semicolon",
	Comma:     "Comma",
	Dot:       "Dot",
	LParen:    "LParen",
	RParen:    "RParen",
	LBrace:    "LBrace",
	RBrace:    "RBrace",
	LBracket:  "LBracket",
	RBracket:  "RBracket",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsEOF reports whether the kind marks the end of input.
func (k Kind) IsEOF() bool { return k == EOF }

// Class is the coarse token category: the closed set a grammar dispatches on
// before looking at the concrete Kind.
type Class uint8

const (
	ClassError Class = iota
	ClassEOF
	ClassIdent
	ClassKeyword
	ClassNumber
	ClassString
	ClassOperator
	ClassPunct
)

func (c Class) String() string {
	switch c {
	case ClassError:
		return "error"
	case ClassEOF:
		return "eof"
	case ClassIdent:
		return "identifier"
	case ClassKeyword:
		return "keyword"
	case ClassNumber:
		return "number"
	case ClassString:
		return "string"
	case ClassOperator:
		return "operator"
	case ClassPunct:
		return "punctuation"
	}
	return "unknown"
}

// Class returns the coarse category of the kind.
func (k Kind) Class() Class {
	switch {
	case k == EOF:
		return ClassEOF
	case k == Ident:
		return ClassIdent
	case k >= KwFunc && k <= KwFalse:
		return ClassKeyword
	case k == IntLit || k == FloatLit:
		return ClassNumber
	case k == StringLit || k == RuneLit:
		return ClassString
	case k >= Plus && k <= OrOr:
		return ClassOperator
	case k >= Colon && k <= RBracket:
		return ClassPunct
	default:
		return ClassError
	}
}
