package lang

// TokKind enumerates lexical token categories.
type TokKind int

const (
	TokEOF TokKind = iota
	TokNewline
	TokIndent
	TokDedent
	TokName
	TokInt
	TokFloat
	TokString

	TokDef
	TokReturn
	TokIf
	TokElif
	TokElse
	TokWhile
	TokFor
	TokIn
	TokNot
	TokAnd
	TokOr
	TokTrue
	TokFalse
	TokNone
	TokPass
	TokBreak
	TokContinue
	TokRaise
	TokTry
	TokExcept
	TokFinally
	TokImport
	TokFrom
	TokGlobal

	TokPlus
	TokMinus
	TokStar
	TokDoubleStar
	TokSlash
	TokDoubleSlash
	TokPercent
	TokEq
	TokEqEq
	TokNotEq
	TokLt
	TokLtEq
	TokGt
	TokGtEq
	TokLParen
	TokRParen
	TokLBracket
	TokRBracket
	TokLBrace
	TokRBrace
	TokComma
	TokColon
	TokDot
	TokSemicolon
	TokPlusEq
	TokMinusEq
	TokStarEq
	TokSlashEq
)

var keywords = map[string]TokKind{
	"def":      TokDef,
	"return":   TokReturn,
	"if":       TokIf,
	"elif":     TokElif,
	"else":     TokElse,
	"while":    TokWhile,
	"for":      TokFor,
	"in":       TokIn,
	"not":      TokNot,
	"and":      TokAnd,
	"or":       TokOr,
	"True":     TokTrue,
	"False":    TokFalse,
	"None":     TokNone,
	"pass":     TokPass,
	"break":    TokBreak,
	"continue": TokContinue,
	"raise":    TokRaise,
	"try":      TokTry,
	"except":   TokExcept,
	"finally":  TokFinally,
	"import":   TokImport,
	"from":     TokFrom,
	"global":   TokGlobal,
}

// Token is a single lexical unit with its source position (1-based line).
type Token struct {
	Kind TokKind
	Text string
	Int  int64
	Flt  float64
	Line int
}
