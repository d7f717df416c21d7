package token

var keywords = map[string]Kind{
	"func":   KwFunc,
	"struct": KwStruct,
	"mut":    KwMut,
	"return": KwReturn,
	"if":     KwIf,
	"else":   KwElse,
	"true":   KwTrue,
	"false":  KwFalse,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые: только lowercase версии распознаются.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// Keyword returns the source spelling of a keyword kind.
func Keyword(k Kind) (string, bool) {
	for text, kind := range keywords {
		if kind == k {
			return text, true
		}
	}
	return "", false
}
