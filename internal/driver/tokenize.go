package driver

import (
	"arkc/internal/diag"
	"arkc/internal/lexer"
	"arkc/internal/source"
	"arkc/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize scans one file to EOF.
func Tokenize(path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	bag := diag.NewBag(opts.MaxDiagnostics)

	idx := opts.Timer.Begin("lex")
	lx := lexer.New(file, lexer.Options{Reporter: diag.NewDedupReporter(diag.BagReporter{Bag: bag})})
	tokens := lexer.Tokenize(lx)
	opts.Timer.End(idx, "")
	log.Debugf("tokenize %s: %d tokens", path, len(tokens))

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}
