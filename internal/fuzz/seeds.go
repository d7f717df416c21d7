package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB: ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

// builtinSeeds parse cleanly and survive formatting.
var builtinSeeds = []string{
	"",
	"x = 1 + 2",
	"x = (1 + 2) * 3",
	"z = -(-x)",
	"f(a, b)(c).d[e]",
	"ok = !done && (a < b || c >= d)",
	"bits = a << 2 | b & ^c | ~d",
	"s := \"a\\n\\x41\"\nr := '\\''",
	"fl := 1.5e3 + 2f",
	"func empty() {}\nstruct E {}\nfunc g(): int { if true { return 1 } else { return 0 } }",
	"/// doc\nfunc add(mut a: int, b: ^int): mut []int {\n    s: int = a + @b\n    return s\n}",
	"struct Point {\n    x: int,\n    mut y: int,\n}\nmut p: Point",
}

// brokenSeeds exercise lexer and parser recovery.
var brokenSeeds = []string{
	"x = ",
	"x = \"abc",
	"/* open",
	"0x 0b2 1e 1.2.3",
	"func (",
	"struct S { x int",
	"if { else }",
	"'ab' '' '",
	"$ # `",
	"func f() { { { { } } } }",
	"a = ((((((((((1))))))))))",
}

func addCorpusSeeds(f *testing.F) {
	addBuiltinSeeds(f)
	for _, s := range brokenSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addBuiltinSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.ark файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".ark" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
