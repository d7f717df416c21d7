// Package fuzztests houses Go fuzz harnesses for the front end
// (source -> lexer -> parser -> format). They guard against panics, hangs and
// broken invariants on arbitrary inputs.
//
// Назначение: загружать байты в FileSet и прогонять их через лексер, парсер и
// форматтер, проверяя инварианты потока токенов и дерева.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
