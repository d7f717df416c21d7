// Package ast defines the syntax tree produced by the parser.
//
// Every node is a pointer to a concrete struct and satisfies Node. The sets of
// declarations, statements, expressions and type expressions are closed: the
// marker interfaces carry unexported methods so only this package can add
// variants, and Children switches over all of them.
//
// A tree has a single owner. Factories bind all children at construction and
// record a non-owning Parent back-reference used for diagnostics. Walk and
// Inspect never mutate a tree. Release tears a tree down exactly once.
package ast
