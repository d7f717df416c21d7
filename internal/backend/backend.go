// Package backend defines the narrow interface between a parsed compilation
// unit and a code generator.
package backend

import (
	"context"
	"errors"

	"arkc/internal/ast"
)

// ErrReleased is returned by Module.Release on a second call.
var ErrReleased = errors.New("backend module already released")

// Backend creates modules from parsed files. Implementations must allow
// concurrent NewModule calls from independent units.
type Backend interface {
	NewModule(ctx context.Context, name string, file *ast.File) (Module, error)
}

// Module is a backend-owned handle. The owner releases it exactly once.
type Module interface {
	Name() string
	Release() error
}
