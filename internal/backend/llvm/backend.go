// Package llvm is the reference backend: it declares the module-level
// symbols of a file in textual LLVM IR.
package llvm

import (
	"context"
	"fmt"
	"sync"

	"arkc/internal/ast"
	"arkc/internal/backend"
)

const DefaultTriple = "x86_64-linux-gnu"

// Backend is safe for concurrent use.
type Backend struct {
	triple string

	mu      sync.Mutex
	live    map[string]int
	created int
}

// New returns a backend targeting triple; an empty triple selects DefaultTriple.
func New(triple string) *Backend {
	if triple == "" {
		triple = DefaultTriple
	}
	return &Backend{triple: triple, live: make(map[string]int)}
}

var _ backend.Backend = (*Backend)(nil)

// NewModule renders the declarations of file. The returned module must be
// released by its owner.
func (b *Backend) NewModule(ctx context.Context, name string, file *ast.File) (backend.Module, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ir, err := EmitModule(ctx, name, b.triple, file)
	if err != nil {
		return nil, fmt.Errorf("llvm: %w", err)
	}
	b.mu.Lock()
	b.live[name]++
	b.created++
	b.mu.Unlock()
	return &Module{name: name, ir: ir, owner: b}, nil
}

// Live reports the number of modules created and not yet released.
func (b *Backend) Live() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.live {
		n += c
	}
	return n
}

// Created reports the total number of modules ever created.
func (b *Backend) Created() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.created
}

func (b *Backend) release(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.live[name] <= 1 {
		delete(b.live, name)
		return
	}
	b.live[name]--
}

// Module holds rendered IR until released.
type Module struct {
	name  string
	ir    string
	owner *Backend

	mu       sync.Mutex
	released bool
}

var _ backend.Module = (*Module)(nil)

func (m *Module) Name() string { return m.name }

// IR returns the textual IR, or an empty string after Release.
func (m *Module) IR() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ir
}

func (m *Module) Release() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.released {
		return backend.ErrReleased
	}
	m.released = true
	m.ir = ""
	m.owner.release(m.name)
	return nil
}
