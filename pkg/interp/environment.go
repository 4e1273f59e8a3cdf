package interp

import (
	"slices"
	"sort"

	"gostack/pkg/lang"
)

// Environment holds variable bindings and the procedure table. A name is
// never a variable and a procedure at the same time.
type Environment struct {
	vars  map[string]lang.Literal
	procs map[string][]lang.Stmt
}

func NewEnvironment() *Environment {
	return &Environment{
		vars:  make(map[string]lang.Literal),
		procs: make(map[string][]lang.Stmt),
	}
}

// Bind stores v under name, replacing any procedure of that name.
func (e *Environment) Bind(name string, v lang.Literal) {
	delete(e.procs, name)
	e.vars[name] = v
}

// Lookup returns the value bound to name.
func (e *Environment) Lookup(name string) (lang.Literal, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// DefineProcedure stores a copy of body under name, replacing any variable of
// that name.
func (e *Environment) DefineProcedure(name string, body []lang.Stmt) {
	delete(e.vars, name)
	e.procs[name] = slices.Clone(body)
}

// Procedure returns a copy of the body registered under name.
func (e *Environment) Procedure(name string) ([]lang.Stmt, bool) {
	body, ok := e.procs[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(body), true
}

// Variables returns the bound names in sorted order.
func (e *Environment) Variables() []string {
	return sortedKeys(e.vars)
}

// Procedures returns the procedure names in sorted order.
func (e *Environment) Procedures() []string {
	return sortedKeys(e.procs)
}

// Clear forgets every binding and procedure.
func (e *Environment) Clear() {
	clear(e.vars)
	clear(e.procs)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
