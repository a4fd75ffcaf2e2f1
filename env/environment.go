// Package env implements Axel's runtime Environment: a single flat mapping
// from name to Value, shared by the whole program.
package env

import "github.com/axel-lang/axel/objects"

// Environment is deliberately flat, not a scope chain. Axel has no block or
// function scoping: every name, whether bound at the top level or as a
// function's formal parameter, lives in the same map. A function call binds
// its parameters into this same Environment for the duration of the call
// and removes them on the way out (see eval's call-handling), which is what
// gives Axel its "dynamic scoping with name shadowing" behavior — a call
// can see and overwrite any name already bound in the environment, and a
// parameter temporarily shadows an outer binding of the same name for the
// duration of the call.
type Environment struct {
	values map[string]objects.Value
}

// New returns an empty Environment.
func New() *Environment {
	return &Environment{values: make(map[string]objects.Value)}
}

// Get looks up name. The bool result is false if no binding exists.
func (e *Environment) Get(name string) (objects.Value, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Set creates or overwrites the binding for name. It never consults or
// mutates any other environment — there is only ever one.
func (e *Environment) Set(name string, value objects.Value) {
	e.values[name] = value
}

// Delete removes name's binding entirely. Used when a function call returns,
// to undo the temporary binding of its formal parameters (spec.md §4.3.3).
// If the name had a prior outer binding of the same name, that binding was
// already overwritten by the call and is not restored — Axel's function
// calls are not reentrant-safe with respect to shadowed outer names, which
// spec.md records as a known, intentional property of the dynamic-scoping
// model rather than a bug to fix here.
func (e *Environment) Delete(name string) {
	delete(e.values, name)
}

// Has reports whether name is currently bound.
func (e *Environment) Has(name string) bool {
	_, ok := e.values[name]
	return ok
}
