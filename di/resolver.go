package di

import "reflect"

// Resolver is the call-scoped view of a container during a single resolve
// call chain. It carries the stack of types currently being resolved, so
// self-reference detection works without shared mutable state and stays
// correct when several goroutines resolve from the same container.
type Resolver struct {
	c     *Container
	stack []reflect.Type
}

// Container returns the container this resolver belongs to.
func (r *Resolver) Container() *Container { return r.c }

// Resolve produces an instance of t within the current call chain.
//
// If t's own factory asks for t again (a constructor parameter declared as
// the type under construction), the guard breaks the recursion by returning
// a bare default instance instead of re-entering the pipeline. Only the
// exact immediate self-match is detected; mutual cycles (A needs B needs A)
// are not.
func (r *Resolver) Resolve(t reflect.Type) (any, error) {
	c := r.c

	if n := len(r.stack); n > 0 && r.stack[n-1] == t {
		v := bareInstance(t)
		c.fireAfterResolve(t, v)
		return v, nil
	}

	f, ok := c.binding(t)
	if !ok {
		// A singleton produced under another key may already carry this
		// concrete type.
		if v, ok := c.singles.lookup(t); ok {
			c.fireAfterResolve(t, v)
			return v, nil
		}
		var err error
		f, err = c.fallback(t)
		if err != nil {
			return c.failResolve(t, err)
		}
		f = c.install(t, f)
	}

	child := &Resolver{c: c, stack: append(r.stack[:len(r.stack):len(r.stack)], t)}
	v, err := f(child)
	if err != nil {
		// User factory errors pass through unwrapped; a failure anywhere
		// aborts the whole graph build.
		return nil, err
	}
	c.fireAfterResolve(t, v)
	return v, nil
}
