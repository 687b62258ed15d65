// Package di provides an embeddable dependency-resolution engine.
//
// A Container maps type keys (reflect.Type) to factories. Resolving a type
// with no explicit binding consults an ordered chain of fallback strategies
// and, failing that, synthesizes a factory from the constructor candidates
// declared for that type via RegisterConstructor, picking the candidate with
// the most parameters and resolving each parameter recursively.
//
// # Registration
//
//	c := di.New()
//	c.Register(di.KeyOf[Repository](), func(r *di.Resolver) (any, error) {
//	    return NewPostgresRepository(), nil
//	})
//
// # Resolution
//
//	repo, err := di.Resolve[Repository](c)
//
// Go has no discoverable per-type constructors, so auto-construction
// candidates are declared up front, in the spirit of gob.Register:
//
//	di.MustRegisterConstructor(NewOrderService)
//
// A struct type with no declared candidates keeps its implicit parameterless
// constructor (the zero value). Function types cannot be auto-constructed,
// with one exception: requests for func() T and func() (T, error) are served
// by the built-in deferred strategy, which returns a closure resolving T anew
// from the container on every invocation.
package di
