package di

import "reflect"

// Factory builds an instance of a bound type. The Resolver is the
// call-scoped view of the container; nested dependencies are resolved
// through it so the resolution stack stays intact.
type Factory func(r *Resolver) (any, error)

// StrategyFunc is a fallback rule consulted when a type has no explicit
// binding. It returns (factory, true) when it has an opinion about the type
// and (nil, false) to fall through to the next strategy.
type StrategyFunc func(t reflect.Type) (Factory, bool)

// FailureHook maps a failed constructor selection to the error surfaced to
// the caller. Returning nil makes the resolve call yield a bare default
// value for the type instead of failing.
type FailureHook func(t reflect.Type, cause error) error

// Binding is a (type, factory) pair from the registry.
type Binding struct {
	Type    reflect.Type
	Factory Factory
}

// KeyOf returns the type key for T. It works for interface types as well as
// concrete ones.
func KeyOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

var errType = reflect.TypeOf((*error)(nil)).Elem()

// typedValue converts a resolved instance back to a reflect.Value of the
// requested type. A nil instance becomes the type's zero value, which is how
// interface-typed dependencies resolved to "nothing" are passed through.
func typedValue(t reflect.Type, v any) reflect.Value {
	out := reflect.New(t).Elem()
	if v == nil {
		return out
	}
	if rv := reflect.ValueOf(v); rv.Type().AssignableTo(t) {
		out.Set(rv)
	}
	return out
}

// bareInstance builds a default value for t without consulting the
// container: new(T) for pointer types, the zero value otherwise.
func bareInstance(t reflect.Type) any {
	if t.Kind() == reflect.Ptr {
		return reflect.New(t.Elem()).Interface()
	}
	return reflect.Zero(t).Interface()
}
