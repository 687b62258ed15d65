package di

import (
	"fmt"
	"reflect"
	"sync"

	wkerrors "github.com/skillsenselab/wirekit/errors"
)

// constructorIndex is the process-global registry of constructor candidates,
// keyed by the constructor's first result type. Go has no reflection over
// per-type constructors, so candidates are declared up front via
// RegisterConstructor, in the spirit of gob.Register.
var constructorIndex = struct {
	mu     sync.RWMutex
	byType map[reflect.Type][]reflect.Value
}{byType: make(map[reflect.Type][]reflect.Value)}

// synthesizedFactories caches synthesized factories per concrete type.
// Synthesis is a pure function of the constructor signature, so the cache is
// shared across all container instances.
var synthesizedFactories sync.Map // reflect.Type -> Factory

// RegisterConstructor adds fn as a construction candidate for its first
// result type. Constructors may return (T) or (T, error), and may declare
// *Container or *Resolver parameters alongside resolvable dependency types.
func RegisterConstructor(fn any) error {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func {
		return fmt.Errorf("di: constructor must be a function, got %T", fn)
	}
	ft := v.Type()
	if ft.IsVariadic() {
		return fmt.Errorf("di: variadic constructors are not supported")
	}
	switch ft.NumOut() {
	case 1:
		if ft.Out(0) == errType {
			return fmt.Errorf("di: constructor must produce a value, not only an error")
		}
	case 2:
		if ft.Out(1) != errType {
			return fmt.Errorf("di: constructor second result must be error, got %s", ft.Out(1))
		}
	default:
		return fmt.Errorf("di: constructor must return (T) or (T, error)")
	}

	t := ft.Out(0)
	constructorIndex.mu.Lock()
	constructorIndex.byType[t] = append(constructorIndex.byType[t], v)
	constructorIndex.mu.Unlock()

	// The candidate set for t changed, so any previously synthesized factory
	// is stale.
	synthesizedFactories.Delete(t)
	return nil
}

// MustRegisterConstructor is RegisterConstructor, panicking on error. Meant
// for package init blocks.
func MustRegisterConstructor(fn any) {
	if err := RegisterConstructor(fn); err != nil {
		panic(err)
	}
}

// synthesize derives a default factory for t, serving it from the
// process-global cache when the shape was already derived. Selection errors
// are not cached: each resolve of a non-constructable type re-runs selection
// so the failure hook sees the fresh cause.
func synthesize(t reflect.Type) (Factory, error) {
	if f, ok := synthesizedFactories.Load(t); ok {
		return f.(Factory), nil
	}
	f, err := buildFactory(t)
	if err != nil {
		return nil, err
	}
	actual, _ := synthesizedFactories.LoadOrStore(t, f)
	return actual.(Factory), nil
}

func buildFactory(t reflect.Type) (Factory, error) {
	if t.Kind() == reflect.Func {
		return nil, wkerrors.NotConstructable(t.String())
	}
	ctors := candidatesFor(t)
	if len(ctors) == 0 {
		return parameterlessFactory(t)
	}
	winner, ties := longest(ctors)
	if ties > 1 {
		return nil, wkerrors.Ambiguous(t.String(), ties)
	}
	return injectedFactory(winner), nil
}

func candidatesFor(t reflect.Type) []reflect.Value {
	constructorIndex.mu.RLock()
	defer constructorIndex.mu.RUnlock()
	ctors := constructorIndex.byType[t]
	out := make([]reflect.Value, len(ctors))
	copy(out, ctors)
	return out
}

// longest selects the candidate with the maximum parameter count and reports
// how many candidates share that count. Exactly one winner is required; ties
// are the caller's problem.
func longest(ctors []reflect.Value) (reflect.Value, int) {
	best := ctors[0]
	ties := 1
	for _, ctor := range ctors[1:] {
		switch arity, max := ctor.Type().NumIn(), best.Type().NumIn(); {
		case arity > max:
			best, ties = ctor, 1
		case arity == max:
			ties++
		}
	}
	return best, ties
}

// parameterlessFactory covers types with no declared candidates. Structs and
// pointers to structs keep the implicit zero-value constructor; anything
// else has nothing to construct from.
func parameterlessFactory(t reflect.Type) (Factory, error) {
	base := t
	if base.Kind() == reflect.Ptr {
		base = base.Elem()
	}
	if base.Kind() != reflect.Struct {
		return nil, wkerrors.NoConstructor(t.String())
	}
	return func(*Resolver) (any, error) {
		return bareInstance(t), nil
	}, nil
}

var (
	containerType = reflect.TypeOf((*Container)(nil))
	resolverType  = reflect.TypeOf((*Resolver)(nil))
)

// injectedFactory builds the factory for a selected constructor: each
// parameter is resolved through the container in declared order, then the
// constructor is invoked with the resolved arguments. A failure resolving
// any parameter aborts the whole build.
func injectedFactory(ctor reflect.Value) Factory {
	ft := ctor.Type()
	return func(r *Resolver) (any, error) {
		args := make([]reflect.Value, ft.NumIn())
		for i := range args {
			pt := ft.In(i)
			switch pt {
			case containerType:
				args[i] = reflect.ValueOf(r.Container())
			case resolverType:
				args[i] = reflect.ValueOf(r)
			default:
				v, err := r.Resolve(pt)
				if err != nil {
					return nil, err
				}
				args[i] = typedValue(pt, v)
			}
		}
		return constructorResult(ctor.Call(args))
	}
}

// constructorResult normalizes the (T) and (T, error) result shapes. A
// non-nil error from the constructor is surfaced directly, not wrapped.
func constructorResult(results []reflect.Value) (any, error) {
	if len(results) == 2 {
		if err, _ := results[1].Interface().(error); err != nil {
			return nil, err
		}
	}
	return results[0].Interface(), nil
}
