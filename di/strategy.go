package di

import "reflect"

// deferredStrategy is the built-in default strategy: requests for func() T
// and func() (T, error) wrapper types get a factory producing a closure
// that resolves T anew from the container on every invocation. This gives
// lazy, per-call resolution semantics without registering anything for T
// itself.
//
// The func() T shape has no way to report a failed resolution, so its
// closure panics if T cannot be resolved at invocation time. Use the
// func() (T, error) shape when resolution may fail.
func deferredStrategy(c *Container) StrategyFunc {
	return func(t reflect.Type) (Factory, bool) {
		target, withErr, ok := deferredTarget(t)
		if !ok {
			return nil, false
		}
		return func(*Resolver) (any, error) {
			fn := reflect.MakeFunc(t, func([]reflect.Value) []reflect.Value {
				v, err := c.Resolve(target)
				out := typedValue(target, v)
				if withErr {
					return []reflect.Value{out, errValue(err)}
				}
				if err != nil {
					panic(err)
				}
				return []reflect.Value{out}
			})
			return fn.Interface(), nil
		}, true
	}
}

// deferredTarget reports whether t is a deferred-invocation wrapper type and
// which type it wraps.
func deferredTarget(t reflect.Type) (target reflect.Type, withErr bool, ok bool) {
	if t.Kind() != reflect.Func || t.IsVariadic() || t.NumIn() != 0 {
		return nil, false, false
	}
	switch t.NumOut() {
	case 1:
		if t.Out(0) == errType {
			return nil, false, false
		}
		return t.Out(0), false, true
	case 2:
		if t.Out(1) != errType || t.Out(0) == errType {
			return nil, false, false
		}
		return t.Out(0), true, true
	default:
		return nil, false, false
	}
}

func errValue(err error) reflect.Value {
	v := reflect.New(errType).Elem()
	if err != nil {
		v.Set(reflect.ValueOf(err))
	}
	return v
}
