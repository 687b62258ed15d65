package di

import "fmt"

// MustResolve resolves T with type safety, panics on error.
// Use this at composition points where a missing dependency is fatal.
//
// Example:
//
//	repo := di.MustResolve[contracts.OrderRepository](c)
func MustResolve[T any](c *Container) T {
	result, err := Resolve[T](c)
	if err != nil {
		panic(fmt.Sprintf("di: failed to resolve %s: %v", KeyOf[T](), err))
	}
	return result
}

// Resolve resolves T with type safety, returns error on failure.
//
// Example:
//
//	repo, err := di.Resolve[contracts.OrderRepository](c)
//	if err != nil {
//	    return fmt.Errorf("failed to get order repository: %w", err)
//	}
func Resolve[T any](c *Container) (T, error) {
	var zero T
	instance, err := c.Resolve(KeyOf[T]())
	if err != nil {
		return zero, err
	}
	result, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("di: type %s resolved to %T", KeyOf[T](), instance)
	}
	return result, nil
}

// TryResolve resolves T, returns zero value and false on any failure.
// Use this when a dependency is optional.
func TryResolve[T any](c *Container) (T, bool) {
	result, err := Resolve[T](c)
	if err != nil {
		var zero T
		return zero, false
	}
	return result, true
}

// ResolveIn resolves T through a call-scoped resolver. Use this inside
// factories so nested resolutions keep the resolution stack, which is what
// the self-reference guard inspects.
func ResolveIn[T any](r *Resolver) (T, error) {
	var zero T
	instance, err := r.Resolve(KeyOf[T]())
	if err != nil {
		return zero, err
	}
	result, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("di: type %s resolved to %T", KeyOf[T](), instance)
	}
	return result, nil
}
