package di

import (
	"reflect"
	"sync"
)

// singletonCache is the two-level singleton store: a primary map keyed by
// the registered type, plus an alias table mapping the concrete runtime type
// of each cached value back to its primary key. The alias table is what lets
// a direct request for the concrete type hit the same cached instance that
// was produced for an interface registration.
type singletonCache struct {
	mu      sync.Mutex
	values  map[reflect.Type]any
	aliases map[reflect.Type]reflect.Type
}

func newSingletonCache() *singletonCache {
	return &singletonCache{
		values:  make(map[reflect.Type]any),
		aliases: make(map[reflect.Type]reflect.Type),
	}
}

// wrap returns a factory that invokes f at most once per cached generation
// and serves the cached value afterwards.
func (s *singletonCache) wrap(t reflect.Type, f Factory) Factory {
	return func(r *Resolver) (any, error) {
		s.mu.Lock()
		v, ok := s.values[t]
		s.mu.Unlock()
		if ok {
			return v, nil
		}
		v, err := f(r)
		if err != nil {
			return nil, err
		}
		return s.put(t, v), nil
	}
}

// lookup returns the cached value for t, consulting the alias table when t
// has no primary entry.
func (s *singletonCache) lookup(t reflect.Type) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.values[t]; ok {
		return v, true
	}
	if pk, ok := s.aliases[t]; ok {
		if v, ok := s.values[pk]; ok {
			return v, true
		}
	}
	return nil, false
}

// put stores v under primary key t and aliases v's concrete runtime type.
// An already-populated entry is never replaced; the first stored value wins
// and is returned.
func (s *singletonCache) put(t reflect.Type, v any) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w, ok := s.values[t]; ok {
		return w
	}
	s.values[t] = v
	if ct := reflect.TypeOf(v); ct != nil && ct != t {
		s.aliases[ct] = t
	}
	return v
}

// invalidate clears the cached value for t and any aliases pointing at it.
func (s *singletonCache) invalidate(t reflect.Type) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, t)
	for ct, pk := range s.aliases {
		if pk == t {
			delete(s.aliases, ct)
		}
	}
}
