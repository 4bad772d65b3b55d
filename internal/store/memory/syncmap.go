package memory

import (
	"sync"

	"github.com/google/uuid"
)

// syncMap is a typed view over sync.Map keyed by uuid.
type syncMap[V any] struct {
	m sync.Map
}

func (s *syncMap[V]) load(id uuid.UUID) (V, bool) {
	v, ok := s.m.Load(id)
	if !ok {
		var zero V
		return zero, false
	}
	return v.(V), true //nolint:forcetypeassert // only V is ever stored
}

func (s *syncMap[V]) store(id uuid.UUID, v V) {
	s.m.Store(id, v)
}

func (s *syncMap[V]) delete(id uuid.UUID) {
	s.m.Delete(id)
}

// loadOrStore returns the existing value for id, or stores and returns v.
func (s *syncMap[V]) loadOrStore(id uuid.UUID, v V) V {
	actual, _ := s.m.LoadOrStore(id, v)
	return actual.(V) //nolint:forcetypeassert // only V is ever stored
}

func (s *syncMap[V]) values() []V {
	var out []V
	s.m.Range(func(_, v any) bool {
		out = append(out, v.(V)) //nolint:forcetypeassert // only V is ever stored
		return true
	})
	return out
}

func (s *syncMap[V]) clear() {
	s.m.Clear()
}

// tenantMap holds one entity collection per estate.
type tenantMap[V any] struct {
	estates syncMap[*syncMap[V]]
}

// collection returns the estate's collection, or nil if none exists yet.
func (t *tenantMap[V]) collection(estateID uuid.UUID) *syncMap[V] {
	c, _ := t.estates.load(estateID)
	return c
}

// ensure returns the estate's collection, creating it atomically on first use
// so concurrent first writers share one collection.
func (t *tenantMap[V]) ensure(estateID uuid.UUID) *syncMap[V] {
	if c, ok := t.estates.load(estateID); ok {
		return c
	}
	return t.estates.loadOrStore(estateID, &syncMap[V]{})
}

func (t *tenantMap[V]) get(estateID, id uuid.UUID) (V, bool) {
	c := t.collection(estateID)
	if c == nil {
		var zero V
		return zero, false
	}
	return c.load(id)
}

func (t *tenantMap[V]) put(estateID, id uuid.UUID, v V) {
	t.ensure(estateID).store(id, v)
}

func (t *tenantMap[V]) remove(estateID, id uuid.UUID) {
	if c := t.collection(estateID); c != nil {
		c.delete(id)
	}
}

func (t *tenantMap[V]) list(estateID uuid.UUID) []V {
	c := t.collection(estateID)
	if c == nil {
		return nil
	}
	return c.values()
}

func (t *tenantMap[V]) clear() {
	t.estates.clear()
}
