package dispatcher

import (
	"fmt"

	"github.com/envoyproxy/proxy-wasm-go-sdk/shared"
)

// manager keeps track of values keyed by a host-assigned id. All access happens on the single
// thread the host calls in on, so no locking is done.
type manager[T any] struct {
	data map[uint32]T
}

func newManager[T any]() *manager[T] {
	return &manager[T]{data: make(map[uint32]T)}
}

func (m *manager[T]) record(key uint32, item T) bool {
	if _, ok := m.data[key]; ok {
		return false
	}
	m.data[key] = item
	return true
}

func (m *manager[T]) search(key uint32) (T, bool) {
	item, ok := m.data[key]
	return item, ok
}

// take removes and returns the item.
func (m *manager[T]) take(key uint32) (T, bool) {
	item, ok := m.data[key]
	if ok {
		delete(m.data, key)
	}
	return item, ok
}

func (m *manager[T]) remove(key uint32) bool {
	_, ok := m.data[key]
	delete(m.data, key)
	return ok
}

func (m *manager[T]) len() int { return len(m.data) }

// Kind is the variant of a live context.
type Kind uint8

const (
	KindRoot Kind = iota + 1
	KindStream
	KindHttp
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindStream:
		return "stream"
	case KindHttp:
		return "http"
	}
	return "none"
}

// Instance is a live context of exactly one kind. The field matching Kind is the only non-nil
// one.
type Instance struct {
	Kind   Kind
	Root   shared.RootContext
	Stream shared.StreamContext
	Http   shared.HttpContext
}

// Context returns the capability set shared by every kind.
func (i Instance) Context() shared.Context {
	switch i.Kind {
	case KindRoot:
		return i.Root
	case KindStream:
		return i.Stream
	case KindHttp:
		return i.Http
	}
	return nil
}

// Factories are the process-wide context constructors. A nil Root factory creates
// shared.EmptyRootContext. Nil Stream and Http factories defer to the parent root.
type Factories struct {
	Root   shared.NewRootContext
	Stream shared.NewStreamContext
	Http   shared.NewHttpContext
}

// Ambiguous reports whether both child factories are registered, in which case the Http
// factory takes precedence when the host does not name the context type.
func (f Factories) Ambiguous() bool {
	return f.Stream != nil && f.Http != nil
}

// Registry owns every live context. An id is present in at most one of the three maps.
type Registry struct {
	factories Factories
	roots     *manager[shared.RootContext]
	streams   *manager[shared.StreamContext]
	https     *manager[shared.HttpContext]
}

func NewRegistry(factories Factories) *Registry {
	return &Registry{
		factories: factories,
		roots:     newManager[shared.RootContext](),
		streams:   newManager[shared.StreamContext](),
		https:     newManager[shared.HttpContext](),
	}
}

func (r *Registry) Factories() Factories { return r.factories }

func (r *Registry) SetFactories(factories Factories) { r.factories = factories }

// Kind returns the kind of the live context id, or zero if there is none.
func (r *Registry) Kind(id uint32) Kind {
	if _, ok := r.https.search(id); ok {
		return KindHttp
	}
	if _, ok := r.streams.search(id); ok {
		return KindStream
	}
	if _, ok := r.roots.search(id); ok {
		return KindRoot
	}
	return 0
}

// Len returns the number of live contexts.
func (r *Registry) Len() int {
	return r.roots.len() + r.streams.len() + r.https.len()
}

func (r *Registry) CreateRoot(id uint32) error {
	if r.Kind(id) != 0 {
		return ErrDuplicateID
	}
	var root shared.RootContext
	if r.factories.Root != nil {
		root = r.factories.Root(id)
	} else {
		root = &shared.EmptyRootContext{}
	}
	if root == nil {
		return ErrFactoryDeclined
	}
	r.roots.record(id, root)
	return nil
}

func (r *Registry) CreateStream(id, parentID uint32) error {
	parent, ok := r.roots.search(parentID)
	if !ok {
		return ErrUnknownParent
	}
	if r.Kind(id) != 0 {
		return ErrDuplicateID
	}
	var stream shared.StreamContext
	if r.factories.Stream != nil {
		stream = r.factories.Stream(id, parentID)
	} else {
		stream = parent.NewStreamContext(id)
	}
	if stream == nil {
		return ErrFactoryDeclined
	}
	r.streams.record(id, stream)
	return nil
}

func (r *Registry) CreateHttp(id, parentID uint32) error {
	parent, ok := r.roots.search(parentID)
	if !ok {
		return ErrUnknownParent
	}
	if r.Kind(id) != 0 {
		return ErrDuplicateID
	}
	var http shared.HttpContext
	if r.factories.Http != nil {
		http = r.factories.Http(id, parentID)
	} else {
		http = parent.NewHttpContext(id)
	}
	if http == nil {
		return ErrFactoryDeclined
	}
	r.https.record(id, http)
	return nil
}

// DispatchCreate creates a context whose kind is not named by the host. A zero parentID
// creates a root. Otherwise the global Http factory wins over the global Stream factory, which
// wins over the parent root's declared ContextType.
func (r *Registry) DispatchCreate(id, parentID uint32) error {
	switch {
	case parentID == 0:
		return r.CreateRoot(id)
	case r.factories.Http != nil:
		return r.CreateHttp(id, parentID)
	case r.factories.Stream != nil:
		return r.CreateStream(id, parentID)
	}
	parent, ok := r.roots.search(parentID)
	if !ok {
		return ErrUnknownParent
	}
	contextType, ok := parent.ContextType()
	if !ok {
		return ErrAmbiguousContextType
	}
	switch contextType {
	case shared.ContextTypeHttp:
		return r.CreateHttp(id, parentID)
	case shared.ContextTypeStream:
		return r.CreateStream(id, parentID)
	}
	return fmt.Errorf("%w: root declared context type %d", ErrAmbiguousContextType, contextType)
}

// Lookup returns the live context id, trying http, then stream, then root.
func (r *Registry) Lookup(id uint32) (Instance, bool) {
	if http, ok := r.https.search(id); ok {
		return Instance{Kind: KindHttp, Http: http}, true
	}
	if stream, ok := r.streams.search(id); ok {
		return Instance{Kind: KindStream, Stream: stream}, true
	}
	if root, ok := r.roots.search(id); ok {
		return Instance{Kind: KindRoot, Root: root}, true
	}
	return Instance{}, false
}

func (r *Registry) Root(id uint32) (shared.RootContext, bool) { return r.roots.search(id) }

func (r *Registry) Stream(id uint32) (shared.StreamContext, bool) { return r.streams.search(id) }

func (r *Registry) Http(id uint32) (shared.HttpContext, bool) { return r.https.search(id) }

func (r *Registry) Remove(id uint32) error {
	if r.https.remove(id) || r.streams.remove(id) || r.roots.remove(id) {
		return nil
	}
	return ErrUnknownID
}
