package pager

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/syntrixbase/pager/internal/config"
	"github.com/syntrixbase/pager/internal/storage/types"
	"github.com/syntrixbase/pager/pkg/model"
)

// Model binds a collection to the store it is read from and to its
// search, filter and sort declarations.
type Model struct {
	Name    string
	Store   types.Collection
	Options Options
	// Base is ANDed into every request on this model.
	Base model.Predicate
	// Sortable lists the fields a request may sort by. Sorting is refused
	// when it is empty.
	Sortable []string
}

func (m *Model) validateSort(s *model.Sort) error {
	if s == nil {
		return nil
	}
	if !s.Order.IsValid() {
		return fmt.Errorf("%w: unknown order %q", model.ErrInvalidSort, s.Order)
	}
	if s.By == "" || !slices.Contains(m.Sortable, s.By) {
		return fmt.Errorf("%w: %q is not sortable on %s", model.ErrInvalidSort, s.By, m.Name)
	}
	return nil
}

// Registry exposes the paginate operation of every registered model under
// a single method name.
type Registry struct {
	engine *Engine
	method string

	mu     sync.RWMutex
	models map[string]*Model
}

// NewRegistry reads the method name from settings, which freezes them.
func NewRegistry(engine *Engine, settings *config.Settings) *Registry {
	return &Registry{
		engine: engine,
		method: settings.Get().MethodName,
		models: make(map[string]*Model),
	}
}

// NewRegistryFromConfig registers one model per configured collection.
func NewRegistryFromConfig(engine *Engine, settings *config.Settings, store types.DocumentStore, collections config.CollectionsConfig) (*Registry, error) {
	r := NewRegistry(engine, settings)
	for name, cfg := range collections {
		err := r.Register(&Model{
			Name:     name,
			Store:    store.Collection(name),
			Options:  OptionsFromConfig(cfg),
			Base:     basePredicate(cfg.BaseFilter),
			Sortable: cfg.Sortable,
		})
		if err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds m. Registering the same collection twice is an error.
func (r *Registry) Register(m *Model) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.models[m.Name]; ok {
		return fmt.Errorf("collection %s already registered", m.Name)
	}
	r.models[m.Name] = m
	return nil
}

// MethodName is the name the paginate operation is exposed under.
func (r *Registry) MethodName() string {
	return r.method
}

// Collections returns the registered collection names in order.
func (r *Registry) Collections() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Model returns the model registered for collection.
func (r *Registry) Model(collection string) (*Model, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.models[collection]
	return m, ok
}

// Call dispatches a named operation on a collection. Only the configured
// method name is known.
func (r *Registry) Call(ctx context.Context, collection, method string, req model.PageRequest) (*model.Connection, error) {
	if method != r.method {
		return nil, fmt.Errorf("%w: method %s", model.ErrNotFound, method)
	}
	return r.Paginate(ctx, collection, req)
}

// Paginate runs req against the named collection.
func (r *Registry) Paginate(ctx context.Context, collection string, req model.PageRequest) (*model.Connection, error) {
	m, ok := r.Model(collection)
	if !ok {
		return nil, fmt.Errorf("%w: collection %s", model.ErrNotFound, collection)
	}

	conn, err := r.paginate(ctx, m, req)
	recordRequest(collection, conn, err)
	return conn, err
}

func (r *Registry) paginate(ctx context.Context, m *Model, req model.PageRequest) (*model.Connection, error) {
	if err := m.validateSort(req.Sort); err != nil {
		return nil, err
	}
	return r.engine.Paginate(ctx, instrumentedStore{m.Store}, m.Base, req, m.Options)
}
