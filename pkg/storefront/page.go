package storefront

import (
	"sync"

	"github.com/matst80/slask-storefront/pkg/store"
	"github.com/matst80/slask-storefront/pkg/types"
)

type Option func(p *Page)

func WithLayout(layout types.Layout) Option {
	return func(p *Page) {
		p.layout = layout
	}
}

// WithSort sets the initial sort key; invalid keys keep the default.
func WithSort(key types.SortKey) Option {
	return func(p *Page) {
		p.Store.SetSort(key)
	}
}

// Page is one mounted category page: a filter store bound to a shelf. Each
// store change re-renders the view before the intent returns.
type Page struct {
	mu          sync.RWMutex
	shelf       *Shelf
	Store       *store.FilterStore
	layout      types.Layout
	view        *View
	nextId      uint64
	listeners   map[uint64]func(*View)
	unsubscribe func()
}

func NewPage(shelf *Shelf, opts ...Option) *Page {
	p := &Page{
		shelf:     shelf,
		Store:     store.NewFilterStore(shelf.Evaluator.Handler, shelf.Category),
		layout:    types.GridLayout,
		listeners: map[uint64]func(*View){},
	}
	for _, opt := range opts {
		opt(p)
	}
	p.render(true)
	p.unsubscribe = p.Store.Subscribe(p.onChange)
	return p
}

func (p *Page) onChange(types.FilterState) {
	p.render(false)
}

// render draws the latest store state. Notifications of concurrent intents
// may arrive out of order, so a view is never replaced by an older one.
func (p *Page) render(force bool) {
	p.mu.Lock()
	state, version := p.Store.Current()
	if !force && p.view != nil && version <= p.view.Version {
		p.mu.Unlock()
		return
	}
	view := p.shelf.Render(state, p.layout)
	view.Version = version
	p.view = view
	listeners := make([]func(*View), 0, len(p.listeners))
	for _, l := range p.listeners {
		listeners = append(listeners, l)
	}
	p.mu.Unlock()
	for _, l := range listeners {
		l(view)
	}
}

// View returns the current view. Views are replaced, never modified.
func (p *Page) View() *View {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.view
}

func (p *Page) Category() types.Category {
	return p.shelf.Category
}

func (p *Page) Dispatch(intent types.Intent) error {
	return p.Store.Dispatch(intent)
}

// SetLayout switches between grid and list without touching filter state.
func (p *Page) SetLayout(layout types.Layout) {
	p.mu.Lock()
	if p.layout == layout {
		p.mu.Unlock()
		return
	}
	p.layout = layout
	p.mu.Unlock()
	p.render(true)
}

func (p *Page) Subscribe(fn func(*View)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextId++
	id := p.nextId
	p.listeners[id] = fn
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.listeners, id)
	}
}

// Close detaches the page from its store.
func (p *Page) Close() {
	if p.unsubscribe != nil {
		p.unsubscribe()
	}
}
