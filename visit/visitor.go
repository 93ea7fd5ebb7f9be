package visit

import (
	"github.com/pgsqlast/pgsqlast/ast"
	"github.com/pgsqlast/pgsqlast/pgerror"
)

// HandlerFunc produces a T for one tagged node. recurse lets a handler
// visit a child and fold its result in; most handlers either ignore it
// (leaf kinds) or call it once per child returned by Children(node).
type HandlerFunc[T any] func(node ast.Tagged, recurse func(ast.Node) T) T

// Visitor is a kind-tagged dispatch table: one HandlerFunc per ast.Kind,
// guarded against revisiting the same node twice in one traversal.
//
// A traversal starts at the first call to Visit and ends when that call
// returns; nested Visit calls made through the recurse callback reuse the
// same guard table. This mirrors the teacher's visitor.Visitor, whose Walk
// recurses directly, except dispatch here is by Kind() rather than a type
// switch, so a caller outside the ast package can register handlers for
// kinds it cares about without reflection.
type Visitor[T any] struct {
	handlers map[ast.Kind]HandlerFunc[T]
	visited  map[ast.Node]bool
	depth    int
}

// New creates an empty Visitor. Handle must be called for every Kind the
// visitor will actually dispatch to before Visit is called on a tree
// containing it, or Visit panics via pgerror.Unhandled.
func New[T any]() *Visitor[T] {
	return &Visitor[T]{handlers: make(map[ast.Kind]HandlerFunc[T])}
}

// Handle registers fn as the handler for kind, returning v for chaining.
func (v *Visitor[T]) Handle(kind ast.Kind, fn HandlerFunc[T]) *Visitor[T] {
	v.handlers[kind] = fn
	return v
}

// Visit dispatches node to its registered handler. The first (root) call
// allocates the cycle-guard table; it is torn down when that call returns,
// so a Visitor can be reused across independent trees.
func (v *Visitor[T]) Visit(node ast.Node) T {
	var zero T
	if node == nil {
		return zero
	}
	if v.depth == 0 {
		v.visited = make(map[ast.Node]bool)
		defer func() { v.visited = nil }()
	}
	v.depth++
	defer func() { v.depth-- }()

	if v.visited[node] {
		return zero
	}
	v.visited[node] = true

	tagged, ok := node.(ast.Tagged)
	if !ok {
		return zero
	}
	h, ok := v.handlers[tagged.Kind()]
	if !ok {
		pgerror.Unhandled(tagged.Kind())
	}
	return h(tagged, v.Visit)
}

// VisitChildren applies v to every direct child of node and discards the
// results, for handlers that only need the side effects of recursing
// (e.g. collecting into a closure-captured slice).
func (v *Visitor[T]) VisitChildren(node ast.Node) {
	for _, child := range Children(node) {
		v.Visit(child)
	}
}
