// Package layout provides the hierarchical region tree: deterministic,
// declarative carving of nested rectangular areas out of a page, with
// every region resolvable to absolute device pixels.
//
// A Tree is built once during document construction and is read-only
// afterwards. Resolution walks the parent chain composing each level's
// local transform with the root space's device transform, so it can be
// called arbitrarily often and concurrently once construction finishes.
package layout

import (
	carderrors "github.com/matzehuels/cardstock/pkg/errors"
	"github.com/matzehuels/cardstock/pkg/geom"
	"github.com/matzehuels/cardstock/pkg/space"
)

// Region is a named node in the layout tree. It owns a bounding box
// expressed in its declared coordinate space: the root's box lives in a
// registry space, a child's box lives in its parent's local unit square
// (y-up, (0,0) at the parent's bottom-left corner).
type Region struct {
	name     string
	box      geom.Box
	space    space.Name
	parent   *Region
	children []*Region
}

// Name returns the region's unique name.
func (r *Region) Name() string { return r.name }

// Box returns the region's box in its declared space.
func (r *Region) Box() geom.Box { return r.box }

// Space returns the name of the space the region's box is declared in.
func (r *Region) Space() space.Name { return r.space }

// Parent returns the parent region, or nil for the root.
func (r *Region) Parent() *Region { return r.parent }

// Children returns the child regions in insertion order.
// The returned slice must not be modified.
func (r *Region) Children() []*Region { return r.children }

// Option configures tree construction.
type Option func(*Tree)

// WithOverflow allows child regions to resolve outside their parent's
// bounds instead of failing with OUT_OF_BOUNDS. Overflow is opt-in
// because an escaping region is almost always a configuration error.
func WithOverflow() Option {
	return func(t *Tree) { t.allowOverflow = true }
}

// WithEpsilon sets the tolerance used for the containment check.
func WithEpsilon(eps float64) Option {
	return func(t *Tree) { t.eps = eps }
}

// Tree is the hierarchical container of named regions.
//
// Construction (NewTree, AddChild) is single-goroutine; a construction
// error leaves the tree in an undefined state and callers must discard
// it - no partially-valid tree is ever exposed by the higher-level
// document builder. After construction, all methods are read-only and
// safe for concurrent use.
type Tree struct {
	reg           *space.Registry
	root          *Region
	regions       map[string]*Region
	allowOverflow bool
	eps           float64
}

// NewTree creates a tree whose root region covers pageBox, declared in
// the named registry space. The registry must already have its
// resolution set: the root is resolved to device pixels immediately so
// that the root's local space can be registered.
func NewTree(rootName string, pageBox geom.Box, in space.Name, reg *space.Registry, opts ...Option) (*Tree, error) {
	if err := carderrors.ValidateName(rootName); err != nil {
		return nil, err
	}
	if !reg.Registered(in) {
		return nil, carderrors.New(carderrors.ErrCodeUnknownSpace, "space %q not registered", in)
	}

	t := &Tree{
		reg:     reg,
		regions: make(map[string]*Region),
		eps:     geom.Epsilon,
	}
	for _, opt := range opts {
		opt(t)
	}

	root := &Region{name: rootName, box: pageBox, space: in}
	t.root = root
	t.regions[rootName] = root

	if err := t.registerLocal(root); err != nil {
		return nil, err
	}
	return t, nil
}

// Root returns the root region.
func (t *Tree) Root() *Region { return t.root }

// Registry returns the space registry the tree resolves against.
func (t *Tree) Registry() *space.Registry { return t.reg }

// Region returns the named region, or false if it was never constructed.
func (t *Tree) Region(name string) (*Region, bool) {
	r, ok := t.regions[name]
	return r, ok
}

// Len returns the number of regions in the tree, including the root.
func (t *Tree) Len() int { return len(t.regions) }

// AddChild carves a child region out of a parent. localBox is expressed
// in the parent's local space: the unit square over the parent's extent,
// y-up. Returns UNKNOWN_REGION if the parent was never created,
// INVALID_CONFIG for duplicate or malformed names, and OUT_OF_BOUNDS if
// the child resolves outside the parent (unless the tree was built
// WithOverflow).
//
// On error the tree must be discarded; AddChild does not roll back the
// registry registrations of previously added children.
func (t *Tree) AddChild(parent, name string, localBox geom.Box) (*Region, error) {
	p, ok := t.regions[parent]
	if !ok {
		return nil, carderrors.New(carderrors.ErrCodeUnknownRegion,
			"no region named %q", parent)
	}
	if err := carderrors.ValidateName(name); err != nil {
		return nil, err
	}
	if _, exists := t.regions[name]; exists {
		return nil, carderrors.New(carderrors.ErrCodeInvalidConfig,
			"region %q already exists", name)
	}

	child := &Region{name: name, box: localBox, space: space.LocalName(parent), parent: p}

	childDev, err := t.resolve(child)
	if err != nil {
		return nil, err
	}
	if !t.allowOverflow {
		parentDev, err := t.resolve(p)
		if err != nil {
			return nil, err
		}
		if !parentDev.ContainsBox(childDev, t.eps) {
			return nil, carderrors.New(carderrors.ErrCodeOutOfBounds,
				"region %q resolves to (%.2f, %.2f, %.2f, %.2f), outside parent %q (%.2f, %.2f, %.2f, %.2f)",
				name, childDev.X0, childDev.Y0, childDev.X1, childDev.Y1,
				parent, parentDev.X0, parentDev.Y0, parentDev.X1, parentDev.Y1)
		}
	}

	p.children = append(p.children, child)
	t.regions[name] = child

	if err := t.registerLocal(child); err != nil {
		return nil, err
	}
	return child, nil
}

// Resolve returns the named region's box in absolute device pixels.
// Resolution is idempotent and side-effect-free.
func (t *Tree) Resolve(name string) (geom.Box, error) {
	r, ok := t.regions[name]
	if !ok {
		return geom.Box{}, carderrors.New(carderrors.ErrCodeUnknownRegion,
			"no region named %q", name)
	}
	return t.resolve(r)
}

// resolve walks the ownership chain from the region to the root.
func (t *Tree) resolve(r *Region) (geom.Box, error) {
	if r.parent == nil {
		return t.reg.Convert(r.box, r.space, space.Device)
	}

	parentDev, err := t.resolve(r.parent)
	if err != nil {
		return geom.Box{}, err
	}

	// The child's box is a y-up unit-square fraction of the parent:
	// local (0,0) is the parent's bottom-left, which in y-down device
	// coordinates is (X0, Y1).
	pw, ph := parentDev.Width(), parentDev.Height()
	return geom.FromExtents(
		parentDev.X0+r.box.X0*pw,
		parentDev.Y1-r.box.Y1*ph,
		parentDev.X0+r.box.X1*pw,
		parentDev.Y1-r.box.Y0*ph,
	), nil
}

// registerLocal publishes the region's local space (unit square over the
// region's resolved extent, y-up) into the registry, so assets can be
// authored in region-local coordinates.
func (t *Tree) registerLocal(r *Region) error {
	dev, err := t.resolve(r)
	if err != nil {
		return err
	}
	toDevice := geom.Affine{
		A: dev.Width(), C: dev.X0,
		E: -dev.Height(), F: dev.Y1,
	}
	return t.reg.Register(space.LocalName(r.name), toDevice)
}

// Walk visits every region in pre-order, children in insertion order.
// The callback receives the region, its depth (root = 0), and its
// 0-based index among its siblings (root = 0). This is the traversal
// the tree dump and the renderer share, keeping output deterministic.
func (t *Tree) Walk(fn func(r *Region, depth, index int)) {
	var visit func(r *Region, depth, index int)
	visit = func(r *Region, depth, index int) {
		fn(r, depth, index)
		for i, c := range r.children {
			visit(c, depth+1, i)
		}
	}
	visit(t.root, 0, 0)
}
