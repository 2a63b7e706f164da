// Package octree implements a generic loose octree: a recursive spatial
// container whose nodes subdivide on fill ratio rather than a fixed
// per-node capacity, and whose elements may appear in every overlapping
// leaf rather than exactly one (the "loose" part).
package octree

import "github.com/vdedun/cpom/bounds"

// Intersect tests whether an element of type T overlaps a node's bounding
// cube. Supplied by the caller at insertion time.
type Intersect[T any] func(cube bounds.AABCube, element T) bool

// Node is a recursive octree node holding elements of type T. A node is
// either a leaf (holding elements, no children) or an internal node
// (holding children, no elements). Child index encodes sign along each
// axis: bit 0 = x+, bit 1 = y+, bit 2 = z+.
type Node[T any] struct {
	bounds   bounds.AABCube
	children [8]*Node[T]
	elements []T
	isLeaf   bool
}

// New creates an empty leaf node with the supplied bounding cube.
func New[T any](cube bounds.AABCube) *Node[T] {
	return &Node[T]{bounds: cube, isLeaf: true}
}

// Bounds returns the node's bounding cube.
func (n *Node[T]) Bounds() bounds.AABCube {
	return n.bounds
}

// IsLeaf reports whether the node is a leaf.
func (n *Node[T]) IsLeaf() bool {
	return n.isLeaf
}

// VisitChildren invokes f on each materialized child, in fixed
// child-index order (0..7).
func (n *Node[T]) VisitChildren(f func(*Node[T])) {
	for _, child := range n.children {
		if child != nil {
			f(child)
		}
	}
}

// VisitElements invokes f on each stored element, in insertion order.
func (n *Node[T]) VisitElements(f func(T)) {
	for _, element := range n.elements {
		f(element)
	}
}

// Insert drives recursive descent from the root at depth 0. A leaf
// subdivides once its fill ratio (elements / (1+depth)) exceeds maxFill,
// provided depth has not reached maxDepth; otherwise the element is
// appended to the leaf. An internal node re-inserts the element into every
// child slot whose bounding cube satisfies intersect, materializing
// absent children on demand — the "loose" behavior that lets one element
// live in multiple leaves.
func (n *Node[T]) Insert(element T, intersect Intersect[T], maxDepth int, maxFill float32) {
	n.walkInsert(element, intersect, 0, maxDepth, maxFill)
}

func (n *Node[T]) walkInsert(element T, intersect Intersect[T], depth, maxDepth int, maxFill float32) {
	if n.isLeaf {
		fillRatio := float32(len(n.elements)) / float32(1+depth)
		shouldSubdivide := fillRatio > maxFill && depth < maxDepth
		if !shouldSubdivide {
			n.elements = append(n.elements, element)
			return
		}

		n.isLeaf = false
		existing := n.elements
		n.elements = nil
		for _, e := range existing {
			n.walkInsert(e, intersect, depth, maxDepth, maxFill)
		}
		n.walkInsert(element, intersect, depth, maxDepth, maxFill)
		return
	}

	for childIndex := 0; childIndex < 8; childIndex++ {
		childBounds := n.childBounds(childIndex)
		if !intersect(childBounds, element) {
			continue
		}
		child := n.children[childIndex]
		if child == nil {
			child = New[T](childBounds)
			n.children[childIndex] = child
		}
		child.walkInsert(element, intersect, depth+1, maxDepth, maxFill)
	}
}

// childBounds computes the bounding cube of child childIndex, whether or
// not it has been materialized: half the parent's half-width, center
// offset by +-half-width along each axis according to the index's bits.
func (n *Node[T]) childBounds(childIndex int) bounds.AABCube {
	if child := n.children[childIndex]; child != nil {
		return child.bounds
	}

	halfWidth := n.bounds.HalfWidth * 0.5
	center := n.bounds.Center
	if childIndex&1 != 0 {
		center.X += halfWidth
	} else {
		center.X -= halfWidth
	}
	if childIndex&2 != 0 {
		center.Y += halfWidth
	} else {
		center.Y -= halfWidth
	}
	if childIndex&4 != 0 {
		center.Z += halfWidth
	} else {
		center.Z -= halfWidth
	}
	return bounds.AABCube{Center: center, HalfWidth: halfWidth}
}
