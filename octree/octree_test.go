package octree

import (
	"testing"

	"go.viam.com/test"

	"github.com/vdedun/cpom/bounds"
	"github.com/vdedun/cpom/vector"
)

// pointIntersect treats a point as intersecting a cube iff it lies inside
// the cube, mirroring the original_source test harness's point-in-cube
// predicate.
func pointIntersect(cube bounds.AABCube, point vector.Vector3) bool {
	distances := cube.Center.Sub(point).Abs()
	return distances.X <= cube.HalfWidth && distances.Y <= cube.HalfWidth && distances.Z <= cube.HalfWidth
}

func TestConstruct(t *testing.T) {
	root := New[int](bounds.AABCube{Center: vector.Splat(0), HalfWidth: 0.5})
	test.That(t, root, test.ShouldNotBeNil)
	test.That(t, root.IsLeaf(), test.ShouldBeTrue)
}

func TestInsertSinglePointStaysLeaf(t *testing.T) {
	root := New[vector.Vector3](bounds.AABCube{Center: vector.Splat(0), HalfWidth: 0.5})
	point := vector.Splat(0)

	root.Insert(point, pointIntersect, 10, 3.0)

	test.That(t, root.IsLeaf(), test.ShouldBeTrue)

	visitedChild := false
	root.VisitChildren(func(*Node[vector.Vector3]) { visitedChild = true })
	test.That(t, visitedChild, test.ShouldBeFalse)

	visitedPoint := false
	root.VisitElements(func(p vector.Vector3) {
		if p.Equal(point) {
			visitedPoint = true
		}
	})
	test.That(t, visitedPoint, test.ShouldBeTrue)
}

func TestInsertRepeatedWithZeroMaxDepthStaysLeaf(t *testing.T) {
	root := New[vector.Vector3](bounds.AABCube{Center: vector.Splat(0), HalfWidth: 0.5})
	point := vector.Splat(0)

	for i := 0; i < 10; i++ {
		root.Insert(point, pointIntersect, 0, 0.0)
	}

	test.That(t, root.IsLeaf(), test.ShouldBeTrue)
}

func TestInsertRepeatedSubdivides(t *testing.T) {
	root := New[vector.Vector3](bounds.AABCube{Center: vector.Splat(0), HalfWidth: 0.5})
	point := vector.Splat(0)

	for i := 0; i < 20; i++ {
		root.Insert(point, pointIntersect, 100, 3.0)
	}

	test.That(t, root.IsLeaf(), test.ShouldBeFalse)

	visitedPoint := false
	maxDepth := 0
	maxFill := 0

	var visit func(n *Node[vector.Vector3], depth int)
	visit = func(n *Node[vector.Vector3], depth int) {
		if n.IsLeaf() {
			fill := 0
			n.VisitElements(func(p vector.Vector3) {
				fill++
				if p.Equal(point) {
					visitedPoint = true
				}
			})
			if depth > maxDepth {
				maxDepth = depth
			}
			if fill > maxFill {
				maxFill = fill
			}
			return
		}
		n.VisitChildren(func(child *Node[vector.Vector3]) {
			visit(child, depth+1)
		})
	}
	visit(root, 0)

	test.That(t, visitedPoint, test.ShouldBeTrue)
	test.That(t, maxDepth, test.ShouldEqual, 6)
	test.That(t, maxFill, test.ShouldEqual, 20)
}

func TestInsertOneCornerPerChild(t *testing.T) {
	root := New[vector.Vector3](bounds.AABCube{Center: vector.Splat(0), HalfWidth: 2.0})

	corners := []vector.Vector3{
		vector.New(-1, -1, -1),
		vector.New(+1, -1, -1),
		vector.New(-1, +1, -1),
		vector.New(+1, +1, -1),
		vector.New(-1, -1, +1),
		vector.New(+1, -1, +1),
		vector.New(-1, +1, +1),
		vector.New(+1, +1, +1),
	}
	for _, corner := range corners {
		root.Insert(corner, pointIntersect, 10, 1.0)
	}

	test.That(t, root.IsLeaf(), test.ShouldBeFalse)

	visitedChildren := 0
	visitedLeaves := 0
	root.VisitChildren(func(child *Node[vector.Vector3]) {
		visitedChildren++
		if child.IsLeaf() {
			visitedLeaves++
		}
	})

	test.That(t, visitedChildren, test.ShouldEqual, 8)
	test.That(t, visitedLeaves, test.ShouldEqual, visitedChildren)
}

func TestChildBoundsGeometry(t *testing.T) {
	root := New[vector.Vector3](bounds.AABCube{Center: vector.Splat(0), HalfWidth: 2.0})
	test.That(t, root.childBounds(0), test.ShouldResemble, bounds.AABCube{Center: vector.New(-1, -1, -1), HalfWidth: 1})
	test.That(t, root.childBounds(7), test.ShouldResemble, bounds.AABCube{Center: vector.New(1, 1, 1), HalfWidth: 1})
	test.That(t, root.childBounds(1), test.ShouldResemble, bounds.AABCube{Center: vector.New(1, -1, -1), HalfWidth: 1})
}

func TestLooseOctreeCoverage(t *testing.T) {
	// An element whose AABBox straddles the split plane between two
	// children must be visible from both leaves after insertion.
	root := New[bounds.AABBox](bounds.AABCube{Center: vector.Splat(0), HalfWidth: 2.0})
	straddling := bounds.AABBox{Center: vector.New(0, 0, 0), HalfWidth: vector.New(0.5, 0.5, 0.5)}

	boxIntersect := func(cube bounds.AABCube, box bounds.AABBox) bool {
		return bounds.Intersect(cube, box)
	}

	// Force subdivision with unrelated filler elements away from the origin
	// so the straddling element is inserted after the tree has split.
	filler := bounds.AABBox{Center: vector.New(1.9, 1.9, 1.9), HalfWidth: vector.New(0.01, 0.01, 0.01)}
	for i := 0; i < 5; i++ {
		root.Insert(filler, boxIntersect, 10, 1.0)
	}
	root.Insert(straddling, boxIntersect, 10, 1.0)

	test.That(t, root.IsLeaf(), test.ShouldBeFalse)

	leavesSeeingElement := 0
	var visit func(n *Node[bounds.AABBox])
	visit = func(n *Node[bounds.AABBox]) {
		if n.IsLeaf() {
			if bounds.Intersect(n.Bounds(), straddling) {
				found := false
				n.VisitElements(func(box bounds.AABBox) {
					if box == straddling {
						found = true
					}
				})
				test.That(t, found, test.ShouldBeTrue)
				leavesSeeingElement++
			}
			return
		}
		n.VisitChildren(visit)
	}
	visit(root)

	test.That(t, leavesSeeingElement, test.ShouldBeGreaterThanOrEqualTo, 1)
}
