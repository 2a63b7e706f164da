// Package query implements the closest-point-on-mesh query engine: it
// ingests a mesh.Mesh collaborator once at construction, decides whether to
// build a loose-octree index over the mesh's faces, and answers
// (point, maxDist) queries with a best-first search over that index, or a
// linear scan when the mesh is too small to bother indexing.
package query

import (
	"container/heap"
	"math"

	"github.com/pkg/errors"

	"github.com/vdedun/cpom/bounds"
	"github.com/vdedun/cpom/mesh"
	"github.com/vdedun/cpom/octree"
	"github.com/vdedun/cpom/triangle"
	"github.com/vdedun/cpom/vector"
)

// ErrEmptyMesh is returned by New when the collaborator's vertex array is
// empty.
var ErrEmptyMesh = errors.New("cpom/query: mesh has no vertices")

// Construction parameters, fixed and not runtime-tunable per the query
// engine's design.
const (
	// MinPartitionFaces is the face-count threshold at or above which an
	// octree index is built; below it, queries fall back to a linear scan.
	MinPartitionFaces = 32
	// MaxDepth bounds how deep the octree may grow.
	MaxDepth = 10
	// MaxFill is the fill-ratio threshold that triggers subdivision.
	MaxFill = 3.0
)

// faceElement is what the octree stores: a non-owning reference to a face
// (by index into Engine.faces) plus that face's precomputed AABBox.
type faceElement struct {
	faceIndex int
	box       bounds.AABBox
}

// Engine answers closest-point queries against a mesh ingested at
// construction. It owns copies of the mesh's vertex and face arrays and,
// for meshes with enough faces, a loose-octree index over their bounds.
// An Engine is immutable after New returns and is safe for concurrent
// queries.
type Engine struct {
	vertices []vector.Vector3
	faces    []mesh.Face
	index    *octree.Node[faceElement]
}

// New ingests m once, copying its vertices and faces, and builds a
// spatial index when the face count reaches MinPartitionFaces. m is not
// retained past this call.
func New(m mesh.Mesh) (*Engine, error) {
	vertices := m.Vertices()
	faces := m.Faces()

	if len(vertices) == 0 {
		return nil, ErrEmptyMesh
	}

	e := &Engine{
		vertices: append([]vector.Vector3(nil), vertices...),
		faces:    append([]mesh.Face(nil), faces...),
	}

	if len(e.faces) >= MinPartitionFaces {
		e.index = partitionSpace(e.vertices, e.faces)
	}

	return e, nil
}

// partitionSpace builds a loose-octree index rooted on the mesh's overall
// extent, with one element per face tagged by that face's own AABBox.
func partitionSpace(vertices []vector.Vector3, faces []mesh.Face) *octree.Node[faceElement] {
	meshExtent := bounds.ExtentOfPoints(vertices)
	root := octree.New[faceElement](bounds.ComputeCubicBounds(meshExtent))

	for faceIndex, face := range faces {
		faceExtent := bounds.EmptyExtent()
		for _, vertexID := range face {
			faceExtent = faceExtent.Grow(vertices[vertexID])
		}
		element := faceElement{faceIndex: faceIndex, box: bounds.ComputeBounds(faceExtent)}
		root.Insert(element, intersectElement, MaxDepth, MaxFill)
	}

	return root
}

// intersectElement is the octree's Intersect predicate: a face element
// overlaps a node's cube iff the face's AABBox overlaps it.
func intersectElement(cube bounds.AABCube, element faceElement) bool {
	return bounds.Intersect(cube, element.box)
}

// Closest returns the coordinate on the mesh surface closest to
// queryPoint, among surface points within maxDist, or a NaN point if none
// qualify. maxDist may be +Inf.
//
// DegenerateTriangle and UnsupportedFace faults from the distance kernel
// propagate verbatim; the engine does not retry or skip a bad face.
func (e *Engine) Closest(queryPoint vector.Vector3, maxDist float32) (vector.Vector3, error) {
	sqrMaxDist := maxDist * maxDist
	if e.index != nil {
		return e.processIndexed(queryPoint, sqrMaxDist)
	}
	return e.processLinear(queryPoint, sqrMaxDist)
}

// processLinear folds over every face, tracking the best (point, sqrDist)
// seen, accepting a candidate only when it is strictly closer than both
// sqrMaxDist and the current best.
func (e *Engine) processLinear(queryPoint vector.Vector3, sqrMaxDist float32) (vector.Vector3, error) {
	bestPoint := vector.NaN()
	bestSqrDist := float32(math.Inf(1))

	for _, face := range e.faces {
		point, sqrDist, err := triangle.ClosestPointOnFace(face, e.vertices, queryPoint)
		if err != nil {
			return vector.Vector3{}, err
		}
		if sqrDist < sqrMaxDist && sqrDist < bestSqrDist {
			bestPoint = point
			bestSqrDist = sqrDist
		}
	}

	return bestPoint, nil
}

// heapEntry is a (node, squared distance to queryPoint) pair, ordered by
// that distance in the best-first search's priority queue.
type heapEntry struct {
	node    *octree.Node[faceElement]
	sqrDist float32
}

// nodeHeap is a container/heap min-heap of heapEntry keyed by sqrDist.
type nodeHeap []heapEntry

func (h nodeHeap) Len() int            { return len(h) }
func (h nodeHeap) Less(i, j int) bool  { return h[i].sqrDist < h[j].sqrDist }
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x interface{}) { *h = append(*h, x.(heapEntry)) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	entry := old[n-1]
	*h = old[:n-1]
	return entry
}

// processIndexed runs a best-first search over the octree index: the
// priority queue is ordered by squared distance from queryPoint to each
// node's bounding cube, a lower bound on the distance to anything the node
// contains, so the search can stop as soon as the queue's minimum reaches
// or exceeds the current best.
func (e *Engine) processIndexed(queryPoint vector.Vector3, sqrMaxDist float32) (vector.Vector3, error) {
	bestPoint := vector.NaN()
	bestSqrDist := float32(math.Inf(1))

	h := &nodeHeap{}
	heap.Init(h)
	heap.Push(h, heapEntry{node: e.index, sqrDist: bounds.SqrDistanceToCube(queryPoint, e.index.Bounds())})

	for h.Len() > 0 && (*h)[0].sqrDist < bestSqrDist {
		entry := heap.Pop(h).(heapEntry)
		node := entry.node

		if node.IsLeaf() {
			var evalErr error
			node.VisitElements(func(element faceElement) {
				if evalErr != nil {
					return
				}
				face := e.faces[element.faceIndex]
				point, sqrDist, err := triangle.ClosestPointOnFace(face, e.vertices, queryPoint)
				if err != nil {
					evalErr = err
					return
				}
				if sqrDist < sqrMaxDist && sqrDist < bestSqrDist {
					bestPoint = point
					bestSqrDist = sqrDist
				}
			})
			if evalErr != nil {
				return vector.Vector3{}, evalErr
			}
			continue
		}

		node.VisitChildren(func(child *octree.Node[faceElement]) {
			sqrDist := bounds.SqrDistanceToCube(queryPoint, child.Bounds())
			if sqrDist < bestSqrDist {
				heap.Push(h, heapEntry{node: child, sqrDist: sqrDist})
			}
		})
	}

	return bestPoint, nil
}
