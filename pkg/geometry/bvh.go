package geometry

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/pathforge/go-pathtracer/pkg/core"
	"github.com/pathforge/go-pathtracer/pkg/material"
)

// ErrEmptyBVH is returned when a BVH is requested over no objects
var ErrEmptyBVH = errors.New("bvh: no objects")

// ErrNoBoundingBox is returned when an object offered to the BVH has no bounding box
var ErrNoBoundingBox = errors.New("bvh: object has no bounding box")

// BVHNode is a node of a Bounding Volume Hierarchy over a fixed time interval.
// Children are either further nodes or the objects themselves; a span of one
// object stores that object as both children.
type BVHNode struct {
	Left   Hittable
	Right  Hittable
	Box    core.AABB
	single bool // Left and Right are the same object
}

// bvhEntry pairs an object with its precomputed bounding box
type bvhEntry struct {
	object Hittable
	box    core.AABB
}

// NewBVH builds a BVH over objects for the interval [time0, time1].
// Split axes are drawn from random. The objects slice is not modified.
func NewBVH(objects []Hittable, time0, time1 float64, random *rand.Rand) (*BVHNode, error) {
	if len(objects) == 0 {
		return nil, ErrEmptyBVH
	}

	entries := make([]bvhEntry, len(objects))
	for i, object := range objects {
		box, ok := object.BoundingBox(time0, time1)
		if !ok {
			return nil, fmt.Errorf("object %d (%T): %w", i, object, ErrNoBoundingBox)
		}
		entries[i] = bvhEntry{object: object, box: box}
	}

	return buildBVH(entries, random), nil
}

// buildBVH recursively splits the span at its midpoint after ordering by box minimum
func buildBVH(entries []bvhEntry, random *rand.Rand) *BVHNode {
	axis := random.Intn(3)
	less := func(a, b bvhEntry) bool {
		return a.box.Min.Component(axis) < b.box.Min.Component(axis)
	}

	node := &BVHNode{}
	switch len(entries) {
	case 1:
		node.Left = entries[0].object
		node.Right = entries[0].object
		node.Box = entries[0].box
		node.single = true
		return node
	case 2:
		if less(entries[0], entries[1]) {
			node.Left, node.Right = entries[0].object, entries[1].object
		} else {
			node.Left, node.Right = entries[1].object, entries[0].object
		}
		node.Box = entries[0].box.Union(entries[1].box)
		return node
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return less(entries[i], entries[j])
	})

	mid := len(entries) / 2
	left := buildBVH(entries[:mid], random)
	right := buildBVH(entries[mid:], random)

	node.Left = left
	node.Right = right
	node.Box = left.Box.Union(right.Box)
	return node
}

// Hit prunes on the node's box, then searches the right child only for hits closer than the left's
func (n *BVHNode) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	if !n.Box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	leftHit, hitLeft := n.Left.Hit(ray, tMin, tMax, sampler)
	if hitLeft {
		tMax = leftHit.T
	}

	if n.single {
		return leftHit, hitLeft
	}

	if rightHit, hitRight := n.Right.Hit(ray, tMin, tMax, sampler); hitRight {
		return rightHit, true
	}
	return leftHit, hitLeft
}

// Single reports whether the node holds one object stored on both sides.
// Objects are never compared: user hittables need not be comparable.
func (n *BVHNode) Single() bool {
	return n.single
}

// BoundingBox returns the stored box
func (n *BVHNode) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return n.Box, true
}

// BVHStats summarises the shape of a BVH
type BVHStats struct {
	TotalNodes int
	LeafNodes  int
	MaxDepth   int
	AvgDepth   float64
}

// Stats walks the tree and collects node counts and depths.
// Objects stored directly as children count as leaves.
func (n *BVHNode) Stats() BVHStats {
	stats := BVHStats{}
	n.collectStats(0, &stats)

	if stats.LeafNodes > 0 {
		stats.AvgDepth = stats.AvgDepth / float64(stats.LeafNodes)
	}
	return stats
}

func (n *BVHNode) collectStats(depth int, stats *BVHStats) {
	stats.TotalNodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	children := []Hittable{n.Left}
	if !n.single {
		children = append(children, n.Right)
	}

	for _, child := range children {
		if node, ok := child.(*BVHNode); ok {
			node.collectStats(depth+1, stats)
			continue
		}
		stats.LeafNodes++
		stats.AvgDepth += float64(depth + 1)
		if depth+1 > stats.MaxDepth {
			stats.MaxDepth = depth + 1
		}
	}
}
