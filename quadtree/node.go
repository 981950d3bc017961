package quadtree

import "github.com/segcollide/sim/geom"

// node is one square cell of the arena-backed tree (spec §9: "tree as
// pointer graph" is re-architected as an arena / indexed pool so children
// are int indices rather than pointers, making parallel read traversals
// trivially safe and concentrating allocation in one slice).
type node struct {
	box      geom.AABB
	depth    int
	leaf     bool
	lines    []int // indices into the Index's borrowed line slice
	children [4]int // arena indices; -1 means "no such child"
}

const noChild = -1

func newLeaf(box geom.AABB, depth int) node {
	return node{
		box:      box,
		depth:    depth,
		leaf:     true,
		children: [4]int{noChild, noChild, noChild, noChild},
	}
}

// quadrants returns the four equal sub-squares of box in SW, SE, NW, NE
// order, matching the teacher's top-left/top-right/bottom-left/bottom-right
// enumeration order (gmlewis/quadtree.Build's subBounds).
func quadrants(box geom.AABB) [4]geom.AABB {
	min := box.Min()
	max := box.Max()
	midX := (min.X() + max.X()) / 2
	midY := (min.Y() + max.Y()) / 2

	return [4]geom.AABB{
		geom.NewAABB(min.X(), min.Y(), midX, midY), // SW
		geom.NewAABB(midX, min.Y(), max.X(), midY), // SE
		geom.NewAABB(min.X(), midY, midX, max.Y()), // NW
		geom.NewAABB(midX, midY, max.X(), max.Y()), // NE
	}
}
