package render

import (
	"math"

	"github.com/dhconnelly/rtreego"
)

// circleIndex is a 2-D R-tree over settled circle extents.
type circleIndex struct {
	tree *rtreego.Rtree
}

func newCircleIndex() *circleIndex {
	return &circleIndex{tree: rtreego.NewTree(2, 25, 50)}
}

// Bounds implements rtreego.Spatial.
func (c *Circle) Bounds() rtreego.Rect {
	return c.rect
}

func circleRect(x, y, r float64) rtreego.Rect {
	rect, _ := rtreego.NewRect(rtreego.Point{x - r, y - r}, []float64{2 * r, 2 * r})
	return rect
}

func (ix *circleIndex) insert(c *Circle) {
	ix.tree.Insert(c)
}

func (ix *circleIndex) remove(c *Circle) {
	ix.tree.Delete(c)
}

func (ix *circleIndex) size() int {
	return ix.tree.Size()
}

// at returns the topmost circle whose disc, grown by slack, covers (x, y).
func (ix *circleIndex) at(x, y, slack float64) *Circle {
	if slack < 0.5 {
		slack = 0.5
	}
	var best *Circle
	for _, s := range ix.tree.SearchIntersect(rtreego.Point{x, y}.ToRect(slack)) {
		c := s.(*Circle)
		if math.Hypot(c.X-x, c.Y-y) > c.Target+slack {
			continue
		}
		if best == nil || c.seq > best.seq {
			best = c
		}
	}
	return best
}
