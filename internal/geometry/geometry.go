// pattern: Functional Core

package geometry

import "fmt"

// GridUnits is the side length of the normalized layout grid. Slot sizes are
// declared in these units, so a slot of width 5 covers half the terminal.
const GridUnits = 10

// Slot is the configured description of one region: an id plus its declared
// size in grid units. Position is never configured; it falls out of the tree.
type Slot struct {
	ID     int
	Width  int
	Height int
}

// Region is a placed rectangle on the unit grid.
type Region struct {
	ID     int
	X      int
	Y      int
	Width  int
	Height int
}

// Node is one node of the region tree. Right sits to the right of the node,
// aligned on the top edge. Below sits underneath, aligned on the left edge.
// The root occupies the top-left corner of the grid.
type Node struct {
	Region Region
	Right  *Node
	Below  *Node
}

// Error reports a malformed slot encoding or an inconsistent tiling.
type Error struct {
	Reason string
}

func (e *Error) Error() string {
	return "invalid layout geometry: " + e.Reason
}

func errorf(format string, args ...any) *Error {
	return &Error{Reason: fmt.Sprintf(format, args...)}
}

// BuildTree decodes a pre-order slot list into a region tree. The encoding
// visits each node, then its full right subtree, then its full below subtree;
// absent children are explicit nil entries. The list must be consumed exactly.
func BuildTree(slots []*Slot) (*Node, error) {
	if len(slots) == 0 {
		return nil, errorf("empty slot list")
	}

	seen := make(map[int]bool)
	pos := 0

	var build func() (*Node, error)
	build = func() (*Node, error) {
		if pos >= len(slots) {
			return nil, errorf("truncated slot list: missing element (probably an absent-marker)")
		}
		s := slots[pos]
		pos++
		if s == nil {
			return nil, nil
		}
		if s.Width <= 0 || s.Width > GridUnits || s.Height <= 0 || s.Height > GridUnits {
			return nil, errorf("slot %d: width/height must be in range (0, %d], got %dx%d", s.ID, GridUnits, s.Width, s.Height)
		}
		if seen[s.ID] {
			return nil, errorf("duplicate slot id %d", s.ID)
		}
		seen[s.ID] = true

		n := &Node{Region: Region{ID: s.ID, Width: s.Width, Height: s.Height}}
		var err error
		if n.Right, err = build(); err != nil {
			return nil, err
		}
		if n.Below, err = build(); err != nil {
			return nil, err
		}
		return n, nil
	}

	root, err := build()
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, errorf("root slot is absent")
	}
	if pos != len(slots) {
		return nil, errorf("%d trailing elements after the encoded tree", len(slots)-pos)
	}
	return root, nil
}

// Resolve places every region of the tree on the unit grid and validates that
// the regions exactly tile the full grid. The returned regions carry derived
// x/y positions; the input tree is not mutated.
//
// Placement is a depth-first walk: a node at (x, y) with size (w, h) puts its
// right child at (x+w, y) and its below child at (x, y+h). A slot whose
// declared size would extend past the grid boundary fails immediately rather
// than being clamped.
func Resolve(root *Node) ([]Region, error) {
	if root == nil {
		return nil, errorf("nil region tree")
	}

	var regions []Region
	var place func(n *Node, x, y int) error
	place = func(n *Node, x, y int) error {
		if n == nil {
			return nil
		}
		r := n.Region
		r.X, r.Y = x, y
		if x+r.Width > GridUnits {
			return errorf("slot %d extends past the right edge (x=%d width=%d)", r.ID, x, r.Width)
		}
		if y+r.Height > GridUnits {
			return errorf("slot %d extends past the bottom edge (y=%d height=%d)", r.ID, y, r.Height)
		}
		regions = append(regions, r)
		if err := place(n.Right, x+r.Width, y); err != nil {
			return err
		}
		return place(n.Below, x, y+r.Height)
	}
	if err := place(root, 0, 0); err != nil {
		return nil, err
	}

	// All regions sit inside the grid, so no pairwise overlap plus a total
	// area equal to the grid's area means the union is exactly the grid.
	area := 0
	for i, a := range regions {
		area += a.Width * a.Height
		for _, b := range regions[i+1:] {
			if overlaps(a, b) {
				return nil, errorf("slots %d and %d overlap", a.ID, b.ID)
			}
		}
	}
	if area != GridUnits*GridUnits {
		return nil, errorf("slots cover %d of %d grid units, tiling has gaps", area, GridUnits*GridUnits)
	}

	return regions, nil
}

func overlaps(a, b Region) bool {
	return a.X < b.X+b.Width && b.X < a.X+a.Width &&
		a.Y < b.Y+b.Height && b.Y < a.Y+a.Height
}

// CellRect is a region mapped onto terminal character cells.
type CellRect struct {
	ID     int
	X      int
	Y      int
	Width  int
	Height int
}

// Scale maps unit-grid regions onto a cell canvas of the given size. Every
// unit coordinate maps to one cell coordinate, so regions sharing a unit edge
// share a cell edge; ceiling rounding keeps the full canvas covered.
func Scale(regions []Region, width, height int) []CellRect {
	cellX := func(u int) int { return (u*width + GridUnits - 1) / GridUnits }
	cellY := func(u int) int { return (u*height + GridUnits - 1) / GridUnits }

	rects := make([]CellRect, len(regions))
	for i, r := range regions {
		x, y := cellX(r.X), cellY(r.Y)
		rects[i] = CellRect{
			ID:     r.ID,
			X:      x,
			Y:      y,
			Width:  cellX(r.X+r.Width) - x,
			Height: cellY(r.Y+r.Height) - y,
		}
	}
	return rects
}
