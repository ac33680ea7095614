package component

import "math"

// Cell is an integer grid coordinate.
type Cell struct {
	X int
	Y int
}

// CellAt returns the cell containing the continuous point (x, y).
func CellAt(x, y float64) Cell {
	return Cell{X: int(math.Floor(x)), Y: int(math.Floor(y))}
}

// Center returns the continuous coordinate of the cell's middle.
func (c Cell) Center() (float64, float64) {
	return float64(c.X) + 0.5, float64(c.Y) + 0.5
}

func (c Cell) Add(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// DistSq is the squared Euclidean distance between two cells.
func (c Cell) DistSq(o Cell) int {
	dx := c.X - o.X
	dy := c.Y - o.Y
	return dx*dx + dy*dy
}

// Grid is a row-major tile grid. 0 is empty, >0 solid, <0 walkable object.
type Grid struct {
	Width  int
	Height int
	cells  []int
}

func NewGrid(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Grid{Width: width, Height: height, cells: make([]int, width*height)}
}

// GridFromRows builds a grid from equally sized rows.
func GridFromRows(rows [][]int) *Grid {
	if len(rows) == 0 {
		return NewGrid(0, 0)
	}
	g := NewGrid(len(rows[0]), len(rows))
	for y, row := range rows {
		for x := 0; x < g.Width && x < len(row); x++ {
			g.cells[y*g.Width+x] = row[x]
		}
	}
	return g
}

func (g *Grid) InBounds(c Cell) bool {
	return g != nil && c.X >= 0 && c.Y >= 0 && c.X < g.Width && c.Y < g.Height
}

// At returns the tile value at c. Cells outside the grid read as 0.
func (g *Grid) At(c Cell) int {
	if !g.InBounds(c) {
		return 0
	}
	return g.cells[c.Y*g.Width+c.X]
}

func (g *Grid) Set(c Cell, v int) {
	if !g.InBounds(c) {
		return
	}
	g.cells[c.Y*g.Width+c.X] = v
}

// Walkable reports whether c is inside the grid and not solid.
func (g *Grid) Walkable(c Cell) bool {
	return g.InBounds(c) && g.At(c) <= 0
}

func (g *Grid) Clone() *Grid {
	if g == nil {
		return nil
	}
	out := &Grid{Width: g.Width, Height: g.Height, cells: make([]int, len(g.cells))}
	copy(out.cells, g.cells)
	return out
}

// Each calls fn for every cell in row-major order.
func (g *Grid) Each(fn func(c Cell, v int)) {
	if g == nil {
		return
	}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			fn(Cell{X: x, Y: y}, g.cells[y*g.Width+x])
		}
	}
}
