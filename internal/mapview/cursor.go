// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mapview

// Direction is a keyboard movement on the grid.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Cursor is the keyboard position on a grid. It always rests on a tile.
type Cursor struct {
	grid *Grid
	row  int
	col  int
}

// NewCursor places a cursor on the first tile of g.
func NewCursor(g *Grid) *Cursor {
	c := &Cursor{grid: g}
	if len(g.Tiles) > 0 {
		c.row, c.col = g.Tiles[0].Row, g.Tiles[0].Col
	}
	return c
}

// Tile returns the tile under the cursor.
func (c *Cursor) Tile() (Tile, bool) {
	return c.grid.At(c.row, c.col)
}

// Code returns the state code under the cursor.
func (c *Cursor) Code() string {
	t, _ := c.Tile()
	return t.Code
}

// MoveTo jumps to the tile of code and reports whether it exists.
func (c *Cursor) MoveTo(code string) bool {
	t, ok := c.grid.ByCode(code)
	if !ok {
		return false
	}
	c.row, c.col = t.Row, t.Col
	return true
}

// Move steps to the nearest tile in dir. Horizontal moves stay on the row;
// vertical moves take the closest column on the nearest row that has a
// tile. It reports whether the cursor moved.
func (c *Cursor) Move(dir Direction) bool {
	switch dir {
	case DirLeft:
		for col := c.col - 1; col >= 0; col-- {
			if _, ok := c.grid.At(c.row, col); ok {
				c.col = col
				return true
			}
		}
	case DirRight:
		for col := c.col + 1; col < c.grid.Cols; col++ {
			if _, ok := c.grid.At(c.row, col); ok {
				c.col = col
				return true
			}
		}
	case DirUp:
		return c.vertical(-1)
	case DirDown:
		return c.vertical(1)
	}
	return false
}

func (c *Cursor) vertical(step int) bool {
	for row := c.row + step; row >= 0 && row < c.grid.Rows; row += step {
		best, bestDist := -1, c.grid.Cols+1
		for col := 0; col < c.grid.Cols; col++ {
			if _, ok := c.grid.At(row, col); !ok {
				continue
			}
			if d := abs(col - c.col); d < bestDist {
				best, bestDist = col, d
			}
		}
		if best >= 0 {
			c.row, c.col = row, best
			return true
		}
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
