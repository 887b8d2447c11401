// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mapview

// Layout maps terminal cells to tiles. The grid is drawn at the origin with
// each tile TileWidth by TileHeight cells; the inset list is drawn InsetX
// columns to the right, one state per line starting InsetY lines down.
type Layout struct {
	TileWidth  int
	TileHeight int
	InsetX     int
	InsetY     int
	InsetWidth int
}

// DefaultLayout is what the dashboard renders.
var DefaultLayout = Layout{
	TileWidth:  5,
	TileHeight: 2,
	InsetX:     5*11 + 3,
	InsetY:     1,
	InsetWidth: 22,
}

// MapWidth returns the width of the grid plus inset.
func (l Layout) MapWidth() int {
	return l.InsetX + l.InsetWidth
}

// GridHeight returns the rendered height of g.
func (l Layout) GridHeight(g *Grid) int {
	return g.Rows * l.TileHeight
}

// HitTest returns the tile under cell (x, y), relative to the map origin.
func (l Layout) HitTest(g *Grid, x, y int) (Tile, bool) {
	if x < 0 || y < 0 || l.TileWidth <= 0 || l.TileHeight <= 0 {
		return Tile{}, false
	}

	if x >= l.InsetX && x < l.InsetX+l.InsetWidth {
		inset := g.Inset()
		i := y - l.InsetY
		if i >= 0 && i < len(inset) {
			return inset[i], true
		}
		return Tile{}, false
	}

	col, row := x/l.TileWidth, y/l.TileHeight
	if col >= g.Cols || row >= g.Rows {
		return Tile{}, false
	}
	return g.At(row, col)
}
