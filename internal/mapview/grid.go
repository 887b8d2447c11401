// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package mapview provides the geometry and interaction state of the state
// map.
//
// The geometry is a tile grid: one cell per state (plus DC), keyed by FIPS
// code so it joins with the state records from the API. The grid ships as
// an embedded JSON asset and is read-only.
package mapview

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/jeranaias/statescope/internal/model"
)

//go:embed tiles.json
var tilesJSON []byte

// Tile is one state's cell on the grid.
type Tile struct {
	FIPS string `json:"fips"`
	Code string `json:"code"`
	Row  int    `json:"row"`
	Col  int    `json:"col"`
}

// Grid is the tile map geometry.
type Grid struct {
	Rows  int    `json:"rows"`
	Cols  int    `json:"cols"`
	Tiles []Tile `json:"tiles"`

	byPos  map[[2]int]int
	byFIPS map[string]int
	byCode map[string]int
}

var (
	defaultGrid     *Grid
	defaultGridErr  error
	defaultGridOnce sync.Once
)

// Default returns the embedded grid. It panics if the asset is corrupt,
// which only a broken build can cause.
func Default() *Grid {
	defaultGridOnce.Do(func() {
		defaultGrid, defaultGridErr = ParseGrid(tilesJSON)
	})
	if defaultGridErr != nil {
		panic(defaultGridErr)
	}
	return defaultGrid
}

// ParseGrid decodes and indexes a grid asset.
func ParseGrid(data []byte) (*Grid, error) {
	var g Grid
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("parse tile grid: %w", err)
	}
	if g.Rows <= 0 || g.Cols <= 0 {
		return nil, fmt.Errorf("parse tile grid: invalid size %dx%d", g.Rows, g.Cols)
	}

	g.byPos = make(map[[2]int]int, len(g.Tiles))
	g.byFIPS = make(map[string]int, len(g.Tiles))
	g.byCode = make(map[string]int, len(g.Tiles))
	for i, t := range g.Tiles {
		if t.Row < 0 || t.Row >= g.Rows || t.Col < 0 || t.Col >= g.Cols {
			return nil, fmt.Errorf("parse tile grid: %s outside grid", t.Code)
		}
		pos := [2]int{t.Row, t.Col}
		if _, dup := g.byPos[pos]; dup {
			return nil, fmt.Errorf("parse tile grid: %s overlaps another tile", t.Code)
		}
		g.Tiles[i].FIPS = NormalizeFIPS(t.FIPS)
		g.byPos[pos] = i
		g.byFIPS[g.Tiles[i].FIPS] = i
		g.byCode[t.Code] = i
	}
	return &g, nil
}

// NormalizeFIPS pads numeric FIPS codes to two digits ("6" -> "06").
func NormalizeFIPS(fips string) string {
	if n, err := strconv.Atoi(fips); err == nil && n >= 0 && n < 100 {
		return fmt.Sprintf("%02d", n)
	}
	return fips
}

// At returns the tile at row, col.
func (g *Grid) At(row, col int) (Tile, bool) {
	i, ok := g.byPos[[2]int{row, col}]
	if !ok {
		return Tile{}, false
	}
	return g.Tiles[i], true
}

// ByFIPS returns the tile for a FIPS code.
func (g *Grid) ByFIPS(fips string) (Tile, bool) {
	i, ok := g.byFIPS[NormalizeFIPS(fips)]
	if !ok {
		return Tile{}, false
	}
	return g.Tiles[i], true
}

// ByCode returns the tile for a state code.
func (g *Grid) ByCode(code string) (Tile, bool) {
	i, ok := g.byCode[code]
	if !ok {
		return Tile{}, false
	}
	return g.Tiles[i], true
}

// =============================================================================
// NORTHEAST INSET
// =============================================================================

// NortheastFIPS names the small northeastern states that also get an inset
// entry beside the grid.
var NortheastFIPS = map[string]bool{
	"09": true, // CT
	"10": true, // DE
	"11": true, // DC
	"23": true, // ME
	"24": true, // MD
	"25": true, // MA
	"33": true, // NH
	"34": true, // NJ
	"36": true, // NY
	"42": true, // PA
	"44": true, // RI
	"50": true, // VT
}

// IsNortheast reports whether fips belongs to the inset.
func IsNortheast(fips string) bool {
	return NortheastFIPS[NormalizeFIPS(fips)]
}

// Inset returns the inset tiles ordered by state code.
func (g *Grid) Inset() []Tile {
	var out []Tile
	for _, t := range g.Tiles {
		if NortheastFIPS[t.FIPS] {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// =============================================================================
// JOIN
// =============================================================================

// Index joins state records to the grid by FIPS code.
type Index map[string]model.State

// IndexStates builds an Index. States with unknown FIPS codes are kept; they
// simply never match a tile.
func IndexStates(states []model.State) Index {
	idx := make(Index, len(states))
	for _, s := range states {
		idx[NormalizeFIPS(s.FIPS)] = s
	}
	return idx
}

// For returns the state record drawn on t.
func (idx Index) For(t Tile) (model.State, bool) {
	s, ok := idx[t.FIPS]
	return s, ok
}

// Status returns the status used to color t. Tiles without a record are
// colored as having no policy.
func (idx Index) Status(t Tile) model.StateStatus {
	if s, ok := idx[t.FIPS]; ok {
		return s.Status()
	}
	return model.StateNone
}
