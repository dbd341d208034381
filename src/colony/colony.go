/*
	Package colony is the Game of Life engine: the fixed size grid, the neighbour rule,
	generation advancement, the probabilistic area editor and the text format.

	The engine is synchronous and holds no locks, the caller has to serialize calls into one Colony.
*/
package colony

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

//ErrDimensionMismatch is returned when a replacement grid has other dimensions than the colony
var ErrDimensionMismatch = errors.New("colony dimension mismatch")

//Options represents the colony construction parameters
type Options struct {
	Width   int
	Height  int
	Density float64 //probability of every cell to be alive after seeding, [0,1]
	Rate    float64 //population/eradication success rate in percent, [0,100]
}

//default options
const (
	DefDensity = 0.6
	DefRate    = 85
)

var DefaultOptions = Options{
	Width:   DefWidth,
	Height:  DefHeight,
	Density: DefDensity,
	Rate:    DefRate,
}

//Colony owns the grid and the success rate shared by Populate and Eradicate
type Colony struct {
	grid *Grid
	rate float64
	rnd  Random
}

//New creates the colony seeded with random cells
func New(o Options, rnd Random) *Colony {
	return &Colony{
		grid: Initialize(o.Width, o.Height, o.Density, rnd),
		rate: o.Rate,
		rnd:  rnd,
	}
}

//Grid returns the current generation
//Advance and SetColony never modify the returned grid, the edit operations do
func (c *Colony) Grid() *Grid { return c.grid }

//Width returns the number of columns
func (c *Colony) Width() int { return c.grid.width }

//Height returns the number of rows
func (c *Colony) Height() int { return c.grid.height }

//Rate returns the population/eradication success rate
func (c *Colony) Rate() float64 { return c.rate }

//SetRate changes the population/eradication success rate
func (c *Colony) SetRate(rate float64) { c.rate = rate }

//Advance replaces the grid with the next generation
func (c *Colony) Advance() {
	c.grid = Advance(c.grid)
}

//AnyCellsLeft reports whether at least one cell is alive
func (c *Colony) AnyCellsLeft() bool { return AnyCellsLeft(c.grid) }

//CellCount returns the number of alive cells
func (c *Colony) CellCount() int { return CellCount(c.grid) }

//Populate brings dead cells inside the region to life with the colony rate
func (c *Colony) Populate(r Region) { Populate(c.grid, r, c.rate, c.rnd) }

//Eradicate kills alive cells inside the region with the colony rate
func (c *Colony) Eradicate(r Region) { Eradicate(c.grid, r, c.rate, c.rnd) }

//PopulateOne makes the single cell alive
func (c *Colony) PopulateOne(row int, col int) { PopulateOne(c.grid, row, col) }

//SetColony replaces the grid, the replacement must have the colony dimensions
//the colony takes the ownership of g
func (c *Colony) SetColony(g *Grid) error {
	if !c.grid.sameSize(g) {
		if g == nil {
			return fmt.Errorf("%w: nil grid", ErrDimensionMismatch)
		}
		return fmt.Errorf("%w: got %vx%v, want %vx%v", ErrDimensionMismatch, g.width, g.height, c.grid.width, c.grid.height)
	}
	c.grid = g
	return nil
}

//Load replaces the grid with the one decoded from r
//on any error the current grid is kept
func (c *Colony) Load(r io.Reader) error {
	g, err := Decode(r, c.grid.width, c.grid.height)
	if err != nil {
		return err
	}
	c.grid = g
	return nil
}

//Save writes the current grid to w
func (c *Colony) Save(w io.Writer) error {
	return Encode(w, c.grid)
}

//String returns the serialized grid
func (c *Colony) String() string {
	var b bytes.Buffer
	_ = Encode(&b, c.grid)
	return b.String()
}
