package colony

//Cell is the state of one grid position, true means alive
type Cell bool

//default colony dimensions
const (
	DefWidth  = 100
	DefHeight = 100
)

//Random is the source of randomness used by seeding, populate and eradicate
//*rand.Rand from math/rand and math/rand/v2 both satisfy it
type Random interface {
	Float64() float64
}

//Grid is the fixed size cell matrix
//cells are stored in one contiguous buffer in row-major order
type Grid struct {
	width  int
	height int
	cells  []Cell
}

//NewGrid allocates the empty (all dead) grid
func NewGrid(width int, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Grid{width: width, height: height, cells: make([]Cell, width*height)}
}

//Initialize creates the grid where every cell is alive with probability density
func Initialize(width int, height int, density float64, rnd Random) *Grid {
	g := NewGrid(width, height)
	for i := range g.cells {
		g.cells[i] = Cell(rnd.Float64() < density)
	}
	return g
}

//Width returns the number of columns
func (g *Grid) Width() int { return g.width }

//Height returns the number of rows
func (g *Grid) Height() int { return g.height }

//Alive reports the state of the cell at row, col
//coordinates outside the grid are reported as dead
func (g *Grid) Alive(row int, col int) bool {
	if !g.contains(row, col) {
		return false
	}
	return bool(g.cells[row*g.width+col])
}

//Set changes the state of the cell at row, col
func (g *Grid) Set(row int, col int, alive bool) {
	g.cells[g.index(row, col)] = Cell(alive)
}

//Rows returns the row views over the grid buffer
//the views share memory with the grid and must be treated as read-only
func (g *Grid) Rows() [][]Cell {
	rows := make([][]Cell, g.height)
	for i := range rows {
		start := g.width * i
		rows[i] = g.cells[start : start+g.width : start+g.width]
	}
	return rows
}

//Clone returns the deep copy of the grid
func (g *Grid) Clone() *Grid {
	c := NewGrid(g.width, g.height)
	copy(c.cells, g.cells)
	return c
}

//Equal reports whether both grids have the same dimensions and cells
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.width != o.width || g.height != o.height {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

func (g *Grid) sameSize(o *Grid) bool {
	return o != nil && g.width == o.width && g.height == o.height
}

func (g *Grid) contains(row int, col int) bool {
	return row >= 0 && col >= 0 && row < g.height && col < g.width
}

//index panics on coordinates outside the grid, like any slice access would
func (g *Grid) index(row int, col int) int {
	if !g.contains(row, col) {
		panic("colony: cell index out of range")
	}
	return row*g.width + col
}
