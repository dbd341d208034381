package colony

//Advance calculates the next generation
//the result is a new grid, the current one is only read
func Advance(g *Grid) *Grid {
	next := NewGrid(g.width, g.height)
	for row := 0; row < g.height; row++ {
		for col := 0; col < g.width; col++ {
			next.cells[row*g.width+col] = Cell(CellNextState(g, row, col))
		}
	}
	return next
}

//AnyCellsLeft reports whether at least one cell is alive
func AnyCellsLeft(g *Grid) bool {
	for _, c := range g.cells {
		if c {
			return true
		}
	}
	return false
}

//CellCount returns the number of alive cells
func CellCount(g *Grid) int {
	liveCells := 0
	for _, c := range g.cells {
		if c {
			liveCells++
		}
	}
	return liveCells
}
