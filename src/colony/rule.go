package colony

//LiveNeighbours counts the alive cells in the Moore neighbourhood of row, col
//cells outside the grid are skipped, there is no wraparound
func LiveNeighbours(g *Grid, row int, col int) int {
	liveNeighbours := 0
	for i := -1; i < 2; i++ {
		for j := -1; j < 2; j++ {
			//skip my position
			if i == 0 && j == 0 {
				continue
			}
			nr := row + i
			nc := col + j
			//skip coordinates outside the area
			if nr < 0 || nc < 0 || nr >= g.height || nc >= g.width {
				continue
			}
			if g.cells[nr*g.width+nc] {
				liveNeighbours++
			}
		}
	}
	return liveNeighbours
}

//NextState applies the birth on 3, survive on 2 or 3 rule
func NextState(alive bool, liveNeighbours int) bool {
	if liveNeighbours == 3 {
		return true
	}
	return alive && liveNeighbours == 2
}

//CellNextState calculates the next state for the cell at row, col
func CellNextState(g *Grid, row int, col int) bool {
	return NextState(g.Alive(row, col), LiveNeighbours(g, row, col))
}
