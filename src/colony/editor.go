package colony

//Region is the inclusive rectangle targeted by a bulk edit
//X is the column, Y is the row
type Region struct {
	X1 int
	X2 int
	Y1 int
	Y2 int
}

//ClampRegion normalizes two corner points into the region inside a width x height grid
//ok is false when the rectangle lies completely outside the grid
func ClampRegion(x1 int, y1 int, x2 int, y2 int, width int, height int) (r Region, ok bool) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	if x2 < 0 || y2 < 0 || x1 >= width || y1 >= height {
		return Region{}, false
	}
	r = Region{
		X1: clamp(x1, 0, width-1),
		X2: clamp(x2, 0, width-1),
		Y1: clamp(y1, 0, height-1),
		Y2: clamp(y2, 0, height-1),
	}
	return r, true
}

//Populate gives every dead cell in the region the rate percent chance to become alive
func Populate(g *Grid, r Region, rate float64, rnd Random) {
	g.walkRegion(r, func(i int) {
		if !g.cells[i] && rnd.Float64()*100 < rate {
			g.cells[i] = true
		}
	})
}

//Eradicate gives every alive cell in the region the rate percent chance to die
func Eradicate(g *Grid, r Region, rate float64, rnd Random) {
	g.walkRegion(r, func(i int) {
		if g.cells[i] && rnd.Float64()*100 < rate {
			g.cells[i] = false
		}
	})
}

//PopulateOne makes the cell at row, col alive
func PopulateOne(g *Grid, row int, col int) {
	g.Set(row, col, true)
}

//walkRegion calls cb with the buffer index of every cell inside the region
//the part of the region outside the grid is skipped
func (g *Grid) walkRegion(r Region, cb func(i int)) {
	for y := r.Y1; y <= r.Y2; y++ {
		for x := r.X1; x <= r.X2; x++ {
			if !g.contains(y, x) {
				continue
			}
			cb(g.index(y, x))
		}
	}
}

func clamp(v int, lo int, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
