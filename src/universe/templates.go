package universe

import "lifecolony/src/colony"

//Template represent the seeding template which can used to settle the universe with predefined data
type Template struct {
	Name        string  //template name
	Descr       string  //template descr
	Coordinates [][]int //array of [x,y] coordinates, x is the column, y is the row
}

//Grid places the template in the center of the new width x height grid
//cells which don't fit the grid are dropped
func (t Template) Grid(width int, height int) *colony.Grid {
	g := colony.NewGrid(width, height)
	maxX, maxY := 0, 0
	for _, v := range t.Coordinates {
		if v[0] > maxX {
			maxX = v[0]
		}
		if v[1] > maxY {
			maxY = v[1]
		}
	}
	dx := (width - maxX - 1) / 2
	dy := (height - maxY - 1) / 2
	if dx < 0 {
		dx = 0
	}
	if dy < 0 {
		dy = 0
	}
	for _, v := range t.Coordinates {
		x, y := v[0]+dx, v[1]+dy
		if x < 0 || y < 0 || x >= width || y >= height {
			continue
		}
		g.Set(y, x, true)
	}
	return g
}

//DefaultTemplates returns the built-in patterns
func DefaultTemplates() []Template {
	return []Template{
		{
			"rpentomino",
			"R-pentomino, a methuselah which stabilizes after 1103 generations",
			[][]int{{1, 0}, {2, 0}, {0, 1}, {1, 1}, {1, 2}},
		},
		{
			"gun",
			"Gosper glider gun",
			[][]int{
				{24, 0},
				{22, 1}, {24, 1},
				{12, 2}, {13, 2}, {20, 2}, {21, 2}, {34, 2}, {35, 2},
				{11, 3}, {15, 3}, {20, 3}, {21, 3}, {34, 3}, {35, 3},
				{0, 4}, {1, 4}, {10, 4}, {16, 4}, {20, 4}, {21, 4},
				{0, 5}, {1, 5}, {10, 5}, {14, 5}, {16, 5}, {17, 5}, {22, 5}, {24, 5},
				{10, 6}, {16, 6}, {24, 6},
				{11, 7}, {15, 7},
				{12, 8}, {13, 8},
			},
		},
		{
			"pulsar",
			"Pulsar, the period 3 oscillator",
			pulsar(),
		},
		{
			"diehard",
			"Die hard, vanishes after 130 generations",
			[][]int{{6, 0}, {0, 1}, {1, 1}, {1, 2}, {5, 2}, {6, 2}, {7, 2}},
		},
		{
			"glider",
			"Glider",
			[][]int{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}},
		},
	}
}

//pulsar builds the 13x13 pulsar: four bars of three cells on each side of both axes
func pulsar() [][]int {
	bars := []int{2, 3, 4, 8, 9, 10}
	lines := []int{0, 5, 7, 12}
	c := make([][]int, 0, 48)
	for _, l := range lines {
		for _, b := range bars {
			c = append(c, []int{b, l}, []int{l, b})
		}
	}
	return c
}
