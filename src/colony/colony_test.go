package colony

import (
	"bytes"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
)

//fixedRandom always returns the same value
type fixedRandom float64

func (f fixedRandom) Float64() float64 { return float64(f) }

func newRandom(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0))
}

func gridOf(width int, height int, alive [][2]int) *Grid {
	g := NewGrid(width, height)
	for _, rc := range alive {
		g.Set(rc[0], rc[1], true)
	}
	return g
}

func assertAlive(t *testing.T, g *Grid, alive [][2]int) {
	t.Helper()
	expects := map[[2]int]bool{}
	for _, rc := range alive {
		expects[rc] = true
	}
	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			if g.Alive(row, col) != expects[[2]int{row, col}] {
				t.Fatalf("cell (%d,%d) alive=%v, expected %v", row, col, g.Alive(row, col), expects[[2]int{row, col}])
			}
		}
	}
}

func TestNextState(t *testing.T) {
	for n := 0; n <= 8; n++ {
		if got, want := NextState(false, n), n == 3; got != want {
			t.Errorf("dead cell with %d neighbours: got %v, want %v", n, got, want)
		}
		if got, want := NextState(true, n), n == 2 || n == 3; got != want {
			t.Errorf("alive cell with %d neighbours: got %v, want %v", n, got, want)
		}
	}
}

func TestLiveNeighboursBounded(t *testing.T) {
	g := Initialize(5, 4, 1, fixedRandom(0))
	tests := []struct {
		row, col int
		want     int
	}{
		{0, 0, 3},
		{0, 4, 3},
		{3, 0, 3},
		{3, 4, 3},
		{0, 2, 5},
		{2, 0, 5},
		{3, 2, 5},
		{1, 4, 5},
		{1, 1, 8},
		{2, 3, 8},
	}
	for _, tt := range tests {
		if got := LiveNeighbours(g, tt.row, tt.col); got != tt.want {
			t.Errorf("LiveNeighbours(%d,%d) = %d, want %d", tt.row, tt.col, got, tt.want)
		}
	}
}

func TestLiveNeighboursRange(t *testing.T) {
	g := Initialize(30, 20, 0.5, newRandom(7))
	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			n := LiveNeighbours(g, row, col)
			if n < 0 || n > 8 {
				t.Fatalf("LiveNeighbours(%d,%d) = %d outside [0,8]", row, col, n)
			}
		}
	}
}

func TestAdvanceRule(t *testing.T) {
	g := Initialize(40, 30, 0.4, newRandom(11))
	next := Advance(g)
	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			want := NextState(g.Alive(row, col), LiveNeighbours(g, row, col))
			if next.Alive(row, col) != want {
				t.Fatalf("cell (%d,%d) next=%v, expected %v", row, col, next.Alive(row, col), want)
			}
		}
	}
}

func TestBlinkerOscillation(t *testing.T) {
	horizontal := [][2]int{{2, 1}, {2, 2}, {2, 3}}
	vertical := [][2]int{{1, 2}, {2, 2}, {3, 2}}

	g := gridOf(5, 5, horizontal)
	before := g.Clone()

	g1 := Advance(g)
	assertAlive(t, g1, vertical)
	if !g.Equal(before) {
		t.Fatal("Advance modified its input")
	}

	g2 := Advance(g1)
	assertAlive(t, g2, horizontal)
}

func TestColonyAdvanceKeepsSnapshot(t *testing.T) {
	c := New(Options{Width: 5, Height: 5}, fixedRandom(0.5))
	if err := c.SetColony(gridOf(5, 5, [][2]int{{2, 1}, {2, 2}, {2, 3}})); err != nil {
		t.Fatal(err)
	}
	snapshot := c.Grid()
	c.Advance()
	if c.Grid() == snapshot {
		t.Fatal("Advance must publish a new grid")
	}
	assertAlive(t, snapshot, [][2]int{{2, 1}, {2, 2}, {2, 3}})
	assertAlive(t, c.Grid(), [][2]int{{1, 2}, {2, 2}, {3, 2}})
}

func TestCellCount(t *testing.T) {
	empty := NewGrid(10, 10)
	if CellCount(empty) != 0 || AnyCellsLeft(empty) {
		t.Fatal("empty grid must have no cells")
	}
	for seed := uint64(1); seed < 5; seed++ {
		g := Initialize(DefWidth, DefHeight, 0.3, newRandom(seed))
		count := 0
		for _, row := range g.Rows() {
			for _, c := range row {
				if c {
					count++
				}
			}
		}
		if CellCount(g) != count {
			t.Fatalf("CellCount = %d, want %d", CellCount(g), count)
		}
		if AnyCellsLeft(g) != (count > 0) {
			t.Fatalf("AnyCellsLeft = %v with %d cells", AnyCellsLeft(g), count)
		}
	}
	one := gridOf(10, 10, [][2]int{{9, 9}})
	if CellCount(one) != 1 || !AnyCellsLeft(one) {
		t.Fatal("single cell grid must report one cell")
	}
}

func TestInitializeDensityExtremes(t *testing.T) {
	rnd := newRandom(3)
	if n := CellCount(Initialize(20, 20, 0, rnd)); n != 0 {
		t.Fatalf("density 0 produced %d cells", n)
	}
	if n := CellCount(Initialize(20, 20, 1, rnd)); n != 400 {
		t.Fatalf("density 1 produced %d cells", n)
	}
	if n := CellCount(Initialize(20, 20, -1, rnd)); n != 0 {
		t.Fatalf("negative density produced %d cells", n)
	}
}

func TestPopulateEradicateConfined(t *testing.T) {
	region := Region{X1: 3, X2: 12, Y1: 5, Y2: 9}
	inside := func(row, col int) bool {
		return row >= region.Y1 && row <= region.Y2 && col >= region.X1 && col <= region.X2
	}
	tests := []struct {
		name string
		edit func(g *Grid, rnd Random)
	}{
		{"populate", func(g *Grid, rnd Random) { Populate(g, region, 50, rnd) }},
		{"eradicate", func(g *Grid, rnd Random) { Eradicate(g, region, 50, rnd) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rnd := newRandom(21)
			g := Initialize(20, 15, 0.5, rnd)
			before := g.Clone()
			tt.edit(g, rnd)
			for row := 0; row < g.Height(); row++ {
				for col := 0; col < g.Width(); col++ {
					if !inside(row, col) && g.Alive(row, col) != before.Alive(row, col) {
						t.Fatalf("cell (%d,%d) outside the region changed", row, col)
					}
					if tt.name == "populate" && before.Alive(row, col) && !g.Alive(row, col) {
						t.Fatalf("populate killed cell (%d,%d)", row, col)
					}
					if tt.name == "eradicate" && !before.Alive(row, col) && g.Alive(row, col) {
						t.Fatalf("eradicate created cell (%d,%d)", row, col)
					}
				}
			}
		})
	}
}

func TestRegionOutsideGridSkipped(t *testing.T) {
	g := NewGrid(100, 100)
	Populate(g, Region{X1: 95, X2: 100, Y1: 0, Y2: 0}, 100, fixedRandom(0))
	if n := CellCount(g); n != 5 {
		t.Fatalf("populate overhanging region: %d cells alive, want 5", n)
	}
	for col := 95; col < 100; col++ {
		if !g.Alive(0, col) {
			t.Fatalf("cell (0,%d) not populated", col)
		}
	}

	Populate(g, Region{X1: -3, X2: 1, Y1: 98, Y2: 104}, 100, fixedRandom(0))
	if n := CellCount(g); n != 9 {
		t.Fatalf("populate overhanging corner: %d cells alive, want 9", n)
	}

	Eradicate(g, Region{X1: -10, X2: 200, Y1: -10, Y2: 200}, 100, fixedRandom(0))
	if n := CellCount(g); n != 0 {
		t.Fatalf("eradicate larger than the grid: %d cells alive, want 0", n)
	}

	Populate(g, Region{X1: 100, X2: 120, Y1: 100, Y2: 120}, 100, fixedRandom(0))
	if n := CellCount(g); n != 0 {
		t.Fatalf("populate outside the grid: %d cells alive, want 0", n)
	}
}

func TestEditRateExtremes(t *testing.T) {
	region := Region{X1: 0, X2: 9, Y1: 2, Y2: 6}
	rnd := newRandom(5)
	base := Initialize(10, 10, 0.5, rnd)

	g := base.Clone()
	Populate(g, region, 0, rnd)
	Eradicate(g, region, 0, rnd)
	if !g.Equal(base) {
		t.Fatal("rate 0 must not change the grid")
	}

	g = base.Clone()
	Populate(g, region, 100, rnd)
	for row := region.Y1; row <= region.Y2; row++ {
		for col := region.X1; col <= region.X2; col++ {
			if !g.Alive(row, col) {
				t.Fatalf("rate 100 populate left (%d,%d) dead", row, col)
			}
		}
	}

	g = base.Clone()
	Eradicate(g, region, 100, rnd)
	for row := region.Y1; row <= region.Y2; row++ {
		for col := region.X1; col <= region.X2; col++ {
			if g.Alive(row, col) {
				t.Fatalf("rate 100 eradicate left (%d,%d) alive", row, col)
			}
		}
	}
}

func TestColonySharedRate(t *testing.T) {
	c := New(Options{Width: 10, Height: 10, Density: 0, Rate: 40}, fixedRandom(0.395))
	c.Populate(Region{X1: 0, X2: 4, Y1: 0, Y2: 9})
	if c.CellCount() != 50 {
		t.Fatalf("populate with draw below the rate: %d cells, want 50", c.CellCount())
	}
	c.SetRate(39)
	c.Eradicate(Region{X1: 0, X2: 9, Y1: 0, Y2: 9})
	if c.CellCount() != 50 {
		t.Fatalf("eradicate with draw above the rate: %d cells, want 50", c.CellCount())
	}
	c.SetRate(40)
	c.Eradicate(Region{X1: 0, X2: 9, Y1: 0, Y2: 4})
	if c.CellCount() != 25 {
		t.Fatalf("eradicate with draw below the rate: %d cells, want 25", c.CellCount())
	}
}

func TestPopulateOne(t *testing.T) {
	c := New(Options{Width: 6, Height: 4, Density: 0, Rate: 0}, fixedRandom(0.99))
	c.PopulateOne(3, 5)
	c.PopulateOne(3, 5)
	c.PopulateOne(0, 1)
	assertAlive(t, c.Grid(), [][2]int{{3, 5}, {0, 1}})
}

func TestClampRegion(t *testing.T) {
	tests := []struct {
		name           string
		x1, y1, x2, y2 int
		want           Region
		ok             bool
	}{
		{"inside", 1, 2, 3, 4, Region{1, 3, 2, 4}, true},
		{"swapped corners", 3, 4, 1, 2, Region{1, 3, 2, 4}, true},
		{"overflow", -5, -5, 200, 150, Region{0, 99, 0, 99}, true},
		{"right of grid", 100, 0, 120, 10, Region{}, false},
		{"above grid", 0, -10, 10, -1, Region{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := ClampRegion(tt.x1, tt.y1, tt.x2, tt.y2, DefWidth, DefHeight)
			if ok != tt.ok || r != tt.want {
				t.Fatalf("ClampRegion = %+v, %v; want %+v, %v", r, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for seed := uint64(1); seed <= 3; seed++ {
		g := Initialize(DefWidth, DefHeight, 0.5, newRandom(seed))
		var b bytes.Buffer
		if err := Encode(&b, g); err != nil {
			t.Fatal(err)
		}
		if n := len(strings.Fields(b.String())); n != DefWidth*DefHeight {
			t.Fatalf("encoded %d tokens, want %d", n, DefWidth*DefHeight)
		}
		got, err := Decode(&b, DefWidth, DefHeight)
		if err != nil {
			t.Fatal(err)
		}
		if !got.Equal(g) {
			t.Fatal("decoded grid differs from the encoded one")
		}
	}
}

func TestEncodeRowMajor(t *testing.T) {
	g := gridOf(3, 2, [][2]int{{0, 1}, {1, 2}})
	var b bytes.Buffer
	if err := Encode(&b, g); err != nil {
		t.Fatal(err)
	}
	if got, want := b.String(), "0 1 0\n0 0 1\n"; got != want {
		t.Fatalf("Encode = %q, want %q", got, want)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  [][2]int
		err   bool
	}{
		{"exact", "1 0 0\n0 0 1", [][2]int{{0, 0}, {1, 2}}, false},
		{"other integers are dead", "2 -1 1\t0\n\n7 1", [][2]int{{0, 2}, {1, 2}}, false},
		{"trailing tokens ignored", "0 0 0 0 0 1 junk 1 1", [][2]int{{1, 2}}, false},
		{"short", "1 0 0 0 1", nil, true},
		{"empty", "", nil, true},
		{"non-integer stops", "1 0 x 0 1 1 1", nil, true},
		{"float token", "1 0 0.5 0 1 1", nil, true},
		{"integer overflow stops", "0 0 0 0 0 99999999999", nil, true},
		{"int32 bounds", "2147483647 -2147483648 1 0 0 0", [][2]int{{0, 2}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Decode(strings.NewReader(tt.input), 3, 2)
			if tt.err {
				if !errors.Is(err, ErrIllegalFile) {
					t.Fatalf("Decode error = %v, want ErrIllegalFile", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			assertAlive(t, g, tt.want)
		})
	}
}

func TestLoadIsTransactional(t *testing.T) {
	c := New(DefaultOptions, newRandom(9))
	before := c.Grid().Clone()

	short := strings.Repeat("1 ", DefWidth*DefHeight-1)
	err := c.Load(strings.NewReader(short))
	if !errors.Is(err, ErrIllegalFile) {
		t.Fatalf("Load error = %v, want ErrIllegalFile", err)
	}
	if !c.Grid().Equal(before) {
		t.Fatal("rejected file modified the grid")
	}

	if err := c.Load(strings.NewReader(strings.Repeat("1 ", DefWidth*DefHeight))); err != nil {
		t.Fatal(err)
	}
	if c.CellCount() != DefWidth*DefHeight {
		t.Fatalf("CellCount = %d after loading a full grid", c.CellCount())
	}
}

func TestSaveLoad(t *testing.T) {
	src := New(DefaultOptions, newRandom(13))
	var b bytes.Buffer
	if err := src.Save(&b); err != nil {
		t.Fatal(err)
	}
	if b.String() != src.String() {
		t.Fatal("Save and String disagree")
	}
	dst := New(Options{Width: DefWidth, Height: DefHeight, Density: 0}, newRandom(1))
	if err := dst.Load(&b); err != nil {
		t.Fatal(err)
	}
	if !dst.Grid().Equal(src.Grid()) {
		t.Fatal("loaded colony differs from the saved one")
	}
}

func TestSetColonyDimensions(t *testing.T) {
	c := New(DefaultOptions, newRandom(2))
	before := c.Grid()
	if err := c.SetColony(NewGrid(50, 100)); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("SetColony error = %v, want ErrDimensionMismatch", err)
	}
	if err := c.SetColony(nil); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("SetColony(nil) error = %v, want ErrDimensionMismatch", err)
	}
	if c.Grid() != before {
		t.Fatal("rejected grid replaced the colony")
	}
	empty := NewGrid(DefWidth, DefHeight)
	if err := c.SetColony(empty); err != nil {
		t.Fatal(err)
	}
	if c.AnyCellsLeft() {
		t.Fatal("colony must be empty after SetColony with an empty grid")
	}
}

func Benchmark_Advance(b *testing.B) {
	g := Initialize(DefWidth, DefHeight, DefDensity, newRandom(1))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g = Advance(g)
	}
}
