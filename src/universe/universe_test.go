package universe

import (
	"strings"
	"testing"
)

func newEmpty(t *testing.T, w, h uint32) *Universe {
	t.Helper()
	u, err := NewSized(w, h, nil)
	if err != nil {
		t.Fatalf("NewSized(%d, %d): %v", w, h, err)
	}
	return u
}

func TestNewSizedRejectsZeroDimensions(t *testing.T) {
	if _, err := NewSized(0, 5, nil); err == nil {
		t.Fatal("expected an error for zero width")
	}
	if _, err := NewSized(5, 0, nil); err == nil {
		t.Fatal("expected an error for zero height")
	}
}

func TestIndexMapping(t *testing.T) {
	u := newEmpty(t, 5, 5)

	if got := u.Index(1, 2); got != 7 {
		t.Fatalf("Index(1, 2) = %d, expected 7", got)
	}

	//the mapping must be a bijection onto [0, width*height)
	seen := make([]bool, 25)
	for row := uint32(0); row < 5; row++ {
		for col := uint32(0); col < 5; col++ {
			idx := u.Index(row, col)
			if idx < 0 || idx >= len(seen) {
				t.Fatalf("Index(%d, %d) = %d out of range", row, col, idx)
			}
			if seen[idx] {
				t.Fatalf("Index(%d, %d) = %d already produced by another coordinate", row, col, idx)
			}
			seen[idx] = true
		}
	}
}

func TestLiveNeighborCountEmptyUniverse(t *testing.T) {
	u := newEmpty(t, 5, 5)
	for row := uint32(0); row < 5; row++ {
		for col := uint32(0); col < 5; col++ {
			if got := u.LiveNeighborCount(row, col); got != 0 {
				t.Fatalf("LiveNeighborCount(%d, %d) = %d on an empty universe", row, col, got)
			}
		}
	}

	u.Tick()
	if got := u.Population(); got != 0 {
		t.Fatalf("empty universe produced %d live cells after a tick", got)
	}
}

func TestToroidalWraparound(t *testing.T) {
	u := newEmpty(t, 5, 5)
	u.Set(0, 0, Alive)

	//the live cell at (0,0) is the diagonal neighbor of the opposite corner
	if got := u.LiveNeighborCount(4, 4); got != 1 {
		t.Fatalf("LiveNeighborCount(4, 4) = %d, expected 1 via diagonal wrap", got)
	}
	if got := u.LiveNeighborCount(0, 4); got != 1 {
		t.Fatalf("LiveNeighborCount(0, 4) = %d, expected 1 via horizontal wrap", got)
	}
	if got := u.LiveNeighborCount(4, 0); got != 1 {
		t.Fatalf("LiveNeighborCount(4, 0) = %d, expected 1 via vertical wrap", got)
	}
}

//neighborOffsets are the 8 positions around the center of a 5x5 grid
var neighborOffsets = [8][2]uint32{
	{1, 1}, {1, 2}, {1, 3},
	{2, 1}, {2, 3},
	{3, 1}, {3, 2}, {3, 3},
}

func TestRuleTable(t *testing.T) {
	cases := []struct {
		name      string
		center    Cell
		neighbors int
		expected  Cell
	}{
		{"alive with 0 dies", Alive, 0, Dead},
		{"alive with 1 dies", Alive, 1, Dead},
		{"alive with 2 survives", Alive, 2, Alive},
		{"alive with 3 survives", Alive, 3, Alive},
		{"alive with 4 dies", Alive, 4, Dead},
		{"alive with 8 dies", Alive, 8, Dead},
		{"dead with 2 stays dead", Dead, 2, Dead},
		{"dead with 3 is born", Dead, 3, Alive},
		{"dead with 4 stays dead", Dead, 4, Dead},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			u := newEmpty(t, 5, 5)
			u.Set(2, 2, c.center)
			for i := 0; i < c.neighbors; i++ {
				u.Set(neighborOffsets[i][0], neighborOffsets[i][1], Alive)
			}
			if got := u.LiveNeighborCount(2, 2); int(got) != c.neighbors {
				t.Fatalf("LiveNeighborCount(2, 2) = %d, expected %d", got, c.neighbors)
			}
			u.Tick()
			if got := u.Get(2, 2); got != c.expected {
				t.Fatalf("center cell = %d after tick, expected %d", got, c.expected)
			}
		})
	}
}

func TestBlinkerOscillation(t *testing.T) {
	u := newEmpty(t, 5, 5)
	//vertical line in column 2, rows 1-3
	u.Set(1, 2, Alive)
	u.Set(2, 2, Alive)
	u.Set(3, 2, Alive)

	assertAlive := func(expects map[[2]uint32]bool) {
		t.Helper()
		for row := uint32(0); row < 5; row++ {
			for col := uint32(0); col < 5; col++ {
				alive := u.Get(row, col) == Alive
				_, shouldBeAlive := expects[[2]uint32{row, col}]
				if alive != shouldBeAlive {
					t.Fatalf("cell (%d,%d) alive=%v, expected %v", row, col, alive, shouldBeAlive)
				}
			}
		}
	}

	u.Tick()
	//horizontal line in row 2, columns 1-3
	assertAlive(map[[2]uint32]bool{
		{2, 1}: true,
		{2, 2}: true,
		{2, 3}: true,
	})

	u.Tick()
	//back to the vertical orientation, period 2
	assertAlive(map[[2]uint32]bool{
		{1, 2}: true,
		{2, 2}: true,
		{3, 2}: true,
	})
}

func TestRender(t *testing.T) {
	u := newEmpty(t, 3, 2)
	u.Set(0, 1, Alive)
	u.Set(1, 0, Alive)

	got := u.Render()
	expected := string(DeadGlyph) + string(AliveGlyph) + string(DeadGlyph) + "\n" +
		string(AliveGlyph) + string(DeadGlyph) + string(DeadGlyph) + "\n"
	if got != expected {
		t.Fatalf("Render() = %q, expected %q", got, expected)
	}

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("Render() produced %d lines, expected 2", len(lines))
	}
	if !strings.HasSuffix(got, "\n") {
		t.Fatal("Render() output must end with a newline")
	}

	//rendering must not mutate anything
	if again := u.Render(); again != got {
		t.Fatal("two renders without a tick differ")
	}
}

func TestGridSizeInvariant(t *testing.T) {
	u := New()
	for i := 0; i < 10; i++ {
		u.Tick()
		if got := len(u.Cells()); got != int(u.Width())*int(u.Height()) {
			t.Fatalf("after %d ticks len(cells) = %d, expected %d", i+1, got, u.Width()*u.Height())
		}
	}
}

func TestDefaultSeedPattern(t *testing.T) {
	u := New()
	if u.Width() != DefWidth || u.Height() != DefHeight {
		t.Fatalf("New() dimensions = %dx%d, expected %dx%d", u.Width(), u.Height(), DefWidth, DefHeight)
	}
	for i, c := range u.Cells() {
		expected := Dead
		if i%2 == 0 || i%7 == 0 {
			expected = Alive
		}
		if c != expected {
			t.Fatalf("cell %d = %d, expected %d", i, c, expected)
		}
	}
}

func TestDegenerateSingleCellUniverse(t *testing.T) {
	u, err := NewSized(1, 1, func(i uint32) Cell { return Alive })
	if err != nil {
		t.Fatalf("NewSized(1, 1): %v", err)
	}

	//on a 1x1 torus all non-skipped offsets wrap back onto the cell itself
	if got := u.LiveNeighborCount(0, 0); got != 5 {
		t.Fatalf("LiveNeighborCount(0, 0) = %d on 1x1, expected 5", got)
	}

	u.Tick()
	if got := u.Get(0, 0); got != Dead {
		t.Fatalf("overcrowded single cell = %d after tick, expected Dead", got)
	}
}

func TestToggleAndPopulation(t *testing.T) {
	u := newEmpty(t, 4, 4)
	u.Toggle(1, 1)
	u.Toggle(2, 3)
	if got := u.Population(); got != 2 {
		t.Fatalf("Population() = %d, expected 2", got)
	}
	u.Toggle(1, 1)
	if got := u.Get(1, 1); got != Dead {
		t.Fatalf("toggled cell twice, got %d, expected Dead", got)
	}
	if got := u.Population(); got != 1 {
		t.Fatalf("Population() = %d, expected 1", got)
	}
}
