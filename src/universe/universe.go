package universe

import (
	"strings"

	"github.com/pkg/errors"
)

//Cell is the state of a single grid position
//the numeric values allow a cell to be summed directly while counting neighbors
type Cell uint8

const (
	Dead  Cell = 0
	Alive Cell = 1
)

//glyphs used by Render
const (
	DeadGlyph  = '◻'
	AliveGlyph = '◼'
)

//default dimensions of the universe produced by New
const (
	DefWidth  = 64
	DefHeight = 64
)

//SeedFunc maps the flat row-major index of a cell to its initial state
//a nil SeedFunc leaves every cell Dead
type SeedFunc func(i uint32) Cell

//DefaultSeed is the deterministic default pattern:
//a cell is alive when its index is divisible by 2 or by 7
func DefaultSeed(i uint32) Cell {
	if i%2 == 0 || i%7 == 0 {
		return Alive
	}
	return Dead
}

//Universe is a fixed-size toroidal grid of cells
//cells are stored in a flat row-major slice of length width*height
//column 0 wraps to column width-1 and row 0 wraps to row height-1
type Universe struct {
	width  uint32
	height uint32
	cells  []Cell
}

//New creates the default 64x64 universe settled with the default seed pattern
func New() *Universe {
	u, _ := NewSized(DefWidth, DefHeight, DefaultSeed)
	return u
}

//NewSized creates a universe with the given dimensions and seed
//this constructor is the sole gate for the dimension preconditions:
//every downstream operation assumes width >= 1 and height >= 1
func NewSized(width uint32, height uint32, seed SeedFunc) (*Universe, error) {
	if width == 0 || height == 0 {
		return nil, errors.Errorf("universe dimensions must be at least 1x1, got %vx%v", width, height)
	}
	cells := make([]Cell, width*height)
	if seed != nil {
		for i := range cells {
			cells[i] = seed(uint32(i))
		}
	}
	return &Universe{width: width, height: height, cells: cells}, nil
}

//Width returns the number of columns
func (u *Universe) Width() uint32 {
	return u.width
}

//Height returns the number of rows
func (u *Universe) Height() uint32 {
	return u.height
}

//Cells returns the backing slice of the current generation
//the slice is replaced wholesale by Tick, so a held reference stays
//a consistent snapshot of the generation it was taken from
func (u *Universe) Cells() []Cell {
	return u.cells
}

//Index returns the flat slice index for the cell at row, column
//coordinates must be in range, the mapping itself does not validate
func (u *Universe) Index(row uint32, column uint32) int {
	return int(row*u.width + column)
}

//Get returns the state of the cell at row, column
func (u *Universe) Get(row uint32, column uint32) Cell {
	return u.cells[u.Index(row, column)]
}

//Set assigns the state of the cell at row, column
func (u *Universe) Set(row uint32, column uint32, c Cell) {
	u.cells[u.Index(row, column)] = c
}

//Toggle inverses the cell at row, column
func (u *Universe) Toggle(row uint32, column uint32) {
	u.cells[u.Index(row, column)] ^= Alive
}

//Population returns the count of live cells
func (u *Universe) Population() int {
	count := 0
	for _, c := range u.cells {
		count += int(c)
	}
	return count
}

//LiveNeighborCount returns how many of the 8 toroidal neighbors of
//row, column are alive
//the offsets height-1 and width-1 act as modular -1, so edge cells wrap
//around without any branching; on degenerate 1x1 or 1xN grids a cell can
//count itself through the wraparound
func (u *Universe) LiveNeighborCount(row uint32, column uint32) uint8 {
	var count uint8
	for _, deltaRow := range [3]uint32{u.height - 1, 0, 1} {
		for _, deltaCol := range [3]uint32{u.width - 1, 0, 1} {
			if deltaRow == 0 && deltaCol == 0 {
				continue
			}
			neighborRow := (row + deltaRow) % u.height
			neighborCol := (column + deltaCol) % u.width
			count += uint8(u.cells[u.Index(neighborRow, neighborCol)])
		}
	}
	return count
}

//Tick advances the universe by one generation
//every next state is computed from the current generation only:
//the new slice is built in full and then swapped in, so a cell updated
//earlier in the pass can never skew a later neighbor count
func (u *Universe) Tick() {
	next := make([]Cell, len(u.cells))

	for row := uint32(0); row < u.height; row++ {
		for col := uint32(0); col < u.width; col++ {
			idx := u.Index(row, col)
			cell := u.cells[idx]
			liveNeighbors := u.LiveNeighborCount(row, col)

			switch {
			case cell == Alive && liveNeighbors < 2:
				next[idx] = Dead //underpopulation
			case cell == Alive && (liveNeighbors == 2 || liveNeighbors == 3):
				next[idx] = Alive
			case cell == Alive && liveNeighbors > 3:
				next[idx] = Dead //overpopulation
			case cell == Dead && liveNeighbors == 3:
				next[idx] = Alive //birth
			default:
				next[idx] = cell
			}
		}
	}

	u.cells = next
}

//Render returns the universe as text, one line per row,
//every row terminated with a newline including the last
func (u *Universe) Render() string {
	return u.String()
}

func (u *Universe) String() string {
	var b strings.Builder
	b.Grow(len(u.cells)*3 + int(u.height))
	for row := uint32(0); row < u.height; row++ {
		for col := uint32(0); col < u.width; col++ {
			if u.Get(row, col) == Alive {
				b.WriteRune(AliveGlyph)
			} else {
				b.WriteRune(DeadGlyph)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
