package editor

import (
	"fmt"

	"gsnake-editor-api/internal/level"
)

// Coord addresses a grid cell: row first, then column. The wire format is
// the transpose (x = col, y = row).
type Coord struct {
	Row int
	Col int
}

// Cell holds at most one entity tag; the zero value is an empty cell.
// SegmentIndex is meaningful only when Entity == level.EntitySnake, where 0
// marks the head.
type Cell struct {
	Entity       level.EntityType
	SegmentIndex int
}

// State is the in-memory editor representation of a level, distinct from the
// wire format. Values are treated as immutable: Apply and the history stack
// only ever exchange fresh copies, so no two handlers can alias the same
// grid.
type State struct {
	ID          uint32
	Name        string
	Width       int
	Height      int
	Cells       [][]Cell // indexed [row][col]
	Segments    []Coord  // snake coordinates, head first
	Direction   string   // lowercase editor form
	Difficulty  string
	ExitIsSolid *bool
}

// NewState returns an empty grid of the given dimensions with a freshly
// generated level id and the default direction.
func NewState(width, height int) (State, error) {
	if width < MinGridSize || width > MaxGridSize || height < MinGridSize || height > MaxGridSize {
		return State{}, fmt.Errorf("grid size %dx%d outside supported range %d..%d", width, height, MinGridSize, MaxGridSize)
	}

	return State{
		ID:        level.GenerateLevelID(),
		Name:      "Untitled level",
		Width:     width,
		Height:    height,
		Cells:     emptyCells(width, height),
		Direction: "east",
	}, nil
}

// Practical grid bounds enforced on the file-load path. The wire schema
// deliberately does not carry them.
const (
	MinGridSize = 5
	MaxGridSize = 50
)

func emptyCells(width, height int) [][]Cell {
	cells := make([][]Cell, height)
	for row := range cells {
		cells[row] = make([]Cell, width)
	}
	return cells
}

// clone deep-copies the mutable parts of the state.
func (s State) clone() State {
	out := s

	out.Cells = make([][]Cell, len(s.Cells))
	for row := range s.Cells {
		out.Cells[row] = append([]Cell(nil), s.Cells[row]...)
	}
	out.Segments = append([]Coord(nil), s.Segments...)

	if s.ExitIsSolid != nil {
		solid := *s.ExitIsSolid
		out.ExitIsSolid = &solid
	}
	return out
}

// CheckInvariants verifies that the snake tags in the grid and the ordered
// segment list agree. A failure here is a programming error in the reducer,
// never a user error.
func (s State) CheckInvariants() error {
	tagged := 0
	for row := range s.Cells {
		for col, cell := range s.Cells[row] {
			if cell.Entity != level.EntitySnake {
				continue
			}
			tagged++
			if cell.SegmentIndex < 0 || cell.SegmentIndex >= len(s.Segments) {
				return fmt.Errorf("cell (%d,%d) has segment index %d outside segment list", row, col, cell.SegmentIndex)
			}
			if seg := s.Segments[cell.SegmentIndex]; seg.Row != row || seg.Col != col {
				return fmt.Errorf("cell (%d,%d) claims segment %d, which is at (%d,%d)", row, col, cell.SegmentIndex, seg.Row, seg.Col)
			}
		}
	}
	if tagged != len(s.Segments) {
		return fmt.Errorf("%d snake cells but %d segments", tagged, len(s.Segments))
	}
	return nil
}
