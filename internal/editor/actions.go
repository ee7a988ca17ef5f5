package editor

import (
	"fmt"

	"gsnake-editor-api/internal/level"
)

// Action is one editor interaction. Actions are plain data; all state change
// happens in Apply. Switching the active tool in a UI is deliberately not an
// action: it touches nothing, so it can never clear the snake as a side
// effect.
type Action interface {
	isAction()
}

// Place puts the given entity on a cell. Placing a snake appends a tail
// segment; placing an exit evicts any previous exit cell.
type Place struct {
	Row, Col int
	Tool     level.EntityType
}

// Erase clears a cell regardless of what occupies it (shift-click). Erasing
// a snake segment removes it from the ordered segment list and reindexes the
// rest of the body.
type Erase struct {
	Row, Col int
}

// SetDirection changes the snake's starting direction (lowercase form).
type SetDirection struct {
	Direction string
}

type SetName struct {
	Name string
}

type SetDifficulty struct {
	Difficulty string
}

// Clear empties the whole grid, keeping dimensions and metadata.
type Clear struct{}

func (Place) isAction()         {}
func (Erase) isAction()         {}
func (SetDirection) isAction()  {}
func (SetName) isAction()       {}
func (SetDifficulty) isAction() {}
func (Clear) isAction()         {}

var placeableEntities = map[level.EntityType]struct{}{
	level.EntitySnake:        {},
	level.EntityObstacle:     {},
	level.EntityFood:         {},
	level.EntityExit:         {},
	level.EntityStone:        {},
	level.EntitySpike:        {},
	level.EntityFloatingFood: {},
	level.EntityFallingFood:  {},
}

// Apply runs one action against a state and returns the successor state.
// The input state is never mutated; on error it is returned unchanged so
// callers can keep using it.
func Apply(s State, action Action) (State, error) {
	switch a := action.(type) {
	case Place:
		return applyPlace(s, a)
	case Erase:
		return applyErase(s, a)
	case SetDirection:
		if _, ok := level.WireDirection(a.Direction); !ok {
			return s, fmt.Errorf("unknown direction %q", a.Direction)
		}
		next := s.clone()
		next.Direction = a.Direction
		return next, nil
	case SetName:
		next := s.clone()
		next.Name = a.Name
		return next, nil
	case SetDifficulty:
		next := s.clone()
		next.Difficulty = a.Difficulty
		return next, nil
	case Clear:
		next := s.clone()
		next.Cells = emptyCells(s.Width, s.Height)
		next.Segments = nil
		return next, nil
	default:
		return s, fmt.Errorf("unknown action %T", action)
	}
}

func applyPlace(s State, a Place) (State, error) {
	if err := s.checkCell(a.Row, a.Col); err != nil {
		return s, err
	}
	if _, ok := placeableEntities[a.Tool]; !ok {
		return s, fmt.Errorf("unknown tool %q", a.Tool)
	}

	next := s.clone()

	// Whatever currently occupies the cell goes away first.
	if next.Cells[a.Row][a.Col].Entity == level.EntitySnake {
		if a.Tool == level.EntitySnake {
			return s, nil
		}
		removeSegment(&next, a.Row, a.Col)
	}

	switch a.Tool {
	case level.EntitySnake:
		next.Segments = append(next.Segments, Coord{Row: a.Row, Col: a.Col})
		next.Cells[a.Row][a.Col] = Cell{
			Entity:       level.EntitySnake,
			SegmentIndex: len(next.Segments) - 1,
		}
	case level.EntityExit:
		// The grid is the source of truth for the exit; placing a new one
		// evicts the old cell.
		for row := range next.Cells {
			for col := range next.Cells[row] {
				if next.Cells[row][col].Entity == level.EntityExit {
					next.Cells[row][col] = Cell{}
				}
			}
		}
		next.Cells[a.Row][a.Col] = Cell{Entity: level.EntityExit}
	default:
		next.Cells[a.Row][a.Col] = Cell{Entity: a.Tool}
	}

	return next, nil
}

func applyErase(s State, a Erase) (State, error) {
	if err := s.checkCell(a.Row, a.Col); err != nil {
		return s, err
	}

	if s.Cells[a.Row][a.Col].Entity == "" {
		return s, nil
	}

	next := s.clone()
	if next.Cells[a.Row][a.Col].Entity == level.EntitySnake {
		removeSegment(&next, a.Row, a.Col)
	} else {
		next.Cells[a.Row][a.Col] = Cell{}
	}
	return next, nil
}

func (s State) checkCell(row, col int) error {
	if row < 0 || row >= s.Height || col < 0 || col >= s.Width {
		return fmt.Errorf("cell (%d,%d) outside %dx%d grid", row, col, s.Width, s.Height)
	}
	return nil
}

// removeSegment drops the snake segment occupying (row, col) and reindexes
// the segments behind it so cell tags and list positions stay consistent.
func removeSegment(s *State, row, col int) {
	idx := s.Cells[row][col].SegmentIndex
	s.Cells[row][col] = Cell{}
	s.Segments = append(s.Segments[:idx], s.Segments[idx+1:]...)

	for i := idx; i < len(s.Segments); i++ {
		seg := s.Segments[i]
		s.Cells[seg.Row][seg.Col].SegmentIndex = i
	}
}
