package editor

import (
	"errors"
	"fmt"

	"gsnake-editor-api/internal/level"
)

// ErrInvalidID reports an export attempt with an id outside the uint32
// contract.
var ErrInvalidID = errors.New("invalid level id")

// Export converts editor state into a canonical LevelDefinition. It is a
// pure function of its inputs: the state is not touched, and every call
// builds a fresh payload. The totalFood count is always recomputed; a
// stale value carried in from an earlier import is never trusted.
func Export(s State, id int64) (*level.LevelDefinition, error) {
	if !level.IsValidLevelID(id) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidID, id)
	}

	direction, ok := level.WireDirection(s.Direction)
	if !ok {
		return nil, fmt.Errorf("unknown direction %q", s.Direction)
	}

	def := &level.LevelDefinition{
		ID:             uint32(id),
		Name:           s.Name,
		GridSize:       level.GridSize{Width: s.Width, Height: s.Height},
		Snake:          make([]level.Position, 0, len(s.Segments)),
		Obstacles:      []level.Position{},
		Food:           []level.Position{},
		Stones:         []level.Position{},
		Spikes:         []level.Position{},
		FloatingFood:   []level.Position{},
		FallingFood:    []level.Position{},
		SnakeDirection: direction,
		Difficulty:     s.Difficulty,
	}

	if s.ExitIsSolid != nil {
		solid := *s.ExitIsSolid
		def.ExitIsSolid = &solid
	}

	// Row-major scan routes each tagged cell into its wire bucket. Snake
	// cells are covered by the ordered segment list instead; for the exit,
	// the last cell in scan order wins should the grid ever hold more than
	// one.
	for row := range s.Cells {
		for col, cell := range s.Cells[row] {
			pos := level.Position{X: col, Y: row}
			switch cell.Entity {
			case level.EntityObstacle:
				def.Obstacles = append(def.Obstacles, pos)
			case level.EntityFood:
				def.Food = append(def.Food, pos)
			case level.EntityStone:
				def.Stones = append(def.Stones, pos)
			case level.EntitySpike:
				def.Spikes = append(def.Spikes, pos)
			case level.EntityFloatingFood:
				def.FloatingFood = append(def.FloatingFood, pos)
			case level.EntityFallingFood:
				def.FallingFood = append(def.FallingFood, pos)
			case level.EntityExit:
				exit := pos
				def.Exit = &exit
			}
		}
	}

	for _, seg := range s.Segments {
		def.Snake = append(def.Snake, level.Position{X: seg.Col, Y: seg.Row})
	}

	def.TotalFood = len(def.Food) + len(def.FloatingFood) + len(def.FallingFood)

	return def, nil
}
