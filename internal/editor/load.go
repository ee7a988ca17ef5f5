package editor

import (
	"encoding/json"
	"strings"

	"gsnake-editor-api/internal/level"
	apperrors "gsnake-editor-api/internal/shared/errors"
)

// levelFile mirrors the wire format with a tolerant id so that a file whose
// id is out of the uint32 range fails the id check, not the JSON decoder.
type levelFile struct {
	ID             json.Number       `json:"id"`
	Name           string            `json:"name"`
	GridSize       *level.GridSize   `json:"gridSize"`
	Snake          []level.Position  `json:"snake"`
	Obstacles      []level.Position  `json:"obstacles"`
	Food           []level.Position  `json:"food"`
	Stones         []level.Position  `json:"stones"`
	Spikes         []level.Position  `json:"spikes"`
	FloatingFood   []level.Position  `json:"floatingFood"`
	FallingFood    []level.Position  `json:"fallingFood"`
	Exit           *level.Position   `json:"exit"`
	SnakeDirection string            `json:"snakeDirection"`
	Difficulty     string            `json:"difficulty"`
	ExitIsSolid    *bool             `json:"exitIsSolid"`
}

// Load parses a level file and reconstructs editor state. It is the client
// side of the import pipeline: a lighter structural check than the server's
// schema pass, then the same bounds rule. On failure the returned state is
// nil and the error carries a single human-readable message; a caller's
// existing state is never touched because Load only ever builds a fresh one.
// Absent optional arrays are treated exactly like empty ones.
func Load(data []byte) (*State, error) {
	var probe interface{}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, apperrors.MalformedJSON(err)
	}

	var file levelFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, apperrors.WrapValidation("Level file is not in the expected format", err)
	}

	id, err := file.ID.Int64()
	if err != nil || !level.IsValidLevelID(id) {
		return nil, apperrors.Validationf("Level file has an invalid id: %s", file.ID)
	}

	if file.GridSize == nil {
		return nil, apperrors.Validation("Level file is missing gridSize")
	}
	width, height := file.GridSize.Width, file.GridSize.Height
	if width < MinGridSize || width > MaxGridSize || height < MinGridSize || height > MaxGridSize {
		return nil, apperrors.Validationf("Unsupported grid size %dx%d: width and height must be between %d and %d", width, height, MinGridSize, MaxGridSize)
	}

	if len(file.Snake) == 0 {
		return nil, apperrors.Validation("Level file contains no snake segments")
	}

	direction, ok := level.EditorDirection(file.SnakeDirection)
	if !ok {
		return nil, apperrors.Validationf("Level file has an unknown snakeDirection %q", file.SnakeDirection)
	}

	def := &level.LevelDefinition{
		GridSize:     *file.GridSize,
		Snake:        file.Snake,
		Obstacles:    file.Obstacles,
		Food:         file.Food,
		Stones:       file.Stones,
		Spikes:       file.Spikes,
		FloatingFood: file.FloatingFood,
		FallingFood:  file.FallingFood,
		Exit:         file.Exit,
	}

	// All out-of-bounds positions are reported in one message and the load
	// aborts entirely. Silently clipping offending entities would hand the
	// user a level that differs from the file.
	if outOfBounds := level.OutOfBoundsSummary(def); len(outOfBounds) > 0 {
		return nil, apperrors.Validationf("Unsupported out-of-bounds coordinates for grid %dx%d: %s",
			width, height, strings.Join(outOfBounds, ", "))
	}

	state := State{
		ID:         uint32(id),
		Name:       file.Name,
		Width:      width,
		Height:     height,
		Cells:      emptyCells(width, height),
		Direction:  direction,
		Difficulty: file.Difficulty,
	}

	if file.ExitIsSolid != nil {
		solid := *file.ExitIsSolid
		state.ExitIsSolid = &solid
	}

	for i, p := range file.Snake {
		if state.Cells[p.Y][p.X].Entity == level.EntitySnake {
			return nil, apperrors.Validationf("Level file places two snake segments at (%d, %d)", p.X, p.Y)
		}
		state.Cells[p.Y][p.X] = Cell{Entity: level.EntitySnake, SegmentIndex: i}
		state.Segments = append(state.Segments, Coord{Row: p.Y, Col: p.X})
	}

	// A cell holds at most one entity. A file that stacks two, snake
	// segment included, is rejected rather than silently resolved: letting
	// a later entity overwrite a snake cell would leave Segments pointing
	// at a cell no longer tagged snake, and a re-export of that state
	// would list the coordinate under both entities.
	project := func(positions []level.Position, entity level.EntityType) error {
		for _, p := range positions {
			if occupant := state.Cells[p.Y][p.X].Entity; occupant != "" {
				return apperrors.Validationf("Level file places %s and %s on the same cell (%d, %d)", occupant, entity, p.X, p.Y)
			}
			state.Cells[p.Y][p.X] = Cell{Entity: entity}
		}
		return nil
	}

	groups := []struct {
		positions []level.Position
		entity    level.EntityType
	}{
		{file.Obstacles, level.EntityObstacle},
		{file.Food, level.EntityFood},
		{file.Stones, level.EntityStone},
		{file.Spikes, level.EntitySpike},
		{file.FloatingFood, level.EntityFloatingFood},
		{file.FallingFood, level.EntityFallingFood},
	}
	for _, g := range groups {
		if err := project(g.positions, g.entity); err != nil {
			return nil, err
		}
	}

	if file.Exit != nil {
		if err := project([]level.Position{*file.Exit}, level.EntityExit); err != nil {
			return nil, err
		}
	}

	return &state, nil
}
