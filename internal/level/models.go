package level

// EntityType tags a single grid cell in the editor. The zero value means the
// cell is empty.
type EntityType string

const (
	EntitySnake        EntityType = "snake"
	EntityObstacle     EntityType = "obstacle"
	EntityFood         EntityType = "food"
	EntityExit         EntityType = "exit"
	EntityStone        EntityType = "stone"
	EntitySpike        EntityType = "spike"
	EntityFloatingFood EntityType = "floating-food"
	EntityFallingFood  EntityType = "falling-food"
)

// Position is a grid coordinate on the wire: x is the column, y is the row.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type GridSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// LevelDefinition is the canonical wire/file representation of one level.
// Field declaration order is the canonical key order; exports rely on it for
// stable, diffable JSON. A definition is built fresh on every export and
// discarded after import projection, never mutated in place.
type LevelDefinition struct {
	ID             uint32     `json:"id"`
	Name           string     `json:"name"`
	GridSize       GridSize   `json:"gridSize"`
	Snake          []Position `json:"snake"`
	Obstacles      []Position `json:"obstacles"`
	Food           []Position `json:"food"`
	Stones         []Position `json:"stones"`
	Spikes         []Position `json:"spikes"`
	FloatingFood   []Position `json:"floatingFood"`
	FallingFood    []Position `json:"fallingFood"`
	Exit           *Position  `json:"exit"`
	SnakeDirection string     `json:"snakeDirection"`
	TotalFood      int        `json:"totalFood"`
	Difficulty     string     `json:"difficulty,omitempty"`
	ExitIsSolid    *bool      `json:"exitIsSolid,omitempty"`
}

// ValidationDetail is one field-addressable validation failure. Structural
// and bounds failures share this shape, so callers cannot and need not
// distinguish them.
type ValidationDetail struct {
	Field   string `json:"field"`
	Keyword string `json:"keyword"`
	Message string `json:"message"`
}

// Wire direction values. The editor works in lowercase internally; only the
// wire format uses the capitalized form.
const (
	DirectionNorth = "North"
	DirectionSouth = "South"
	DirectionEast  = "East"
	DirectionWest  = "West"
)

var wireDirections = map[string]string{
	"north": DirectionNorth,
	"south": DirectionSouth,
	"east":  DirectionEast,
	"west":  DirectionWest,
}

var editorDirections = map[string]string{
	DirectionNorth: "north",
	DirectionSouth: "south",
	DirectionEast:  "east",
	DirectionWest:  "west",
}

// WireDirection maps a lowercase editor direction to its wire form.
func WireDirection(d string) (string, bool) {
	w, ok := wireDirections[d]
	return w, ok
}

// EditorDirection maps a wire direction to its lowercase editor form.
func EditorDirection(d string) (string, bool) {
	e, ok := editorDirections[d]
	return e, ok
}
