package level

import "fmt"

// positionGroups yields every position array of a definition together with
// its wire field name, in canonical field order. Both bounds passes walk
// this one list so they can never disagree about which positions exist.
func positionGroups(def *LevelDefinition) []struct {
	name      string
	positions []Position
} {
	return []struct {
		name      string
		positions []Position
	}{
		{"snake", def.Snake},
		{"obstacles", def.Obstacles},
		{"food", def.Food},
		{"stones", def.Stones},
		{"spikes", def.Spikes},
		{"floatingFood", def.FloatingFood},
		{"fallingFood", def.FallingFood},
	}
}

// CheckBounds verifies that every position referenced by def lies strictly
// inside the declared grid. It never short-circuits: each violated axis
// produces one detail, in field order. The result shape matches structural
// schema details so servers can merge the two passes into one list.
func CheckBounds(def *LevelDefinition) []ValidationDetail {
	var details []ValidationDetail

	axis := func(field string, v, limit int) {
		switch {
		case v < 0:
			details = append(details, ValidationDetail{
				Field:   field,
				Keyword: "minimum",
				Message: fmt.Sprintf("must be >= 0, got %d", v),
			})
		case v >= limit:
			details = append(details, ValidationDetail{
				Field:   field,
				Keyword: "maximum",
				Message: fmt.Sprintf("must be < %d, got %d", limit, v),
			})
		}
	}

	position := func(prefix string, p Position) {
		axis(prefix+".x", p.X, def.GridSize.Width)
		axis(prefix+".y", p.Y, def.GridSize.Height)
	}

	for _, group := range positionGroups(def) {
		for i, p := range group.positions {
			position(fmt.Sprintf("%s.%d", group.name, i), p)
		}
	}

	if def.Exit != nil {
		position("exit", *def.Exit)
	}

	return details
}

// OutOfBoundsSummary lists every out-of-bounds position of def in a
// human-readable form, e.g. "food[0] at (-1, 2)". One entry per position,
// even when both axes are out of range. Empty when everything fits.
func OutOfBoundsSummary(def *LevelDefinition) []string {
	var parts []string

	outside := func(p Position) bool {
		return p.X < 0 || p.X >= def.GridSize.Width ||
			p.Y < 0 || p.Y >= def.GridSize.Height
	}

	for _, group := range positionGroups(def) {
		for i, p := range group.positions {
			if outside(p) {
				parts = append(parts, fmt.Sprintf("%s[%d] at (%d, %d)", group.name, i, p.X, p.Y))
			}
		}
	}

	if def.Exit != nil && outside(*def.Exit) {
		parts = append(parts, fmt.Sprintf("exit at (%d, %d)", def.Exit.X, def.Exit.Y))
	}

	return parts
}
